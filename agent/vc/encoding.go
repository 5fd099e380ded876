package vc

import (
	"crypto/sha256"
	"encoding/json"
	"math/big"
	"strconv"

	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// Encode returns the Indy encoding of a raw attribute value: 32 bit integers
// as they are, everything else as the decimal of its big-endian SHA-256.
func Encode(raw string) string {
	if _, err := strconv.ParseInt(raw, 10, 32); err == nil {
		return raw
	}
	sum := sha256.Sum256([]byte(raw))
	return new(big.Int).SetBytes(sum[:]).String()
}

// AttrValue is the raw and encoded pair the issuer signs.
type AttrValue struct {
	Raw     string `json:"raw"`
	Encoded string `json:"encoded"`
}

// EncodeValues builds the credential values JSON from name/value pairs.
func EncodeValues(values map[string]string) (_ []byte, err error) {
	defer err2.Handle(&err, "encode credential values")

	m := make(map[string]AttrValue, len(values))
	for name, raw := range values {
		m[name] = AttrValue{Raw: raw, Encoded: Encode(raw)}
	}
	return try.To1(json.Marshal(m)), nil
}
