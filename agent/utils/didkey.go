package utils

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// multicodec prefix of ed25519-pub
var ed25519Codec = []byte{0xed, 0x01}

const didKeyPrefix = "did:key:z"

// DIDKey returns did:key presentation of base58 encoded ed25519 verkey. The
// verkey isn't validated, malformed verkey gives malformed did:key.
func DIDKey(verkey string) string {
	pub, err := base58.Decode(verkey)
	if err != nil {
		return ""
	}
	return didKeyPrefix + base58.Encode(append(append([]byte{}, ed25519Codec...), pub...))
}

// VerKeyFromDIDKey returns base58 verkey from ed25519 did:key. A fragment is
// allowed.
func VerKeyFromDIDKey(didKey string) (string, error) {
	s, _, _ := strings.Cut(didKey, "#")
	if !strings.HasPrefix(s, didKeyPrefix) {
		return "", fmt.Errorf("not a did:key: %s", didKey)
	}
	b, err := base58.Decode(strings.TrimPrefix(s, didKeyPrefix))
	if err != nil {
		return "", fmt.Errorf("did:key decode: %w", err)
	}
	if !bytes.HasPrefix(b, ed25519Codec) || len(b) != len(ed25519Codec)+32 {
		return "", fmt.Errorf("did:key is not ed25519: %s", didKey)
	}
	return base58.Encode(b[len(ed25519Codec):]), nil
}
