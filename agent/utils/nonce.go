package utils

import (
	"crypto/rand"
	"math"
	"math/big"
	"strconv"

	"github.com/golang/glog"
	"github.com/google/uuid"
)

func gen() uint64 {
	m := big.NewInt(math.MaxInt64)
	r, err := rand.Int(rand.Reader, m)
	if err != nil {
		panic("cannot create nonce")
	}
	return r.Uint64()
}

// NewNonce generates new uint64 nonce with Go's crypto package
func NewNonce() uint64 {
	return gen()
}

// NewNonceStr generates new nonce with Go's crypto package, and returns value
// as string. Proof requests carry their nonce in this decimal format.
func NewNonceStr() string {
	return strconv.FormatUint(NewNonce(), 10)
}

// UUID returns a new random UUID string. Message and thread ids use these.
func UUID() string {
	return uuid.New().String()
}

// NonceNum parses decimal string. Empty and malformed strings give zero.
func NonceNum(s string) uint64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		glog.Warning("error nonce conversion! Using zero")
		n = 0
	}
	return n
}
