package sec

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
)

// KeyFinder returns our private signing key of the base58 verkey.
type KeyFinder interface {
	PrivateKey(verkey string) (ed25519.PrivateKey, bool)
}

// Keys is the simplest KeyFinder: verkey to private key map.
type Keys map[string]ed25519.PrivateKey

func (k Keys) PrivateKey(verkey string) (ed25519.PrivateKey, bool) {
	priv, ok := k[verkey]
	return priv, ok
}

// Add stores the key pair and returns its base58 verkey.
func (k Keys) Add(priv ed25519.PrivateKey) string {
	verkey := base58.Encode(priv.Public().(ed25519.PublicKey))
	k[verkey] = priv
	return verkey
}
