// Package api defines the key value store the agent persists its state
// machines, keys, revocation registries and their deltas to. Implementations are in mem,
// wrapper (bolt) and redisdb.
package api

import (
	"errors"

	"github.com/hyperledger/aries-framework-go/spi/storage"
)

// Buckets, i.e. store names, every provider must serve.
const (
	BucketMachine    = "machine"
	BucketRevocation = "revocation"
	BucketRegistry   = "registry"
	BucketKey        = "key"
)

// Buckets lists all the bucket names in fixed order.
var Buckets = []string{BucketMachine, BucketRevocation, BucketKey, BucketRegistry}

// ErrNotFound is returned by Get when key doesn't exist. It's the AFGO
// storage sentinel so errors.Is works with both.
var ErrNotFound = storage.ErrDataNotFound

// Store is one bucket of key value pairs. Empty keys and nil values are
// errors.
type Store interface {
	Put(key string, value []byte) error
	Get(key string) ([]byte, error)
	Delete(key string) error
	// GetAll returns all the values of the bucket in unspecified order.
	GetAll() ([][]byte, error)
}

// Provider opens the stores of the agent.
type Provider interface {
	OpenStore(name string) (Store, error)
	Close() error
}

// IsNotFound tells if err is a not found error of any store.
func IsNotFound(err error) bool {
	return errors.Is(err, storage.ErrDataNotFound)
}
