package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDIDKey(t *testing.T) {
	// from did:key method spec test vectors
	const (
		didKey = "did:key:z6MkhaXgBZDvotDkL5257faiztiGiC2QtKLGpbnnEGta2doK"
		verkey = "48GdbJyVULjHDaBNS6ct9oAGtckZUS5v8asrPzvZ7R1w"
	)
	assert.Equal(t, didKey, DIDKey(verkey))

	vk, err := VerKeyFromDIDKey(didKey + "#z6MkhaXgBZDvotDkL5257faiztiGiC2QtKLGpbnnEGta2doK")
	require.NoError(t, err)
	assert.Equal(t, verkey, vk)

	_, err = VerKeyFromDIDKey("did:sov:123")
	assert.Error(t, err)
}
