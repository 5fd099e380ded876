package signature

import (
	"context"
	"crypto/ed25519"
	"errors"
	"testing"

	"github.com/findy-network/findy-exchange/core"
	"github.com/findy-network/findy-exchange/core/mock"
	"github.com/findy-network/findy-exchange/std/decorator"
	"github.com/golang/mock/gomock"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSigner(t *testing.T) (*mock.MockWallet, string, string) {
	ctrl := gomock.NewController(t)
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	other, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	w := mock.NewMockWallet(ctrl)
	w.EXPECT().Sign(gomock.Any(), base58.Encode(pub), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, msg []byte) ([]byte, error) {
			return ed25519.Sign(priv, msg), nil
		})
	return w, base58.Encode(pub), base58.Encode(other)
}

func TestSignVerify(t *testing.T) {
	w, verkey, otherKey := newSigner(t)
	a := decorator.NewAttachment("doc", []byte(`{"id":"did:sov:123"}`))

	require.NoError(t, Sign(context.Background(), w, verkey, &a))
	require.NotNil(t, a.Data.JWS)
	assert.Contains(t, a.Data.JWS.Header["kid"], "did:key:z")

	assert.NoError(t, Verify(&a, verkey))

	err := Verify(&a, otherKey)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrAuthentication))

	tampered := a
	tampered.Data.Base64 = decorator.NewAttachment("doc", []byte(`{"id":"did:sov:456"}`)).Data.Base64
	assert.Error(t, Verify(&tampered, verkey))
}

func TestVerifyUnsigned(t *testing.T) {
	a := decorator.NewAttachment("doc", []byte(`{}`))
	assert.Error(t, Verify(&a, "B12NYF8RrR3h41TDCTJojY59usg3mbtbjnFs7Eud1Y6u"))
}
