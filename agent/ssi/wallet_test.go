package ssi

import (
	"context"
	"crypto/ed25519"
	"errors"
	"testing"

	"github.com/findy-network/findy-exchange/agent/storage/api"
	"github.com/findy-network/findy-exchange/agent/storage/mem"
	"github.com/findy-network/findy-exchange/core"
	"github.com/lainio/err2/assert"
	"github.com/mr-tron/base58"
)

const seed = "000000000000000000000000Steward1"

func TestCreateAndStoreDID(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	ctx := context.Background()

	w, err := NewWallet(nil)
	assert.NoError(err)
	did, verkey, err := w.CreateAndStoreDID(ctx, seed)
	assert.NoError(err)
	// well known steward seed
	assert.Equal(did, "Th7MpTaRZVRYnPiabds81Y")
	assert.Equal(verkey, "FYmoFw55GeQH7SRFa37dkx1d2dZ3zUF8ckg7wmL7ofN4")

	vk, ok := w.VerKey(did)
	assert.That(ok)
	assert.Equal(vk, verkey)

	_, _, err = w.CreateAndStoreDID(ctx, "short")
	assert.Error(err)

	did2, verkey2, err := w.CreateAndStoreDID(ctx, "")
	assert.NoError(err)
	assert.NotEqual(did2, did)
	assert.NotEqual(verkey2, verkey)
}

func TestSign(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	ctx := context.Background()

	w, err := NewWallet(nil)
	assert.NoError(err)
	_, verkey, err := w.CreateAndStoreDID(ctx, "")
	assert.NoError(err)

	msg := []byte("message")
	sig, err := w.Sign(ctx, verkey, msg)
	assert.NoError(err)
	pub, err := base58.Decode(verkey)
	assert.NoError(err)
	assert.That(ed25519.Verify(pub, msg, sig))

	_, err = w.Sign(ctx, "unknown", msg)
	assert.Error(err)
}

func TestPersistence(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	ctx := context.Background()

	store, err := mem.New().OpenStore(api.BucketKey)
	assert.NoError(err)
	w, err := NewWallet(store)
	assert.NoError(err)
	did, verkey, err := w.CreateAndStoreDID(ctx, "")
	assert.NoError(err)

	w2, err := NewWallet(store)
	assert.NoError(err)
	vk, ok := w2.VerKey(did)
	assert.That(ok)
	assert.Equal(vk, verkey)
	_, ok = w2.PrivateKey(verkey)
	assert.That(ok)

	// reloaded keys are in the packer's KMS as well
	other, err := NewWallet(nil)
	assert.NoError(err)
	packed, err := other.PackMessage(ctx, "", []string{verkey}, []byte("again"))
	assert.NoError(err)
	u, err := w2.UnpackMessage(ctx, packed)
	assert.NoError(err)
	assert.Equal(string(u.Message), "again")
}

func TestPackUnpack(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	ctx := context.Background()

	alice, err := NewWallet(nil)
	assert.NoError(err)
	bob, err := NewWallet(nil)
	assert.NoError(err)
	_, aliceKey, err := alice.CreateAndStoreDID(ctx, "")
	assert.NoError(err)
	_, bobKey, err := bob.CreateAndStoreDID(ctx, "")
	assert.NoError(err)

	packed, err := alice.PackMessage(ctx, aliceKey, []string{bobKey}, []byte("hello"))
	assert.NoError(err)
	u, err := bob.UnpackMessage(ctx, packed)
	assert.NoError(err)
	assert.Equal(string(u.Message), "hello")
	assert.Equal(u.SenderKey, aliceKey)
	assert.Equal(u.RecipientKey, bobKey)

	anon, err := alice.PackMessage(ctx, "", []string{bobKey}, []byte("hello"))
	assert.NoError(err)
	u, err = bob.UnpackMessage(ctx, anon)
	assert.NoError(err)
	assert.Equal(u.SenderKey, "")

	_, err = alice.UnpackMessage(ctx, packed)
	assert.That(errors.Is(err, core.ErrInvalidJSON))

	_, err = bob.UnpackMessage(ctx, []byte("{not json"))
	assert.That(errors.Is(err, core.ErrInvalidJSON))

	_, err = alice.PackMessage(ctx, bobKey, []string{aliceKey}, []byte("x"))
	assert.Error(err)
}
