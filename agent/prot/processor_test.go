package prot_test

import (
	"context"
	"errors"
	"testing"

	"github.com/findy-network/findy-exchange/agent/didcomm"
	"github.com/findy-network/findy-exchange/agent/pltype"
	"github.com/findy-network/findy-exchange/agent/prot"
	"github.com/findy-network/findy-exchange/agent/sec"
	"github.com/findy-network/findy-exchange/agent/ssi"
	"github.com/findy-network/findy-exchange/core"
	"github.com/findy-network/findy-exchange/std/basicmessage"
	"github.com/findy-network/findy-exchange/std/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKey(t *testing.T, w *ssi.Wallet) string {
	t.Helper()
	_, vk, err := w.CreateAndStoreDID(context.Background(), "")
	require.NoError(t, err)
	return vk
}

func TestProcess(t *testing.T) {
	ctx := context.Background()
	aw, err := ssi.NewWallet(nil)
	require.NoError(t, err)
	bw, err := ssi.NewWallet(nil)
	require.NoError(t, err)
	alice, bob, bobRouter := newKey(t, aw), newKey(t, bw), newKey(t, bw)

	var got []prot.Inbound
	p := prot.NewProcessor(bw, bw)
	p.Add(pltype.ProtocolBasicMessage, func(_ context.Context, in prot.Inbound) error {
		got = append(got, in)
		return nil
	})

	for _, routing := range [][]string{nil, {bobRouter}} {
		data, err := sec.Seal(ctx, aw, []byte(`{"@type":"https://didcomm.org/basicmessage/1.0/message","@id":"m1","content":"hi"}`),
			alice, bob, routing)
		require.NoError(t, err)
		require.NoError(t, p.Process(ctx, data))
	}
	require.Len(t, got, 2)
	for _, in := range got {
		assert.Equal(t, "hi", in.Msg.(*basicmessage.Basicmessage).Content)
		assert.Equal(t, alice, in.SenderKey)
		assert.Equal(t, bob, in.RecipientKey)
	}

	// no handler for the family
	ack, err := didcomm.JSON(common.NewAck(pltype.IssueCredentialACK, "1"))
	require.NoError(t, err)
	data, err := sec.Seal(ctx, aw, ack, alice, bob, nil)
	require.NoError(t, err)
	err = p.Process(ctx, data)
	assert.True(t, errors.Is(err, core.ErrUnimplemented))
}

func TestProcessForeignForward(t *testing.T) {
	ctx := context.Background()
	aw, err := ssi.NewWallet(nil)
	require.NoError(t, err)
	mw, err := ssi.NewWallet(nil)
	require.NoError(t, err)
	bw, err := ssi.NewWallet(nil)
	require.NoError(t, err)
	alice, mediator, bob := newKey(t, aw), newKey(t, mw), newKey(t, bw)

	data, err := sec.Seal(ctx, aw, []byte(`{"@type":"https://didcomm.org/basicmessage/1.0/message","@id":"m1"}`),
		alice, bob, []string{mediator})
	require.NoError(t, err)

	err = prot.NewProcessor(mw, mw).Process(ctx, data)
	assert.True(t, errors.Is(err, core.ErrUnimplemented))

	err = prot.NewProcessor(bw, bw).Process(ctx, []byte("garbage"))
	assert.True(t, errors.Is(err, core.ErrInvalidJSON))
}
