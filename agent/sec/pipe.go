package sec

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/findy-network/findy-exchange/core"
	"github.com/findy-network/findy-exchange/std/common"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/mr-tron/base58"
)

// Out is the other end of the pipe, read from their DID document.
type Out struct {
	DID         string
	VerKey      string
	RoutingKeys []string
	Endpoint    string
}

// Pipe is a secure way to transport data between DID connection. All agent to
// agent communication uses it. In is our verkey.
type Pipe struct {
	W   core.Wallet
	In  string
	Out Out
}

// NewPipe builds the pipe from our verkey and their DID document.
func NewPipe(w core.Wallet, in string, theirDoc core.DIDDoc) (p *Pipe, err error) {
	defer err2.Handle(&err, "new pipe")

	keys := common.RecipientKeys(theirDoc, 0)
	if len(keys) == 0 {
		return nil, errors.New("DID doc has no recipient keys")
	}
	return &Pipe{
		W:  w,
		In: in,
		Out: Out{
			DID:         common.ID(theirDoc),
			VerKey:      keys[0],
			RoutingKeys: common.RoutingKeys(theirDoc, 0),
			Endpoint:    common.Endpoint(theirDoc, 0),
		},
	}, nil
}

// Pack seals the message for the other end and returns our verkey as well.
func (p Pipe) Pack(ctx context.Context, src []byte) (dst []byte, vk string, err error) {
	defer err2.Handle(&err, "sec pipe pack")

	dst = try.To1(Seal(ctx, p.W, src, p.In, p.Out.VerKey, p.Out.RoutingKeys))
	return dst, p.In, nil
}

// Unpack opens the message which must come from the other end.
func (p Pipe) Unpack(ctx context.Context, src []byte) (dst []byte, err error) {
	u, err := OpenAuth(ctx, p.W, src, p.Out.VerKey)
	if err != nil {
		return nil, fmt.Errorf("sec pipe unpack: %w", err)
	}
	return u.Message, nil
}

// Sign signs the message and returns the verification key.
func (p Pipe) Sign(ctx context.Context, src []byte) (dst []byte, vk string, err error) {
	defer err2.Handle(&err, "pipe sign")

	dst = try.To1(p.W.Sign(ctx, p.In, src))
	return dst, p.In, nil
}

// Verify verifies signature of the other end.
func (p Pipe) Verify(msg, signature []byte) (yes bool, err error) {
	defer err2.Handle(&err, "pipe verify")

	pub := try.To1(base58.Decode(p.Out.VerKey))
	if len(pub) != ed25519.PublicKeySize {
		return false, fmt.Errorf("invalid verkey %s", p.Out.VerKey)
	}
	return ed25519.Verify(pub, msg, signature), nil
}

// IsNull returns true if pipe is null.
func (p Pipe) IsNull() bool {
	return p.In == ""
}
