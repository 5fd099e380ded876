package indy

import (
	"context"

	"github.com/findy-network/findy-exchange/core"
	"github.com/findy-network/findy-wrapper-go"
	indycrypto "github.com/findy-network/findy-wrapper-go/crypto"
	"github.com/findy-network/findy-wrapper-go/did"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

func (i *Indy) Sign(ctx context.Context, verkey string, msg []byte) (_ []byte, err error) {
	defer err2.Handle(&err, "indy sign")

	return try.To1(wait(ctx, indycrypto.SignMsg(i.Wallet, verkey, msg))).Bytes(), nil
}

// PackMessage packs msg for one recipient. Routing is done by the caller.
func (i *Indy) PackMessage(ctx context.Context, senderKey string, recipientKeys []string, msg []byte) (_ []byte, err error) {
	defer err2.Handle(&err, "indy pack message")

	if len(recipientKeys) != 1 {
		return nil, core.Errorf(core.ErrUnimplemented, "%d recipient keys", len(recipientKeys))
	}
	if senderKey == "" {
		senderKey = findy.NullString
	}
	glog.V(5).Infof("<== Pack: w(%d) %s -> %s", i.Wallet, senderKey, recipientKeys[0])

	return try.To1(wait(ctx, indycrypto.Pack(i.Wallet, senderKey, msg, recipientKeys[0]))).Bytes(), nil
}

func (i *Indy) UnpackMessage(ctx context.Context, msg []byte) (_ *core.Unpacked, err error) {
	defer err2.Handle(&err, "indy unpack message")

	r := try.To1(wait(ctx, indycrypto.UnpackMessage(i.Wallet, msg)))
	unpacked := indycrypto.NewUnpacked(r.Bytes())
	glog.V(5).Infof("==> Unpacked: w(%d) to %s", i.Wallet, unpacked.RecipientVerkey)

	return &core.Unpacked{
		Message:      []byte(unpacked.Message),
		SenderKey:    unpacked.SenderVerkey,
		RecipientKey: unpacked.RecipientVerkey,
	}, nil
}

func (i *Indy) CreateAndStoreDID(ctx context.Context, seed string) (_, _ string, err error) {
	defer err2.Handle(&err, "indy create DID")

	r := try.To1(wait(ctx, did.CreateAndStore(i.Wallet, did.Did{Seed: seed})))
	if i.SubmitterDID == "" {
		i.SubmitterDID = r.Str1()
	}
	return r.Str1(), r.Str2(), nil
}
