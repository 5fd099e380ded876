package indy

import (
	"context"

	"github.com/findy-network/findy-exchange/core"
	"github.com/findy-network/findy-wrapper-go/ledger"
	"github.com/lainio/err2"
)

func (i *Indy) GetSchema(_ context.Context, id string) (_ string, err error) {
	defer err2.Handle(&err, "indy get schema %s", id)

	_, schema, err := ledger.ReadSchema(i.Pool, i.SubmitterDID, id)
	return schema, core.Backend(err)
}

func (i *Indy) GetCredDef(_ context.Context, id string) (_ string, err error) {
	defer err2.Handle(&err, "indy get cred def %s", id)

	_, credDef, err := ledger.ReadCredDef(i.Pool, i.SubmitterDID, id)
	return credDef, core.Backend(err)
}

func (i *Indy) GetRevRegDef(context.Context, string) (string, error) {
	return "", unimplemented("get revocation registry definition")
}

func (i *Indy) GetRevRegDelta(context.Context, string, uint64, uint64) (core.RevRegDelta, error) {
	return core.RevRegDelta{}, unimplemented("get revocation registry delta")
}

func (i *Indy) GetRevReg(context.Context, string, uint64) (string, uint64, error) {
	return "", 0, unimplemented("get revocation registry")
}

func (i *Indy) GetAttr(context.Context, string, string) (string, error) {
	return "", unimplemented("get attribute")
}

func (i *Indy) PublishNym(_ context.Context, submitterDID, targetDID, verkey, alias, role string) (err error) {
	defer err2.Handle(&err, "indy publish nym %s", targetDID)

	return core.Backend(ledger.WriteDID(i.Pool, i.Wallet, submitterDID, targetDID, verkey, alias, role))
}

func (i *Indy) AddAttr(context.Context, string, string, string) error {
	return unimplemented("add attribute")
}

func (i *Indy) PublishRevRegDef(context.Context, string, string) error {
	return unimplemented("publish revocation registry definition")
}

func (i *Indy) PublishRevRegDelta(context.Context, string, string, string) error {
	return unimplemented("publish revocation registry delta")
}
