package indy

import (
	"context"

	"github.com/findy-network/findy-exchange/core"
	"github.com/findy-network/findy-wrapper-go"
	"github.com/findy-network/findy-wrapper-go/anoncreds"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

func (i *Indy) IssuerCreateCredentialOffer(ctx context.Context, credDefID string) (_ string, err error) {
	defer err2.Handle(&err, "indy create offer %s", credDefID)

	return try.To1(wait(ctx, anoncreds.IssuerCreateCredentialOffer(i.Wallet, credDefID))).Str1(), nil
}

// IssuerCreateCredential issues non-revocable credentials only, the wrapper
// has no tails blob reader.
func (i *Indy) IssuerCreateCredential(ctx context.Context, offer, request, values, revRegID, _ string) (_, _ string, err error) {
	defer err2.Handle(&err, "indy create credential")

	if revRegID != "" {
		return "", "", unimplemented("revocable credential")
	}
	r := try.To1(wait(ctx, anoncreds.IssuerCreateCredential(i.Wallet, offer, request, values,
		findy.NullString, findy.NullHandle)))
	return r.Str1(), "", nil
}

func (i *Indy) IssuerCreateRevocationRegistry(context.Context, string, string, string, uint32, string) (core.RevRegInfo, error) {
	return core.RevRegInfo{}, unimplemented("create revocation registry")
}

func (i *Indy) IssuerRevokeCredential(context.Context, string, string, string) (string, error) {
	return "", unimplemented("revoke credential")
}

func (i *Indy) IssuerMergeRevRegDeltas(context.Context, string, string) (string, error) {
	return "", unimplemented("merge revocation registry deltas")
}

func (i *Indy) ProverCreateCredentialReq(ctx context.Context, proverDID, offer, credDef string) (_, _ string, err error) {
	defer err2.Handle(&err, "indy create credential request")

	if i.MasterSecretID == "" {
		return "", "", core.Errorf(core.ErrNotReady, "no master secret")
	}
	r := try.To1(wait(ctx, anoncreds.ProverCreateCredentialReq(i.Wallet, proverDID, offer, credDef,
		i.MasterSecretID)))
	return r.Str1(), r.Str2(), nil
}

func (i *Indy) ProverStoreCredential(ctx context.Context, meta, cred, credDef, revRegDef string) (_ string, err error) {
	defer err2.Handle(&err, "indy store credential")

	if revRegDef == "" {
		revRegDef = findy.NullString
	}
	r := try.To1(wait(ctx, anoncreds.ProverStoreCredential(i.Wallet, findy.NullString, meta, cred,
		credDef, revRegDef)))
	return r.Str1(), nil
}

func (i *Indy) ProverDeleteCredential(context.Context, string) error {
	return unimplemented("delete credential")
}

func (i *Indy) ProverCreateProof(ctx context.Context, proofReq, requestedCreds, schemas, credDefs, revStates string) (_ string, err error) {
	defer err2.Handle(&err, "indy create proof")

	if i.MasterSecretID == "" {
		return "", core.Errorf(core.ErrNotReady, "no master secret")
	}
	r := try.To1(wait(ctx, anoncreds.ProverCreateProof(i.Wallet, proofReq, requestedCreds,
		i.MasterSecretID, schemas, credDefs, revStates)))
	return r.Str1(), nil
}

func (i *Indy) VerifierVerifyProof(ctx context.Context, proofReq, proof, schemas, credDefs, revRegDefs, revRegs string) (_ bool, err error) {
	defer err2.Handle(&err, "indy verify proof")

	r := try.To1(wait(ctx, anoncreds.VerifierVerifyProof(proofReq, proof, schemas, credDefs,
		revRegDefs, revRegs)))
	return r.Yes(), nil
}

func (i *Indy) CreateRevocationState(context.Context, string, string, string, uint64, string) (string, error) {
	return "", unimplemented("create revocation state")
}
