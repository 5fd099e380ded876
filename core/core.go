// Package core defines the collaborator interfaces the exchange state machines
// consume and the error kinds they return. Implementations live outside of the
// protocol packages: see agent/ssi for a local wallet and indy for libindy.
package core

//go:generate mockgen -package mock -source core.go -destination mock/core.go

import "context"

// DIDDoc is either our legacy wire document (std/sov/did) or the AFGO
// did.Doc. Use the std/common helpers to read it.
type DIDDoc interface{}

// Unpacked is the result of opening one envelope layer.
type Unpacked struct {
	Message      []byte
	SenderKey    string // empty when anoncrypted
	RecipientKey string
}

// Wallet holds our keys. Keys are base58 encoded ed25519 verkeys.
type Wallet interface {
	Sign(ctx context.Context, verkey string, msg []byte) ([]byte, error)

	// PackMessage encrypts msg for every recipient key. An empty senderKey
	// means anoncrypt.
	PackMessage(ctx context.Context, senderKey string, recipientKeys []string, msg []byte) ([]byte, error)
	UnpackMessage(ctx context.Context, msg []byte) (*Unpacked, error)

	CreateAndStoreDID(ctx context.Context, seed string) (did, verkey string, err error)
}

// RevRegDelta is a revocation registry delta read from the ledger.
type RevRegDelta struct {
	ID        string
	JSON      string
	Timestamp uint64
}

// LedgerRead returns ledger objects as their JSON strings.
type LedgerRead interface {
	GetSchema(ctx context.Context, id string) (string, error)
	GetCredDef(ctx context.Context, id string) (string, error)
	GetRevRegDef(ctx context.Context, id string) (string, error)

	// GetRevRegDelta returns the delta between from and to. Zero to means
	// now.
	GetRevRegDelta(ctx context.Context, id string, from, to uint64) (RevRegDelta, error)

	// GetRevReg returns the accumulator state valid at timestamp and the
	// timestamp the ledger used.
	GetRevReg(ctx context.Context, id string, timestamp uint64) (string, uint64, error)

	GetAttr(ctx context.Context, did, name string) (string, error)
}

type LedgerWrite interface {
	PublishNym(ctx context.Context, submitterDID, targetDID, verkey, alias, role string) error
	AddAttr(ctx context.Context, submitterDID, targetDID, attrJSON string) error
	PublishRevRegDef(ctx context.Context, submitterDID, revRegDefJSON string) error
	PublishRevRegDelta(ctx context.Context, submitterDID, revRegID, deltaJSON string) error
}

// RevRegInfo is what the issuer gets when it creates a revocation registry.
type RevRegInfo struct {
	ID        string
	DefJSON   string
	DeltaJSON string
}

// Anoncreds is the opaque anonymous credential capability.
type Anoncreds interface {
	IssuerCreateCredentialOffer(ctx context.Context, credDefID string) (string, error)

	// IssuerCreateCredential returns the credential and, for revocable
	// credentials, its index in the revocation registry.
	IssuerCreateCredential(ctx context.Context, offer, request, values, revRegID, tailsDir string) (cred, credRevID string, err error)

	IssuerCreateRevocationRegistry(ctx context.Context, issuerDID, credDefID, tailsDir string, maxCredNum uint32, tag string) (RevRegInfo, error)

	// IssuerRevokeCredential revokes one credential and returns the resulting
	// delta. It does not touch the ledger.
	IssuerRevokeCredential(ctx context.Context, tailsDir, revRegID, credRevID string) (string, error)

	IssuerMergeRevRegDeltas(ctx context.Context, delta, next string) (string, error)

	ProverCreateCredentialReq(ctx context.Context, proverDID, offer, credDef string) (req, meta string, err error)
	ProverStoreCredential(ctx context.Context, meta, cred, credDef, revRegDef string) (string, error)
	ProverDeleteCredential(ctx context.Context, credID string) error
	ProverCreateProof(ctx context.Context, proofReq, requestedCreds, schemas, credDefs, revStates string) (string, error)

	VerifierVerifyProof(ctx context.Context, proofReq, proof, schemas, credDefs, revRegDefs, revRegs string) (bool, error)

	CreateRevocationState(ctx context.Context, tailsDir, revRegDef, revRegDelta string, timestamp uint64, credRevID string) (string, error)
}

// Transport makes one send. Retry policy belongs to the caller.
type Transport interface {
	SendMessage(ctx context.Context, msg []byte, url string) error
}
