/*
Taken from aries-framework-go, and heavily modified. The idea is to replace
these with the aries-framework-go when it's ready. Until now we use our own
minimalistic solution.

Most important modification were 1) renaming structures: removing Credential
word which is already in the package name, and 2) the common header with
thread decorator embedded to all.
*/

// Package issuecredential is package for Aries protocol messages for same name.
package issuecredential

import (
	"github.com/findy-network/findy-exchange/agent/didcomm"
	"github.com/findy-network/findy-exchange/std/decorator"
)

// Propose is an optional message sent by the potential Holder to the Issuer
// to initiate the protocol or in response to a offer-credential message when
// the Holder wants some adjustments made to the credential data offered by
// Issuer.
type Propose struct {
	didcomm.Header
	Comment string `json:"comment,omitempty"`
	// CredentialProposal is the credential data that the Prover wants to
	// receive.
	CredentialProposal *PreviewCredential `json:"credential_proposal,omitempty"`
	// SchemaIssuerDid is an optional filter to request credential based on a
	// particular Schema issuer DID.
	SchemaIssuerDid string `json:"schema_issuer_did,omitempty"`
	SchemaID        string `json:"schema_id,omitempty"`
	SchemaName      string `json:"schema_name,omitempty"`
	SchemaVersion   string `json:"schema_version,omitempty"`
	CredDefID       string `json:"cred_def_id,omitempty"`
	IssuerDid       string `json:"issuer_did,omitempty"`
}

// Offer is a message sent by the Issuer to the potential Holder, describing
// the credential they intend to offer.
type Offer struct {
	didcomm.Header
	Comment string `json:"comment,omitempty"`
	// CredentialPreview is the credential data that Issuer is willing to
	// issue.
	CredentialPreview PreviewCredential `json:"credential_preview"`
	// OffersAttach carries the libindy credential offer.
	OffersAttach []decorator.Attachment `json:"offers~attach"`
}

// Request is a message sent by the potential Holder to the Issuer, to request
// the issuance of a credential.
type Request struct {
	didcomm.Header
	Comment string `json:"comment,omitempty"`
	// RequestsAttach carries the libindy credential request.
	RequestsAttach []decorator.Attachment `json:"requests~attach"`
}

// Issue contains as attached payload the credentials being issued and is
// sent in response to a valid Request Credential message.
type Issue struct {
	didcomm.Header
	Comment string `json:"comment,omitempty"`
	// CredentialsAttach carries the libindy credential.
	CredentialsAttach []decorator.Attachment `json:"credentials~attach"`
	PleaseAck         *decorator.PleaseAck   `json:"~please_ack,omitempty"`
}

// PreviewCredential is used to construct a preview of the data for the
// credential that is to be issued.
type PreviewCredential struct {
	Type       string      `json:"@type,omitempty"`
	Attributes []Attribute `json:"attributes"`
}

// Attribute describes an attribute for a Preview Credential
type Attribute struct {
	Name     string `json:"name"`
	MimeType string `json:"mime-type,omitempty"`
	Value    string `json:"value"`
}
