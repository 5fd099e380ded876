/*
Package vc has the Indy credential helpers shared by issuers, holders and
verifiers: attribute encoding and the parts of schema and cred def ids.
*/
package vc

import (
	"context"
	"strings"

	"github.com/findy-network/findy-exchange/core"
	"github.com/lainio/err2"
	"github.com/tidwall/gjson"
)

// Schema is an unqualified schema id: <issuer did>:2:<name>:<version>
type Schema struct {
	ID      string
	DID     string
	Name    string
	Version string
}

func ParseSchemaID(id string) Schema {
	return Schema{
		ID:      id,
		DID:     part(id, 0),
		Name:    part(id, 2),
		Version: part(id, 3),
	}
}

// CredDef is an unqualified cred def id:
// <issuer did>:3:CL:<schema seq no>:<tag>
type CredDef struct {
	ID        string
	IssuerDID string
	Tag       string
}

func ParseCredDefID(id string) CredDef {
	return CredDef{
		ID:        id,
		IssuerDID: part(id, 0),
		Tag:       part(id, 4),
	}
}

func part(id string, i int) string {
	parts := strings.Split(id, ":")
	if i >= len(parts) {
		return ""
	}
	return parts[i]
}

// CredDefFromLedger returns the cred def JSON. A cred def which cannot be
// read isn't published.
func CredDefFromLedger(ctx context.Context, ledger core.LedgerRead, credDefID string) (cd string, err error) {
	defer err2.Handle(&err, "cred def %s from ledger", credDefID)

	cd, err = ledger.GetCredDef(ctx, credDefID)
	if err != nil {
		return "", core.Backend(err)
	}
	if !gjson.Valid(cd) {
		return "", core.Errorf(core.ErrInvalidJSON, "cred def: %s", cd)
	}
	return cd, nil
}

// SupportsRevocation tells if the cred def has revocation keys.
func SupportsRevocation(credDefJSON string) bool {
	return gjson.Get(credDefJSON, "value.revocation").Exists()
}

// OfferCredDefID returns the cred def id of an anoncreds credential offer.
func OfferCredDefID(offerJSON string) string {
	return gjson.Get(offerJSON, "cred_def_id").String()
}
