package proof

import (
	"bytes"
	"encoding/json"

	"github.com/findy-network/findy-exchange/agent/vc"
)

// Filter is one restriction. All set fields must match. An empty filter
// matches every credential.
type Filter struct {
	SchemaID        string `json:"schema_id,omitempty"`
	SchemaIssuerDID string `json:"schema_issuer_did,omitempty"`
	SchemaName      string `json:"schema_name,omitempty"`
	SchemaVersion   string `json:"schema_version,omitempty"`
	IssuerDID       string `json:"issuer_did,omitempty"`
	CredDefID       string `json:"cred_def_id,omitempty"`
}

// Restrictions are OR'ed filters. An empty list allows any credential.
type Restrictions []Filter

// UnmarshalJSON accepts a single filter object as well as the list.
func (r *Restrictions) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var f Filter
		if err := json.Unmarshal(data, &f); err != nil {
			return err
		}
		*r = Restrictions{f}
		return nil
	}
	var filters []Filter
	if err := json.Unmarshal(data, &filters); err != nil {
		return err
	}
	*r = filters
	return nil
}

// Identifier is the credential a sub proof is made of.
type Identifier struct {
	SchemaID  string  `json:"schema_id"`
	CredDefID string  `json:"cred_def_id"`
	RevRegID  *string `json:"rev_reg_id,omitempty"`
	Timestamp *uint64 `json:"timestamp,omitempty"`
}

func (id Identifier) IssuerDID() string {
	return vc.ParseCredDefID(id.CredDefID).IssuerDID
}

func (id Identifier) SchemaIssuerDID() string {
	return vc.ParseSchemaID(id.SchemaID).DID
}

func (id Identifier) SchemaName() string {
	return vc.ParseSchemaID(id.SchemaID).Name
}

func (id Identifier) SchemaVersion() string {
	return vc.ParseSchemaID(id.SchemaID).Version
}

// Matches tells if the credential identifier fulfills the filter.
func (f Filter) Matches(id Identifier) bool {
	check := func(want, got string) bool {
		return want == "" || want == got
	}
	return check(f.SchemaID, id.SchemaID) &&
		check(f.SchemaIssuerDID, id.SchemaIssuerDID()) &&
		check(f.SchemaName, id.SchemaName()) &&
		check(f.SchemaVersion, id.SchemaVersion()) &&
		check(f.IssuerDID, id.IssuerDID()) &&
		check(f.CredDefID, id.CredDefID)
}

// Allow tells if any of the filters matches. No filters allow everything.
func (r Restrictions) Allow(id Identifier) bool {
	if len(r) == 0 {
		return true
	}
	for _, f := range r {
		if f.Matches(id) {
			return true
		}
	}
	return false
}
