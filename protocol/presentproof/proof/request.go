/*
Package proof is the Indy proof request model and the proof checks we run
before and around the anoncreds verifier: revealed value encoding, attribute
restrictions and non-revocation intervals. It also builds the JSON artifacts
the prover needs for proof creation.
*/
package proof

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/findy-network/findy-exchange/agent/utils"
	"github.com/findy-network/findy-exchange/core"
	"github.com/findy-network/findy-exchange/std/presentproof"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

const defaultVersion = "1.0"

// Request is the libindy proof request carried in request-presentation
// attachments.
type Request struct {
	Nonce               string                   `json:"nonce"`
	Name                string                   `json:"name"`
	Version             string                   `json:"version"`
	RequestedAttributes map[string]AttrInfo      `json:"requested_attributes"`
	RequestedPredicates map[string]PredicateInfo `json:"requested_predicates"`
	NonRevoked          *NonRevokedInterval      `json:"non_revoked,omitempty"`
}

type AttrInfo struct {
	Name         string              `json:"name,omitempty"`
	Names        []string            `json:"names,omitempty"`
	Restrictions Restrictions        `json:"restrictions,omitempty"`
	NonRevoked   *NonRevokedInterval `json:"non_revoked,omitempty"`

	// SelfAttestAllowed is nil when not given. Then attributes without
	// restrictions may be self attested.
	SelfAttestAllowed *bool `json:"self_attest_allowed,omitempty"`
}

type PredicateInfo struct {
	Name         string              `json:"name"`
	PType        string              `json:"p_type"`
	PValue       int64               `json:"p_value"`
	Restrictions Restrictions        `json:"restrictions,omitempty"`
	NonRevoked   *NonRevokedInterval `json:"non_revoked,omitempty"`
}

// NewRequest returns an empty request with a fresh nonce.
func NewRequest(name string) *Request {
	return &Request{
		Nonce:               utils.NewNonceStr(),
		Name:                name,
		Version:             defaultVersion,
		RequestedAttributes: make(map[string]AttrInfo),
		RequestedPredicates: make(map[string]PredicateInfo),
	}
}

// FromPreview builds the request a verifier answers a presentation proposal
// with. Attributes with a cred def id get it as a restriction.
func FromPreview(name string, preview *presentproof.Preview) *Request {
	r := NewRequest(name)
	if preview == nil {
		return r
	}
	for i, attr := range preview.Attributes {
		var restrictions Restrictions
		if attr.CredDefID != "" {
			restrictions = Restrictions{{CredDefID: attr.CredDefID}}
		}
		id := attr.Referent
		if id == "" {
			id = "attr_referent_" + strconv.Itoa(i+1)
		}
		r.RequestedAttributes[id] = AttrInfo{
			Name:         attr.Name,
			Restrictions: restrictions,
		}
	}
	for i, pred := range preview.Predicates {
		var restrictions Restrictions
		if pred.CredDefID != "" {
			restrictions = Restrictions{{CredDefID: pred.CredDefID}}
		}
		r.RequestedPredicates["predicate_"+strconv.Itoa(i+1)] = PredicateInfo{
			Name:         pred.Name,
			PType:        pred.Predicate,
			PValue:       pred.Threshold,
			Restrictions: restrictions,
		}
	}
	return r
}

// ParseRequest reads the proof request JSON. Missing maps are created and
// the version defaults to 1.0.
func ParseRequest(data []byte) (r *Request, err error) {
	defer err2.Handle(&err, func(err error) error {
		return core.Kind(core.ErrInvalidJSON, fmt.Errorf("parse proof request: %w", err))
	})

	r = new(Request)
	try.To(json.Unmarshal(data, r))
	if r.Version == "" {
		r.Version = defaultVersion
	}
	if r.RequestedAttributes == nil {
		r.RequestedAttributes = make(map[string]AttrInfo)
	}
	if r.RequestedPredicates == nil {
		r.RequestedPredicates = make(map[string]PredicateInfo)
	}
	for ref, attr := range r.RequestedAttributes {
		if attr.Name != "" && len(attr.Names) > 0 {
			return nil, fmt.Errorf("attribute %s has both name and names", ref)
		}
	}
	return r, nil
}

func (r *Request) JSON() []byte {
	data, err := json.Marshal(r)
	if err != nil {
		glog.Error("proof request marshal:", err)
	}
	return data
}

// SetNonRevoked sets the request level interval. An interval without both
// bounds clears it.
func (r *Request) SetNonRevoked(i NonRevokedInterval) {
	if i.From == nil && i.To == nil {
		r.NonRevoked = nil
		return
	}
	r.NonRevoked = &i
}

// IntervalFor returns the interval that applies to the referent: the
// referent's own interval narrowed with the request level one. Nil means
// non-revocation isn't requested.
func (r *Request) IntervalFor(referent string) (*NonRevokedInterval, error) {
	var local *NonRevokedInterval
	if attr, ok := r.RequestedAttributes[referent]; ok {
		local = attr.NonRevoked
	} else if pred, ok := r.RequestedPredicates[referent]; ok {
		local = pred.NonRevoked
	} else {
		return nil, core.Errorf(core.ErrInvalidProof, "referent %q not in proof request", referent)
	}
	switch {
	case local == nil && r.NonRevoked == nil:
		return nil, nil
	case local == nil:
		i := *r.NonRevoked
		return &i, nil
	case r.NonRevoked == nil:
		i := *local
		return &i, nil
	}
	i := *local
	i.CompareAndSet(*r.NonRevoked)
	return &i, nil
}

// NonRevokedInterval is the {from, to} window a credential must be shown
// non-revoked in. Nil bounds are open.
type NonRevokedInterval struct {
	From *uint64 `json:"from,omitempty"`
	To   *uint64 `json:"to,omitempty"`
}

// Interval is a helper for the usual case where both bounds are known.
func Interval(from, to uint64) NonRevokedInterval {
	return NonRevokedInterval{From: &from, To: &to}
}

// CompareAndSet narrows the interval with other: the later from and the
// earlier to win. A bound missing here is taken from other.
func (i *NonRevokedInterval) CompareAndSet(other NonRevokedInterval) {
	if other.From != nil && (i.From == nil || *i.From < *other.From) {
		from := *other.From
		i.From = &from
	}
	if other.To != nil && (i.To == nil || *other.To < *i.To) {
		to := *other.To
		i.To = &to
	}
}

// UpdateWithOverride replaces the from bound if the map has an override for
// it. Callers fill the map with ledger checkpoint timestamps.
func (i *NonRevokedInterval) UpdateWithOverride(overrides map[uint64]uint64) {
	if i.From == nil {
		return
	}
	if ts, ok := overrides[*i.From]; ok {
		i.From = &ts
	}
}

// Contains tells if timestamp is inside the interval. Open bounds are 0 and
// math.MaxUint64.
func (i NonRevokedInterval) Contains(timestamp uint64) bool {
	from, to := uint64(0), uint64(math.MaxUint64)
	if i.From != nil {
		from = *i.From
	}
	if i.To != nil {
		to = *i.To
	}
	return from <= timestamp && timestamp <= to
}

func (i NonRevokedInterval) String() string {
	s := func(v *uint64) string {
		if v == nil {
			return "-"
		}
		return strconv.FormatUint(*v, 10)
	}
	return "[" + s(i.From) + ", " + s(i.To) + "]"
}
