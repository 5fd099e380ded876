package proof

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/findy-network/findy-exchange/core"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/samber/lo"
)

// Credential is a wallet credential as anoncreds lists it.
type Credential struct {
	Referent  string            `json:"referent"`
	SchemaID  string            `json:"schema_id"`
	CredDefID string            `json:"cred_def_id"`
	RevRegID  string            `json:"rev_reg_id,omitempty"`
	CredRevID string            `json:"cred_rev_id,omitempty"`
	Attrs     map[string]string `json:"attrs,omitempty"`
}

// Selected is the credential the prover chose for one referent.
type Selected struct {
	Credential Credential `json:"credential"`
	TailsDir   string     `json:"tails_dir,omitempty"`
	// Revealed defaults to true for attributes.
	Revealed *bool `json:"revealed,omitempty"`
}

// SelectedCredentials maps proof request referents to credentials.
type SelectedCredentials map[string]Selected

// CredInfo is how one referent is presented.
type CredInfo struct {
	Referent  string
	CredID    string
	SchemaID  string
	CredDefID string
	RevRegID  string
	CredRevID string
	TailsDir  string
	Revealed  bool
	Interval  *NonRevokedInterval
	Timestamp *uint64
}

// CredInfos resolves the selection against the request, referents in
// sorted order.
func CredInfos(selected SelectedCredentials, req *Request) (infos []CredInfo, err error) {
	defer err2.Handle(&err, "credential infos")

	refs := lo.Keys(selected)
	sort.Strings(refs)
	for _, ref := range refs {
		sel := selected[ref]
		infos = append(infos, CredInfo{
			Referent:  ref,
			CredID:    sel.Credential.Referent,
			SchemaID:  sel.Credential.SchemaID,
			CredDefID: sel.Credential.CredDefID,
			RevRegID:  sel.Credential.RevRegID,
			CredRevID: sel.Credential.CredRevID,
			TailsDir:  sel.TailsDir,
			Revealed:  sel.Revealed == nil || *sel.Revealed,
			Interval:  try.To1(req.IntervalFor(ref)),
		})
	}
	return infos, nil
}

// BuildRevStates creates the revocation states for the referents which have
// a non-revocation interval and a revocable credential. It sets the
// timestamp of those infos. States are keyed by rev reg id and timestamp.
func BuildRevStates(
	ctx context.Context,
	ledger core.LedgerRead,
	ac core.Anoncreds,
	infos []CredInfo,
) (_ []byte, err error) {
	defer err2.Handle(&err, "build revocation states")

	states := make(map[string]map[string]json.RawMessage)
	for i := range infos {
		info := &infos[i]
		if info.Interval == nil {
			continue
		}
		switch {
		case info.RevRegID == "" && info.CredRevID == "":
			// the verifier accepts a non-revocable credential without one
			continue
		case info.RevRegID == "" || info.CredRevID == "" || info.TailsDir == "":
			return nil, fmt.Errorf("referent %s: incomplete revocation details", info.Referent)
		}
		var to uint64
		if info.Interval.To != nil {
			to = *info.Interval.To
		}
		def := try.To1(ledgerJSON(ledger.GetRevRegDef(ctx, info.RevRegID)))
		delta, err := ledger.GetRevRegDelta(ctx, info.RevRegID, 0, to)
		if err != nil {
			return nil, core.Backend(err)
		}
		if !info.Interval.Contains(delta.Timestamp) {
			return nil, core.Errorf(core.ErrInvalidProof, "referent %s: ledger timestamp %d outside %s",
				info.Referent, delta.Timestamp, info.Interval)
		}
		state := try.To1(ac.CreateRevocationState(ctx, info.TailsDir, string(def),
			delta.JSON, delta.Timestamp, info.CredRevID))
		if !json.Valid([]byte(state)) {
			return nil, core.Errorf(core.ErrInvalidJSON, "revocation state of %s", info.Referent)
		}
		id := delta.ID
		if id == "" {
			id = info.RevRegID
		}
		if states[id] == nil {
			states[id] = make(map[string]json.RawMessage)
		}
		ts := delta.Timestamp
		states[id][strconv.FormatUint(ts, 10)] = json.RawMessage(state)
		info.Timestamp = &ts
	}
	return try.To1(json.Marshal(states)), nil
}

type requestedAttr struct {
	CredID    string  `json:"cred_id"`
	Revealed  bool    `json:"revealed"`
	Timestamp *uint64 `json:"timestamp,omitempty"`
}

type requestedPred struct {
	CredID    string  `json:"cred_id"`
	Timestamp *uint64 `json:"timestamp,omitempty"`
}

type requestedCreds struct {
	SelfAttested map[string]string        `json:"self_attested_attributes"`
	Attributes   map[string]requestedAttr `json:"requested_attributes"`
	Predicates   map[string]requestedPred `json:"requested_predicates"`
}

// BuildRequestedCredentials returns the requested credentials JSON for proof
// creation.
func BuildRequestedCredentials(infos []CredInfo, selfAttested map[string]string, req *Request) ([]byte, error) {
	rc := requestedCreds{
		SelfAttested: make(map[string]string),
		Attributes:   make(map[string]requestedAttr),
		Predicates:   make(map[string]requestedPred),
	}
	for _, info := range infos {
		if _, ok := req.RequestedAttributes[info.Referent]; ok {
			rc.Attributes[info.Referent] = requestedAttr{
				CredID: info.CredID, Revealed: info.Revealed, Timestamp: info.Timestamp,
			}
		}
		if _, ok := req.RequestedPredicates[info.Referent]; ok {
			rc.Predicates[info.Referent] = requestedPred{CredID: info.CredID, Timestamp: info.Timestamp}
		}
	}
	for ref, v := range selfAttested {
		rc.SelfAttested[ref] = v
	}
	return json.Marshal(rc)
}

// CreateProof builds every artifact the anoncreds prover needs and creates
// the proof.
func CreateProof(
	ctx context.Context,
	ledger core.LedgerRead,
	ac core.Anoncreds,
	reqJSON []byte,
	selected SelectedCredentials,
	selfAttested map[string]string,
) (_ []byte, err error) {
	defer err2.Handle(&err, "create proof")

	req := try.To1(ParseRequest(reqJSON))
	infos := try.To1(CredInfos(selected, req))

	schemas := try.To1(BuildSchemas(ctx, ledger,
		lo.Map(infos, func(i CredInfo, _ int) string { return i.SchemaID })))
	credDefs := try.To1(BuildCredDefs(ctx, ledger,
		lo.Map(infos, func(i CredInfo, _ int) string { return i.CredDefID })))
	revStates := try.To1(BuildRevStates(ctx, ledger, ac, infos))
	requested := try.To1(BuildRequestedCredentials(infos, selfAttested, req))

	glog.V(3).Infof("creating proof for %s with %d credentials", req.Name, len(infos))
	proof := try.To1(ac.ProverCreateProof(ctx, string(reqJSON), string(requested),
		string(schemas), string(credDefs), string(revStates)))
	return []byte(proof), nil
}
