package proof

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/findy-network/findy-exchange/agent/vc"
	"github.com/findy-network/findy-exchange/core"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"
)

// ValidateIndyProof checks the proof against the request and then lets the
// anoncreds verifier check the math. The result is false without an error
// only when the verifier says the proof doesn't verify.
//
// Errors: core.ErrInvalidProof for a structurally wrong proof (self attested
// value where a credential is required, raw and encoded value mismatch,
// credential outside the non-revocation interval), core.ErrProofRejected
// when a credential doesn't fulfill the restrictions, and core.ErrBackend
// for ledger failures.
func ValidateIndyProof(
	ctx context.Context,
	ledger core.LedgerRead,
	ac core.Anoncreds,
	proofJSON, reqJSON []byte,
) (ok bool, err error) {
	defer err2.Handle(&err, "validate proof")

	req := try.To1(ParseRequest(reqJSON))
	if !gjson.ValidBytes(proofJSON) {
		return false, core.Errorf(core.ErrInvalidJSON, "proof is not JSON")
	}
	ids := try.To1(Identifiers(proofJSON))
	refs := referents(proofJSON)

	try.To(checkSelfAttested(proofJSON, req))
	try.To(CheckRevealedValues(proofJSON))
	try.To(checkReferents(req, refs, ids))
	try.To(checkIntervals(req, refs, ids))

	schemas := try.To1(BuildSchemas(ctx, ledger,
		lo.Map(ids, func(id Identifier, _ int) string { return id.SchemaID })))
	credDefs := try.To1(BuildCredDefs(ctx, ledger,
		lo.Map(ids, func(id Identifier, _ int) string { return id.CredDefID })))
	revRegDefs := try.To1(buildRevRegDefs(ctx, ledger, ids))
	revRegs := try.To1(buildRevRegs(ctx, ledger, ids))

	ok = try.To1(ac.VerifierVerifyProof(ctx, string(reqJSON), string(proofJSON),
		string(schemas), string(credDefs), string(revRegDefs), string(revRegs)))
	glog.V(1).Infof("proof %s (nonce %s) verified: %v", req.Name, req.Nonce, ok)
	return ok, nil
}

// Identifiers returns the identifiers of the credentials the proof is made
// of, in sub proof index order.
func Identifiers(proofJSON []byte) (ids []Identifier, err error) {
	for i, id := range gjson.GetBytes(proofJSON, "identifiers").Array() {
		schemaID, credDefID := id.Get("schema_id"), id.Get("cred_def_id")
		if schemaID.Type != gjson.String || credDefID.Type != gjson.String {
			return nil, core.Errorf(core.ErrInvalidProof, "identifier %d: cannot get schema or cred def id", i)
		}
		info := Identifier{SchemaID: schemaID.String(), CredDefID: credDefID.String()}
		if v := id.Get("rev_reg_id"); v.Type == gjson.String {
			s := v.String()
			info.RevRegID = &s
		}
		if v := id.Get("timestamp"); v.Type == gjson.Number {
			ts := v.Uint()
			info.Timestamp = &ts
		}
		ids = append(ids, info)
	}
	return ids, nil
}

// CheckRevealedValues checks that every revealed raw value encodes to the
// encoded value the credential signature covers.
func CheckRevealedValues(proofJSON []byte) (err error) {
	check := func(ref string, v gjson.Result) bool {
		raw, encoded := v.Get("raw"), v.Get("encoded")
		switch {
		case raw.Type != gjson.String:
			err = core.Errorf(core.ErrInvalidProof, "cannot get raw value for %q", ref)
		case encoded.Type != gjson.String:
			err = core.Errorf(core.ErrInvalidProof, "cannot get encoded value for %q", ref)
		case vc.Encode(raw.String()) != encoded.String():
			err = core.Errorf(core.ErrInvalidProof, "encoded values differ for %q: expected %s, proof has %s",
				ref, vc.Encode(raw.String()), encoded.String())
		}
		return err == nil
	}
	rp := gjson.GetBytes(proofJSON, "requested_proof")
	rp.Get("revealed_attrs").ForEach(func(ref, v gjson.Result) bool {
		return check(ref.String(), v)
	})
	if err != nil {
		return err
	}
	rp.Get("revealed_attr_groups").ForEach(func(ref, group gjson.Result) bool {
		group.Get("values").ForEach(func(name, v gjson.Result) bool {
			return check(ref.String()+"."+name.String(), v)
		})
		return err == nil
	})
	return err
}

func checkSelfAttested(proofJSON []byte, req *Request) (err error) {
	gjson.GetBytes(proofJSON, "requested_proof.self_attested_attrs").ForEach(
		func(ref, _ gjson.Result) bool {
			attr, ok := req.RequestedAttributes[ref.String()]
			switch {
			case !ok:
				err = core.Errorf(core.ErrInvalidProof, "self attested %q not requested", ref.String())
			case attr.SelfAttestAllowed != nil && !*attr.SelfAttestAllowed,
				attr.SelfAttestAllowed == nil && len(attr.Restrictions) > 0:
				err = core.Errorf(core.ErrInvalidProof, "%q must be backed by a credential", ref.String())
			}
			return err == nil
		})
	return err
}

// referents maps every credential backed referent to its sub proof index.
func referents(proofJSON []byte) map[string]int {
	refs := make(map[string]int)
	rp := gjson.GetBytes(proofJSON, "requested_proof")
	for _, section := range []string{"revealed_attrs", "revealed_attr_groups", "unrevealed_attrs", "predicates"} {
		rp.Get(section).ForEach(func(ref, v gjson.Result) bool {
			refs[ref.String()] = int(v.Get("sub_proof_index").Int())
			return true
		})
	}
	return refs
}

func checkReferents(req *Request, refs map[string]int, ids []Identifier) error {
	selfAttested := func(ref string) bool {
		attr := req.RequestedAttributes[ref]
		return len(attr.Restrictions) == 0 && (attr.SelfAttestAllowed == nil || *attr.SelfAttestAllowed)
	}
	for ref, attr := range req.RequestedAttributes {
		idx, ok := refs[ref]
		if !ok {
			if selfAttested(ref) {
				continue
			}
			return core.Errorf(core.ErrInvalidProof, "requested attribute %q missing", ref)
		}
		if idx < 0 || idx >= len(ids) {
			return core.Errorf(core.ErrInvalidProof, "attribute %q: sub proof index %d out of range", ref, idx)
		}
		if !attr.Restrictions.Allow(ids[idx]) {
			return core.Errorf(core.ErrProofRejected, "attribute %q: credential %s doesn't fulfill restrictions",
				ref, ids[idx].CredDefID)
		}
	}
	for ref, pred := range req.RequestedPredicates {
		idx, ok := refs[ref]
		if !ok {
			return core.Errorf(core.ErrInvalidProof, "requested predicate %q missing", ref)
		}
		if idx < 0 || idx >= len(ids) {
			return core.Errorf(core.ErrInvalidProof, "predicate %q: sub proof index %d out of range", ref, idx)
		}
		if !pred.Restrictions.Allow(ids[idx]) {
			return core.Errorf(core.ErrProofRejected, "predicate %q: credential %s doesn't fulfill restrictions",
				ref, ids[idx].CredDefID)
		}
	}
	return nil
}

func checkIntervals(req *Request, refs map[string]int, ids []Identifier) error {
	for ref, idx := range refs {
		if idx < 0 || idx >= len(ids) {
			continue
		}
		interval, err := req.IntervalFor(ref)
		if err != nil || interval == nil {
			continue // not requested or no non-revocation requirement
		}
		id := ids[idx]
		if id.Timestamp == nil {
			if id.RevRegID != nil {
				return core.Errorf(core.ErrInvalidProof,
					"%q: revocable credential without non-revocation timestamp", ref)
			}
			continue
		}
		if !interval.Contains(*id.Timestamp) {
			return core.Errorf(core.ErrInvalidProof, "%q: timestamp %d outside %s",
				ref, *id.Timestamp, interval)
		}
	}
	return nil
}

// BuildSchemas returns the schemas JSON object keyed by schema id.
func BuildSchemas(ctx context.Context, ledger core.LedgerRead, schemaIDs []string) (_ []byte, err error) {
	defer err2.Handle(&err, "build schemas")

	schemas := make(map[string]json.RawMessage)
	for _, id := range lo.Uniq(schemaIDs) {
		schemas[id] = try.To1(ledgerJSON(ledger.GetSchema(ctx, id)))
	}
	return try.To1(json.Marshal(schemas)), nil
}

// BuildCredDefs returns the cred defs JSON object keyed by cred def id.
func BuildCredDefs(ctx context.Context, ledger core.LedgerRead, credDefIDs []string) (_ []byte, err error) {
	defer err2.Handle(&err, "build cred defs")

	credDefs := make(map[string]json.RawMessage)
	for _, id := range lo.Uniq(credDefIDs) {
		credDefs[id] = try.To1(ledgerJSON(ledger.GetCredDef(ctx, id)))
	}
	return try.To1(json.Marshal(credDefs)), nil
}

func revocable(ids []Identifier) []Identifier {
	return lo.Filter(ids, func(id Identifier, _ int) bool { return id.RevRegID != nil })
}

func buildRevRegDefs(ctx context.Context, ledger core.LedgerRead, ids []Identifier) (_ []byte, err error) {
	defer err2.Handle(&err, "build rev reg defs")

	defs := make(map[string]json.RawMessage)
	for _, id := range revocable(ids) {
		if _, ok := defs[*id.RevRegID]; ok {
			continue
		}
		defs[*id.RevRegID] = try.To1(ledgerJSON(ledger.GetRevRegDef(ctx, *id.RevRegID)))
	}
	return try.To1(json.Marshal(defs)), nil
}

func buildRevRegs(ctx context.Context, ledger core.LedgerRead, ids []Identifier) (_ []byte, err error) {
	defer err2.Handle(&err, "build rev regs")

	regs := make(map[string]map[string]json.RawMessage)
	for _, id := range revocable(ids) {
		if id.Timestamp == nil {
			return nil, core.Errorf(core.ErrInvalidProof, "revocation timestamp missing for %s", *id.RevRegID)
		}
		if _, ok := regs[*id.RevRegID]; ok {
			continue
		}
		reg, ts, err := ledger.GetRevReg(ctx, *id.RevRegID, *id.Timestamp)
		if err != nil {
			return nil, core.Backend(err)
		}
		if !json.Valid([]byte(reg)) {
			return nil, core.Errorf(core.ErrInvalidJSON, "rev reg %s: %s", *id.RevRegID, reg)
		}
		regs[*id.RevRegID] = map[string]json.RawMessage{
			strconv.FormatUint(ts, 10): json.RawMessage(reg),
		}
	}
	return try.To1(json.Marshal(regs)), nil
}

func ledgerJSON(s string, err error) (json.RawMessage, error) {
	if err != nil {
		return nil, core.Backend(err)
	}
	if !json.Valid([]byte(s)) {
		return nil, core.Errorf(core.ErrInvalidJSON, "ledger object: %s", s)
	}
	return json.RawMessage(s), nil
}
