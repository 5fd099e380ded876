package proof

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/findy-network/findy-exchange/agent/vc"
	"github.com/findy-network/findy-exchange/core"
	"github.com/findy-network/findy-exchange/core/mock"
	"github.com/findy-network/findy-exchange/std/presentproof"
	"github.com/golang/mock/gomock"
	"github.com/lainio/err2/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const (
	issuerDID = "Th7MpTaRZVRYnPiabds81Y"
	schemaID  = issuerDID + ":2:email:1.0"
	credDefID = issuerDID + ":3:CL:12:tag"
)

func u64(v uint64) *uint64 { return &v }

func TestCompareAndSet(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	var i NonRevokedInterval
	i.CompareAndSet(Interval(1, 100))
	assert.Equal(*i.From, uint64(1))
	assert.Equal(*i.To, uint64(100))

	i.CompareAndSet(Interval(5, 80))
	assert.Equal(*i.From, uint64(5))
	assert.Equal(*i.To, uint64(80))

	// wider doesn't widen
	i.CompareAndSet(Interval(1, 100))
	assert.Equal(*i.From, uint64(5))
	assert.Equal(*i.To, uint64(80))

	i.CompareAndSet(Interval(10, 50))
	assert.Equal(*i.From, uint64(10))
	assert.Equal(*i.To, uint64(50))

	// open bounds don't change anything
	i.CompareAndSet(NonRevokedInterval{})
	assert.Equal(*i.From, uint64(10))
	assert.Equal(*i.To, uint64(50))
}

func TestUpdateWithOverride(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	i := Interval(10, 50)
	i.UpdateWithOverride(map[uint64]uint64{11: 1})
	assert.Equal(*i.From, uint64(10))
	i.UpdateWithOverride(map[uint64]uint64{10: 8})
	assert.Equal(*i.From, uint64(8))
	assert.Equal(*i.To, uint64(50))

	var open NonRevokedInterval
	open.UpdateWithOverride(map[uint64]uint64{0: 8})
	assert.That(open.From == nil)
}

func TestContains(t *testing.T) {
	tests := []struct {
		name string
		i    NonRevokedInterval
		ts   uint64
		want bool
	}{
		{"open", NonRevokedInterval{}, 0, true},
		{"open max", NonRevokedInterval{}, math.MaxUint64, true},
		{"inside", Interval(5, 80), 5, true},
		{"upper bound", Interval(5, 80), 80, true},
		{"before", Interval(5, 80), 4, false},
		{"after", Interval(5, 80), 81, false},
		{"only from", NonRevokedInterval{From: u64(5)}, math.MaxUint64, true},
		{"only to", NonRevokedInterval{To: u64(5)}, 6, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.i.Contains(tt.ts))
		})
	}
}

func TestIntervalFor(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	req := NewRequest("test")
	req.RequestedAttributes["a"] = AttrInfo{Name: "email"}
	local := Interval(10, 50)
	req.RequestedAttributes["b"] = AttrInfo{Name: "email", NonRevoked: &local}

	i, err := req.IntervalFor("a")
	assert.NoError(err)
	assert.That(i == nil)

	req.SetNonRevoked(Interval(5, 40))
	i, err = req.IntervalFor("a")
	assert.NoError(err)
	assert.Equal(i.String(), "[5, 40]")
	i, err = req.IntervalFor("b")
	assert.NoError(err)
	assert.Equal(i.String(), "[10, 40]")
	assert.Equal(local.String(), "[10, 50]")

	_, err = req.IntervalFor("nope")
	assert.Error(err)

	req.SetNonRevoked(NonRevokedInterval{})
	assert.That(req.NonRevoked == nil)
}

func TestRestrictions(t *testing.T) {
	id := Identifier{SchemaID: schemaID, CredDefID: credDefID}
	tests := []struct {
		name string
		r    Restrictions
		want bool
	}{
		{"none", nil, true},
		{"empty filter", Restrictions{{}}, true},
		{"issuer", Restrictions{{IssuerDID: issuerDID}}, true},
		{"wrong issuer", Restrictions{{IssuerDID: "Not Here"}}, false},
		{"schema parts", Restrictions{{SchemaName: "email", SchemaVersion: "1.0", SchemaIssuerDID: issuerDID}}, true},
		{"wrong version", Restrictions{{SchemaName: "email", SchemaVersion: "2.0"}}, false},
		{"or", Restrictions{{IssuerDID: "Not Here"}, {CredDefID: credDefID}}, true},
		{"and", Restrictions{{CredDefID: credDefID, SchemaID: "other"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.r.Allow(id))
		})
	}
}

func TestParseRequest(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	r, err := ParseRequest([]byte(`{"nonce":"1","name":"n",
		"requested_attributes":{"a":{"name":"email","restrictions":{"cred_def_id":"x"}}}}`))
	assert.NoError(err)
	assert.Equal(r.Version, "1.0")
	assert.SLen(r.RequestedAttributes["a"].Restrictions, 1)
	assert.Equal(r.RequestedAttributes["a"].Restrictions[0].CredDefID, "x")
	assert.INotNil(r.RequestedPredicates)

	_, err = ParseRequest([]byte(`{"requested_attributes":{"a":{"name":"a","names":["b"]}}}`))
	assert.That(errors.Is(err, core.ErrInvalidJSON))
	_, err = ParseRequest([]byte(`{`))
	assert.That(errors.Is(err, core.ErrInvalidJSON))
}

func TestFromPreview(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	r := FromPreview("ProofReq", &presentproof.Preview{
		Attributes: []presentproof.Attribute{{Name: "email", CredDefID: credDefID}, {Name: "nick"}},
		Predicates: []presentproof.Predicate{{Name: "age", Predicate: ">=", Threshold: 18}},
	})
	assert.Equal(r.RequestedAttributes["attr_referent_1"].Restrictions[0].CredDefID, credDefID)
	assert.SLen(r.RequestedAttributes["attr_referent_2"].Restrictions, 0)
	assert.Equal(r.RequestedPredicates["predicate_1"].PValue, int64(18))
	assert.NotEqual(r.Nonce, "")
}

func proofRequest(restrictions string) []byte {
	return []byte(`{"nonce":"123432421212","name":"proof_req_1","version":"0.1",
		"requested_attributes":{"address1_1":{"name":"address1","restrictions":` + restrictions + `}},
		"requested_predicates":{}}`)
}

func proofJSON(encoded string) []byte {
	return []byte(`{"proof":{},
		"requested_proof":{
			"revealed_attrs":{"address1_1":{"sub_proof_index":0,"raw":"Alex","encoded":"` + encoded + `"}},
			"self_attested_attrs":{},"unrevealed_attrs":{},"predicates":{}},
		"identifiers":[{"schema_id":"` + schemaID + `","cred_def_id":"` + credDefID + `","rev_reg_id":null,"timestamp":null}]}`)
}

func TestValidateIndyProof(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := mock.NewMockLedgerRead(ctrl)
	ac := mock.NewMockAnoncreds(ctrl)

	// restriction mismatch never reaches the ledger
	_, err := ValidateIndyProof(ctx, ledger, ac, proofJSON(vc.Encode("Alex")), proofRequest(`[{"issuer_did":"Not Here"}]`))
	assert.That(errors.Is(err, core.ErrProofRejected))
	assert.That(!errors.Is(err, core.ErrInvalidProof))

	ledger.EXPECT().GetSchema(gomock.Any(), schemaID).Return(`{"id":"s"}`, nil)
	ledger.EXPECT().GetCredDef(gomock.Any(), credDefID).Return(`{"id":"c"}`, nil)
	ac.EXPECT().VerifierVerifyProof(gomock.Any(), gomock.Any(), gomock.Any(),
		`{"`+schemaID+`":{"id":"s"}}`, `{"`+credDefID+`":{"id":"c"}}`, "{}", "{}").
		Return(true, nil)

	ok, err := ValidateIndyProof(ctx, ledger, ac, proofJSON(vc.Encode("Alex")), proofRequest(`[{}]`))
	assert.NoError(err)
	assert.That(ok)

	_, err = ValidateIndyProof(ctx, ledger, ac, proofJSON("1234"), proofRequest(`[{}]`))
	assert.That(errors.Is(err, core.ErrInvalidProof))
}

func TestValidateSelfAttested(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	proof := []byte(`{"requested_proof":{"revealed_attrs":{},
		"self_attested_attrs":{"address1_1":"Alex"}},"identifiers":[]}`)
	_, err := ValidateIndyProof(context.Background(), mock.NewMockLedgerRead(ctrl),
		mock.NewMockAnoncreds(ctrl), proof, proofRequest(`[{"cred_def_id":"`+credDefID+`"}]`))
	assert.That(errors.Is(err, core.ErrInvalidProof))
}

func TestValidateRevocation(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	const revRegID = issuerDID + ":4:" + credDefID + ":CL_ACCUM:1"
	req := []byte(`{"nonce":"1","name":"p","version":"1.0",
		"requested_attributes":{"a":{"name":"address1"}},
		"requested_predicates":{},"non_revoked":{"from":5,"to":80}}`)
	proof := func(ts uint64) []byte {
		p := proofJSON(vc.Encode("Alex"))
		var m map[string]any
		require.NoError(t, json.Unmarshal(p, &m))
		m["requested_proof"].(map[string]any)["revealed_attrs"] = map[string]any{
			"a": map[string]any{"sub_proof_index": 0, "raw": "Alex", "encoded": vc.Encode("Alex")},
		}
		m["identifiers"] = []any{map[string]any{
			"schema_id": schemaID, "cred_def_id": credDefID, "rev_reg_id": revRegID, "timestamp": ts,
		}}
		data, err := json.Marshal(m)
		require.NoError(t, err)
		return data
	}

	ledger := mock.NewMockLedgerRead(ctrl)
	ac := mock.NewMockAnoncreds(ctrl)

	_, err := ValidateIndyProof(ctx, ledger, ac, proof(81), req)
	assert.That(errors.Is(err, core.ErrInvalidProof))

	ledger.EXPECT().GetSchema(gomock.Any(), schemaID).Return(`{}`, nil)
	ledger.EXPECT().GetCredDef(gomock.Any(), credDefID).Return(`{}`, nil)
	ledger.EXPECT().GetRevRegDef(gomock.Any(), revRegID).Return(`{"def":1}`, nil)
	ledger.EXPECT().GetRevReg(gomock.Any(), revRegID, uint64(50)).Return(`{"reg":1}`, uint64(49), nil)
	ac.EXPECT().VerifierVerifyProof(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
		`{"`+revRegID+`":{"def":1}}`, `{"`+revRegID+`":{"49":{"reg":1}}}`).
		Return(false, nil)

	ok, err := ValidateIndyProof(ctx, ledger, ac, proof(50), req)
	assert.NoError(err)
	assert.That(!ok)
}

func TestValidateLedgerError(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledgerErr := errors.New("pool timeout")
	ledger := mock.NewMockLedgerRead(ctrl)
	ledger.EXPECT().GetSchema(gomock.Any(), schemaID).Return("", ledgerErr)

	_, err := ValidateIndyProof(context.Background(), ledger, mock.NewMockAnoncreds(ctrl),
		proofJSON(vc.Encode("Alex")), proofRequest(`[]`))
	assert.That(errors.Is(err, core.ErrBackend))
	assert.That(errors.Is(err, ledgerErr))
}

func TestCreateProof(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	const revRegID = "rev-reg"
	req := []byte(`{"nonce":"1","name":"p","version":"1.0",
		"requested_attributes":{"a":{"name":"email","non_revoked":{"from":5,"to":80}},"b":{"name":"nick"}},
		"requested_predicates":{"p":{"name":"age","p_type":">=","p_value":18}}}`)
	selected := SelectedCredentials{
		"a": {Credential: Credential{Referent: "cred1", SchemaID: schemaID, CredDefID: credDefID,
			RevRegID: revRegID, CredRevID: "7"}, TailsDir: "/tmp/tails"},
		"p": {Credential: Credential{Referent: "cred2", SchemaID: schemaID, CredDefID: credDefID}},
	}

	ledger := mock.NewMockLedgerRead(ctrl)
	ac := mock.NewMockAnoncreds(ctrl)
	ledger.EXPECT().GetSchema(gomock.Any(), schemaID).Return(`{}`, nil)
	ledger.EXPECT().GetCredDef(gomock.Any(), credDefID).Return(`{}`, nil)
	ledger.EXPECT().GetRevRegDef(gomock.Any(), revRegID).Return(`{}`, nil)
	ledger.EXPECT().GetRevRegDelta(gomock.Any(), revRegID, uint64(0), uint64(80)).
		Return(core.RevRegDelta{ID: revRegID, JSON: `{}`, Timestamp: 70}, nil)
	ac.EXPECT().CreateRevocationState(gomock.Any(), "/tmp/tails", `{}`, `{}`, uint64(70), "7").
		Return(`{"witness":1}`, nil)
	ac.EXPECT().ProverCreateProof(gomock.Any(), string(req), gomock.Any(), gomock.Any(), gomock.Any(),
		`{"rev-reg":{"70":{"witness":1}}}`).
		DoAndReturn(func(_ context.Context, _, requested, _, _, _ string) (string, error) {
			require.Equal(t, "cred1", gjson.Get(requested, "requested_attributes.a.cred_id").String())
			require.Equal(t, uint64(70), gjson.Get(requested, "requested_attributes.a.timestamp").Uint())
			require.True(t, gjson.Get(requested, "requested_attributes.a.revealed").Bool())
			require.Equal(t, "cred2", gjson.Get(requested, "requested_predicates.p.cred_id").String())
			require.False(t, gjson.Get(requested, "requested_predicates.p.timestamp").Exists())
			require.Equal(t, "Al", gjson.Get(requested, "self_attested_attributes.b").String())
			return `{"proof":{}}`, nil
		})

	proof, err := CreateProof(ctx, ledger, ac, req, selected, map[string]string{"b": "Al"})
	assert.NoError(err)
	assert.Equal(string(proof), `{"proof":{}}`)
}

func TestBuildRevStatesOutsideInterval(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := mock.NewMockLedgerRead(ctrl)
	ledger.EXPECT().GetRevRegDef(gomock.Any(), "r").Return(`{}`, nil)
	ledger.EXPECT().GetRevRegDelta(gomock.Any(), "r", uint64(0), uint64(80)).
		Return(core.RevRegDelta{ID: "r", JSON: `{}`, Timestamp: 2}, nil)

	i := Interval(5, 80)
	_, err := BuildRevStates(context.Background(), ledger, mock.NewMockAnoncreds(ctrl), []CredInfo{
		{Referent: "a", RevRegID: "r", CredRevID: "1", TailsDir: "/t", Interval: &i},
	})
	assert.That(errors.Is(err, core.ErrInvalidProof))

	_, err = BuildRevStates(context.Background(), ledger, mock.NewMockAnoncreds(ctrl), []CredInfo{
		{Referent: "a", RevRegID: "r", Interval: &i},
	})
	assert.Error(err)
}
