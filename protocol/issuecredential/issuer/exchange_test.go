package issuer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/findy-network/findy-exchange/agent/aries"
	"github.com/findy-network/findy-exchange/agent/didcomm"
	"github.com/findy-network/findy-exchange/agent/psm"
	"github.com/findy-network/findy-exchange/agent/revreg"
	"github.com/findy-network/findy-exchange/agent/storage/mem"
	"github.com/findy-network/findy-exchange/agent/vc"
	"github.com/findy-network/findy-exchange/core"
	"github.com/findy-network/findy-exchange/core/mock"
	"github.com/findy-network/findy-exchange/protocol/issuecredential/holder"
	"github.com/findy-network/findy-exchange/protocol/issuecredential/issuer"
	"github.com/findy-network/findy-exchange/std/common"
	"github.com/findy-network/findy-exchange/std/issuecredential"
	"github.com/golang/mock/gomock"
	"github.com/lainio/err2/assert"
	"github.com/tidwall/gjson"
)

const (
	issuerDID = "Th7MpTaRZVRYnPiabds81Y"
	proverDID = "VsKV7grR1BUE29mG2Fm2kX"
	credDefID = issuerDID + ":3:CL:12:tag"
	revRegID  = issuerDID + ":4:" + credDefID + ":CL_ACCUM:tag1"
	tailsDir  = "/tmp/tails"
	revDef    = `{"id":"` + revRegID + `","value":{"tailsHash":"hash","tailsLocation":"https://tails.example/hash"}}`
)

type sender struct {
	sent []didcomm.MessageHdr
}

func (s *sender) Send(_ context.Context, m didcomm.MessageHdr) error {
	s.sent = append(s.sent, m)
	return nil
}

// wire sends m through JSON like the other end would receive it.
func wire[T didcomm.MessageHdr](t *testing.T, m T) T {
	t.Helper()
	data, err := json.Marshal(m)
	assert.NoError(err)
	parsed, err := aries.Parse(data)
	assert.NoError(err)
	return parsed.(T)
}

// reload persists the machine and loads it back.
func reload[M psm.Machine](t *testing.T, m M, into *M) M {
	t.Helper()
	data, err := psm.Marshal(m)
	assert.NoError(err)
	assert.NoError(psm.Unmarshal(data, any(into).(psm.Machine)))
	return *into
}

func TestIssuance(t *testing.T) {
	tests := []struct {
		name      string
		revocable bool
	}{
		{"plain", false},
		{"revocable", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.PushTester(t)
			defer assert.PopTester()
			ctx := context.Background()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			ledger := mock.NewMockLedgerRead(ctrl)
			lw := mock.NewMockLedgerWrite(ctrl)
			ac := mock.NewMockAnoncreds(ctrl)

			credDef := `{"id":"` + credDefID + `","value":{"primary":{}}}`
			info := issuer.OfferInfo{
				CredData:  map[string]string{"name": "Alex", "age": "25"},
				CredDefID: credDefID,
			}
			p := mem.New()
			regs, err := revreg.NewRegistries(p)
			assert.NoError(err)
			deltas, err := revreg.NewDeltas(p)
			assert.NoError(err)
			credRevID := ""
			credJSON := `{"schema_id":"s","cred_def_id":"` + credDefID + `","values":{"name":{"raw":"Alex","encoded":"` + vc.Encode("Alex") + `"}}}`

			if tt.revocable {
				credDef = `{"id":"` + credDefID + `","value":{"primary":{},"revocation":{}}}`
				info.RevRegID, info.TailsDir = revRegID, tailsDir
				credRevID = "1"
				credJSON = `{"rev_reg_id":"` + revRegID + `","values":{"name":{"raw":"Alex","encoded":"1"}}}`

				ac.EXPECT().IssuerCreateRevocationRegistry(gomock.Any(), issuerDID, credDefID, tailsDir, uint32(100), "tag1").
					Return(core.RevRegInfo{ID: revRegID, DefJSON: revDef, DeltaJSON: `{"ver":"1.0"}`}, nil)
				lw.EXPECT().PublishRevRegDef(gomock.Any(), issuerDID, gomock.Any()).Return(nil)
				lw.EXPECT().PublishRevRegDelta(gomock.Any(), issuerDID, revRegID, gomock.Any()).Return(nil)
				r, err := revreg.Create(ctx, ac, issuerDID, credDefID, tailsDir, 100, 1)
				assert.NoError(err)
				assert.NoError(r.PublishRevocationPrimitives(ctx, lw, "https://tails.example/hash"))
				assert.NoError(regs.Save(r))
				ledger.EXPECT().GetRevRegDef(gomock.Any(), revRegID).Return(revDef, nil).AnyTimes()
			}
			ledger.EXPECT().GetCredDef(gomock.Any(), credDefID).Return(credDef, nil).AnyTimes()

			// holder proposes
			h, err := holder.New().SendProposal(issuecredential.NewPreview([]issuecredential.Attribute{
				{Name: "name", Value: "Alex"},
			}), credDefID, "", "")
			assert.NoError(err)
			assert.Equal(h.State, holder.ProposalSet)
			revocable, err := h.IsRevokable(ctx, ledger)
			assert.NoError(err)
			assert.Equal(revocable, tt.revocable)
			prop, err := h.ProposalMsg()
			assert.NoError(err)

			i := issuer.FromProposal(wire(t, prop))
			assert.Equal(i.State, issuer.ProposalReceived)
			assert.Equal(i.ThreadID(), h.ThreadID())

			// issuer offers
			ac.EXPECT().IssuerCreateCredentialOffer(gomock.Any(), credDefID).
				Return(`{"cred_def_id":"`+credDefID+`","nonce":"1"}`, nil)
			i, err = i.BuildCredentialOfferMsg(ctx, ledger, regs, ac, info, "")
			assert.NoError(err)
			assert.Equal(i.State, issuer.OfferSet)
			i = reload(t, i, new(issuer.Issuer))
			offer, err := i.OfferMsg()
			assert.NoError(err)

			h, err = h.ReceiveOffer(wire(t, offer))
			assert.NoError(err)
			assert.Equal(h.State, holder.OfferReceived)
			revocable, err = h.IsRevokable(ctx, ledger)
			assert.NoError(err)
			assert.Equal(revocable, tt.revocable)
			attrs, err := h.GetAttributes()
			assert.NoError(err)
			assert.Equal(attrs["age"], "25")

			// holder requests
			ac.EXPECT().ProverCreateCredentialReq(gomock.Any(), proverDID, gomock.Any(), credDef).
				Return(`{"prover_did":"`+proverDID+`"}`, `{"meta":1}`, nil)
			h, err = h.PrepareCredentialRequest(ctx, ledger, ac, proverDID)
			assert.NoError(err)
			assert.Equal(h.State, holder.RequestSet)
			h = reload(t, h, new(holder.Holder))
			req, err := h.RequestMsg()
			assert.NoError(err)

			i, err = i.ReceiveRequest(wire(t, req))
			assert.NoError(err)
			assert.Equal(i.State, issuer.RequestReceived)

			// issuer issues
			ac.EXPECT().IssuerCreateCredential(gomock.Any(), gomock.Any(), `{"prover_did":"`+proverDID+`"}`,
				gomock.Any(), info.RevRegID, info.TailsDir).
				DoAndReturn(func(_ context.Context, _, _, values, _, _ string) (string, string, error) {
					assert.Equal(gjson.Get(values, "name.encoded").String(), vc.Encode("Alex"))
					assert.Equal(gjson.Get(values, "age.encoded").String(), "25")
					return credJSON, credRevID, nil
				})
			i, err = i.BuildCredential(ctx, ac, "here you are")
			assert.NoError(err)
			assert.Equal(i.State, issuer.CredentialSet)
			assert.Equal(i.IsRevokable(), tt.revocable)

			s := new(sender)
			i, err = i.SendCredential(ctx, s)
			assert.NoError(err)
			assert.Equal(i.State, issuer.CredentialSet)
			assert.SLen(s.sent, 1)
			issue := s.sent[0].(*issuecredential.Issue)
			assert.INotNil(issue.PleaseAck)

			// holder stores
			ac.EXPECT().ProverStoreCredential(gomock.Any(), `{"meta":1}`, credJSON, credDef, gomock.Any()).
				Return("cred-1", nil)
			h, err = h.ProcessCredential(ctx, ledger, ac, wire(t, issue))
			assert.NoError(err)
			assert.Equal(h.State, holder.Finished)
			assert.Equal(h.CredentialStatus(), psm.StatusSuccess)
			credID, err := h.GetCredID()
			assert.NoError(err)
			assert.NotEmpty(credID)
			revocable, err = h.IsRevokable(ctx, ledger)
			assert.NoError(err)
			assert.Equal(revocable, tt.revocable)
			attrs, err = h.GetAttributes()
			assert.NoError(err)
			assert.Equal(attrs["name"], "Alex")

			ack, err := h.AckMsg()
			assert.NoError(err)
			i, err = i.ReceiveAck(wire(t, ack))
			assert.NoError(err)
			assert.Equal(i.State, issuer.Finished)
			assert.Equal(i.CredentialStatus(), psm.StatusSuccess)

			if !tt.revocable {
				_, err = h.GetTailsLocation(ctx, ledger)
				assert.Error(err)
				return
			}
			loc, err := h.GetTailsLocation(ctx, ledger)
			assert.NoError(err)
			assert.Equal(loc, "https://tails.example/hash")
			hash, err := h.GetTailsHash(ctx, ledger)
			assert.NoError(err)
			assert.Equal(hash, "hash")

			ac.EXPECT().IssuerRevokeCredential(gomock.Any(), tailsDir, revRegID, "1").Return(`{"revoked":[1]}`, nil)
			assert.NoError(i.RevokeCredentialLocal(ctx, ac, regs, deltas))
			pending, err := deltas.Pending()
			assert.NoError(err)
			assert.SLen(pending, 1)
		})
	}
}

func TestDeclineOffer(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	offer := issuecredential.NewOffer("", "", issuecredential.NewPreview(nil), []byte(`{"cred_def_id":"x"}`))
	h := holder.FromOffer(offer)
	assert.Equal(h.ThreadID(), offer.ID)

	declined, err := h.DeclineOffer("")
	assert.NoError(err)
	assert.Equal(declined.State, holder.Failed)
	assert.Equal(declined.CredentialStatus(), psm.StatusDeclined)
	pr, err := declined.ProblemReportMsg()
	assert.NoError(err)
	assert.Equal(pr.Description.Code, common.ProblemOfferDeclined)
	assert.Equal(pr.Thid(), offer.ID)

	// the issuer fails when the report arrives
	i := issuer.New()
	i.State, i.Thid = issuer.OfferSet, offer.ID
	i, err = i.ReceiveProblemReport(wire(t, pr))
	assert.NoError(err)
	assert.Equal(i.State, issuer.Failed)
	assert.Equal(i.ProblemReport.Reason(), "credential offer declined")

	// a report to the declined holder is absorbed
	again, err := declined.ReceiveProblemReport(wire(t, pr))
	assert.NoError(err)
	assert.Equal(again.State, holder.Failed)
	assert.Equal(again.CredentialStatus(), psm.StatusDeclined)
	assert.Equal(again.ProblemReport.Description.Code, common.ProblemOfferDeclined)

	// everything else is refused
	_, err = again.PrepareCredentialRequest(context.Background(), nil, nil, proverDID)
	assert.That(errors.Is(err, core.ErrInvalidState))
	_, err = again.ReceiveOffer(wire(t, offer))
	assert.That(errors.Is(err, core.ErrInvalidState))
	_, err = again.DeclineOffer("")
	assert.That(errors.Is(err, core.ErrInvalidState))
}
