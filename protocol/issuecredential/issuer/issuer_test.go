package issuer

import (
	"context"
	"errors"
	"testing"

	"github.com/findy-network/findy-exchange/agent/pltype"
	"github.com/findy-network/findy-exchange/agent/psm"
	"github.com/findy-network/findy-exchange/core"
	"github.com/findy-network/findy-exchange/core/mock"
	"github.com/findy-network/findy-exchange/std/common"
	"github.com/findy-network/findy-exchange/std/issuecredential"
	"github.com/golang/mock/gomock"
	"github.com/lainio/err2/assert"
)

const (
	credDefID = "Th7MpTaRZVRYnPiabds81Y:3:CL:12:tag"
	revRegID  = "Th7MpTaRZVRYnPiabds81Y:4:" + credDefID + ":CL_ACCUM:tag1"
)

type registries map[string]bool

func (r registries) Published(_ context.Context, id string) (bool, error) {
	return r[id], nil
}

func offered(t *testing.T, ctrl *gomock.Controller, ac *mock.MockAnoncreds) Issuer {
	ledger := mock.NewMockLedgerRead(ctrl)
	ledger.EXPECT().GetCredDef(gomock.Any(), credDefID).Return(`{"id":"`+credDefID+`"}`, nil)
	ac.EXPECT().IssuerCreateCredentialOffer(gomock.Any(), credDefID).Return(`{"cred_def_id":"`+credDefID+`"}`, nil)

	i, err := New().BuildCredentialOfferMsg(context.Background(), ledger, registries{}, ac,
		OfferInfo{CredData: map[string]string{"name": "Alex", "age": "25"}, CredDefID: credDefID}, "hi")
	if err != nil {
		t.Fatal(err)
	}
	return i
}

func TestBuildCredentialOfferMsg(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	i := offered(t, ctrl, mock.NewMockAnoncreds(ctrl))
	assert.Equal(i.State, OfferSet)
	offer, err := i.OfferMsg()
	assert.NoError(err)
	assert.Equal(offer.ID, i.Thid)
	assert.Equal(offer.Thid(), i.Thid)
	assert.INotNil(offer.Timing)
	assert.SLen(offer.CredentialPreview.Attributes, 2)
	assert.Equal(offer.CredentialPreview.Attributes[0].Name, "age")
	assert.That(!i.IsRevokable())

	_, err = i.GetRevRegID()
	assert.That(errors.Is(err, core.ErrNotReady))

	// offer can't be built twice
	same, err := i.BuildCredentialOfferMsg(context.Background(), nil, nil, nil, OfferInfo{}, "")
	assert.That(errors.Is(err, core.ErrInvalidState))
	assert.Equal(same.State, OfferSet)
}

func TestOfferNeedsPublishedRegistry(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := mock.NewMockLedgerRead(ctrl)
	ledger.EXPECT().GetCredDef(gomock.Any(), credDefID).Return(`{}`, nil)
	ac := mock.NewMockAnoncreds(ctrl)

	i := New()
	next, err := i.BuildCredentialOfferMsg(context.Background(), ledger, registries{}, ac,
		OfferInfo{CredDefID: credDefID, RevRegID: revRegID}, "")
	assert.That(errors.Is(err, core.ErrNotReady))
	assert.Equal(next, i)
}

func TestOfferNeedsCredDef(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := mock.NewMockLedgerRead(ctrl)
	ledger.EXPECT().GetCredDef(gomock.Any(), credDefID).Return("", errors.New("not found"))

	next, err := New().BuildCredentialOfferMsg(context.Background(), ledger, registries{}, nil,
		OfferInfo{CredDefID: credDefID}, "")
	assert.That(errors.Is(err, core.ErrBackend))
	assert.Equal(next.State, Initial)
}

func TestReceiveRequest(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	i := offered(t, ctrl, mock.NewMockAnoncreds(ctrl))

	wrong := issuecredential.NewRequest("other", []byte(`{}`))
	same, err := i.ReceiveRequest(wrong)
	var tme *core.ThreadMismatchError
	assert.That(errors.As(err, &tme))
	assert.Equal(tme.Expected, i.Thid)
	assert.Equal(tme.Received, "other")
	assert.Equal(same.State, OfferSet)

	next, err := i.ReceiveRequest(issuecredential.NewRequest(i.Thid, []byte(`{}`)))
	assert.NoError(err)
	assert.Equal(next.State, RequestReceived)
	assert.Equal(i.State, OfferSet)

	_, err = New().ReceiveRequest(issuecredential.NewRequest(i.Thid, []byte(`{}`)))
	assert.That(errors.Is(err, core.ErrInvalidState))
}

func TestBuildCredentialFails(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ac := mock.NewMockAnoncreds(ctrl)
	i := offered(t, ctrl, ac)
	i, err := i.ReceiveRequest(issuecredential.NewRequest(i.Thid, []byte(`{}`)))
	assert.NoError(err)

	ac.EXPECT().IssuerCreateCredential(gomock.Any(), gomock.Any(), `{}`, gomock.Any(), "", "").
		Return("", "", errors.New("bad request"))
	next, err := i.BuildCredential(context.Background(), ac, "")
	assert.NoError(err)
	assert.Equal(next.State, Failed)
	assert.Equal(next.CredentialStatus(), psm.StatusFailed)
	pr, err := next.ProblemReportMsg()
	assert.NoError(err)
	assert.Equal(pr.Description.Code, common.ProblemIssuanceAbandoned)
	assert.Equal(pr.Thid(), i.Thid)
}

func TestCounterProposal(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	i := offered(t, ctrl, mock.NewMockAnoncreds(ctrl))
	p := issuecredential.NewPropose(i.Thid, "", "less please", nil, credDefID)
	next, err := i.ReceiveProposal(p)
	assert.NoError(err)
	assert.Equal(next.State, ProposalReceived)
	assert.Equal(next.Thid, i.Thid)
	assert.That(next.Offer == nil)

	_, err = next.ReceiveProposal(p)
	assert.That(errors.Is(err, core.ErrInvalidState))
}

func TestProblemReport(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	i := offered(t, ctrl, mock.NewMockAnoncreds(ctrl))
	pr := common.NewProblemReport(pltype.IssueCredentialProblemReport, i.Thid,
		common.ProblemOfferDeclined, "no thanks")

	failed, err := i.ReceiveProblemReport(pr)
	assert.NoError(err)
	assert.Equal(failed.State, Failed)
	assert.That(failed.Terminal())

	// absorbed
	again, err := failed.ReceiveProblemReport(pr)
	assert.NoError(err)
	assert.Equal(again, failed)

	// everything else is refused
	_, err = failed.ReceiveRequest(issuecredential.NewRequest(i.Thid, []byte(`{}`)))
	assert.That(errors.Is(err, core.ErrInvalidState))
	_, err = failed.Abandon("bye")
	assert.That(errors.Is(err, core.ErrInvalidState))
}

func TestPersistence(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	i := offered(t, ctrl, mock.NewMockAnoncreds(ctrl))
	data, err := psm.Marshal(i)
	assert.NoError(err)

	var loaded Issuer
	assert.NoError(psm.Unmarshal(data, &loaded))
	assert.Equal(loaded.State, OfferSet)
	assert.Equal(loaded.Thid, i.Thid)
	assert.Equal(loaded.OfferInfo.CredData["name"], "Alex")

	// the loaded machine continues like the original
	next, err := loaded.ReceiveRequest(issuecredential.NewRequest(i.Thid, []byte(`{}`)))
	assert.NoError(err)
	assert.Equal(next.State, RequestReceived)
}
