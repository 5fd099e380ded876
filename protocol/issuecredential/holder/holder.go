/*
Package holder is the holder role of the Aries issue credential protocol.
Like the issuer, the Holder is a value and operations return the next one.

	Initial -> ProposalSet -> OfferReceived -> RequestSet -> Finished
	       \-----------------/              \-> Failed (declined)
*/
package holder

import (
	"context"

	"github.com/findy-network/findy-exchange/agent/pltype"
	"github.com/findy-network/findy-exchange/agent/psm"
	"github.com/findy-network/findy-exchange/agent/thread"
	"github.com/findy-network/findy-exchange/agent/vc"
	"github.com/findy-network/findy-exchange/core"
	"github.com/findy-network/findy-exchange/std/common"
	"github.com/findy-network/findy-exchange/std/issuecredential"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/tidwall/gjson"
)

const Kind = "holder"

type State string

const (
	Initial       State = "Initial"
	ProposalSet   State = "ProposalSet"
	OfferReceived State = "OfferReceived"
	RequestSet    State = "RequestSet"
	Finished      State = "Finished"
	Failed        State = "Failed"
)

func (s State) String() string { return string(s) }

type Holder struct {
	State         State                    `json:"state"`
	Thid          string                   `json:"thread_id"`
	Proposal      *issuecredential.Propose `json:"proposal,omitempty"`
	Offer         *issuecredential.Offer   `json:"offer,omitempty"`
	Request       *issuecredential.Request `json:"request,omitempty"`
	ReqMeta       string                   `json:"req_meta,omitempty"`
	CredDef       string                   `json:"cred_def,omitempty"`
	Credential    *issuecredential.Issue   `json:"credential,omitempty"`
	CredID        string                   `json:"cred_id,omitempty"`
	RevRegDef     string                   `json:"rev_reg_def,omitempty"`
	Ack           *common.Ack              `json:"ack,omitempty"`
	ProblemReport *common.ProblemReport    `json:"problem_report,omitempty"`
	Status        psm.Status               `json:"status"`
}

// New returns a Holder which starts the exchange with a proposal.
func New() Holder {
	return Holder{State: Initial, Status: psm.StatusUndefined}
}

// FromOffer returns a Holder for the exchange the issuer started.
func FromOffer(o *issuecredential.Offer) Holder {
	return Holder{
		State:  OfferReceived,
		Thid:   o.ThreadID(),
		Offer:  o,
		Status: psm.StatusUndefined,
	}
}

func (h Holder) Kind() string      { return Kind }
func (h Holder) StateName() string { return string(h.State) }
func (h Holder) ThreadID() string  { return h.Thid }

func (h Holder) Terminal() bool {
	return h.State == Finished || h.State == Failed
}

// SendProposal builds the proposal. From Initial it starts the thread,
// pthid links it to an out-of-band invitation. From OfferReceived it's a
// counter proposal to the offer.
func (h Holder) SendProposal(
	preview issuecredential.PreviewCredential,
	credDefID, comment, pthid string,
) (Holder, error) {
	const op = "send proposal"

	next := h
	switch h.State {
	case Initial:
		p := issuecredential.NewPropose("", pthid, comment, &preview, credDefID)
		next.Thid = p.ID
		next.Proposal = p
	case OfferReceived:
		next.Proposal = issuecredential.NewPropose(h.Thid, "", comment, &preview, credDefID)
		next.Offer = nil
	default:
		return psm.Invalid(op, h)
	}
	next.State = ProposalSet
	return psm.Step(op, h, next, nil)
}

func (h Holder) ProposalMsg() (*issuecredential.Propose, error) {
	if h.State != ProposalSet {
		return nil, &core.InvalidStateError{Op: "proposal message", State: h.StateName()}
	}
	return h.Proposal, nil
}

func (h Holder) ReceiveOffer(o *issuecredential.Offer) (Holder, error) {
	const op = "receive offer"

	next := h
	switch h.State {
	case Initial:
		next.Thid = o.ThreadID()
	case ProposalSet:
		if err := thread.Verify(h.Thid, o); err != nil {
			return psm.Step(op, h, h, err)
		}
	default:
		return psm.Invalid(op, h)
	}
	next.State = OfferReceived
	next.Offer = o
	return psm.Step(op, h, next, nil)
}

// offerJSON returns the anoncreds offer of the received offer message.
func (h Holder) offerJSON() (string, error) {
	if h.Offer == nil {
		return "", &core.InvalidStateError{Op: "offer", State: h.StateName()}
	}
	offer, err := h.Offer.OfferJSON()
	if err != nil {
		return "", core.Kind(core.ErrInvalidJSON, err)
	}
	return string(offer), nil
}

// GetCredDefID returns the cred def of the offer.
func (h Holder) GetCredDefID() (_ string, err error) {
	defer err2.Handle(&err)

	return vc.OfferCredDefID(try.To1(h.offerJSON())), nil
}

// IsRevokable tells if the proposed or offered credential can be revoked.
// Before the credential has arrived this is read from the cred def on the
// ledger.
func (h Holder) IsRevokable(ctx context.Context, ledger core.LedgerRead) (_ bool, err error) {
	defer err2.Handle(&err, "holder %s revokable", h.Thid)

	if h.CredID != "" {
		return try.To1(h.GetRevRegID()) != "", nil
	}
	credDef := h.CredDef
	if credDef == "" {
		credDef = try.To1(vc.CredDefFromLedger(ctx, ledger, try.To1(h.credDefID())))
	}
	return vc.SupportsRevocation(credDef), nil
}

// credDefID is the cred def of the offer, or of our proposal when no offer
// has arrived.
func (h Holder) credDefID() (string, error) {
	if h.Offer == nil && h.Proposal != nil && h.Proposal.CredDefID != "" {
		return h.Proposal.CredDefID, nil
	}
	return h.GetCredDefID()
}

// GetRevRegID returns the registry of the received credential, empty if
// it isn't revocable.
func (h Holder) GetRevRegID() (_ string, err error) {
	defer err2.Handle(&err)

	cred := try.To1(h.credentialJSON())
	return gjson.Get(cred, "rev_reg_id").String(), nil
}

func (h Holder) credentialJSON() (string, error) {
	if h.Credential == nil {
		return "", core.Errorf(core.ErrNotReady, "no credential in state %s", h.State)
	}
	cred, err := h.Credential.CredentialJSON()
	if err != nil {
		return "", core.Kind(core.ErrInvalidJSON, err)
	}
	return string(cred), nil
}

func (h Holder) revRegDef(ctx context.Context, ledger core.LedgerRead) (def string, err error) {
	defer err2.Handle(&err)

	if h.RevRegDef != "" {
		return h.RevRegDef, nil
	}
	revRegID := try.To1(h.GetRevRegID())
	if revRegID == "" {
		return "", core.Errorf(core.ErrNotReady, "credential is not revocable")
	}
	def, err = ledger.GetRevRegDef(ctx, revRegID)
	if err != nil {
		return "", core.Backend(err)
	}
	return def, nil
}

// GetTailsLocation returns where the tails file of the credential's registry
// can be downloaded. The registry is known when the credential is received.
func (h Holder) GetTailsLocation(ctx context.Context, ledger core.LedgerRead) (_ string, err error) {
	defer err2.Handle(&err, "tails location")

	def := try.To1(h.revRegDef(ctx, ledger))
	return gjson.Get(def, "value.tailsLocation").String(), nil
}

func (h Holder) GetTailsHash(ctx context.Context, ledger core.LedgerRead) (_ string, err error) {
	defer err2.Handle(&err, "tails hash")

	def := try.To1(h.revRegDef(ctx, ledger))
	return gjson.Get(def, "value.tailsHash").String(), nil
}

// PrepareCredentialRequest builds the blinded credential request for our
// pairwise DID.
func (h Holder) PrepareCredentialRequest(
	ctx context.Context,
	ledger core.LedgerRead,
	ac core.Anoncreds,
	proverDID string,
) (Holder, error) {
	const op = "prepare credential request"

	if h.State != OfferReceived {
		return psm.Invalid(op, h)
	}
	next, err := h.prepareRequest(ctx, ledger, ac, proverDID)
	return psm.Step(op, h, next, err)
}

func (h Holder) prepareRequest(
	ctx context.Context,
	ledger core.LedgerRead,
	ac core.Anoncreds,
	proverDID string,
) (next Holder, err error) {
	defer err2.Handle(&err, "credential request")

	offer := try.To1(h.offerJSON())
	credDef := try.To1(vc.CredDefFromLedger(ctx, ledger, vc.OfferCredDefID(offer)))
	req, meta := try.To2(ac.ProverCreateCredentialReq(ctx, proverDID, offer, credDef))

	next = h
	next.State = RequestSet
	next.Request = issuecredential.NewRequest(h.Thid, []byte(req))
	next.ReqMeta = meta
	next.CredDef = credDef
	return next, nil
}

func (h Holder) RequestMsg() (*issuecredential.Request, error) {
	if h.State != RequestSet {
		return nil, &core.InvalidStateError{Op: "request message", State: h.StateName()}
	}
	return h.Request, nil
}

// ProcessCredential stores the credential to the wallet. If the issuer asked
// for it, AckMsg returns the ack to send.
func (h Holder) ProcessCredential(
	ctx context.Context,
	ledger core.LedgerRead,
	ac core.Anoncreds,
	cred *issuecredential.Issue,
) (Holder, error) {
	const op = "process credential"

	if h.State != RequestSet {
		return psm.Invalid(op, h)
	}
	if err := thread.Verify(h.Thid, cred); err != nil {
		return psm.Step(op, h, h, err)
	}
	next, err := h.storeCredential(ctx, ledger, ac, cred)
	return psm.Step(op, h, next, err)
}

func (h Holder) storeCredential(
	ctx context.Context,
	ledger core.LedgerRead,
	ac core.Anoncreds,
	cred *issuecredential.Issue,
) (next Holder, err error) {
	defer err2.Handle(&err, "store credential")

	next = h
	next.Credential = cred
	credJSON := try.To1(next.credentialJSON())
	if !gjson.Valid(credJSON) {
		return h, core.Errorf(core.ErrInvalidJSON, "credential")
	}
	if revRegID := gjson.Get(credJSON, "rev_reg_id").String(); revRegID != "" {
		next.RevRegDef = try.To1(next.revRegDef(ctx, ledger))
	}
	next.CredID = try.To1(ac.ProverStoreCredential(ctx, h.ReqMeta, credJSON, h.CredDef, next.RevRegDef))
	if cred.PleaseAck != nil {
		next.Ack = common.NewAck(pltype.IssueCredentialACK, h.Thid)
	}
	next.State = Finished
	next.Status = psm.StatusSuccess
	glog.V(1).Infof("holder %s stored credential %s", h.Thid, next.CredID)
	return next, nil
}

func (h Holder) AckMsg() (*common.Ack, error) {
	if h.Ack == nil {
		return nil, &core.InvalidStateError{Op: "ack message", State: h.StateName()}
	}
	return h.Ack, nil
}

// DeclineOffer ends the exchange. ProblemReportMsg returns the report to
// send to the issuer.
func (h Holder) DeclineOffer(comment string) (Holder, error) {
	const op = "decline offer"

	if h.State != OfferReceived {
		return psm.Invalid(op, h)
	}
	if comment == "" {
		comment = "credential offer declined"
	}
	next := h
	next.State = Failed
	next.Status = psm.StatusDeclined
	next.ProblemReport = common.NewProblemReport(pltype.IssueCredentialProblemReport,
		h.Thid, common.ProblemOfferDeclined, comment)
	return psm.Step(op, h, next, nil)
}

// ReceiveProblemReport fails the exchange. In a terminal state the report is
// absorbed.
func (h Holder) ReceiveProblemReport(pr *common.ProblemReport) (Holder, error) {
	const op = "receive problem report"

	if h.Terminal() {
		return psm.Absorb(op, h)
	}
	if err := thread.Verify(h.Thid, pr); err != nil {
		return psm.Step(op, h, h, err)
	}
	glog.Warningf("holder %s got problem report: %s", h.Thid, pr.Reason())
	next := h
	next.State = Failed
	next.Status = psm.StatusFailed
	next.ProblemReport = pr
	return psm.Step(op, h, next, nil)
}

func (h Holder) ProblemReportMsg() (*common.ProblemReport, error) {
	if h.ProblemReport == nil {
		return nil, &core.InvalidStateError{Op: "problem report", State: h.StateName()}
	}
	return h.ProblemReport, nil
}

func (h Holder) CredentialStatus() psm.Status {
	return h.Status
}

func (h Holder) GetCredID() (string, error) {
	if h.CredID == "" {
		return "", core.Errorf(core.ErrNotReady, "no credential in state %s", h.State)
	}
	return h.CredID, nil
}

// GetAttributes returns the raw values of the credential, or of the offer
// preview before the credential has arrived.
func (h Holder) GetAttributes() (attrs map[string]string, err error) {
	defer err2.Handle(&err)

	attrs = make(map[string]string)
	if h.Credential != nil {
		cred := try.To1(h.credentialJSON())
		gjson.Get(cred, "values").ForEach(func(name, v gjson.Result) bool {
			attrs[name.String()] = v.Get("raw").String()
			return true
		})
		return attrs, nil
	}
	if h.Offer == nil {
		return nil, core.Errorf(core.ErrNotReady, "no offer in state %s", h.State)
	}
	for _, a := range h.Offer.CredentialPreview.Attributes {
		attrs[a.Name] = a.Value
	}
	return attrs, nil
}

// DeleteCredential removes the stored credential from the wallet.
func (h Holder) DeleteCredential(ctx context.Context, ac core.Anoncreds) (err error) {
	defer err2.Handle(&err, "holder %s delete credential", h.Thid)

	credID := try.To1(h.GetCredID())
	if err := ac.ProverDeleteCredential(ctx, credID); err != nil {
		return core.Backend(err)
	}
	return nil
}
