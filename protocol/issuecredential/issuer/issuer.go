/*
Package issuer is the issuer role of the Aries issue credential protocol
(RFC 0036). The Issuer is a value: every operation returns the next Issuer,
and the receiver is left as it was. On error the returned Issuer is the
unchanged input.

	Initial -> ProposalReceived -> OfferSet -> RequestReceived -> CredentialSet -> Finished
	                                                                           \-> Failed
*/
package issuer

import (
	"context"
	"sort"

	"github.com/findy-network/findy-exchange/agent/didcomm"
	"github.com/findy-network/findy-exchange/agent/pltype"
	"github.com/findy-network/findy-exchange/agent/psm"
	"github.com/findy-network/findy-exchange/agent/revreg"
	"github.com/findy-network/findy-exchange/agent/thread"
	"github.com/findy-network/findy-exchange/agent/utils"
	"github.com/findy-network/findy-exchange/agent/vc"
	"github.com/findy-network/findy-exchange/core"
	"github.com/findy-network/findy-exchange/std/common"
	"github.com/findy-network/findy-exchange/std/decorator"
	"github.com/findy-network/findy-exchange/std/issuecredential"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/samber/lo"
)

const Kind = "issuer"

type State string

const (
	Initial          State = "Initial"
	ProposalReceived State = "ProposalReceived"
	OfferSet         State = "OfferSet"
	RequestReceived  State = "RequestReceived"
	CredentialSet    State = "CredentialSet"
	Finished         State = "Finished"
	Failed           State = "Failed"
)

func (s State) String() string { return string(s) }

// OfferInfo is what the issuer wants to issue. RevRegID and TailsDir are
// empty for non revocable credentials.
type OfferInfo struct {
	CredData  map[string]string `json:"cred_data"`
	CredDefID string            `json:"cred_def_id"`
	RevRegID  string            `json:"rev_reg_id,omitempty"`
	TailsDir  string            `json:"tails_dir,omitempty"`
}

// Registries tells if a revocation registry is on the ledger.
// revreg.Registries implements it.
type Registries interface {
	Published(ctx context.Context, revRegID string) (bool, error)
}

type Issuer struct {
	State         State                    `json:"state"`
	Thid          string                   `json:"thread_id"`
	Proposal      *issuecredential.Propose `json:"proposal,omitempty"`
	Offer         *issuecredential.Offer   `json:"offer,omitempty"`
	OfferInfo     *OfferInfo               `json:"offer_info,omitempty"`
	Request       *issuecredential.Request `json:"request,omitempty"`
	Credential    *issuecredential.Issue   `json:"credential,omitempty"`
	CredRevID     string                   `json:"cred_rev_id,omitempty"`
	ProblemReport *common.ProblemReport    `json:"problem_report,omitempty"`
	Status        psm.Status               `json:"status"`
}

// New returns an Issuer which starts the exchange with an offer.
func New() Issuer {
	return Issuer{State: Initial, Thid: utils.UUID(), Status: psm.StatusUndefined}
}

// FromProposal returns an Issuer for the exchange the holder started.
func FromProposal(p *issuecredential.Propose) Issuer {
	return Issuer{
		State:    ProposalReceived,
		Thid:     p.ThreadID(),
		Proposal: p,
		Status:   psm.StatusUndefined,
	}
}

func (i Issuer) Kind() string      { return Kind }
func (i Issuer) StateName() string { return string(i.State) }
func (i Issuer) ThreadID() string  { return i.Thid }

func (i Issuer) Terminal() bool {
	return i.State == Finished || i.State == Failed
}

// ReceiveProposal handles a proposal from the holder. In OfferSet it's the
// holder's counter proposal and the offer has to be rebuilt.
func (i Issuer) ReceiveProposal(p *issuecredential.Propose) (Issuer, error) {
	const op = "receive proposal"

	next := i
	switch i.State {
	case Initial:
		next.Thid = p.ThreadID()
	case OfferSet:
		if err := thread.Verify(i.Thid, p); err != nil {
			return psm.Step(op, i, i, err)
		}
		next.Offer, next.OfferInfo = nil, nil
	default:
		return psm.Invalid(op, i)
	}
	next.State = ProposalReceived
	next.Proposal = p
	return psm.Step(op, i, next, nil)
}

// BuildCredentialOfferMsg builds the offer. The cred def must be on the
// ledger, and so must the revocation registry if info has one.
func (i Issuer) BuildCredentialOfferMsg(
	ctx context.Context,
	ledger core.LedgerRead,
	regs Registries,
	ac core.Anoncreds,
	info OfferInfo,
	comment string,
) (Issuer, error) {
	const op = "build credential offer"

	if i.State != Initial && i.State != ProposalReceived {
		return psm.Invalid(op, i)
	}
	offer, err := i.buildOffer(ctx, ledger, regs, ac, info, comment)
	if err != nil {
		return psm.Step(op, i, i, err)
	}
	next := i
	next.State = OfferSet
	next.Offer = offer
	next.OfferInfo = &info
	return psm.Step(op, i, next, nil)
}

func (i Issuer) buildOffer(
	ctx context.Context,
	ledger core.LedgerRead,
	regs Registries,
	ac core.Anoncreds,
	info OfferInfo,
	comment string,
) (msg *issuecredential.Offer, err error) {
	defer err2.Handle(&err, "offer of %s", info.CredDefID)

	try.To1(vc.CredDefFromLedger(ctx, ledger, info.CredDefID))
	if info.RevRegID != "" {
		published := try.To1(regs.Published(ctx, info.RevRegID))
		if !published {
			return nil, core.Errorf(core.ErrNotReady,
				"revocation registry %s is not published", info.RevRegID)
		}
	}
	offer := try.To1(ac.IssuerCreateCredentialOffer(ctx, info.CredDefID))

	msg = issuecredential.NewOffer(i.Thid, comment, preview(info.CredData), []byte(offer))
	if i.State == Initial {
		// the offer starts the thread
		msg.ID = i.Thid
	}
	msg.Timing = decorator.NewTiming()
	return msg, nil
}

func preview(data map[string]string) issuecredential.PreviewCredential {
	names := lo.Keys(data)
	sort.Strings(names)
	attrs := make([]issuecredential.Attribute, 0, len(names))
	for _, name := range names {
		attrs = append(attrs, issuecredential.Attribute{Name: name, Value: data[name]})
	}
	return issuecredential.NewPreview(attrs)
}

// OfferMsg returns the offer to send.
func (i Issuer) OfferMsg() (*issuecredential.Offer, error) {
	if i.State != OfferSet {
		return nil, &core.InvalidStateError{Op: "offer message", State: i.StateName()}
	}
	return i.Offer, nil
}

func (i Issuer) ReceiveRequest(r *issuecredential.Request) (Issuer, error) {
	const op = "receive request"

	if i.State != OfferSet {
		return psm.Invalid(op, i)
	}
	if err := thread.Verify(i.Thid, r); err != nil {
		return psm.Step(op, i, i, err)
	}
	next := i
	next.State = RequestReceived
	next.Request = r
	return psm.Step(op, i, next, nil)
}

// BuildCredential signs the credential. If anoncreds can't build it the
// exchange fails and ProblemReportMsg returns the report to send; that isn't
// an error of the operation.
func (i Issuer) BuildCredential(ctx context.Context, ac core.Anoncreds, comment string) (Issuer, error) {
	const op = "build credential"

	if i.State != RequestReceived {
		return psm.Invalid(op, i)
	}
	next := i
	cred, credRevID, err := i.createCredential(ctx, ac)
	if err != nil {
		glog.Errorf("issuer %s: %v", i.Thid, err)
		next.State = Failed
		next.Status = psm.StatusFailed
		next.ProblemReport = common.NewProblemReport(pltype.IssueCredentialProblemReport,
			i.Thid, common.ProblemIssuanceAbandoned, err.Error())
		return psm.Step(op, i, next, nil)
	}
	next.State = CredentialSet
	next.Credential = issuecredential.NewIssue(i.Thid, comment, cred, true)
	next.CredRevID = credRevID
	return psm.Step(op, i, next, nil)
}

func (i Issuer) createCredential(ctx context.Context, ac core.Anoncreds) (cred []byte, credRevID string, err error) {
	defer err2.Handle(&err, "create credential")

	offer := try.To1(i.Offer.OfferJSON())
	req := try.To1(i.Request.RequestJSON())
	values := try.To1(vc.EncodeValues(i.OfferInfo.CredData))
	c, credRevID := try.To2(ac.IssuerCreateCredential(ctx, string(offer), string(req),
		string(values), i.OfferInfo.RevRegID, i.OfferInfo.TailsDir))
	return []byte(c), credRevID, nil
}

// CredentialMsg returns the issue credential message to send.
func (i Issuer) CredentialMsg() (*issuecredential.Issue, error) {
	if i.State != CredentialSet {
		return nil, &core.InvalidStateError{Op: "credential message", State: i.StateName()}
	}
	return i.Credential, nil
}

// SendCredential sends the credential. Without ~please_ack the exchange is
// finished right away, otherwise it waits for the ack.
func (i Issuer) SendCredential(ctx context.Context, s didcomm.Sender) (Issuer, error) {
	const op = "send credential"

	if i.State != CredentialSet {
		return psm.Invalid(op, i)
	}
	if err := s.Send(ctx, i.Credential); err != nil {
		return psm.Step(op, i, i, core.Backend(err))
	}
	if i.Credential.PleaseAck != nil {
		return i, nil
	}
	next := i
	next.State = Finished
	next.Status = psm.StatusSuccess
	return psm.Step(op, i, next, nil)
}

func (i Issuer) ReceiveAck(ack *common.Ack) (Issuer, error) {
	const op = "receive ack"

	if i.State != CredentialSet {
		return psm.Invalid(op, i)
	}
	if err := thread.Verify(i.Thid, ack); err != nil {
		return psm.Step(op, i, i, err)
	}
	next := i
	next.State = Finished
	next.Status = psm.StatusSuccess
	return psm.Step(op, i, next, nil)
}

// ReceiveProblemReport fails the exchange. In a terminal state the report is
// absorbed.
func (i Issuer) ReceiveProblemReport(pr *common.ProblemReport) (Issuer, error) {
	const op = "receive problem report"

	if i.Terminal() {
		return psm.Absorb(op, i)
	}
	if err := thread.Verify(i.Thid, pr); err != nil {
		return psm.Step(op, i, i, err)
	}
	glog.Warningf("issuer %s got problem report: %s", i.Thid, pr.Reason())
	next := i
	next.State = Failed
	next.Status = psm.StatusFailed
	next.ProblemReport = pr
	return psm.Step(op, i, next, nil)
}

// Abandon stops the exchange from our side. ProblemReportMsg returns the
// report to send.
func (i Issuer) Abandon(reason string) (Issuer, error) {
	const op = "abandon"

	if i.Terminal() {
		return psm.Invalid(op, i)
	}
	next := i
	next.State = Failed
	next.Status = psm.StatusFailed
	next.ProblemReport = common.NewProblemReport(pltype.IssueCredentialProblemReport,
		i.Thid, common.ProblemIssuanceAbandoned, reason)
	return psm.Step(op, i, next, nil)
}

func (i Issuer) ProblemReportMsg() (*common.ProblemReport, error) {
	if i.ProblemReport == nil {
		return nil, &core.InvalidStateError{Op: "problem report", State: i.StateName()}
	}
	return i.ProblemReport, nil
}

func (i Issuer) CredentialStatus() psm.Status {
	return i.Status
}

func (i Issuer) GetRevRegID() (string, error) {
	if i.OfferInfo == nil {
		return "", &core.InvalidStateError{Op: "rev reg id", State: i.StateName()}
	}
	if i.OfferInfo.RevRegID == "" {
		return "", core.Errorf(core.ErrNotReady, "credential is not revocable")
	}
	return i.OfferInfo.RevRegID, nil
}

// GetCredRevID returns the credential's index in its revocation registry.
func (i Issuer) GetCredRevID() (string, error) {
	if i.CredRevID == "" {
		return "", core.Errorf(core.ErrNotReady, "no revocation id in state %s", i.State)
	}
	return i.CredRevID, nil
}

func (i Issuer) IsRevokable() bool {
	return i.OfferInfo != nil && i.OfferInfo.RevRegID != ""
}

// RevokeCredentialLocal revokes the issued credential. The delta is staged
// and published later with the other local revocations of the registry.
func (i Issuer) RevokeCredentialLocal(
	ctx context.Context,
	ac core.Anoncreds,
	regs *revreg.Registries,
	deltas *revreg.Deltas,
) (err error) {
	defer err2.Handle(&err, "issuer %s revoke", i.Thid)

	revRegID := try.To1(i.GetRevRegID())
	credRevID := try.To1(i.GetCredRevID())
	r := try.To1(regs.Get(revRegID))
	return r.RevokeCredentialLocal(ctx, ac, deltas, credRevID)
}
