/*
Package prover is the prover role of the Aries present proof protocol.

	Initial -> PresentationProposalSent -> PresentationRequestReceived -> PresentationPrepared -> PresentationSent -> Finished
	                                                                  \-> Failed (declined)
*/
package prover

import (
	"context"

	"github.com/findy-network/findy-exchange/agent/didcomm"
	"github.com/findy-network/findy-exchange/agent/pltype"
	"github.com/findy-network/findy-exchange/agent/psm"
	"github.com/findy-network/findy-exchange/agent/thread"
	"github.com/findy-network/findy-exchange/core"
	"github.com/findy-network/findy-exchange/protocol/presentproof/proof"
	"github.com/findy-network/findy-exchange/std/common"
	"github.com/findy-network/findy-exchange/std/presentproof"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

const Kind = "prover"

type State string

const (
	Initial                     State = "Initial"
	PresentationProposalSent    State = "PresentationProposalSent"
	PresentationRequestReceived State = "PresentationRequestReceived"
	PresentationPrepared        State = "PresentationPrepared"
	PresentationSent            State = "PresentationSent"
	Finished                    State = "Finished"
	Failed                      State = "Failed"
)

func (s State) String() string { return string(s) }

type Prover struct {
	State         State                      `json:"state"`
	Thid          string                     `json:"thread_id"`
	Proposal      *presentproof.Propose      `json:"proposal,omitempty"`
	Request       *presentproof.Request      `json:"request,omitempty"`
	Presentation  *presentproof.Presentation `json:"presentation,omitempty"`
	ProblemReport *common.ProblemReport      `json:"problem_report,omitempty"`
	Status        psm.Status                 `json:"status"`
}

func New() Prover {
	return Prover{State: Initial, Status: psm.StatusUndefined}
}

// FromRequest returns a Prover for the exchange the verifier started.
func FromRequest(r *presentproof.Request) Prover {
	return Prover{
		State:   PresentationRequestReceived,
		Thid:    r.ThreadID(),
		Request: r,
		Status:  psm.StatusUndefined,
	}
}

func (p Prover) Kind() string      { return Kind }
func (p Prover) StateName() string { return string(p.State) }
func (p Prover) ThreadID() string  { return p.Thid }

func (p Prover) Terminal() bool {
	return p.State == Finished || p.State == Failed
}

// SendPresentationProposal builds the proposal. From Initial it starts the
// thread, from PresentationRequestReceived it counters the request.
func (p Prover) SendPresentationProposal(preview presentproof.Preview, comment, pthid string) (Prover, error) {
	const op = "send presentation proposal"

	next := p
	switch p.State {
	case Initial:
		msg := presentproof.NewPropose("", pthid, comment, preview)
		next.Thid = msg.ID
		next.Proposal = msg
	case PresentationRequestReceived:
		next.Proposal = presentproof.NewPropose(p.Thid, "", comment, preview)
		next.Request = nil
	default:
		return psm.Invalid(op, p)
	}
	next.State = PresentationProposalSent
	return psm.Step(op, p, next, nil)
}

func (p Prover) ProposalMsg() (*presentproof.Propose, error) {
	if p.State != PresentationProposalSent {
		return nil, &core.InvalidStateError{Op: "proposal message", State: p.StateName()}
	}
	return p.Proposal, nil
}

func (p Prover) ReceivePresentationRequest(r *presentproof.Request) (Prover, error) {
	const op = "receive presentation request"

	next := p
	switch p.State {
	case Initial:
		next.Thid = r.ThreadID()
	case PresentationProposalSent:
		if err := thread.Verify(p.Thid, r); err != nil {
			return psm.Step(op, p, p, err)
		}
	default:
		return psm.Invalid(op, p)
	}
	next.State = PresentationRequestReceived
	next.Request = r
	return psm.Step(op, p, next, nil)
}

// ProofRequest returns the proof request the verifier sent.
func (p Prover) ProofRequest() (*proof.Request, error) {
	if p.Request == nil {
		return nil, &core.InvalidStateError{Op: "proof request", State: p.StateName()}
	}
	data, err := p.Request.ProofRequestJSON()
	if err != nil {
		return nil, core.Kind(core.ErrInvalidJSON, err)
	}
	return proof.ParseRequest(data)
}

// GeneratePresentation creates the proof from the selected credentials.
// Credentials outside the non-revocation interval of the request give
// core.ErrInvalidProof and the state doesn't change.
func (p Prover) GeneratePresentation(
	ctx context.Context,
	ledger core.LedgerRead,
	ac core.Anoncreds,
	selected proof.SelectedCredentials,
	selfAttested map[string]string,
	comment string,
) (Prover, error) {
	const op = "generate presentation"

	if p.State != PresentationRequestReceived {
		return psm.Invalid(op, p)
	}
	next, err := p.generate(ctx, ledger, ac, selected, selfAttested, comment)
	return psm.Step(op, p, next, err)
}

func (p Prover) generate(
	ctx context.Context,
	ledger core.LedgerRead,
	ac core.Anoncreds,
	selected proof.SelectedCredentials,
	selfAttested map[string]string,
	comment string,
) (next Prover, err error) {
	defer err2.Handle(&err, "prover %s", p.Thid)

	reqJSON, err := p.Request.ProofRequestJSON()
	if err != nil {
		return p, core.Kind(core.ErrInvalidJSON, err)
	}
	proofJSON := try.To1(proof.CreateProof(ctx, ledger, ac, reqJSON, selected, selfAttested))

	next = p
	next.State = PresentationPrepared
	next.Presentation = presentproof.NewPresentation(p.Thid, comment, proofJSON)
	return next, nil
}

func (p Prover) PresentationMsg() (*presentproof.Presentation, error) {
	if p.Presentation == nil {
		return nil, &core.InvalidStateError{Op: "presentation message", State: p.StateName()}
	}
	return p.Presentation, nil
}

// SendPresentation sends the prepared presentation and waits for the
// verifier's ack.
func (p Prover) SendPresentation(ctx context.Context, s didcomm.Sender) (Prover, error) {
	const op = "send presentation"

	if p.State != PresentationPrepared {
		return psm.Invalid(op, p)
	}
	if err := s.Send(ctx, p.Presentation); err != nil {
		return psm.Step(op, p, p, core.Backend(err))
	}
	next := p
	next.State = PresentationSent
	if p.Presentation.PleaseAck == nil {
		next.State = Finished
		next.Status = psm.StatusSuccess
	}
	return psm.Step(op, p, next, nil)
}

// DeclinePresentationRequest ends the exchange. ProblemReportMsg returns the
// report to send.
func (p Prover) DeclinePresentationRequest(reason string) (Prover, error) {
	const op = "decline presentation request"

	if p.State != PresentationRequestReceived && p.State != PresentationPrepared {
		return psm.Invalid(op, p)
	}
	if reason == "" {
		reason = "presentation request declined"
	}
	next := p
	next.State = Failed
	next.Status = psm.StatusDeclined
	next.ProblemReport = common.NewProblemReport(pltype.PresentProofProblemReport,
		p.Thid, common.ProblemRequestNotAccepted, reason)
	return psm.Step(op, p, next, nil)
}

func (p Prover) ReceivePresentationAck(ack *common.Ack) (Prover, error) {
	const op = "receive presentation ack"

	if p.State != PresentationSent {
		return psm.Invalid(op, p)
	}
	if err := thread.Verify(p.Thid, ack); err != nil {
		return psm.Step(op, p, p, err)
	}
	next := p
	next.State = Finished
	next.Status = psm.StatusSuccess
	return psm.Step(op, p, next, nil)
}

// ReceiveProblemReport fails the exchange, e.g. when the verifier rejects
// the presentation. In a terminal state the report is absorbed.
func (p Prover) ReceiveProblemReport(pr *common.ProblemReport) (Prover, error) {
	const op = "receive problem report"

	if p.Terminal() {
		return psm.Absorb(op, p)
	}
	if err := thread.Verify(p.Thid, pr); err != nil {
		return psm.Step(op, p, p, err)
	}
	glog.Warningf("prover %s got problem report: %s", p.Thid, pr.Reason())
	next := p
	next.State = Failed
	next.Status = psm.StatusFailed
	next.ProblemReport = pr
	return psm.Step(op, p, next, nil)
}

func (p Prover) ProblemReportMsg() (*common.ProblemReport, error) {
	if p.ProblemReport == nil {
		return nil, &core.InvalidStateError{Op: "problem report", State: p.StateName()}
	}
	return p.ProblemReport, nil
}

func (p Prover) PresentationStatus() psm.Status {
	return p.Status
}
