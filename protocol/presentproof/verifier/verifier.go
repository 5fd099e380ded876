/*
Package verifier is the verifier role of the Aries present proof protocol
(RFC 0037).

	Initial -> PresentationProposalReceived -> PresentationRequestSent -> PresentationReceived -> Finished
	                                      \-> Failed (rejected)
*/
package verifier

import (
	"context"
	"errors"

	"github.com/findy-network/findy-exchange/agent/pltype"
	"github.com/findy-network/findy-exchange/agent/psm"
	"github.com/findy-network/findy-exchange/agent/thread"
	"github.com/findy-network/findy-exchange/agent/utils"
	"github.com/findy-network/findy-exchange/core"
	"github.com/findy-network/findy-exchange/protocol/presentproof/proof"
	"github.com/findy-network/findy-exchange/std/common"
	"github.com/findy-network/findy-exchange/std/decorator"
	"github.com/findy-network/findy-exchange/std/presentproof"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/tidwall/gjson"
)

const Kind = "verifier"

type State string

const (
	Initial                      State = "Initial"
	PresentationProposalReceived State = "PresentationProposalReceived"
	PresentationRequestSent      State = "PresentationRequestSent"
	PresentationReceived         State = "PresentationReceived"
	Finished                     State = "Finished"
	Failed                       State = "Failed"
)

func (s State) String() string { return string(s) }

// VerificationStatus is the result of the proof check.
type VerificationStatus string

const (
	Unavailable VerificationStatus = "Unavailable"
	Valid       VerificationStatus = "Valid"
	Invalid     VerificationStatus = "Invalid"
)

type Verifier struct {
	State         State                      `json:"state"`
	Thid          string                     `json:"thread_id"`
	Proposal      *presentproof.Propose      `json:"proposal,omitempty"`
	Request       *presentproof.Request      `json:"request,omitempty"`
	Presentation  *presentproof.Presentation `json:"presentation,omitempty"`
	Verification  VerificationStatus         `json:"verification_status"`
	Ack           *common.Ack                `json:"ack,omitempty"`
	ProblemReport *common.ProblemReport      `json:"problem_report,omitempty"`
	Status        psm.Status                 `json:"status"`
}

func New() Verifier {
	return Verifier{
		State:        Initial,
		Thid:         utils.UUID(),
		Verification: Unavailable,
		Status:       psm.StatusUndefined,
	}
}

// FromProposal returns a Verifier for the exchange the prover started.
func FromProposal(p *presentproof.Propose) Verifier {
	return Verifier{
		State:        PresentationProposalReceived,
		Thid:         p.ThreadID(),
		Proposal:     p,
		Verification: Unavailable,
		Status:       psm.StatusUndefined,
	}
}

func (v Verifier) Kind() string      { return Kind }
func (v Verifier) StateName() string { return string(v.State) }
func (v Verifier) ThreadID() string  { return v.Thid }

func (v Verifier) Terminal() bool {
	return v.State == Finished || v.State == Failed
}

// ReceivePresentationProposal handles the prover's proposal, in
// PresentationRequestSent it's a counter proposal to our request.
func (v Verifier) ReceivePresentationProposal(p *presentproof.Propose) (Verifier, error) {
	const op = "receive presentation proposal"

	next := v
	switch v.State {
	case Initial:
		next.Thid = p.ThreadID()
	case PresentationRequestSent:
		if err := thread.Verify(v.Thid, p); err != nil {
			return psm.Step(op, v, v, err)
		}
		next.Request = nil
	default:
		return psm.Invalid(op, v)
	}
	next.State = PresentationProposalReceived
	next.Proposal = p
	return psm.Step(op, v, next, nil)
}

// ProposalRequest builds a proof request from the received proposal.
func (v Verifier) ProposalRequest(name string) (*proof.Request, error) {
	if v.Proposal == nil || v.Proposal.PresentationProposal == nil {
		return nil, &core.InvalidStateError{Op: "proposal request", State: v.StateName()}
	}
	return proof.FromPreview(name, v.Proposal.PresentationProposal), nil
}

// RejectPresentationProposal ends the exchange. ProblemReportMsg returns
// the report to send.
func (v Verifier) RejectPresentationProposal(reason string) (Verifier, error) {
	const op = "reject presentation proposal"

	if v.State != PresentationProposalReceived {
		return psm.Invalid(op, v)
	}
	next := v
	next.State = Failed
	next.Status = psm.StatusDeclined
	next.ProblemReport = common.NewProblemReport(pltype.PresentProofProblemReport,
		v.Thid, common.ProblemProposalRejected, reason)
	return psm.Step(op, v, next, nil)
}

// BuildPresentationRequest sets the proof request. RequestMsg returns the
// message to send.
func (v Verifier) BuildPresentationRequest(req *proof.Request, comment string) (Verifier, error) {
	const op = "build presentation request"

	if v.State != Initial && v.State != PresentationProposalReceived {
		return psm.Invalid(op, v)
	}
	msg := presentproof.NewRequest(v.Thid, comment, req.JSON())
	if v.State == Initial {
		msg.ID = v.Thid
	}
	msg.Timing = decorator.NewTiming()

	next := v
	next.State = PresentationRequestSent
	next.Request = msg
	return psm.Step(op, v, next, nil)
}

func (v Verifier) RequestMsg() (*presentproof.Request, error) {
	if v.Request == nil {
		return nil, &core.InvalidStateError{Op: "request message", State: v.StateName()}
	}
	return v.Request, nil
}

func (v Verifier) ReceivePresentation(p *presentproof.Presentation) (Verifier, error) {
	const op = "receive presentation"

	if v.State != PresentationRequestSent {
		return psm.Invalid(op, v)
	}
	if err := thread.Verify(v.Thid, p); err != nil {
		return psm.Step(op, v, v, err)
	}
	next := v
	next.State = PresentationReceived
	next.Presentation = p
	return psm.Step(op, v, next, nil)
}

// VerifyPresentation checks the received proof. Both outcomes finish the
// exchange: a valid proof is acked, an invalid or rejected one gets a problem
// report. Ledger failures return an error and the presentation can be
// verified again.
func (v Verifier) VerifyPresentation(ctx context.Context, ledger core.LedgerRead, ac core.Anoncreds) (Verifier, error) {
	const op = "verify presentation"

	if v.State != PresentationReceived {
		return psm.Invalid(op, v)
	}
	ok, err := v.validate(ctx, ledger, ac)
	if errors.Is(err, core.ErrBackend) || errors.Is(err, core.ErrUnimplemented) {
		return psm.Step(op, v, v, err)
	}

	next := v
	next.State = Finished
	switch {
	case err == nil && ok:
		next.Verification = Valid
		next.Status = psm.StatusSuccess
		if v.Presentation.PleaseAck != nil {
			next.Ack = common.NewAck(pltype.PresentProofACK, v.Thid)
		}
	case err == nil:
		next.Verification = Invalid
		next.Status = psm.StatusFailed
		next.ProblemReport = common.NewProblemReport(pltype.PresentProofProblemReport,
			v.Thid, common.ProblemInvalidProof, "proof verification failed")
	default:
		glog.Warningf("verifier %s: %v", v.Thid, err)
		code := common.ProblemInvalidProof
		if errors.Is(err, core.ErrProofRejected) {
			code = common.ProblemPresentationRejected
		}
		next.Verification = Invalid
		next.Status = psm.StatusFailed
		next.ProblemReport = common.NewProblemReport(pltype.PresentProofProblemReport,
			v.Thid, code, err.Error())
	}
	return psm.Step(op, v, next, nil)
}

func (v Verifier) validate(ctx context.Context, ledger core.LedgerRead, ac core.Anoncreds) (_ bool, err error) {
	defer err2.Handle(&err)

	proofJSON, err := v.Presentation.ProofJSON()
	if err != nil {
		return false, core.Kind(core.ErrInvalidJSON, err)
	}
	reqJSON, err := v.Request.ProofRequestJSON()
	if err != nil {
		return false, core.Kind(core.ErrInvalidJSON, err)
	}
	return try.To1(proof.ValidateIndyProof(ctx, ledger, ac, proofJSON, reqJSON)), nil
}

func (v Verifier) VerificationStatus() VerificationStatus {
	return v.Verification
}

// AckMsg returns the ack for a valid presentation.
func (v Verifier) AckMsg() (*common.Ack, error) {
	if v.Ack == nil {
		return nil, &core.InvalidStateError{Op: "ack message", State: v.StateName()}
	}
	return v.Ack, nil
}

func (v Verifier) ProblemReportMsg() (*common.ProblemReport, error) {
	if v.ProblemReport == nil {
		return nil, &core.InvalidStateError{Op: "problem report", State: v.StateName()}
	}
	return v.ProblemReport, nil
}

// RevealedAttributes returns the revealed raw values by attribute name.
func (v Verifier) RevealedAttributes() (attrs map[string]string, err error) {
	defer err2.Handle(&err, "revealed attributes")

	if v.Verification != Valid {
		return nil, core.Errorf(core.ErrNotReady, "presentation is %s", v.Verification)
	}
	req := try.To1(proof.ParseRequest(try.To1(v.Request.ProofRequestJSON())))
	proofJSON := try.To1(v.Presentation.ProofJSON())

	attrs = make(map[string]string)
	gjson.GetBytes(proofJSON, "requested_proof.revealed_attrs").ForEach(func(ref, a gjson.Result) bool {
		if info, ok := req.RequestedAttributes[ref.String()]; ok {
			attrs[info.Name] = a.Get("raw").String()
		}
		return true
	})
	gjson.GetBytes(proofJSON, "requested_proof.revealed_attr_groups").ForEach(func(_, g gjson.Result) bool {
		g.Get("values").ForEach(func(name, a gjson.Result) bool {
			attrs[name.String()] = a.Get("raw").String()
			return true
		})
		return true
	})
	gjson.GetBytes(proofJSON, "requested_proof.self_attested_attrs").ForEach(func(ref, a gjson.Result) bool {
		if info, ok := req.RequestedAttributes[ref.String()]; ok {
			attrs[info.Name] = a.String()
		}
		return true
	})
	return attrs, nil
}

// ReceiveProblemReport fails the exchange. In a terminal state the report is
// absorbed.
func (v Verifier) ReceiveProblemReport(pr *common.ProblemReport) (Verifier, error) {
	const op = "receive problem report"

	if v.Terminal() {
		return psm.Absorb(op, v)
	}
	if err := thread.Verify(v.Thid, pr); err != nil {
		return psm.Step(op, v, v, err)
	}
	glog.Warningf("verifier %s got problem report: %s", v.Thid, pr.Reason())
	next := v
	next.State = Failed
	next.Status = psm.StatusFailed
	next.ProblemReport = pr
	return psm.Step(op, v, next, nil)
}
