package connection

import (
	"context"

	"github.com/findy-network/findy-exchange/agent/psm"
	"github.com/findy-network/findy-exchange/agent/thread"
	"github.com/findy-network/findy-exchange/core"
	"github.com/findy-network/findy-exchange/std/common"
	"github.com/findy-network/findy-exchange/std/didexchange"
	"github.com/findy-network/findy-exchange/std/didexchange/invitation"
	"github.com/findy-network/findy-exchange/std/didexchange/signature"
	sov "github.com/findy-network/findy-exchange/std/sov/did"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

const ResponderKind = "didexchange-responder"

// Responder is the inviter side. Until the request arrives its thread id is
// the invitation id, after that the id of the request.
type Responder struct {
	State         State                  `json:"state"`
	Thid          string                 `json:"thread_id"`
	Invitation    *invitation.Invitation `json:"invitation"`
	InvitationKey string                 `json:"invitation_key"`
	Request       *didexchange.Request   `json:"request,omitempty"`
	Response      *didexchange.Response  `json:"response,omitempty"`
	Pairwise      *Pairwise              `json:"pairwise,omitempty"`
	ProblemReport *common.ProblemReport  `json:"problem_report,omitempty"`
	Status        psm.Status             `json:"status"`
}

// Invite creates the invitation key and the invitation for our service.
func Invite(
	ctx context.Context,
	w core.Wallet,
	label, endpoint string,
	routingKeys []string,
) (r Responder, err error) {
	defer err2.Handle(&err, "invite")

	_, verkey := try.To2(w.CreateAndStoreDID(ctx, ""))
	inv := invitation.New(label, endpoint, verkey, routingKeys)
	glog.V(1).Infoln("invitation", inv.ID, "created")
	return Responder{
		State:         Initial,
		Thid:          inv.ID,
		Invitation:    inv,
		InvitationKey: verkey,
		Status:        psm.StatusUndefined,
	}, nil
}

func (r Responder) Kind() string      { return ResponderKind }
func (r Responder) StateName() string { return string(r.State) }
func (r Responder) ThreadID() string  { return r.Thid }
func (r Responder) Terminal() bool    { return terminal(r.State) }

func (r Responder) ReceiveRequest(req *didexchange.Request) (Responder, error) {
	const op = "receive request"

	if r.State != Initial {
		return psm.Invalid(op, r)
	}
	if err := thread.Verify(r.Invitation.ID, req); err != nil {
		return psm.Step(op, r, r, err)
	}
	if _, err := req.Doc(); err != nil {
		return psm.Step(op, r, r, core.Kind(core.ErrInvalidJSON, err))
	}
	next := r
	next.State = RequestReceived
	next.Thid = req.ThreadID()
	next.Request = req
	return psm.Step(op, r, next, nil)
}

// SendResponse creates our pairwise DID, signs its document with the
// invitation key and sends the response to the requester's service.
func (r Responder) SendResponse(
	ctx context.Context,
	w core.Wallet,
	t core.Transport,
	endpoint string,
	routingKeys []string,
) (Responder, error) {
	const op = "send response"

	if r.State != RequestReceived {
		return psm.Invalid(op, r)
	}
	next, err := r.respond(ctx, w, t, endpoint, routingKeys)
	return psm.Step(op, r, next, err)
}

func (r Responder) respond(
	ctx context.Context,
	w core.Wallet,
	t core.Transport,
	endpoint string,
	routingKeys []string,
) (next Responder, err error) {
	defer err2.Handle(&err, "responder %s", r.Thid)

	theirDoc := try.To1(r.Request.Doc())
	did, verkey := try.To2(w.CreateAndStoreDID(ctx, ""))
	msg := try.To1(didexchange.NewResponse(r.Thid, sov.NewDoc(did, verkey, endpoint, routingKeys)))
	try.To(signature.Sign(ctx, w, r.InvitationKey, msg.DIDDoc))

	pw := &Pairwise{MyDID: did, MyVerKey: verkey, TheirLabel: r.Request.Label}
	try.To(pw.setTheirs(w, theirDoc))
	conn := try.To1(connect(pw, w, t, r.State))
	try.To(conn.Send(ctx, msg))

	next = r
	next.State = ResponseSent
	next.Response = msg
	next.Pairwise = pw
	return next, nil
}

func (r Responder) ReceiveComplete(c *didexchange.Complete) (Responder, error) {
	const op = "receive complete"

	if r.State != ResponseSent {
		return psm.Invalid(op, r)
	}
	if err := thread.Verify(r.Thid, c); err != nil {
		return psm.Step(op, r, r, err)
	}
	next := r
	next.State = Completed
	next.Status = psm.StatusSuccess
	return psm.Step(op, r, next, nil)
}

// RejectRequest refuses the request. ProblemReportMsg returns the report to
// send.
func (r Responder) RejectRequest(reason string) (Responder, error) {
	const op = "reject request"

	if r.State != RequestReceived {
		return psm.Invalid(op, r)
	}
	next := r
	next.State = Failed
	next.Status = psm.StatusDeclined
	next.ProblemReport = problemReport(r.Thid, common.ProblemRequestNotAccepted, reason)
	return psm.Step(op, r, next, nil)
}

func (r Responder) ProblemReportMsg() (*common.ProblemReport, error) {
	if r.ProblemReport == nil {
		return nil, &core.InvalidStateError{Op: "problem report", State: r.StateName()}
	}
	return r.ProblemReport, nil
}

// Connection returns the connection to the invitee once the response is
// sent.
func (r Responder) Connection(w core.Wallet, t core.Transport) (*Connection, error) {
	return connect(r.Pairwise, w, t, r.State)
}

// ReceiveProblemReport fails the exchange. In a terminal state the report is
// absorbed.
func (r Responder) ReceiveProblemReport(pr *common.ProblemReport) (Responder, error) {
	const op = "receive problem report"

	if r.Terminal() {
		return psm.Absorb(op, r)
	}
	if err := thread.Verify(r.Thid, pr); err != nil {
		return psm.Step(op, r, r, err)
	}
	glog.Warningf("responder %s got problem report: %s", r.Thid, pr.Reason())
	next := r
	next.State = Failed
	next.Status = psm.StatusFailed
	next.ProblemReport = pr
	return psm.Step(op, r, next, nil)
}

func (r Responder) ConnectionStatus() psm.Status {
	return r.Status
}
