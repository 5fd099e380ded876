package connection

import (
	"context"

	"github.com/findy-network/findy-exchange/agent/didcomm"
	"github.com/findy-network/findy-exchange/agent/psm"
	"github.com/findy-network/findy-exchange/agent/sec"
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

const RequesterKind = "didexchange-requester"

// Requester is the invitee side. Its thread id is the id of the request.
type Requester struct {
	State         State                  `json:"state"`
	Thid          string                 `json:"thread_id"`
	Invitation    *invitation.Invitation `json:"invitation"`
	Request       *didexchange.Request   `json:"request,omitempty"`
	Response      *didexchange.Response  `json:"response,omitempty"`
	Pairwise      *Pairwise              `json:"pairwise,omitempty"`
	ProblemReport *common.ProblemReport  `json:"problem_report,omitempty"`
	Status        psm.Status             `json:"status"`
}

func FromInvitation(inv *invitation.Invitation) Requester {
	return Requester{State: Initial, Invitation: inv, Status: psm.StatusUndefined}
}

func (r Requester) Kind() string      { return RequesterKind }
func (r Requester) StateName() string { return string(r.State) }
func (r Requester) ThreadID() string  { return r.Thid }
func (r Requester) Terminal() bool    { return terminal(r.State) }

// SendRequest creates our pairwise DID and sends the request to the
// invitation's service. endpoint and routingKeys are ours and go to our DID
// document.
func (r Requester) SendRequest(
	ctx context.Context,
	w core.Wallet,
	t core.Transport,
	label, endpoint string,
	routingKeys []string,
) (Requester, error) {
	const op = "send request"

	if r.State != Initial {
		return psm.Invalid(op, r)
	}
	next, err := r.request(ctx, w, t, label, endpoint, routingKeys)
	return psm.Step(op, r, next, err)
}

func (r Requester) request(
	ctx context.Context,
	w core.Wallet,
	t core.Transport,
	label, endpoint string,
	routingKeys []string,
) (next Requester, err error) {
	defer err2.Handle(&err, "requester of %s", r.Invitation.ID)

	invKey := try.To1(r.Invitation.RecipientKey())
	invRouting := try.To1(r.Invitation.RoutingKeys())
	did, verkey := try.To2(w.CreateAndStoreDID(ctx, ""))
	msg := try.To1(didexchange.NewRequest(r.Invitation.ID, label,
		sov.NewDoc(did, verkey, endpoint, routingKeys)))

	conn := &Connection{
		Pipe: sec.Pipe{
			W:  w,
			In: verkey,
			Out: sec.Out{
				VerKey:      invKey,
				RoutingKeys: invRouting,
				Endpoint:    r.Invitation.Endpoint(),
			},
		},
		Transport: t,
	}
	try.To(conn.Send(ctx, msg))

	next = r
	next.State = RequestSent
	next.Thid = msg.ID
	next.Request = msg
	next.Pairwise = &Pairwise{MyDID: did, MyVerKey: verkey, TheirLabel: r.Invitation.Label}
	return next, nil
}

// ReceiveResponse checks the signature of the attached DID document against
// the invitation key and takes the document as the other end of the
// pairwise. A bad signature is core.ErrAuthentication.
func (r Requester) ReceiveResponse(w core.Wallet, resp *didexchange.Response) (Requester, error) {
	const op = "receive response"

	if r.State != RequestSent {
		return psm.Invalid(op, r)
	}
	if err := thread.Verify(r.Thid, resp); err != nil {
		return psm.Step(op, r, r, err)
	}
	next, err := r.accept(w, resp)
	return psm.Step(op, r, next, err)
}

func (r Requester) accept(w core.Wallet, resp *didexchange.Response) (next Requester, err error) {
	defer err2.Handle(&err, "response to %s", r.Thid)

	if resp.DIDDoc == nil {
		return r, core.Errorf(core.ErrInvalidJSON, "response has no DID doc")
	}
	try.To(signature.Verify(resp.DIDDoc, try.To1(r.Invitation.RecipientKey())))
	doc, err := resp.Doc()
	if err != nil {
		return r, core.Kind(core.ErrInvalidJSON, err)
	}
	pw := *r.Pairwise
	try.To(pw.setTheirs(w, doc))

	next = r
	next.State = ResponseReceived
	next.Response = resp
	next.Pairwise = &pw
	return next, nil
}

// SendComplete closes the exchange. After this the connection is ready at
// both ends.
func (r Requester) SendComplete(ctx context.Context, s didcomm.Sender) (Requester, error) {
	const op = "send complete"

	if r.State != ResponseReceived {
		return psm.Invalid(op, r)
	}
	if err := s.Send(ctx, didexchange.NewComplete(r.Thid, r.Invitation.ID)); err != nil {
		return psm.Step(op, r, r, core.Backend(err))
	}
	next := r
	next.State = Completed
	next.Status = psm.StatusSuccess
	return psm.Step(op, r, next, nil)
}

// Connection returns the connection to the inviter once the response is
// received.
func (r Requester) Connection(w core.Wallet, t core.Transport) (*Connection, error) {
	return connect(r.Pairwise, w, t, r.State)
}

// ReceiveProblemReport fails the exchange. In a terminal state the report is
// absorbed.
func (r Requester) ReceiveProblemReport(pr *common.ProblemReport) (Requester, error) {
	const op = "receive problem report"

	if r.Terminal() {
		return psm.Absorb(op, r)
	}
	if err := thread.Verify(r.Thid, pr); err != nil {
		return psm.Step(op, r, r, err)
	}
	glog.Warningf("requester %s got problem report: %s", r.Thid, pr.Reason())
	next := r
	next.State = Failed
	next.Status = psm.StatusFailed
	next.ProblemReport = pr
	return psm.Step(op, r, next, nil)
}

func (r Requester) ConnectionStatus() psm.Status {
	return r.Status
}
