package connection_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/findy-network/findy-exchange/agent/aries"
	"github.com/findy-network/findy-exchange/agent/didcomm"
	"github.com/findy-network/findy-exchange/agent/psm"
	"github.com/findy-network/findy-exchange/agent/sec"
	"github.com/findy-network/findy-exchange/agent/ssi"
	"github.com/findy-network/findy-exchange/core"
	"github.com/findy-network/findy-exchange/core/mock"
	"github.com/findy-network/findy-exchange/protocol/connection"
	"github.com/findy-network/findy-exchange/std/basicmessage"
	"github.com/findy-network/findy-exchange/std/common"
	"github.com/findy-network/findy-exchange/std/didexchange"
	"github.com/findy-network/findy-exchange/std/didexchange/signature"
	"github.com/golang/mock/gomock"
	"github.com/lainio/err2/assert"
)

const (
	aliceURL = "http://alice.example/a2a"
	bobURL   = "http://bob.example/a2a"
)

// network keeps the sent envelopes by endpoint.
type network struct {
	inbox map[string][][]byte
}

func newNetwork() *network {
	return &network{inbox: make(map[string][][]byte)}
}

func (n *network) SendMessage(_ context.Context, msg []byte, url string) error {
	n.inbox[url] = append(n.inbox[url], msg)
	return nil
}

func (n *network) take(t *testing.T, url string) []byte {
	t.Helper()
	assert.SLen(n.inbox[url], 1)
	data := n.inbox[url][0]
	n.inbox[url] = nil
	return data
}

func newWallet(t *testing.T) *ssi.Wallet {
	t.Helper()
	w, err := ssi.NewWallet(nil)
	assert.NoError(err)
	return w
}

func wire[T didcomm.MessageHdr](t *testing.T, m T) T {
	t.Helper()
	data, err := json.Marshal(m)
	assert.NoError(err)
	parsed, err := aries.Parse(data)
	assert.NoError(err)
	return parsed.(T)
}

// receive opens the envelope and parses the message in it.
func receive[T didcomm.MessageHdr](t *testing.T, w core.Wallet, data []byte, sender string) T {
	t.Helper()
	u, err := sec.OpenAuth(context.Background(), w, data, sender)
	assert.NoError(err)
	m, err := aries.Parse(u.Message)
	assert.NoError(err)
	return m.(T)
}

type parties struct {
	net    *network
	aw, bw *ssi.Wallet
	r      connection.Responder
	q      connection.Requester
}

// exchange runs the protocol until the requester has the response.
func exchange(t *testing.T) parties {
	t.Helper()
	ctx := context.Background()
	p := parties{net: newNetwork(), aw: newWallet(t), bw: newWallet(t)}

	r, err := connection.Invite(ctx, p.aw, "Alice", aliceURL, nil)
	assert.NoError(err)
	assert.Equal(r.State, connection.Initial)
	assert.Equal(r.ThreadID(), r.Invitation.ID)

	q := connection.FromInvitation(wire(t, r.Invitation))
	q, err = q.SendRequest(ctx, p.bw, p.net, "Bob", bobURL, nil)
	assert.NoError(err)
	assert.Equal(q.State, connection.RequestSent)

	req := receive[*didexchange.Request](t, p.aw, p.net.take(t, aliceURL), q.Pairwise.MyVerKey)
	r, err = r.ReceiveRequest(req)
	assert.NoError(err)
	assert.Equal(r.State, connection.RequestReceived)
	assert.Equal(r.ThreadID(), q.ThreadID())

	r, err = r.SendResponse(ctx, p.aw, p.net, aliceURL, nil)
	assert.NoError(err)
	assert.Equal(r.State, connection.ResponseSent)
	assert.Equal(r.Pairwise.TheirDID, q.Pairwise.MyDID)
	assert.Equal(r.Pairwise.TheirEndpoint, bobURL)
	assert.Equal(r.Pairwise.TheirLabel, "Bob")

	p.r, p.q = r, q
	return p
}

func TestExchange(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	ctx := context.Background()

	p := exchange(t)
	resp := receive[*didexchange.Response](t, p.bw, p.net.take(t, bobURL), p.r.Pairwise.MyVerKey)
	q, err := p.q.ReceiveResponse(p.bw, resp)
	assert.NoError(err)
	assert.Equal(q.State, connection.ResponseReceived)
	assert.Equal(q.Pairwise.TheirDID, p.r.Pairwise.MyDID)
	assert.Equal(q.Pairwise.TheirEndpoint, aliceURL)

	bob, err := q.Connection(p.bw, p.net)
	assert.NoError(err)
	q, err = q.SendComplete(ctx, bob)
	assert.NoError(err)
	assert.Equal(q.State, connection.Completed)
	assert.Equal(q.ConnectionStatus(), psm.StatusSuccess)

	var r connection.Responder
	data, err := psm.Marshal(p.r)
	assert.NoError(err)
	assert.NoError(psm.Unmarshal(data, &r))
	complete := receive[*didexchange.Complete](t, p.aw, p.net.take(t, aliceURL), r.Pairwise.TheirVerKey)
	r, err = r.ReceiveComplete(complete)
	assert.NoError(err)
	assert.Equal(r.State, connection.Completed)

	// the pairwise works both ways
	alice, err := r.Connection(p.aw, p.net)
	assert.NoError(err)
	sent, err := alice.SendBasicMessage(ctx, "hello Bob")
	assert.NoError(err)
	plain, err := q.Pairwise.Pipe(p.bw).Unpack(ctx, p.net.take(t, bobURL))
	assert.NoError(err)
	m, err := aries.Parse(plain)
	assert.NoError(err)
	assert.Equal(m.(*basicmessage.Basicmessage).Content, "hello Bob")
	assert.Equal(m.Hdr().ID, sent.ID)
}

func TestResponseSignature(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	ctx := context.Background()

	p := exchange(t)
	resp := receive[*didexchange.Response](t, p.bw, p.net.take(t, bobURL), p.r.Pairwise.MyVerKey)

	// somebody else than the inviter signs the document
	mallory := newWallet(t)
	_, vk, err := mallory.CreateAndStoreDID(ctx, "")
	assert.NoError(err)
	assert.NoError(signature.Sign(ctx, mallory, vk, resp.DIDDoc))

	q, err := p.q.ReceiveResponse(p.bw, resp)
	assert.That(errors.Is(err, core.ErrAuthentication))
	assert.Equal(q.State, connection.RequestSent)
	_, err = q.Connection(p.bw, p.net)
	assert.That(errors.Is(err, core.ErrInvalidState))

	resp.DIDDoc = nil
	_, err = p.q.ReceiveResponse(p.bw, resp)
	assert.That(errors.Is(err, core.ErrInvalidJSON))
}

func TestThreadMismatch(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	p := exchange(t)
	r, err := p.r.ReceiveComplete(didexchange.NewComplete("other", p.r.Invitation.ID))
	var mismatch *core.ThreadMismatchError
	assert.That(errors.As(err, &mismatch))
	assert.Equal(mismatch.Expected, p.r.ThreadID())
	assert.Equal(r.State, connection.ResponseSent)
}

func TestRejectRequest(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	ctx := context.Background()
	aw, bw, net := newWallet(t), newWallet(t), newNetwork()

	r, err := connection.Invite(ctx, aw, "Alice", aliceURL, nil)
	assert.NoError(err)
	q, err := connection.FromInvitation(r.Invitation).SendRequest(ctx, bw, net, "Bob", bobURL, nil)
	assert.NoError(err)
	req := receive[*didexchange.Request](t, aw, net.take(t, aliceURL), q.Pairwise.MyVerKey)
	r, err = r.ReceiveRequest(req)
	assert.NoError(err)

	r, err = r.RejectRequest("no thanks")
	assert.NoError(err)
	assert.Equal(r.State, connection.Failed)
	assert.Equal(r.ConnectionStatus(), psm.StatusDeclined)
	pr, err := r.ProblemReportMsg()
	assert.NoError(err)
	assert.Equal(pr.Description.Code, common.ProblemRequestNotAccepted)

	q, err = q.ReceiveProblemReport(wire(t, pr))
	assert.NoError(err)
	assert.Equal(q.State, connection.Failed)
	assert.Equal(q.ConnectionStatus(), psm.StatusFailed)

	// absorbed in terminal state, other events are refused
	again, err := q.ReceiveProblemReport(pr)
	assert.NoError(err)
	assert.Equal(again.State, connection.Failed)
	assert.Equal(again.ConnectionStatus(), psm.StatusFailed)
	_, err = again.SendRequest(ctx, bw, net, "Bob", bobURL, nil)
	assert.That(errors.Is(err, core.ErrInvalidState))
	_, err = again.ReceiveResponse(bw, nil)
	assert.That(errors.Is(err, core.ErrInvalidState))
	_, err = again.SendComplete(ctx, nil)
	assert.That(errors.Is(err, core.ErrInvalidState))

	rAgain, err := r.ReceiveProblemReport(wire(t, pr))
	assert.NoError(err)
	assert.Equal(rAgain.State, connection.Failed)
	assert.Equal(rAgain.ConnectionStatus(), psm.StatusDeclined)
	_, err = rAgain.SendResponse(ctx, aw, net, aliceURL, nil)
	assert.That(errors.Is(err, core.ErrInvalidState))
	_, err = rAgain.ReceiveComplete(didexchange.NewComplete(r.ThreadID(), r.Invitation.ID))
	assert.That(errors.Is(err, core.ErrInvalidState))
	_, err = rAgain.RejectRequest("again")
	assert.That(errors.Is(err, core.ErrInvalidState))
	assert.SLen(net.inbox[bobURL], 0)
}

func TestSendRequestTransportError(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tr := mock.NewMockTransport(ctrl)
	tr.EXPECT().SendMessage(gomock.Any(), gomock.Any(), aliceURL).Return(errors.New("connection refused"))

	r, err := connection.Invite(ctx, newWallet(t), "Alice", aliceURL, nil)
	assert.NoError(err)
	q, err := connection.FromInvitation(r.Invitation).SendRequest(ctx, newWallet(t), tr, "Bob", bobURL, nil)
	assert.That(errors.Is(err, core.ErrBackend))
	assert.Equal(q.State, connection.Initial)
}
