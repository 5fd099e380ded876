/*
Package connection is the DID exchange protocol, RFC 0023 1.0. The inviter
runs the Responder and the invitee the Requester. Both end up with a Pairwise
and a Connection to send the other protocols' messages.

	Requester: Initial -> RequestSent -> ResponseReceived -> Completed
	Responder: Initial -> RequestReceived -> ResponseSent -> Completed

Both go to Failed when a problem report arrives or the exchange is refused.
*/
package connection

import (
	"github.com/findy-network/findy-exchange/agent/pltype"
	"github.com/findy-network/findy-exchange/core"
	"github.com/findy-network/findy-exchange/std/common"
)

type State string

const (
	Initial          State = "Initial"
	RequestSent      State = "RequestSent"
	RequestReceived  State = "RequestReceived"
	ResponseSent     State = "ResponseSent"
	ResponseReceived State = "ResponseReceived"
	Completed        State = "Completed"
	Failed           State = "Failed"
)

func (s State) String() string { return string(s) }

func terminal(s State) bool {
	return s == Completed || s == Failed
}

// connect returns the connection of a pairwise whose other end is known.
func connect(pw *Pairwise, w core.Wallet, t core.Transport, state State) (*Connection, error) {
	if pw == nil || pw.TheirVerKey == "" {
		return nil, &core.InvalidStateError{Op: "connection", State: string(state)}
	}
	return &Connection{Pipe: pw.Pipe(w), Transport: t}, nil
}

func problemReport(thid, code, reason string) *common.ProblemReport {
	return common.NewProblemReport(pltype.DIDExchangeProblem, thid, code, reason)
}
