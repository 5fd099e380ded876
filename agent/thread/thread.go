/*
Package thread correlates inbound messages to protocol exchanges. Every
message type has a matching rule. Messages which start a thread (invitations,
queries and forwards) are matched by their own id. Messages which may arrive
before the thread exists may omit the thread decorator. All the others must
declare the exchange thread either as a thread or as a parent thread.
*/
package thread

import (
	"errors"

	"github.com/findy-network/findy-exchange/agent/didcomm"
	"github.com/findy-network/findy-exchange/agent/pltype"
	"github.com/findy-network/findy-exchange/core"
	"github.com/golang/glog"
)

// Rule is the way the message type is matched to the thread id.
type Rule int

const (
	// ExactOrParent matches thid or pthid.
	ExactOrParent Rule = iota
	// OptionalExact matches messages without thread decorator, otherwise
	// like ExactOrParent.
	OptionalExact
	// ByID matches the message id.
	ByID
)

func (r Rule) String() string {
	switch r {
	case ExactOrParent:
		return "ExactOrParent"
	case OptionalExact:
		return "OptionalExact"
	case ByID:
		return "ByID"
	}
	return "Unknown"
}

// rules are keyed by the normalized message type. Types not found here use
// ExactOrParent.
var rules = map[string]Rule{
	pltype.ConnectionInvitation:  ByID,
	pltype.OutOfBandInvitation:   ByID,
	pltype.DiscoverFeaturesQuery: ByID,
	pltype.RoutingForward:        ByID,

	pltype.BasicMessageSend:             OptionalExact,
	pltype.ConnectionRequest:            OptionalExact,
	pltype.IssueCredentialPropose:       OptionalExact,
	pltype.IssueCredentialOffer:         OptionalExact,
	pltype.IssueCredentialRequest:       OptionalExact,
	pltype.IssueCredentialProblemReport: OptionalExact,
	pltype.PresentProofPropose:          OptionalExact,
	pltype.PresentProofRequest:          OptionalExact,
	pltype.PresentProofProblemReport:    OptionalExact,
	pltype.NotificationProblemReport:    OptionalExact,
	pltype.RevocationNotification:       OptionalExact,
	pltype.TrustPingPing:                OptionalExact,

	pltype.DIDExchangeResponse:      ExactOrParent,
	pltype.DIDExchangeComplete:      ExactOrParent,
	pltype.ConnectionResponse:       ExactOrParent,
	pltype.ConnectionProblem:        ExactOrParent,
	pltype.IssueCredentialIssue:     ExactOrParent,
	pltype.IssueCredentialACK:       ExactOrParent,
	pltype.PresentProofPresentation: ExactOrParent,
	pltype.PresentProofACK:          ExactOrParent,
	pltype.NotificationAck:          ExactOrParent,
	pltype.DiscoverFeaturesReply:    ExactOrParent,
	pltype.TrustPingResponse:        ExactOrParent,
}

// RuleOf returns the matching rule of the message type. Both type prefixes
// are accepted.
func RuleOf(msgType string) Rule {
	if r, ok := rules[pltype.Normalize(msgType)]; ok {
		return r
	}
	return ExactOrParent
}

// Matches tells if the message belongs to the thread.
func Matches(thid string, m didcomm.MessageHdr) bool {
	h := m.Hdr()
	switch RuleOf(h.Type) {
	case ByID:
		return h.ID == thid
	case OptionalExact:
		if h.Thread == nil {
			return true
		}
		fallthrough
	default:
		return h.Thid() == thid || (h.Pthid() != "" && h.Pthid() == thid)
	}
}

// Verify returns *core.ThreadMismatchError if the message doesn't belong to
// the thread.
func Verify(thid string, m didcomm.MessageHdr) error {
	if Matches(thid, m) {
		return nil
	}
	h := m.Hdr()
	received := h.Thid()
	if RuleOf(h.Type) == ByID {
		received = h.ID
	}
	glog.V(3).Infof("thread mismatch %s: got %q, expected %q", h.Type, received, thid)
	return &core.ThreadMismatchError{
		Expected: thid,
		Received: received,
		MsgType:  h.Type,
	}
}

// Select returns the first message of msgs which belongs to the thread, and
// its index. If nothing matches the error joins the mismatch errors of all
// the candidates. Empty input gives nil message and nil error.
func Select(thid string, msgs []didcomm.MessageHdr) (didcomm.MessageHdr, int, error) {
	var errs []error
	for i, m := range msgs {
		err := Verify(thid, m)
		if err == nil {
			glog.V(3).Infof("thread %s selected %s", thid, m.Hdr().ID)
			return m, i, nil
		}
		errs = append(errs, err)
	}
	return nil, -1, errors.Join(errs...)
}
