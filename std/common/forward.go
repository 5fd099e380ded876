package common

import (
	"encoding/json"

	"github.com/findy-network/findy-exchange/agent/aries"
	"github.com/findy-network/findy-exchange/agent/didcomm"
	"github.com/findy-network/findy-exchange/agent/pltype"
)

// Forward route forward message.
// https://github.com/hyperledger/aries-rfcs/blob/main/concepts/0094-cross-domain-messaging/README.md#corerouting10forward
type Forward struct {
	didcomm.Header
	To  string          `json:"to"`
	Msg json.RawMessage `json:"msg"`
}

func init() {
	aries.Creator.Add(pltype.RoutingForward, func() didcomm.MessageHdr { return new(Forward) })
}

// NewForward wraps already packed msg to the next hop.
func NewForward(to string, msg []byte) *Forward {
	return &Forward{
		Header: didcomm.NewHeader(pltype.RoutingForward, nil),
		To:     to,
		Msg:    json.RawMessage(msg),
	}
}
