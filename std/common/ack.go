package common

import (
	"github.com/findy-network/findy-exchange/agent/aries"
	"github.com/findy-network/findy-exchange/agent/didcomm"
	"github.com/findy-network/findy-exchange/agent/pltype"
)

// Ack statuses, RFC 0015
const (
	AckStatusOK      = "OK"
	AckStatusPending = "PENDING"
	AckStatusFail    = "FAIL"
)

// Ack acknowledgement struct
type Ack struct {
	didcomm.Header
	Status string `json:"status,omitempty"`
}

func init() {
	for _, t := range []string{
		pltype.NotificationAck,
		pltype.IssueCredentialACK,
		pltype.PresentProofACK,
	} {
		aries.Creator.Add(t, func() didcomm.MessageHdr { return new(Ack) })
	}
}

// NewAck returns OK ack of the given type to the thread.
func NewAck(msgType, thid string) *Ack {
	return &Ack{
		Header: didcomm.Reply(msgType, thid, ""),
		Status: AckStatusOK,
	}
}
