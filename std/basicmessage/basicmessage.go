// Package basicmessage is the Aries basic message, RFC 0095.
package basicmessage

import (
	"time"

	"github.com/findy-network/findy-exchange/agent/aries"
	"github.com/findy-network/findy-exchange/agent/didcomm"
	"github.com/findy-network/findy-exchange/agent/pltype"
)

func init() {
	aries.Creator.Add(pltype.BasicMessageSend, func() didcomm.MessageHdr { return new(Basicmessage) })
}

// New returns a basic message sent now. Each basic message starts its own
// thread.
func New(content string) *Basicmessage {
	return &Basicmessage{
		Header:   didcomm.NewHeader(pltype.BasicMessageSend, nil),
		Content:  content,
		SentTime: AriesTime{Time: time.Now()},
	}
}
