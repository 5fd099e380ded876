package prot

import (
	"context"
	"fmt"
	"sync"

	"github.com/findy-network/findy-exchange/agent/aries"
	"github.com/findy-network/findy-exchange/agent/didcomm"
	"github.com/findy-network/findy-exchange/agent/pltype"
	"github.com/findy-network/findy-exchange/agent/sec"
	"github.com/findy-network/findy-exchange/core"
	"github.com/findy-network/findy-exchange/std/common"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// maxHops limits the forward layers we unwrap from one inbound envelope.
const maxHops = 8

// Inbound is an opened and parsed message.
type Inbound struct {
	Msg          didcomm.MessageHdr
	SenderKey    string // empty when anoncrypted
	RecipientKey string
}

// Handler processes the inbound messages of one protocol family.
type Handler func(ctx context.Context, in Inbound) error

// Processor opens inbound envelopes and routes the messages to the handler
// of their protocol family. Forward messages to our own keys are unwrapped,
// other forwards are core.ErrUnimplemented since we don't mediate.
type Processor struct {
	W    core.Wallet
	Keys sec.KeyFinder

	l        sync.RWMutex
	handlers map[string]Handler
}

func NewProcessor(w core.Wallet, keys sec.KeyFinder) *Processor {
	return &Processor{W: w, Keys: keys, handlers: make(map[string]Handler)}
}

// Add sets the handler of the protocol family, e.g. pltype.ProtocolIssueCredential.
func (p *Processor) Add(family string, h Handler) {
	p.l.Lock()
	defer p.l.Unlock()
	p.handlers[family] = h
}

func (p *Processor) handler(family string) (Handler, bool) {
	p.l.RLock()
	defer p.l.RUnlock()
	h, ok := p.handlers[family]
	return h, ok
}

// Process handles one inbound envelope.
func (p *Processor) Process(ctx context.Context, data []byte) (err error) {
	defer err2.Handle(&err, "process")

	in := try.To1(p.open(ctx, data))
	family := pltype.Family(in.Msg.Hdr().Type)
	h, ok := p.handler(family)
	if !ok {
		return core.Errorf(core.ErrUnimplemented, "no handler for %s", in.Msg.Hdr().Type)
	}
	glog.V(3).Infof("%s %s to %s handler", in.Msg.Hdr().Type, in.Msg.Hdr().ID, family)
	return h(ctx, in)
}

func (p *Processor) open(ctx context.Context, data []byte) (in Inbound, err error) {
	defer err2.Handle(&err)

	for hop := 0; hop < maxHops; hop++ {
		u := try.To1(sec.Open(ctx, p.W, data))
		m := try.To1(aries.Parse(u.Message))
		fwd, ok := m.(*common.Forward)
		if !ok {
			return Inbound{Msg: m, SenderKey: u.SenderKey, RecipientKey: u.RecipientKey}, nil
		}
		if !p.ours(fwd.To) {
			return in, core.Errorf(core.ErrUnimplemented, "forward to %s isn't ours", fwd.To)
		}
		data = try.To1(sec.Forwarded(m, fwd.To))
		glog.V(5).Infof("forward unwrapped for %s", fwd.To)
	}
	return in, fmt.Errorf("more than %d forward layers", maxHops)
}

func (p *Processor) ours(verkey string) bool {
	if p.Keys == nil {
		return false
	}
	_, ok := p.Keys.PrivateKey(verkey)
	return ok
}
