package prot

import (
	"github.com/findy-network/findy-exchange/agent/psm"
	"github.com/golang/glog"
)

// Notification tells that an exchange was updated.
type Notification struct {
	Key       psm.StateKey
	Op        string
	State     string
	Ready     bool
	Timestamp int64
}

// Subscribe returns a channel of the notifications of all the exchanges and
// a function to cancel the subscription. Notifications are dropped when the
// channel is full.
func (b *Book) Subscribe(buffer int) (<-chan Notification, func()) {
	b.l.Lock()
	defer b.l.Unlock()

	id := b.next
	b.next++
	ch := make(chan Notification, buffer)
	b.subs[id] = ch
	return ch, func() {
		b.l.Lock()
		defer b.l.Unlock()
		if _, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(ch)
		}
	}
}

func (b *Book) notify(p *psm.PSM, op string) {
	n := Notification{
		Key:       p.Key,
		Op:        op,
		Ready:     p.IsReady(),
		Timestamp: p.Timestamp(),
	}
	if last := p.LastState(); last != nil {
		n.State = last.Name
	}

	b.l.Lock()
	defer b.l.Unlock()
	for id, ch := range b.subs {
		select {
		case ch <- n:
		default:
			glog.Warningf("subscriber %d is full, %s dropped", id, p.Key)
		}
	}
}
