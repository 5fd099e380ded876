/*
Package prot has the helpers to run many protocol exchanges in one agent. Book
persists the state machines by role and thread id and finds the exchange of an
inbound message. Processor opens inbound envelopes and routes the messages by
protocol family.
*/
package prot

import (
	"fmt"
	"sync"
	"time"

	"github.com/findy-network/findy-exchange/agent/didcomm"
	"github.com/findy-network/findy-exchange/agent/psm"
	"github.com/findy-network/findy-exchange/agent/storage/api"
	"github.com/findy-network/findy-exchange/agent/thread"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/samber/lo"
)

// Book keeps the exchanges. Records of one exchange must be written by one
// goroutine at a time, different exchanges are independent.
type Book struct {
	db *psm.DB

	l    sync.Mutex
	subs map[int]chan Notification
	next int
}

func NewBook(p api.Provider) (b *Book, err error) {
	defer err2.Handle(&err, "new book")

	return &Book{
		db:   try.To1(psm.NewDB(p)),
		subs: make(map[int]chan Notification),
	}, nil
}

// Start saves the new machine. startedByUs tells if we send the first
// message of the exchange.
func (b *Book) Start(op string, m psm.Machine, startedByUs bool) (err error) {
	defer err2.Handle(&err, "start %s", m.Kind())

	p := &psm.PSM{Key: psm.NewStateKey(m), StartedByUs: startedByUs}
	try.To(p.Update(op, m))
	try.To(b.db.AddPSM(p))
	b.notify(p, op)
	return nil
}

// Record saves next, the result of op on from. If the thread id changed, e.g.
// the DID exchange responder moves from the invitation id to the request
// thread, the history moves to the new key.
func (b *Book) Record(op string, from, next psm.Machine) (err error) {
	defer err2.Handle(&err, "record %s %s", next.Kind(), op)

	oldKey := psm.NewStateKey(from)
	p := try.To1(b.db.GetPSM(oldKey))
	try.To(p.Update(op, next))
	p.Key = psm.NewStateKey(next)
	try.To(b.db.AddPSM(p))
	if p.Key != oldKey {
		glog.V(3).Infof("exchange %s moved to %s", oldKey, p.Key)
		try.To(b.db.RmPSM(oldKey))
	}
	b.notify(p, op)
	return nil
}

// Load reads the latest machine of the exchange to m, which is a pointer to
// the machine of the kind.
func (b *Book) Load(kind, thid string, m psm.Machine) (err error) {
	defer err2.Handle(&err, "load %s %s", kind, thid)

	p := try.To1(b.db.GetPSM(psm.StateKey{Kind: kind, ThreadID: thid}))
	try.To(p.Load(m))
	return nil
}

func (b *Book) Remove(kind, thid string) error {
	return b.db.RmPSM(psm.StateKey{Kind: kind, ThreadID: thid})
}

// Find returns the thread id of the kind's exchange the message belongs to.
// The declared thread, the parent thread and the message id are tried in
// that order. Nothing found is api.ErrNotFound.
func (b *Book) Find(kind string, m didcomm.MessageHdr) (thid string, err error) {
	h := m.Hdr()
	for _, id := range lo.Uniq(lo.Compact([]string{h.Thid(), h.Pthid(), h.ID})) {
		_, err := b.db.GetPSM(psm.StateKey{Kind: kind, ThreadID: id})
		if api.IsNotFound(err) {
			continue
		} else if err != nil {
			return "", fmt.Errorf("find %s: %w", kind, err)
		}
		if err := thread.Verify(id, m); err != nil {
			return "", err
		}
		glog.V(3).Infof("%s %s belongs to %s %s", h.Type, h.ID, kind, id)
		return id, nil
	}
	return "", fmt.Errorf("no %s exchange for %s: %w", kind, h.ID, api.ErrNotFound)
}

// Next selects the message the exchange processes next from the candidates.
func (b *Book) Next(kind, thid string, msgs []didcomm.MessageHdr) (didcomm.MessageHdr, int, error) {
	if _, err := b.db.GetPSM(psm.StateKey{Kind: kind, ThreadID: thid}); err != nil {
		return nil, -1, fmt.Errorf("next of %s %s: %w", kind, thid, err)
	}
	return thread.Select(thid, msgs)
}

// Status is the summary of one exchange.
type Status struct {
	Kind        string    `json:"kind"`
	ThreadID    string    `json:"thread_id"`
	State       string    `json:"state"`
	Ready       bool      `json:"ready"`
	StartedByUs bool      `json:"started_by_us"`
	Updated     time.Time `json:"updated"`
}

func status(p *psm.PSM) Status {
	s := Status{
		Kind:        p.Key.Kind,
		ThreadID:    p.Key.ThreadID,
		Ready:       p.IsReady(),
		StartedByUs: p.StartedByUs,
		Updated:     time.Unix(0, p.Timestamp()),
	}
	if last := p.LastState(); last != nil {
		s.State = last.Name
	}
	return s
}

func (b *Book) Status(kind, thid string) (s Status, err error) {
	defer err2.Handle(&err, "status of %s %s", kind, thid)

	return status(try.To1(b.db.GetPSM(psm.StateKey{Kind: kind, ThreadID: thid}))), nil
}

// Pending returns the exchanges of the kind which aren't in terminal state.
// Empty kind means all kinds.
func (b *Book) Pending(kind string) (_ []Status, err error) {
	defer err2.Handle(&err, "pending %s", kind)

	psms := try.To1(b.db.All(kind))
	return lo.FilterMap(psms, func(p *psm.PSM, _ int) (Status, bool) {
		return status(p), !p.IsReady()
	}), nil
}
