/*
Package aries is the inbound message registry. The std packages register their
message types here in their init functions, and Parse maps incoming JSON to the
correct Go struct by its @type. Unknown types are parsed to the generic Msg.
*/
package aries

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/findy-network/findy-exchange/agent/didcomm"
	"github.com/findy-network/findy-exchange/agent/pltype"
	"github.com/findy-network/findy-exchange/core"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// NewFn returns a new zero message to unmarshal into.
type NewFn func() didcomm.MessageHdr

var Creator = &Factor{factors: make(map[string]NewFn)}

type Factor struct {
	l       sync.RWMutex
	factors map[string]NewFn
}

// Add registers message type. Both type prefixes are accepted on parsing.
func (f *Factor) Add(t string, fn NewFn) {
	f.l.Lock()
	defer f.l.Unlock()
	f.factors[pltype.Normalize(t)] = fn
}

func (f *Factor) get(t string) (fn NewFn, ok bool) {
	f.l.RLock()
	defer f.l.RUnlock()
	fn, ok = f.factors[t]
	return fn, ok
}

// Msg is used for message types we haven't registered. It keeps the whole
// message for the caller.
type Msg struct {
	didcomm.Header
	Raw json.RawMessage `json:"-"`
}

// Parse creates a message in correct Go struct type. The @type is normalized
// to the legacy prefix. Malformed JSON and messages without @type or @id give
// core.ErrInvalidJSON.
func Parse(data []byte) (m didcomm.MessageHdr, err error) {
	defer err2.Handle(&err, func(err error) error {
		return core.Kind(core.ErrInvalidJSON, fmt.Errorf("parse message: %w", err))
	})

	var hdr didcomm.Header
	try.To(json.Unmarshal(data, &hdr))
	if hdr.Type == "" || hdr.ID == "" {
		return nil, fmt.Errorf("missing @type or @id")
	}
	t := pltype.Normalize(hdr.Type)

	fn, ok := Creator.get(t)
	if !ok {
		glog.V(3).Infoln("no registered type for:", t)
		msg := &Msg{Header: hdr, Raw: append(json.RawMessage(nil), data...)}
		msg.Type = t
		return msg, nil
	}
	m = fn()
	try.To(json.Unmarshal(data, m))
	m.Hdr().Type = t
	return m, nil
}
