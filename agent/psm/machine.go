/*
Package psm is the protocol state machine core. Protocol roles implement
Machine as value types: every operation returns the next machine and an error,
and on error the returned machine is the unchanged input. Step enforces that
and counts the transitions.

Machines are persisted in a versioned JSON envelope:

	{"version": 1, "kind": "issuer", "state": "OfferSet", "data": {...}}
*/
package psm

import (
	"encoding/json"
	"fmt"

	"github.com/findy-network/findy-exchange/core"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// Version is the current envelope version.
const Version = 1

// Machine is the protocol role state machine.
type Machine interface {
	// Kind names the role, e.g. "issuer". It must be constant per type.
	Kind() string
	StateName() string
	ThreadID() string
	// Terminal tells if the machine accepts no more state changing events.
	Terminal() bool
}

type Envelope struct {
	Version int             `json:"version"`
	Kind    string          `json:"kind"`
	State   string          `json:"state"`
	Data    json.RawMessage `json:"data"`
}

// Marshal returns the machine in the versioned envelope.
func Marshal(m Machine) (_ []byte, err error) {
	defer err2.Handle(&err, "marshal %s", m.Kind())

	return json.Marshal(Envelope{
		Version: Version,
		Kind:    m.Kind(),
		State:   m.StateName(),
		Data:    try.To1(json.Marshal(m)),
	})
}

// Unmarshal reads the envelope into m, which must be a pointer to the
// machine of the right kind.
func Unmarshal(data []byte, m Machine) (err error) {
	defer err2.Handle(&err, func(err error) error {
		return fmt.Errorf("unmarshal machine: %w", core.Kind(core.ErrInvalidJSON, err))
	})

	var env Envelope
	try.To(json.Unmarshal(data, &env))
	switch {
	case env.Version != Version:
		return fmt.Errorf("envelope version %d not supported", env.Version)
	case env.Kind != m.Kind():
		return fmt.Errorf("envelope kind %q, expected %q", env.Kind, m.Kind())
	}
	try.To(json.Unmarshal(env.Data, m))
	if m.StateName() != env.State {
		return fmt.Errorf("envelope state %q, data state %q", env.State, m.StateName())
	}
	return nil
}

// Peek returns the envelope without decoding the machine data.
func Peek(data []byte) (env Envelope, err error) {
	if err = json.Unmarshal(data, &env); err != nil {
		return env, core.Kind(core.ErrInvalidJSON, err)
	}
	return env, nil
}

// Step finishes the operation op. If err is set it returns the unchanged
// from machine, otherwise the next one. The transition is logged and counted.
func Step[M Machine](op string, from, next M, err error) (M, error) {
	if err != nil {
		transitionErrors.WithLabelValues(from.Kind(), op).Inc()
		glog.V(1).Infof("%s %s in %s: %v", from.Kind(), op, from.StateName(), err)
		return from, err
	}
	transitions.WithLabelValues(from.Kind(), from.StateName(), next.StateName()).Inc()
	glog.V(1).Infof("%s %s: %s -> %s (%s)", from.Kind(), op,
		from.StateName(), next.StateName(), next.ThreadID())
	return next, nil
}

// Invalid returns the from machine with core.InvalidStateError.
func Invalid[M Machine](op string, from M) (M, error) {
	return Step(op, from, from, &core.InvalidStateError{Op: op, State: from.StateName()})
}

// Status is the outcome of an exchange. It's Undefined until the machine is
// terminal.
type Status string

const (
	StatusUndefined Status = "Undefined"
	StatusSuccess   Status = "Success"
	StatusFailed    Status = "Failed"
	StatusDeclined  Status = "Declined"
)

// Absorb is for problem reports received in a terminal state: they are
// logged and the machine stays as it is.
func Absorb[M Machine](op string, m M) (M, error) {
	glog.Warningf("%s %s absorbed in terminal state %s (%s)",
		m.Kind(), op, m.StateName(), m.ThreadID())
	return m, nil
}
