package psm

import (
	"time"

	"github.com/findy-network/findy-common-go/dto"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// StateKey is the primary key of a machine: role kind and thread id. Both
// parties of the exchange use the same thread id, so the kind is needed when
// both ends live in the same store.
type StateKey struct {
	Kind     string
	ThreadID string
}

func NewStateKey(m Machine) StateKey {
	return StateKey{Kind: m.Kind(), ThreadID: m.ThreadID()}
}

func (key StateKey) Data() []byte {
	return []byte(key.String())
}

func (key StateKey) String() string {
	return key.Kind + "|" + key.ThreadID
}

// State is one step in the history of the machine.
type State struct {
	Timestamp int64
	Op        string
	Name      string
}

// PSM is the persisted machine. It works in event sourcing principle, every
// state transition is saved to its States. Machine is the envelope of the
// latest state.
type PSM struct {
	Key StateKey

	// StartedByUs tells if we sent the first protocol message.
	StartedByUs bool

	// States has all of the state history of this PSM in timestamp order
	States []State

	Machine []byte
	Ready   bool
}

func NewPSM(d []byte) *PSM {
	p := &PSM{}
	dto.FromGOB(d, p)
	return p
}

func (p *PSM) Data() []byte {
	return dto.ToGOB(p)
}

// Update records the new state of m after op.
func (p *PSM) Update(op string, m Machine) (err error) {
	defer err2.Handle(&err, "psm update")

	p.Machine = try.To1(Marshal(m))
	p.Ready = m.Terminal()
	p.States = append(p.States, State{
		Timestamp: time.Now().UnixNano(),
		Op:        op,
		Name:      m.StateName(),
	})
	return nil
}

// Load decodes the latest machine to m.
func (p *PSM) Load(m Machine) error {
	return Unmarshal(p.Machine, m)
}

func (p *PSM) IsReady() bool {
	return p.Ready
}

func (p *PSM) Timestamp() int64 {
	if state := p.LastState(); state != nil {
		return state.Timestamp
	}
	return 0
}

func (p *PSM) FirstState() *State {
	if len(p.States) > 0 {
		return &p.States[0]
	}
	return nil
}

func (p *PSM) LastState() *State {
	if sCount := len(p.States); sCount > 0 {
		return &p.States[sCount-1]
	}
	return nil
}
