package core

import (
	"errors"
	"fmt"
)

// Error kinds. Use errors.Is to test an error against them.
var (
	ErrInvalidState   = errors.New("invalid state")
	ErrThreadMismatch = errors.New("thread mismatch")
	ErrAuthentication = errors.New("authentication error")
	ErrInvalidJSON    = errors.New("invalid json")
	ErrInvalidProof   = errors.New("invalid proof")
	ErrProofRejected  = errors.New("proof rejected")
	ErrBackend        = errors.New("backend error")
	ErrUnimplemented  = errors.New("unimplemented")
	ErrNotReady       = errors.New("not ready")
)

// InvalidStateError tells that Op isn't allowed in State. The machine the
// error came with is the unchanged input.
type InvalidStateError struct {
	Op    string
	State string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: %s not allowed in state %s", ErrInvalidState, e.Op, e.State)
}

func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}

func InvalidState(op string, state fmt.Stringer) error {
	return &InvalidStateError{Op: op, State: state.String()}
}

// ThreadMismatchError carries both the thread id the exchange expected and
// the one the message declared.
type ThreadMismatchError struct {
	Expected string
	Received string
	MsgType  string
}

func (e *ThreadMismatchError) Error() string {
	return fmt.Sprintf("%s: %s declares thread %q, expected %q",
		ErrThreadMismatch, e.MsgType, e.Received, e.Expected)
}

func (e *ThreadMismatchError) Is(target error) bool {
	return target == ErrThreadMismatch
}

type kindError struct {
	kind error
	err  error
}

func (e *kindError) Error() string {
	return e.kind.Error() + ": " + e.err.Error()
}

func (e *kindError) Unwrap() []error {
	return []error{e.kind, e.err}
}

// Backend wraps a ledger, storage or transport failure. Both ErrBackend and
// the original error stay reachable with errors.Is and errors.As.
func Backend(err error) error {
	if err == nil || errors.Is(err, ErrBackend) {
		return err
	}
	return &kindError{kind: ErrBackend, err: err}
}

// Kind wraps err with the given kind unless it already has it.
func Kind(kind, err error) error {
	if err == nil || errors.Is(err, kind) {
		return err
	}
	return &kindError{kind: kind, err: err}
}

// Errorf builds an error of the given kind.
func Errorf(kind error, format string, a ...any) error {
	return &kindError{kind: kind, err: fmt.Errorf(format, a...)}
}
