/*
Package exchange is a Go implementation of the Aries credential exchange
protocols between agents: DID exchange, issue credential (RFC 0036) and
present proof (RFC 0037), with Indy anoncreds revocation.

The protocol roles are immutable state machines. Every transition returns the
next machine and an error, and the input is never changed. The machines
don't do I/O by themselves: keys, ledger and anoncreds are collaborators of
package core, given per call. The local ed25519 wallet is in agent/ssi and
the libindy adapter in package indy.

# Sub-packages

	agent     persistence, correlation, envelope, transports and the agency assembly
	core      collaborator interfaces, error kinds and their mocks
	indy      libindy collaborators through findy-wrapper-go
	protocol  the state machines of the protocol roles
	std       Aries message models
*/
package exchange
