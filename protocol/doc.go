/*
Package protocol holds the Aries protocol roles as state machines. The
message models are in package std, the machine contract in agent/psm.

	connection                 DID exchange requester and responder
	issuecredential/issuer     issue credential, issuer role
	issuecredential/holder     issue credential, holder role
	presentproof/proof         proof requests, restrictions and validation
	presentproof/verifier      present proof, verifier role
	presentproof/prover        present proof, prover role
*/
package protocol
