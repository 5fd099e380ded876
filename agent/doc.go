/*
Package agent holds the infrastructure the protocol state machines run on.
The package itself is empty.

	agency   assembles an agent from settings, inbound HTTP endpoint
	aries    inbound message registry, @type to typed message
	didcomm  message interfaces
	pltype   message type URIs and protocol families
	prot     exchange book and inbound processor
	psm      machine contract, persisted envelope and the machine DB
	revreg   revocation registry lifecycle and batch publishing
	sec      legacy DIDComm envelope, forward wrapping and the secure pipe
	ssi      local ed25519 key wallet
	storage  key value stores: memory, bolt and redis
	thread   thread id correlation rules
	trans    outbound HTTP and websocket transports, retry
	utils    settings, ids, encodings
	vc       attribute encoding and credential values
*/
package agent
