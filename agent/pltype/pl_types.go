package pltype

import (
	"strings"

	"github.com/golang/glog"
)

// Protocol constants
const (
	Nothing = ""
	Aries   = "did:sov:BzCbsNYhMrjHiqZDTUASHg;spec" // Legacy prefix, still default
	DIDComm = "https://didcomm.org"                // New prefix, RFC 0348

	LibindyCredOfferID           = "libindy-cred-offer-0"
	LibindyCredRequestID         = "libindy-cred-request-0"
	LibindyCredID                = "libindy-cred-0"
	LibindyRequestPresentationID = "libindy-request-presentation-0"
	LibindyPresentationID        = "libindy-presentation-0"
)

const (
	ProtocolNotification      = "notification"
	HandlerProblemReport      = "problem-report"
	HandlerAck                = "ack"
	Notification              = Aries + "/" + ProtocolNotification
	NotificationProblemReport = Notification + "/1.0/" + HandlerProblemReport
	NotificationAck           = Notification + "/1.0/" + HandlerAck
)

// Issue Credential protocol constants
const (
	ProtocolIssueCredential          = "issue-credential"
	HandlerIssueCredentialPropose    = "propose-credential"
	HandlerIssueCredentialOffer      = "offer-credential"
	HandlerIssueCredentialRequest    = "request-credential"
	HandlerIssueCredentialIssue      = "issue-credential"
	HandlerIssueCredentialACK        = "ack"
	ObjectTypeCredentialPreview      = "credential-preview"
	IssueCredential                  = Aries + "/" + ProtocolIssueCredential
	IssueCredentialPropose           = IssueCredential + "/1.0/" + HandlerIssueCredentialPropose
	IssueCredentialOffer             = IssueCredential + "/1.0/" + HandlerIssueCredentialOffer
	IssueCredentialRequest           = IssueCredential + "/1.0/" + HandlerIssueCredentialRequest
	IssueCredentialIssue             = IssueCredential + "/1.0/" + HandlerIssueCredentialIssue
	IssueCredentialACK               = IssueCredential + "/1.0/" + HandlerIssueCredentialACK
	IssueCredentialProblemReport     = IssueCredential + "/1.0/" + HandlerProblemReport
	IssueCredentialCredentialPreview = IssueCredential + "/1.0/" + ObjectTypeCredentialPreview
)

// Present Proof protocol constants
const (
	ProtocolPresentProof            = "present-proof"
	HandlerPresentProofPropose      = "propose-presentation"
	HandlerPresentProofRequest      = "request-presentation"
	HandlerPresentProofPresentation = "presentation"
	HandlerPresentProofACK          = "ack"
	ObjectTypePresentationPreview   = "presentation-preview"
	PresentProof                    = Aries + "/" + ProtocolPresentProof
	PresentProofPropose             = PresentProof + "/1.0/" + HandlerPresentProofPropose
	PresentProofRequest             = PresentProof + "/1.0/" + HandlerPresentProofRequest
	PresentProofPresentation        = PresentProof + "/1.0/" + HandlerPresentProofPresentation
	PresentProofACK                 = PresentProof + "/1.0/" + HandlerPresentProofACK
	PresentProofProblemReport       = PresentProof + "/1.0/" + HandlerProblemReport
	PresentationPreviewObj          = PresentProof + "/1.0/" + ObjectTypePresentationPreview
)

// DID exchange, RFC 0023
const (
	ProtocolDIDExchange    = "didexchange"
	HandlerRequest         = "request"
	HandlerResponse        = "response"
	HandlerComplete        = "complete"
	DIDExchange            = Aries + "/" + ProtocolDIDExchange
	DIDExchangeRequest     = DIDExchange + "/1.0/" + HandlerRequest
	DIDExchangeResponse    = DIDExchange + "/1.0/" + HandlerResponse
	DIDExchangeComplete    = DIDExchange + "/1.0/" + HandlerComplete
	DIDExchangeProblem     = DIDExchange + "/1.0/" + HandlerProblemReport
	ProtocolOutOfBand      = "out-of-band"
	Invitation             = "invitation"
	OutOfBand              = Aries + "/" + ProtocolOutOfBand
	OutOfBandInvitation    = OutOfBand + "/1.0/" + Invitation
	ProtocolConnection     = "connections"
	Connection             = Aries + "/" + ProtocolConnection
	ConnectionInvitation   = Connection + "/1.0/" + Invitation
	ConnectionRequest      = Connection + "/1.0/" + HandlerRequest
	ConnectionResponse     = Connection + "/1.0/" + HandlerResponse
	ConnectionProblem      = Connection + "/1.0/" + HandlerProblemReport
	ProtocolDiscoverFeat   = "discover-features"
	DiscoverFeaturesQuery  = Aries + "/" + ProtocolDiscoverFeat + "/1.0/query"
	DiscoverFeaturesReply  = Aries + "/" + ProtocolDiscoverFeat + "/1.0/disclose"
	ProtocolRevocation     = "revocation_notification"
	RevocationNotification = Aries + "/" + ProtocolRevocation + "/1.0/revoke"
)

// Routing
const (
	ProtocolRouting        = "routing"
	HandlerForward         = "forward"
	Routing                = Aries + "/" + ProtocolRouting
	RoutingForward         = Routing + "/1.0/" + HandlerForward
	ProtocolMediation      = "coordinate-mediation"
	MediationRequest       = Aries + "/" + ProtocolMediation + "/1.0/mediate-request"
	MediationGrant         = Aries + "/" + ProtocolMediation + "/1.0/mediate-grant"
	MediationDeny          = Aries + "/" + ProtocolMediation + "/1.0/mediate-deny"
	MediationKeylistUpdate = Aries + "/" + ProtocolMediation + "/1.0/keylist-update"
)

// Basic Message protocol constants
const (
	ProtocolBasicMessage = "basicmessage"
	HandlerMessage       = "message"
	BasicMessage         = Aries + "/" + ProtocolBasicMessage
	BasicMessageSend     = BasicMessage + "/1.0/" + HandlerMessage
)

// Trust Ping protocol constants
const (
	ProtocolTrustPing   = "trust_ping"
	HandlerPing         = "ping"
	HandlerPingResponse = "ping_response"
	TrustPing           = Aries + "/" + ProtocolTrustPing
	TrustPingPing       = TrustPing + "/1.0/" + HandlerPing
	TrustPingResponse   = TrustPing + "/1.0/" + HandlerPingResponse
)

// Normalize returns the message type with the legacy prefix. Agents may send
// either prefix, we store and compare the legacy one only.
func Normalize(msgType string) string {
	if strings.HasPrefix(msgType, DIDComm) {
		return Aries + strings.TrimPrefix(msgType, DIDComm)
	}
	return msgType
}

// MsgType is a parsed message type URI: <prefix>/<family>/<version>/<name>
type MsgType struct {
	Family  string
	Version string
	Name    string
}

// Parse splits the message type. It returns the zero value and false if the
// type doesn't have both known prefix and three path parts.
func Parse(msgType string) (mt MsgType, ok bool) {
	msgType = Normalize(msgType)
	if !strings.HasPrefix(msgType, Aries+"/") {
		glog.V(3).Infoln("unknown message type prefix:", msgType)
		return mt, false
	}
	parts := strings.Split(strings.TrimPrefix(msgType, Aries+"/"), "/")
	if len(parts) != 3 {
		return mt, false
	}
	return MsgType{Family: parts[0], Version: parts[1], Name: parts[2]}, true
}

// Family returns the protocol family of the message type or empty string.
func Family(msgType string) string {
	mt, _ := Parse(msgType)
	return mt.Family
}
