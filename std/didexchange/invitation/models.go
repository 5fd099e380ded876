// Taken from aries-framework-go, and heavily modified. The idea is to replace
// these with the aries-framework-go when it's ready. Until now we use our own
// minimalistic solution.

// Package invitation is for out-of-band invitation data model, RFC 0434. We
// support inline DIDComm v1 services only.
package invitation

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/findy-network/findy-exchange/agent/aries"
	"github.com/findy-network/findy-exchange/agent/didcomm"
	"github.com/findy-network/findy-exchange/agent/pltype"
	"github.com/findy-network/findy-exchange/agent/utils"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// HandshakeDIDExchange is the handshake protocol we accept.
const HandshakeDIDExchange = "https://didcomm.org/didexchange/1.0"

// Invitation defines out-of-band invitation message.
type Invitation struct {
	didcomm.Header
	Label     string    `json:"label,omitempty"`
	Goal      string    `json:"goal,omitempty"`
	GoalCode  string    `json:"goal_code,omitempty"`
	Protocols []string  `json:"handshake_protocols,omitempty"`
	Services  []Service `json:"services"`
	ImageURL  string    `json:"imageUrl,omitempty"`
}

// Service is the inline service block of the invitation.
type Service struct {
	ID              string   `json:"id"`
	Type            string   `json:"type"`
	RecipientKeys   []string `json:"recipientKeys"`
	RoutingKeys     []string `json:"routingKeys,omitempty"`
	ServiceEndpoint string   `json:"serviceEndpoint"`
}

func init() {
	aries.Creator.Add(pltype.OutOfBandInvitation, func() didcomm.MessageHdr { return new(Invitation) })
}

// New returns DID exchange invitation. Keys are base58 verkeys, they are
// written in did:key format.
func New(label, endpoint, recipientKey string, routingKeys []string) *Invitation {
	rks := make([]string, len(routingKeys))
	for i, k := range routingKeys {
		rks[i] = DIDKey(k)
	}
	return &Invitation{
		Header:    didcomm.NewHeader(pltype.OutOfBandInvitation, nil),
		Label:     label,
		Protocols: []string{HandshakeDIDExchange},
		Services: []Service{{
			ID:              "#inline",
			Type:            "did-communication",
			RecipientKeys:   []string{DIDKey(recipientKey)},
			RoutingKeys:     rks,
			ServiceEndpoint: endpoint,
		}},
	}
}

// Parse reads invitation JSON.
func Parse(data []byte) (inv *Invitation, err error) {
	defer err2.Handle(&err, "parse invitation")

	inv = new(Invitation)
	try.To(json.Unmarshal(data, inv))
	if len(inv.Services) == 0 {
		return nil, errors.New("no inline services")
	}
	return inv, nil
}

// RecipientKey returns the first recipient key as base58 verkey.
func (i *Invitation) RecipientKey() (string, error) {
	if len(i.Services) == 0 || len(i.Services[0].RecipientKeys) == 0 {
		return "", errors.New("invitation has no recipient keys")
	}
	return VerKey(i.Services[0].RecipientKeys[0])
}

// RoutingKeys returns the routing keys as base58 verkeys.
func (i *Invitation) RoutingKeys() (keys []string, err error) {
	defer err2.Handle(&err, "routing keys")

	if len(i.Services) == 0 {
		return nil, nil
	}
	for _, k := range i.Services[0].RoutingKeys {
		keys = append(keys, try.To1(VerKey(k)))
	}
	return keys, nil
}

func (i *Invitation) Endpoint() string {
	if len(i.Services) == 0 {
		return ""
	}
	return i.Services[0].ServiceEndpoint
}

// DIDKey returns did:key for base58 ed25519 verkey.
func DIDKey(verkey string) string {
	if strings.HasPrefix(verkey, didKeyPrefix) {
		return verkey
	}
	return utils.DIDKey(verkey)
}

const didKeyPrefix = "did:key:"

// VerKey returns the base58 verkey from either did:key or raw verkey format.
func VerKey(key string) (string, error) {
	if !strings.HasPrefix(key, didKeyPrefix) {
		return key, nil
	}
	return utils.VerKeyFromDIDKey(key)
}
