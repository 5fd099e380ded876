// Package did is the legacy IndyAgent DID document used in DID exchange
// attachments. Most Aries agents still send this format.
package did

import (
	"encoding/json"
	"time"

	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

const (
	Context            = "https://w3id.org/did/v1"
	KeyType            = "Ed25519VerificationKey2018"
	AuthenticationType = "Ed25519SignatureAuthentication2018"
	ServiceType        = "IndyAgent"
)

type Doc struct {
	*DataDoc
}

func (d *Doc) MarshalJSON() (_ []byte, err error) {
	defer err2.Handle(&err, "marshal sov doc")

	b := try.To1(json.Marshal(d.DataDoc))
	return b, nil
}

func (d *Doc) UnmarshalJSON(b []byte) (err error) {
	defer err2.Handle(&err, "unmarshal sov doc")

	data := new(DataDoc)
	try.To(json.Unmarshal(b, data))
	d.DataDoc = data
	return nil
}

// DataDoc DID Document definition
type DataDoc struct {
	Context        string               `json:"@context,omitempty"`
	ID             string               `json:"id,omitempty"`
	PublicKey      []PublicKey          `json:"publicKey,omitempty"`
	Service        []Service            `json:"service,omitempty"`
	Authentication []VerificationMethod `json:"authentication,omitempty"`
	Created        *time.Time           `json:"created,omitempty"`
	Updated        *time.Time           `json:"updated,omitempty"`
}

// PublicKey DID doc public key
type PublicKey struct {
	ID              string `json:"id,omitempty"`
	Type            string `json:"type,omitempty"`
	Controller      string `json:"controller,omitempty"`
	PublicKeyBase58 string `json:"publicKeyBase58,omitempty"`
}

// Service DID doc service
type Service struct {
	ID              string                 `json:"id,omitempty"`
	Type            string                 `json:"type,omitempty"`
	Priority        uint                   `json:"priority"`
	RecipientKeys   []string               `json:"recipientKeys,omitempty"`
	RoutingKeys     []string               `json:"routingKeys"`
	ServiceEndpoint string                 `json:"serviceEndpoint"`
	Properties      map[string]interface{} `json:"properties,omitempty"`
}

// VerificationMethod authentication verification method
type VerificationMethod struct {
	Type      string `json:"type,omitempty"`
	PublicKey string `json:"publicKey,omitempty"`
}

// NewDoc builds the document for our pairwise DID. routingKeys are the keys
// of our mediators, the first one is the closest to the sender.
func NewDoc(did, verkey, endpoint string, routingKeys []string) *Doc {
	keyRef := did + "#1"
	if routingKeys == nil {
		routingKeys = []string{}
	}
	return &Doc{DataDoc: &DataDoc{
		Context: Context,
		ID:      did,
		PublicKey: []PublicKey{{
			ID:              keyRef,
			Type:            KeyType,
			Controller:      did,
			PublicKeyBase58: verkey,
		}},
		Service: []Service{{
			ID:              did + ";indy",
			Type:            ServiceType,
			RecipientKeys:   []string{verkey},
			RoutingKeys:     routingKeys,
			ServiceEndpoint: endpoint,
		}},
		Authentication: []VerificationMethod{{
			Type:      AuthenticationType,
			PublicKey: keyRef,
		}},
	}}
}
