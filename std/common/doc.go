package common

import (
	"github.com/findy-network/findy-exchange/core"
	sov "github.com/findy-network/findy-exchange/std/sov/did"
	"github.com/golang/glog"
	"github.com/hyperledger/aries-framework-go/component/models/did/endpoint"
	"github.com/hyperledger/aries-framework-go/pkg/doc/did"
	"github.com/lainio/err2"
	"github.com/lainio/err2/assert"
	"github.com/lainio/err2/try"
	"github.com/mr-tron/base58"
)

func ID(d core.DIDDoc) string {
	switch doc := d.(type) {
	case *did.Doc:
		return doc.ID
	case *sov.Doc:
		return doc.ID
	default:
		assert.NotImplemented()
		return ""
	}
}

func Value58(doc core.DIDDoc, i int) string {
	value := Value(doc, i)
	return base58.Encode(value)
}

func Value(doc core.DIDDoc, i int) []byte {
	return VM(doc, i).Value
}

func VMs(d core.DIDDoc) []did.VerificationMethod {
	switch doc := d.(type) {
	case *did.Doc:
		return doc.VerificationMethod
	case *sov.Doc:
		retval := make([]did.VerificationMethod, len(doc.PublicKey))
		for i, pk := range doc.PublicKey {
			retval[i].Type = pk.Type
			retval[i].ID = pk.ID
			retval[i].Controller = pk.Controller
			retval[i].Value = try.To1(base58.Decode(pk.PublicKeyBase58))
		}
		return retval
	default:
		assert.NotImplemented()
		return nil
	}
}

func VM(d core.DIDDoc, i int) did.VerificationMethod {
	return VMs(d)[i]
}

func Services(d core.DIDDoc) []did.Service {
	switch doc := d.(type) {
	case *did.Doc:
		return doc.Service
	case *sov.Doc:
		retval := make([]did.Service, len(doc.Service))
		for i, service := range doc.Service {
			retval[i].ServiceEndpoint = endpoint.NewDIDCommV1Endpoint(service.ServiceEndpoint)
			retval[i].Type = service.Type
			retval[i].ID = service.ID
			retval[i].RoutingKeys = service.RoutingKeys
			retval[i].RecipientKeys = service.RecipientKeys
		}
		return retval
	default:
		assert.NotImplemented()
		return nil
	}
}

func Service(d core.DIDDoc, i int) did.Service {
	return Services(d)[i]
}

func RoutingKeys(d core.DIDDoc, i int) []string {
	service := Service(d, i)
	return service.RoutingKeys
}

func RecipientKeys(d core.DIDDoc, i int) []string {
	service := Service(d, i)
	return service.RecipientKeys
}

// Endpoint returns the URL of the service i. Empty if it cannot be resolved.
func Endpoint(d core.DIDDoc, i int) string {
	service := Service(d, i)
	uri, err := service.ServiceEndpoint.URI()
	if err != nil {
		glog.Warningf("service %d endpoint: %v", i, err)
		return ""
	}
	return uri
}

// ToDoc converts the legacy document to AFGO's did.Doc which is what we keep
// in our connections.
func ToDoc(d core.DIDDoc) (doc *did.Doc, err error) {
	defer err2.Handle(&err, "convert DID doc")

	if doc, ok := d.(*did.Doc); ok {
		return doc, nil
	}
	vms := VMs(d)
	auths := make([]did.Verification, len(vms))
	for i, vm := range vms {
		auths[i] = did.Verification{VerificationMethod: vm, Embedded: true}
	}
	return &did.Doc{
		ID:                 ID(d),
		VerificationMethod: vms,
		Service:            Services(d),
		Authentication:     auths,
	}, nil
}

// ToSov converts the document to the legacy format we send in DID exchange.
func ToSov(d core.DIDDoc) (doc *sov.Doc, err error) {
	defer err2.Handle(&err, "convert DID doc to legacy")

	if doc, ok := d.(*sov.Doc); ok {
		return doc, nil
	}
	id := ID(d)
	verkey := Value58(d, 0)
	return sov.NewDoc(id, verkey, Endpoint(d, 0), RoutingKeys(d, 0)), nil
}
