package common

import (
	"testing"

	sov "github.com/findy-network/findy-exchange/std/sov/did"
	"github.com/lainio/err2/assert"
	"github.com/mr-tron/base58"
)

func TestDocConversion(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	verkey := base58.Encode([]byte("0123456789abcdef0123456789abcdef"))
	legacy := sov.NewDoc("did:sov:123", verkey, "http://localhost:8080/a2a", []string{"rk1", "rk2"})

	doc, err := ToDoc(legacy)
	assert.NoError(err)
	assert.Equal(ID(doc), "did:sov:123")
	assert.Equal(Value58(doc, 0), verkey)
	assert.Equal(Endpoint(doc, 0), "http://localhost:8080/a2a")
	assert.DeepEqual(RoutingKeys(doc, 0), []string{"rk1", "rk2"})
	assert.DeepEqual(RecipientKeys(doc, 0), []string{verkey})

	back, err := ToSov(doc)
	assert.NoError(err)
	assert.Equal(back.ID, legacy.ID)
	assert.Equal(back.Service[0].ServiceEndpoint, legacy.Service[0].ServiceEndpoint)
	assert.Equal(back.PublicKey[0].PublicKeyBase58, verkey)
}
