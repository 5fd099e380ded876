package didexchange

import (
	"testing"

	"github.com/findy-network/findy-exchange/agent/aries"
	"github.com/findy-network/findy-exchange/agent/didcomm"
	sov "github.com/findy-network/findy-exchange/std/sov/did"
	"github.com/lainio/err2/assert"
)

const (
	testDID    = "did:sov:7UwTLzBx4P4rRjYpBEmb5E"
	testVerkey = "8QhFxKxyaFsJy4CyxeYX34dFH8oWqyBv1P4HLQCsoeLy"
)

func TestRequest(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	doc := sov.NewDoc(testDID, testVerkey, "http://localhost:8080", nil)
	req, err := NewRequest("invitation-id", "alice", doc)
	assert.NoError(err)
	assert.Equal(req.Thid(), req.ID)
	assert.Equal(req.Pthid(), "invitation-id")

	data, err := didcomm.JSON(req)
	assert.NoError(err)
	msg, err := aries.Parse(data)
	assert.NoError(err)
	parsed, ok := msg.(*Request)
	assert.That(ok)
	assert.Equal(parsed.Label, "alice")

	got, err := parsed.Doc()
	assert.NoError(err)
	assert.Equal(got.ID, testDID)
	assert.Equal(got.Service[0].ServiceEndpoint, "http://localhost:8080")
}

func TestResponse(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	doc := sov.NewDoc(testDID, testVerkey, "http://localhost:8080", nil)
	res, err := NewResponse("request-id", doc)
	assert.NoError(err)
	assert.Equal(res.Thid(), "request-id")
	got, err := res.Doc()
	assert.NoError(err)
	assert.Equal(got.PublicKey[0].PublicKeyBase58, testVerkey)

	res.DIDDoc = nil
	_, err = res.Doc()
	assert.Error(err)
}

func TestComplete(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	c := NewComplete("request-id", "invitation-id")
	assert.Equal(c.Thid(), "request-id")
	assert.Equal(c.Pthid(), "invitation-id")
}
