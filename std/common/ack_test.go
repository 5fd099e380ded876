package common

import (
	"testing"

	"github.com/findy-network/findy-exchange/agent/aries"
	"github.com/findy-network/findy-exchange/agent/pltype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ackJSON = `
  {
    "@type": "did:sov:BzCbsNYhMrjHiqZDTUASHg;spec/issue-credential/1.0/ack",
    "@id": "3eb5fd37-48ac-4767-8cce-07ab5bbe9097",
    "~thread": { "thid": "3dc323d4-17ec-4a4a-9d3a-c903e94d253b" },
    "status": "OK"
  }`

func TestAck_ReadJSON(t *testing.T) {
	m, err := aries.Parse([]byte(ackJSON))
	require.NoError(t, err)

	msg, ok := m.(*Ack)
	require.True(t, ok)
	assert.Equal(t, "3eb5fd37-48ac-4767-8cce-07ab5bbe9097", msg.ID)
	assert.Equal(t, "3dc323d4-17ec-4a4a-9d3a-c903e94d253b", msg.ThreadID())
	assert.Equal(t, AckStatusOK, msg.Status)
}

func TestNewAck(t *testing.T) {
	ack := NewAck(pltype.PresentProofACK, "thread-1")
	assert.NotEmpty(t, ack.ID)
	assert.Equal(t, "thread-1", ack.Thid())
	assert.Empty(t, ack.Pthid())
	assert.Equal(t, AckStatusOK, ack.Status)
}
