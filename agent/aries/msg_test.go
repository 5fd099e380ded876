package aries

import (
	"errors"
	"testing"

	"github.com/findy-network/findy-exchange/agent/didcomm"
	"github.com/findy-network/findy-exchange/agent/pltype"
	"github.com/findy-network/findy-exchange/core"
	"github.com/lainio/err2/assert"
)

type testMsg struct {
	didcomm.Header
	Content string `json:"content"`
}

const testType = pltype.Aries + "/test-family/1.0/test"

func init() {
	Creator.Add(testType, func() didcomm.MessageHdr { return new(testMsg) })
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		content string
		thid    string
	}{
		{"legacy prefix", `{"@type":"did:sov:BzCbsNYhMrjHiqZDTUASHg;spec/test-family/1.0/test","@id":"1","content":"hello"}`, "hello", "1"},
		{"didcomm prefix", `{"@type":"https://didcomm.org/test-family/1.0/test","@id":"2","content":"world","~thread":{"thid":"T"}}`, "world", "T"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.PushTester(t)
			defer assert.PopTester()

			m, err := Parse([]byte(tt.data))
			assert.NoError(err)
			tm, ok := m.(*testMsg)
			assert.That(ok)
			assert.Equal(tm.Content, tt.content)
			assert.Equal(tm.Type, testType)
			assert.Equal(tm.ThreadID(), tt.thid)
		})
	}
}

func TestParseUnknown(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	m, err := Parse([]byte(`{"@type":"https://didcomm.org/unknown/1.0/x","@id":"3","x":1}`))
	assert.NoError(err)
	msg, ok := m.(*Msg)
	assert.That(ok)
	assert.Equal(msg.Type, pltype.Aries+"/unknown/1.0/x")
	assert.That(len(msg.Raw) > 0)
}

func TestParseInvalid(t *testing.T) {
	for _, data := range []string{`{`, `{"@id":"1"}`, `[]`} {
		t.Run(data, func(t *testing.T) {
			assert.PushTester(t)
			defer assert.PopTester()

			_, err := Parse([]byte(data))
			assert.Error(err)
			assert.That(errors.Is(err, core.ErrInvalidJSON))
		})
	}
}
