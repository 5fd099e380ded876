/*
Package didcomm offers the common header every Aries message embeds and the
interface the rest of the agent uses to handle messages generically. Message
types are registered in package aries, and the models live under std.
*/
package didcomm

import (
	"context"
	"encoding/json"

	"github.com/findy-network/findy-exchange/agent/utils"
	"github.com/findy-network/findy-exchange/std/decorator"
)

// Header is the part every Aries message shares. Embed it by value.
type Header struct {
	Type   string            `json:"@type"`
	ID     string            `json:"@id"`
	Thread *decorator.Thread `json:"~thread,omitempty"`
	Timing *decorator.Timing `json:"~timing,omitempty"`
}

// MessageHdr is the base interface for all protocol messages. All the structs
// which embed Header implement it with a pointer receiver.
type MessageHdr interface {
	Hdr() *Header
}

// Sender delivers a message to the other end of a pairwise, see
// connection.Connection.
type Sender interface {
	Send(ctx context.Context, m MessageHdr) error
}

// NewHeader returns a header with a new random id. A nil thread is fine for
// the messages which start a thread.
func NewHeader(msgType string, thread *decorator.Thread) Header {
	return Header{Type: msgType, ID: utils.UUID(), Thread: thread}
}

// Reply returns a header for a message answering to an existing thread.
func Reply(msgType, thid, pthid string) Header {
	return NewHeader(msgType, decorator.NewThread(thid, pthid))
}

func (h *Header) Hdr() *Header {
	return h
}

// Thid returns thread id the message declares, empty when it doesn't have
// a thread decorator or it's empty.
func (h *Header) Thid() string {
	if h.Thread == nil {
		return ""
	}
	return h.Thread.ID
}

// Pthid returns declared parent thread id or empty string.
func (h *Header) Pthid() string {
	if h.Thread == nil {
		return ""
	}
	return h.Thread.PID
}

// HasThread tells if the message declares a thread or a parent thread.
func (h *Header) HasThread() bool {
	return h.Thid() != "" || h.Pthid() != ""
}

// ThreadID returns the effective thread id: declared thid or the message id
// for the messages which start a thread.
func (h *Header) ThreadID() string {
	if thid := h.Thid(); thid != "" {
		return thid
	}
	return h.ID
}

// JSON marshals the message. The message types are plain structs so this
// doesn't fail in practice.
func JSON(m MessageHdr) ([]byte, error) {
	return json.Marshal(m)
}
