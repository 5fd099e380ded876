// Package decorator implements the Aries message decorators we use: thread,
// please-ack, timing and attachments.
package decorator

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/findy-network/findy-exchange/agent/utils"
)

// Thread is the ~thread decorator, RFC 0008.
type Thread struct {
	ID             string         `json:"thid,omitempty"`
	PID            string         `json:"pthid,omitempty"`
	SenderOrder    int            `json:"sender_order,omitempty"`
	ReceivedOrders map[string]int `json:"received_orders,omitempty"`
}

// PleaseAck is the ~please_ack decorator, RFC 0317.
type PleaseAck struct {
	On []string `json:"on,omitempty"`
}

// Timing is the ~timing decorator, RFC 0032.
type Timing struct {
	OutTime    *time.Time `json:"out_time,omitempty"`
	ExpiresAt  *time.Time `json:"expires_time,omitempty"`
	StaleTime  *time.Time `json:"stale_time,omitempty"`
	DelayMilli int        `json:"delay_milli,omitempty"`
}

// AttachmentData holds the attachment payload. We only produce base64 data
// but accept JSON as well.
type AttachmentData struct {
	Base64 string          `json:"base64,omitempty"`
	JSON   json.RawMessage `json:"json,omitempty"`
	Links  []string        `json:"links,omitempty"`
	Sha256 string          `json:"sha256,omitempty"`
	JWS    *AttachmentJWS  `json:"jws,omitempty"`
}

// AttachmentJWS is a detached JWS over the base64 data of the attachment.
type AttachmentJWS struct {
	Header    map[string]string `json:"header,omitempty"`
	Protected string            `json:"protected,omitempty"`
	Signature string            `json:"signature,omitempty"`
}

// Attachment is the ~attach decorator item, RFC 0017.
type Attachment struct {
	ID          string         `json:"@id,omitempty"`
	Description string         `json:"description,omitempty"`
	FileName    string         `json:"filename,omitempty"`
	MimeType    string         `json:"mime-type,omitempty"`
	LastModTime *time.Time     `json:"lastmod_time,omitempty"`
	ByteCount   int64          `json:"byte_count,omitempty"`
	Data        AttachmentData `json:"data"`
}

const MimeTypeJSON = "application/json"

func NewThread(ID, PID string) *Thread {
	realPID := ""
	if ID != PID {
		realPID = PID
	}
	return &Thread{ID: ID, PID: realPID}
}

// CheckThread returns the thread with ID set. Messages which start a thread
// have their own id as a thread id.
func CheckThread(thread *Thread, ID string) *Thread {
	if thread == nil {
		return &Thread{ID: ID}
	}
	if thread.ID == "" {
		thread.ID = ID
	}
	return thread
}

// NewAttachment builds a base64 JSON attachment with the given id.
func NewAttachment(id string, data []byte) Attachment {
	return Attachment{
		ID:       id,
		MimeType: MimeTypeJSON,
		Data: AttachmentData{
			Base64: base64.StdEncoding.EncodeToString(data),
		},
	}
}

// Bytes returns the decoded payload of the attachment.
func (a Attachment) Bytes() ([]byte, error) {
	switch {
	case a.Data.Base64 != "":
		return utils.DecodeB64(a.Data.Base64)
	case len(a.Data.JSON) > 0:
		return a.Data.JSON, nil
	}
	return nil, fmt.Errorf("attachment %q has no data", a.ID)
}

// FindAttachment returns the payload of the attachment with the id. If the id
// isn't found, the first attachment is used like other agents do.
func FindAttachment(attachments []Attachment, id string) ([]byte, error) {
	if len(attachments) == 0 {
		return nil, fmt.Errorf("no attachments, expected %q", id)
	}
	for _, a := range attachments {
		if a.ID == id {
			return a.Bytes()
		}
	}
	return attachments[0].Bytes()
}

// NewTiming returns timing decorator with out time set to now.
func NewTiming() *Timing {
	now := time.Now().UTC()
	return &Timing{OutTime: &now}
}
