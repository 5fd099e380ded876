// Package didexchange is the message model of RFC 0023 DID exchange 1.0. The
// DID document travels as a base64 attachment, and the response attachment is
// signed by the key of the invitation.
package didexchange

import (
	"encoding/json"
	"errors"

	"github.com/findy-network/findy-exchange/agent/aries"
	"github.com/findy-network/findy-exchange/agent/didcomm"
	"github.com/findy-network/findy-exchange/agent/pltype"
	"github.com/findy-network/findy-exchange/agent/utils"
	"github.com/findy-network/findy-exchange/std/decorator"
	sov "github.com/findy-network/findy-exchange/std/sov/did"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// Request is sent by the invitee, its pthid is the invitation id.
type Request struct {
	didcomm.Header
	Label    string                `json:"label,omitempty"`
	Goal     string                `json:"goal,omitempty"`
	GoalCode string                `json:"goal_code,omitempty"`
	DID      string                `json:"did"`
	DIDDoc   *decorator.Attachment `json:"did_doc~attach,omitempty"`
}

// Response answers the request thread with the inviter's pairwise DID.
type Response struct {
	didcomm.Header
	DID    string                `json:"did"`
	DIDDoc *decorator.Attachment `json:"did_doc~attach,omitempty"`
}

// Complete closes the exchange.
type Complete struct {
	didcomm.Header
}

var errMissingDoc = errors.New("did_doc~attach missing")

func init() {
	aries.Creator.Add(pltype.DIDExchangeRequest, func() didcomm.MessageHdr { return new(Request) })
	aries.Creator.Add(pltype.DIDExchangeResponse, func() didcomm.MessageHdr { return new(Response) })
	aries.Creator.Add(pltype.DIDExchangeComplete, func() didcomm.MessageHdr { return new(Complete) })
}

// NewRequest starts the request thread under the invitation.
func NewRequest(invitationID, label string, doc *sov.Doc) (r *Request, err error) {
	defer err2.Handle(&err, "new DID exchange request")

	h := didcomm.NewHeader(pltype.DIDExchangeRequest, nil)
	h.Thread = &decorator.Thread{ID: h.ID, PID: invitationID}
	attach := try.To1(docAttachment(doc))
	return &Request{
		Header: h,
		Label:  label,
		DID:    doc.ID,
		DIDDoc: &attach,
	}, nil
}

// NewResponse builds response to the request thread. The attachment is
// unsigned, see signature.Sign.
func NewResponse(thid string, doc *sov.Doc) (r *Response, err error) {
	defer err2.Handle(&err, "new DID exchange response")

	attach := try.To1(docAttachment(doc))
	return &Response{
		Header: didcomm.Reply(pltype.DIDExchangeResponse, thid, ""),
		DID:    doc.ID,
		DIDDoc: &attach,
	}, nil
}

// NewComplete returns complete message. Both thread ids are mandatory.
func NewComplete(thid, pthid string) *Complete {
	return &Complete{
		Header: didcomm.NewHeader(pltype.DIDExchangeComplete,
			&decorator.Thread{ID: thid, PID: pthid}),
	}
}

// Doc returns the DID document of the request.
func (r *Request) Doc() (*sov.Doc, error) {
	return attachedDoc(r.DIDDoc)
}

// Doc returns the DID document of the response.
func (r *Response) Doc() (*sov.Doc, error) {
	return attachedDoc(r.DIDDoc)
}

func docAttachment(doc *sov.Doc) (a decorator.Attachment, err error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return a, err
	}
	return decorator.NewAttachment(utils.UUID(), data), nil
}

func attachedDoc(a *decorator.Attachment) (doc *sov.Doc, err error) {
	defer err2.Handle(&err, "DID doc attachment")

	if a == nil {
		return nil, errMissingDoc
	}
	doc = new(sov.Doc)
	try.To(json.Unmarshal(try.To1(a.Bytes()), doc))
	return doc, nil
}
