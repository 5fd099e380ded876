package issuecredential

import (
	"github.com/findy-network/findy-exchange/agent/aries"
	"github.com/findy-network/findy-exchange/agent/didcomm"
	"github.com/findy-network/findy-exchange/agent/pltype"
	"github.com/findy-network/findy-exchange/std/decorator"
)

func init() {
	aries.Creator.Add(pltype.IssueCredentialPropose, func() didcomm.MessageHdr { return new(Propose) })
	aries.Creator.Add(pltype.IssueCredentialOffer, func() didcomm.MessageHdr { return new(Offer) })
	aries.Creator.Add(pltype.IssueCredentialRequest, func() didcomm.MessageHdr { return new(Request) })
	aries.Creator.Add(pltype.IssueCredentialIssue, func() didcomm.MessageHdr { return new(Issue) })
}

// NewPreview builds credential preview from name/value pairs.
func NewPreview(attrs []Attribute) PreviewCredential {
	return PreviewCredential{
		Type:       pltype.IssueCredentialCredentialPreview,
		Attributes: attrs,
	}
}

// NewOffer builds the offer message. The offer starts the thread when thid is
// empty.
func NewOffer(thid, comment string, preview PreviewCredential, offer []byte) *Offer {
	var thread *decorator.Thread
	if thid != "" {
		thread = decorator.NewThread(thid, "")
	}
	return &Offer{
		Header:            didcomm.NewHeader(pltype.IssueCredentialOffer, thread),
		Comment:           comment,
		CredentialPreview: preview,
		OffersAttach: []decorator.Attachment{
			decorator.NewAttachment(pltype.LibindyCredOfferID, offer),
		},
	}
}

// OfferJSON returns the libindy credential offer.
func (o *Offer) OfferJSON() ([]byte, error) {
	return decorator.FindAttachment(o.OffersAttach, pltype.LibindyCredOfferID)
}

func NewRequest(thid string, request []byte) *Request {
	return &Request{
		Header: didcomm.Reply(pltype.IssueCredentialRequest, thid, ""),
		RequestsAttach: []decorator.Attachment{
			decorator.NewAttachment(pltype.LibindyCredRequestID, request),
		},
	}
}

// RequestJSON returns the libindy credential request.
func (r *Request) RequestJSON() ([]byte, error) {
	return decorator.FindAttachment(r.RequestsAttach, pltype.LibindyCredRequestID)
}

// NewIssue builds the issue message. pleaseAck adds the ~please_ack
// decorator.
func NewIssue(thid, comment string, cred []byte, pleaseAck bool) *Issue {
	m := &Issue{
		Header:  didcomm.Reply(pltype.IssueCredentialIssue, thid, ""),
		Comment: comment,
		CredentialsAttach: []decorator.Attachment{
			decorator.NewAttachment(pltype.LibindyCredID, cred),
		},
	}
	if pleaseAck {
		m.PleaseAck = &decorator.PleaseAck{On: []string{"RECEIPT"}}
	}
	return m
}

// CredentialJSON returns the libindy credential.
func (i *Issue) CredentialJSON() ([]byte, error) {
	return decorator.FindAttachment(i.CredentialsAttach, pltype.LibindyCredID)
}

// NewPropose builds the proposal. thid is empty when the proposal starts the
// thread, and pthid is set when it answers to an out-of-band invitation.
func NewPropose(thid, pthid, comment string, preview *PreviewCredential, credDefID string) *Propose {
	var thread *decorator.Thread
	if thid != "" || pthid != "" {
		thread = &decorator.Thread{ID: thid, PID: pthid}
	}
	return &Propose{
		Header:             didcomm.NewHeader(pltype.IssueCredentialPropose, thread),
		Comment:            comment,
		CredentialProposal: preview,
		CredDefID:          credDefID,
	}
}
