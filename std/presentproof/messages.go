package presentproof

import (
	"github.com/findy-network/findy-exchange/agent/aries"
	"github.com/findy-network/findy-exchange/agent/didcomm"
	"github.com/findy-network/findy-exchange/agent/pltype"
	"github.com/findy-network/findy-exchange/std/decorator"
)

func init() {
	aries.Creator.Add(pltype.PresentProofPropose, func() didcomm.MessageHdr { return new(Propose) })
	aries.Creator.Add(pltype.PresentProofRequest, func() didcomm.MessageHdr { return new(Request) })
	aries.Creator.Add(pltype.PresentProofPresentation, func() didcomm.MessageHdr { return new(Presentation) })
}

// NewRequest builds presentation request. An empty thid starts a new thread.
func NewRequest(thid, comment string, proofReq []byte) *Request {
	var thread *decorator.Thread
	if thid != "" {
		thread = decorator.NewThread(thid, "")
	}
	return &Request{
		Header:  didcomm.NewHeader(pltype.PresentProofRequest, thread),
		Comment: comment,
		RequestPresentations: []decorator.Attachment{
			decorator.NewAttachment(pltype.LibindyRequestPresentationID, proofReq),
		},
	}
}

// ProofRequestJSON returns the libindy proof request.
func (r *Request) ProofRequestJSON() ([]byte, error) {
	return decorator.FindAttachment(r.RequestPresentations, pltype.LibindyRequestPresentationID)
}

func NewPresentation(thid, comment string, proof []byte) *Presentation {
	return &Presentation{
		Header:  didcomm.Reply(pltype.PresentProofPresentation, thid, ""),
		Comment: comment,
		PresentationAttaches: []decorator.Attachment{
			decorator.NewAttachment(pltype.LibindyPresentationID, proof),
		},
		PleaseAck: &decorator.PleaseAck{On: []string{"RECEIPT"}},
	}
}

// ProofJSON returns the libindy proof.
func (p *Presentation) ProofJSON() ([]byte, error) {
	return decorator.FindAttachment(p.PresentationAttaches, pltype.LibindyPresentationID)
}

// NewPropose builds the presentation proposal. thid is set when it's a counter
// proposal to a request, pthid when it's answer to an invitation.
func NewPropose(thid, pthid, comment string, preview Preview) *Propose {
	var thread *decorator.Thread
	if thid != "" || pthid != "" {
		thread = &decorator.Thread{ID: thid, PID: pthid}
	}
	if preview.Type == "" {
		preview.Type = pltype.PresentationPreviewObj
	}
	if preview.Attributes == nil {
		preview.Attributes = []Attribute{}
	}
	if preview.Predicates == nil {
		preview.Predicates = []Predicate{}
	}
	return &Propose{
		Header:               didcomm.NewHeader(pltype.PresentProofPropose, thread),
		Comment:              comment,
		PresentationProposal: &preview,
	}
}
