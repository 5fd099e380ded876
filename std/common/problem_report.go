package common

import (
	"github.com/findy-network/findy-exchange/agent/aries"
	"github.com/findy-network/findy-exchange/agent/didcomm"
	"github.com/findy-network/findy-exchange/agent/pltype"
)

// Problem codes we send.
const (
	ProblemIssuanceAbandoned    = "issuance-abandoned"
	ProblemRequestNotAccepted   = "request_not_accepted"
	ProblemRequestProcessing    = "request_processing_error"
	ProblemPresentationRejected = "presentation-rejected"
	ProblemInvalidProof         = "invalid-proof"
	ProblemOfferDeclined        = "offer-declined"
	ProblemProposalRejected     = "proposal-rejected"
	ProblemAbandoned            = "abandoned"
)

// ProblemReport problem report definition, RFC 0035
type ProblemReport struct {
	didcomm.Header
	Description    Code     `json:"description"`
	ProblemItems   []string `json:"problem_items,omitempty"`
	WhoRetries     string   `json:"who_retries,omitempty"`
	Impact         string   `json:"impact,omitempty"`
	Where          string   `json:"where,omitempty"`
	ExplainLongTxt string   `json:"explain-ltxt,omitempty"` // ACApy
}

// Code represents a problem report code
type Code struct {
	Code string `json:"code"`
	En   string `json:"en,omitempty"`
}

func init() {
	for _, t := range []string{
		pltype.NotificationProblemReport,
		pltype.IssueCredentialProblemReport,
		pltype.PresentProofProblemReport,
		pltype.DIDExchangeProblem,
		pltype.ConnectionProblem,
	} {
		aries.Creator.Add(t, func() didcomm.MessageHdr { return new(ProblemReport) })
	}
}

// NewProblemReport builds the report to the thread.
func NewProblemReport(msgType, thid, code, explain string) *ProblemReport {
	return &ProblemReport{
		Header:      didcomm.Reply(msgType, thid, ""),
		Description: Code{Code: code, En: explain},
	}
}

// Reason returns the best human readable reason the report has.
func (p *ProblemReport) Reason() string {
	switch {
	case p.Description.En != "":
		return p.Description.En
	case p.ExplainLongTxt != "":
		return p.ExplainLongTxt
	}
	return p.Description.Code
}
