/*
Package revreg is the revocation registry lifecycle of an issuer. A registry
is created locally, then its definition and first delta are published, each
step gated by its own flag so a retry resumes where the previous attempt
stopped. Revocations are staged as a local delta which is published later in
one batch, see Deltas and Batcher.
*/
package revreg

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/findy-network/findy-exchange/core"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// EntityState tells if a ledger object is only built locally or already
// published.
type EntityState string

const (
	Built     EntityState = "Built"
	Published EntityState = "Published"
)

// Registry is one revocation registry of a cred def.
type Registry struct {
	CredDefID  string      `json:"cred_def_id"`
	IssuerDID  string      `json:"issuer_did"`
	ID         string      `json:"rev_reg_id"`
	Def        string      `json:"rev_reg_def"`
	Entry      string      `json:"rev_reg_entry"`
	TailsDir   string      `json:"tails_dir"`
	MaxCreds   uint32      `json:"max_creds"`
	Tag        uint32      `json:"tag"`
	DefState   EntityState `json:"rev_reg_def_state"`
	DeltaState EntityState `json:"rev_reg_delta_state"`
}

// Create builds a new registry with anoncreds. Nothing is published.
func Create(
	ctx context.Context,
	ac core.Anoncreds,
	issuerDID, credDefID, tailsDir string,
	maxCreds, tag uint32,
) (r *Registry, err error) {
	defer err2.Handle(&err, "create revocation registry for %s", credDefID)

	info := try.To1(ac.IssuerCreateRevocationRegistry(ctx, issuerDID, credDefID,
		tailsDir, maxCreds, fmt.Sprintf("tag%d", tag)))
	glog.V(1).Infof("revocation registry %s created for %s", info.ID, credDefID)
	return &Registry{
		CredDefID:  credDefID,
		IssuerDID:  issuerDID,
		ID:         info.ID,
		Def:        info.DefJSON,
		Entry:      info.DeltaJSON,
		TailsDir:   tailsDir,
		MaxCreds:   maxCreds,
		Tag:        tag,
		DefState:   Built,
		DeltaState: Built,
	}, nil
}

func (r *Registry) WasRevRegDefPublished() bool {
	return r.DefState == Published
}

func (r *Registry) WasRevRegDeltaPublished() bool {
	return r.DeltaState == Published
}

// TailsLocation returns the tails URL the published definition carries.
func (r *Registry) TailsLocation() string {
	return gjson.Get(r.Def, "value.tailsLocation").String()
}

// TailsHash returns the hash of the tails file from the definition.
func (r *Registry) TailsHash() string {
	return gjson.Get(r.Def, "value.tailsHash").String()
}

// PublishRevRegDef sets the tails location to the definition and publishes
// it.
func (r *Registry) PublishRevRegDef(ctx context.Context, lw core.LedgerWrite, tailsURL string) (err error) {
	defer err2.Handle(&err, "publish rev reg def %s", r.ID)

	def := try.To1(sjson.Set(r.Def, "value.tailsLocation", tailsURL))
	if err := lw.PublishRevRegDef(ctx, r.IssuerDID, def); err != nil {
		return core.Backend(err)
	}
	r.Def = def
	r.DefState = Published
	glog.V(1).Infof("rev reg def %s published, tails: %s", r.ID, tailsURL)
	return nil
}

func (r *Registry) PublishRevRegDelta(ctx context.Context, lw core.LedgerWrite) (err error) {
	if err := lw.PublishRevRegDelta(ctx, r.IssuerDID, r.ID, r.Entry); err != nil {
		return fmt.Errorf("publish rev reg delta %s: %w", r.ID, core.Backend(err))
	}
	r.DeltaState = Published
	glog.V(1).Infof("rev reg delta %s published", r.ID)
	return nil
}

// PublishRevocationPrimitives publishes the definition and then the delta.
// The already published ones are skipped, so calling this again after
// success doesn't write to the ledger.
func (r *Registry) PublishRevocationPrimitives(ctx context.Context, lw core.LedgerWrite, tailsURL string) (err error) {
	defer err2.Handle(&err)

	if r.WasRevRegDefPublished() {
		glog.V(3).Infoln("rev reg def already published:", r.ID)
	} else {
		try.To(r.PublishRevRegDef(ctx, lw, tailsURL))
	}
	if r.WasRevRegDeltaPublished() {
		glog.V(3).Infoln("rev reg delta already published:", r.ID)
	} else {
		try.To(r.PublishRevRegDelta(ctx, lw))
	}
	return nil
}

// RevokeCredentialLocal revokes the credential and stages the delta to be
// published later with PublishLocalRevocations.
func (r *Registry) RevokeCredentialLocal(ctx context.Context, ac core.Anoncreds, deltas *Deltas, credRevID string) (err error) {
	defer err2.Handle(&err, "revoke %s/%s locally", r.ID, credRevID)

	delta := try.To1(ac.IssuerRevokeCredential(ctx, r.TailsDir, r.ID, credRevID))
	try.To(deltas.Stage(ctx, ac, r.ID, delta))
	glog.V(1).Infof("credential %s revoked locally from %s", credRevID, r.ID)
	return nil
}

// PublishLocalRevocations publishes the staged delta in one ledger write and
// clears it. Without a staged delta it does nothing. Revocations staged
// during the write stay staged for the next publish.
func (r *Registry) PublishLocalRevocations(ctx context.Context, lw core.LedgerWrite, deltas *Deltas, submitterDID string) (err error) {
	defer err2.Handle(&err, "publish local revocations of %s", r.ID)

	unlock := deltas.lockPublish(r.ID)
	defer unlock()

	delta, ok := try.To2(deltas.Get(r.ID))
	if !ok {
		glog.Warningln("no local revocations to publish for", r.ID)
		return nil
	}
	if err := lw.PublishRevRegDelta(ctx, submitterDID, r.ID, delta); err != nil {
		return core.Backend(err)
	}
	if !try.To1(deltas.ClearPublished(r.ID, delta)) {
		glog.V(1).Infoln("revocations staged during publish kept for", r.ID)
		return nil
	}
	glog.V(1).Infoln("local revocations published for", r.ID)
	return nil
}

// RevokeCredential revokes locally and publishes at once.
func (r *Registry) RevokeCredential(
	ctx context.Context,
	ac core.Anoncreds,
	lw core.LedgerWrite,
	deltas *Deltas,
	credRevID string,
) (err error) {
	defer err2.Handle(&err)

	try.To(r.RevokeCredentialLocal(ctx, ac, deltas, credRevID))
	try.To(r.PublishLocalRevocations(ctx, lw, deltas, r.IssuerDID))
	return nil
}

func (r *Registry) JSON() ([]byte, error) {
	return json.Marshal(r)
}

// Parse reads the registry JSON.
func Parse(data []byte) (*Registry, error) {
	r := new(Registry)
	if err := json.Unmarshal(data, r); err != nil {
		return nil, core.Kind(core.ErrInvalidJSON, fmt.Errorf("parse revocation registry: %w", err))
	}
	return r, nil
}
