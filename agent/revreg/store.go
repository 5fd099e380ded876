package revreg

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/findy-network/findy-exchange/agent/storage/api"
	"github.com/findy-network/findy-exchange/core"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

type deltaRecord struct {
	RevRegID string `json:"rev_reg_id"`
	Delta    string `json:"delta"`
}

// Deltas keeps the unpublished local revocation delta of each registry in
// api.BucketRevocation.
type Deltas struct {
	l sync.Mutex // stage is read-merge-write
	s api.Store

	pl         sync.Mutex
	publishing map[string]*sync.Mutex
}

func NewDeltas(p api.Provider) (d *Deltas, err error) {
	defer err2.Handle(&err, "revocation deltas")

	return &Deltas{
		s:          try.To1(p.OpenStore(api.BucketRevocation)),
		publishing: make(map[string]*sync.Mutex),
	}, nil
}

// lockPublish serializes the publishers of one registry. Stage isn't
// blocked by it.
func (d *Deltas) lockPublish(revRegID string) (unlock func()) {
	d.pl.Lock()
	m, ok := d.publishing[revRegID]
	if !ok {
		m = new(sync.Mutex)
		d.publishing[revRegID] = m
	}
	d.pl.Unlock()

	m.Lock()
	return m.Unlock
}

// Stage adds delta to the registry's local delta. An existing delta is
// merged with the accumulator arithmetic of anoncreds, never overwritten.
func (d *Deltas) Stage(ctx context.Context, ac core.Anoncreds, revRegID, delta string) (err error) {
	defer err2.Handle(&err, "stage delta")

	d.l.Lock()
	defer d.l.Unlock()

	prev, ok := try.To2(d.get(revRegID))
	if ok {
		delta = try.To1(ac.IssuerMergeRevRegDeltas(ctx, prev, delta))
	}
	data := try.To1(json.Marshal(deltaRecord{RevRegID: revRegID, Delta: delta}))
	try.To(d.s.Put(revRegID, data))
	return nil
}

// Get returns the staged delta and false if there is none.
func (d *Deltas) Get(revRegID string) (string, bool, error) {
	d.l.Lock()
	defer d.l.Unlock()
	return d.get(revRegID)
}

func (d *Deltas) get(revRegID string) (delta string, ok bool, err error) {
	data, err := d.s.Get(revRegID)
	if api.IsNotFound(err) {
		return "", false, nil
	} else if err != nil {
		return "", false, core.Backend(err)
	}
	var rec deltaRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return "", false, core.Kind(core.ErrInvalidJSON, err)
	}
	return rec.Delta, true, nil
}

// ClearPublished removes the staged delta only if it still is the published
// one. A delta merged after the publish read stays staged and false is
// returned.
func (d *Deltas) ClearPublished(revRegID, published string) (cleared bool, err error) {
	defer err2.Handle(&err, "clear published delta")

	d.l.Lock()
	defer d.l.Unlock()

	delta, ok := try.To2(d.get(revRegID))
	if !ok {
		return false, nil
	}
	if delta != published {
		return false, nil
	}
	if err := d.s.Delete(revRegID); err != nil && !api.IsNotFound(err) {
		return false, core.Backend(err)
	}
	return true, nil
}

// Pending returns the ids of the registries with a staged delta.
func (d *Deltas) Pending() (ids []string, err error) {
	defer err2.Handle(&err, "pending deltas")

	for _, data := range try.To1(d.s.GetAll()) {
		var rec deltaRecord
		try.To(json.Unmarshal(data, &rec))
		ids = append(ids, rec.RevRegID)
	}
	return ids, nil
}

// Registries persists the registries of an issuer in api.BucketRegistry.
type Registries struct {
	s api.Store
}

func NewRegistries(p api.Provider) (r *Registries, err error) {
	defer err2.Handle(&err, "revocation registries")

	return &Registries{s: try.To1(p.OpenStore(api.BucketRegistry))}, nil
}

func (rs *Registries) Save(r *Registry) (err error) {
	defer err2.Handle(&err, "save registry %s", r.ID)

	try.To(rs.s.Put(r.ID, try.To1(r.JSON())))
	return nil
}

// Get returns the registry. Unknown id gives api.ErrNotFound.
func (rs *Registries) Get(id string) (r *Registry, err error) {
	defer err2.Handle(&err, "get registry %s", id)

	return Parse(try.To1(rs.s.Get(id)))
}

// Published tells if the registry exists and its definition is on the
// ledger. Issuers check this before offering revocable credentials.
func (rs *Registries) Published(_ context.Context, id string) (bool, error) {
	r, err := rs.Get(id)
	if api.IsNotFound(err) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return r.WasRevRegDefPublished(), nil
}

// Update loads the registry, runs fn and saves the result if fn succeeds.
func (rs *Registries) Update(id string, fn func(r *Registry) error) (err error) {
	defer err2.Handle(&err)

	r := try.To1(rs.Get(id))
	if err := fn(r); err != nil {
		// publish flags set before the failure are kept
		if saveErr := rs.Save(r); saveErr != nil {
			return fmt.Errorf("%w (save: %v)", err, saveErr)
		}
		return err
	}
	return rs.Save(r)
}
