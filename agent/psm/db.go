package psm

import (
	"fmt"

	"github.com/findy-network/findy-exchange/agent/storage/api"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// DB keeps the PSMs in api.BucketMachine.
type DB struct {
	s api.Store
}

func NewDB(p api.Provider) (d *DB, err error) {
	defer err2.Handle(&err, "psm db")

	return &DB{s: try.To1(p.OpenStore(api.BucketMachine))}, nil
}

func (d *DB) AddPSM(p *PSM) (err error) {
	glog.V(5).Infoln("add PSM:", p.Key)
	if err = d.s.Put(p.Key.String(), p.Data()); err != nil {
		return fmt.Errorf("add psm %s: %w", p.Key, err)
	}
	return nil
}

// GetPSM returns the PSM. Not found error is api.ErrNotFound.
func (d *DB) GetPSM(key StateKey) (m *PSM, err error) {
	defer err2.Handle(&err, "get psm %s", key)

	return NewPSM(try.To1(d.s.Get(key.String()))), nil
}

func (d *DB) RmPSM(key StateKey) error {
	glog.V(5).Infoln("rm PSM:", key)
	return d.s.Delete(key.String())
}

// All returns all the PSMs, filtered by kind unless it's empty.
func (d *DB) All(kind string) (psms []*PSM, err error) {
	defer err2.Handle(&err, "all psms")

	for _, data := range try.To1(d.s.GetAll()) {
		p := NewPSM(data)
		if kind == "" || p.Key.Kind == kind {
			psms = append(psms, p)
		}
	}
	return psms, nil
}
