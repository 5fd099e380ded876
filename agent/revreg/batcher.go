package revreg

import (
	"context"
	"time"

	"github.com/findy-network/findy-exchange/core"
	"github.com/go-co-op/gocron"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// Batcher publishes the staged local revocations of all registries on a
// schedule.
type Batcher struct {
	Registries *Registries
	Deltas     *Deltas
	Ledger     core.LedgerWrite

	cron *gocron.Scheduler
}

// PublishAll publishes every pending delta. It continues after a failing
// registry and returns the number of published ones with the first error.
func (b *Batcher) PublishAll(ctx context.Context) (n int, err error) {
	defer err2.Handle(&err, "publish pending revocations")

	for _, id := range try.To1(b.Deltas.Pending()) {
		perr := b.Registries.Update(id, func(r *Registry) error {
			return r.PublishLocalRevocations(ctx, b.Ledger, b.Deltas, r.IssuerDID)
		})
		if perr != nil {
			glog.Errorf("publish local revocations of %s: %v", id, perr)
			if err == nil {
				err = perr
			}
			continue
		}
		n++
	}
	return n, err
}

// Start schedules PublishAll every interval. Zero interval does nothing.
func (b *Batcher) Start(interval time.Duration) (err error) {
	defer err2.Handle(&err, "start revocation batcher")

	if interval <= 0 {
		glog.V(1).Infoln("revocation batching off")
		return nil
	}
	b.cron = gocron.NewScheduler(time.Now().Location())
	try.To1(b.cron.Every(interval).WaitForSchedule().Do(func() {
		n, err := b.PublishAll(context.Background())
		if err != nil {
			glog.Warningln("revocation batch:", err)
		}
		if n > 0 {
			glog.V(1).Infof("revocation batch published %d registries", n)
		}
	}))
	b.cron.StartAsync()
	glog.V(1).Infoln("revocation batcher started, interval:", interval)
	return nil
}

func (b *Batcher) Stop() {
	if b.cron != nil {
		b.cron.Stop()
	}
}
