/*
Package agency assembles one exchange agent from the settings: the store, the
local key wallet, the exchange book, the inbound processor, the outbound
transport and the revocation batcher.

Protocol handlers are added by the caller:

	a := try.To1(agency.New(utils.Settings, ledger))
	defer a.Close()
	a.Handle(pltype.ProtocolBasicMessage, onBasicMessage)
	http.Handle("/a2a", a)
	http.Handle("/metrics", a.Metrics())
*/
package agency

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/findy-network/findy-exchange/agent/prot"
	"github.com/findy-network/findy-exchange/agent/psm"
	"github.com/findy-network/findy-exchange/agent/revreg"
	"github.com/findy-network/findy-exchange/agent/ssi"
	"github.com/findy-network/findy-exchange/agent/storage/api"
	"github.com/findy-network/findy-exchange/agent/storage/cfg"
	"github.com/findy-network/findy-exchange/agent/trans"
	"github.com/findy-network/findy-exchange/agent/utils"
	"github.com/findy-network/findy-exchange/core"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxInboundSize = 1 << 20

type Agency struct {
	Hub        *utils.Hub
	Store      api.Provider
	Wallet     *ssi.Wallet
	Book       *prot.Book
	Processor  *prot.Processor
	Transport  core.Transport
	Registries *revreg.Registries
	Deltas     *revreg.Deltas

	batcher *revreg.Batcher
	metrics *prometheus.Registry
}

// New opens the store of the settings and builds the agent on it. A nil
// ledger turns the revocation batcher off.
func New(h *utils.Hub, ledger core.LedgerWrite) (a *Agency, err error) {
	defer err2.Handle(&err, "new agency")

	utils.ParseLoggingArgs(h.Logging())

	p := try.To1(cfg.New(h))
	defer err2.Handle(&err, func(err error) error {
		_ = p.Close()
		return err
	})

	keys := try.To1(p.OpenStore(api.BucketKey))
	w := try.To1(ssi.NewWallet(keys))
	a = &Agency{
		Hub:        h,
		Store:      p,
		Wallet:     w,
		Book:       try.To1(prot.NewBook(p)),
		Processor:  prot.NewProcessor(w, w),
		Transport:  trans.New(h),
		Registries: try.To1(revreg.NewRegistries(p)),
		Deltas:     try.To1(revreg.NewDeltas(p)),
		metrics:    prometheus.NewRegistry(),
	}
	try.To(psm.Register(a.metrics))
	if ledger != nil {
		a.batcher = &revreg.Batcher{Registries: a.Registries, Deltas: a.Deltas, Ledger: ledger}
		try.To(a.batcher.Start(h.RevBatchInterval()))
	}
	glog.V(1).Infof("agency %q ready, store: %s", h.Label(), h.StoreType())
	return a, nil
}

// Handle routes the inbound messages of the protocol family to h.
func (a *Agency) Handle(family string, h prot.Handler) {
	a.Processor.Add(family, h)
}

// ServeHTTP is the inbound DIDComm endpoint. The envelope is processed before
// the response: unknown or malformed messages get 400.
func (a *Agency) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, maxInboundSize))
	if err != nil {
		glog.Warningln("read inbound:", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := a.Processor.Process(r.Context(), data); err != nil {
		glog.Errorln("inbound:", err)
		w.WriteHeader(statusCode(err))
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, core.ErrInvalidJSON), errors.Is(err, core.ErrUnimplemented),
		errors.Is(err, core.ErrAuthentication):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrThreadMismatch), errors.Is(err, core.ErrInvalidState),
		api.IsNotFound(err):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Metrics serves the state machine metrics for prometheus.
func (a *Agency) Metrics() http.Handler {
	return promhttp.HandlerFor(a.metrics, promhttp.HandlerOpts{})
}

// PublishRevocations publishes the staged local revocations now.
func (a *Agency) PublishRevocations(ctx context.Context) (int, error) {
	if a.batcher == nil {
		return 0, core.Errorf(core.ErrNotReady, "no ledger")
	}
	return a.batcher.PublishAll(ctx)
}

func (a *Agency) Close() error {
	if a.batcher != nil {
		a.batcher.Stop()
	}
	return a.Store.Close()
}
