package psm

import "github.com/prometheus/client_golang/prometheus"

var (
	transitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "findy_exchange",
		Subsystem: "psm",
		Name:      "transitions_total",
		Help:      "State machine transitions by role and states.",
	}, []string{"kind", "from", "to"})

	transitionErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "findy_exchange",
		Subsystem: "psm",
		Name:      "transition_errors_total",
		Help:      "Failed state machine operations by role and operation.",
	}, []string{"kind", "op"})
)

// Register registers the state machine metrics.
func Register(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{transitions, transitionErrors} {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}
