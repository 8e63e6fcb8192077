package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Event outcomes.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Event metrics
	Events        *prometheus.CounterVec
	Rejections    *prometheus.CounterVec
	MalformedRows prometheus.Counter

	// Account metrics
	AccountsLocked prometheus.Counter
	AccountsKnown  prometheus.Gauge

	// Ledger metrics
	TransactionsRecorded *prometheus.CounterVec
	DepositAmount        prometheus.Histogram
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Event metrics
		Events: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txengine_events_total",
				Help: "Total events processed by type and outcome",
			},
			[]string{"type", "outcome"},
		),
		Rejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txengine_rejections_total",
				Help: "Total rejected events by reason",
			},
			[]string{"reason"},
		),
		MalformedRows: factory.NewCounter(prometheus.CounterOpts{
			Name: "txengine_malformed_rows_total",
			Help: "Total input rows discarded as malformed",
		}),

		// Account metrics
		AccountsLocked: factory.NewCounter(prometheus.CounterOpts{
			Name: "txengine_accounts_locked_total",
			Help: "Total accounts locked by chargeback",
		}),
		AccountsKnown: factory.NewGauge(prometheus.GaugeOpts{
			Name: "txengine_accounts_known",
			Help: "Number of client accounts in the final report",
		}),

		// Ledger metrics
		TransactionsRecorded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txengine_transactions_recorded_total",
				Help: "Total transactions recorded in the ledger by kind",
			},
			[]string{"kind"},
		),
		DepositAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "txengine_deposit_amount",
			Help:    "Accepted deposit amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
	}
}

// WriteToTextfile dumps every metric gathered by g to path in the text
// exposition format.
func WriteToTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
