package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transfer metrics
	TransfersExecuted prometheus.Counter
	TransfersReplayed prometheus.Counter
	TransfersReversed prometheus.Counter
	TransferDuration  prometheus.Histogram
	TransferAmount    prometheus.Histogram
	TransferErrors    *prometheus.CounterVec

	// Account metrics
	AccountsOpened    prometheus.Counter
	AccountsClosed    prometheus.Counter
	AccountOperations *prometheus.CounterVec

	// Deposit/withdrawal metrics
	DepositsExecuted    prometheus.Counter
	WithdrawalsExecuted prometheus.Counter

	// Hold metrics
	HoldsPlaced   prometheus.Counter
	HoldsReleased prometheus.Counter
	HoldsCaptured prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		TransfersExecuted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "corebank_transfers_executed_total",
			Help: "Total number of transfers executed",
		}),
		TransfersReplayed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "corebank_transfers_replayed_total",
			Help: "Total number of idempotent transfer replays",
		}),
		TransfersReversed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "corebank_transfers_reversed_total",
			Help: "Total number of transfers reversed",
		}),
		TransferDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "corebank_transfer_duration_seconds",
			Help:    "Duration of transfer operations",
			Buckets: prometheus.DefBuckets,
		}),
		TransferAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "corebank_transfer_amount",
			Help:    "Transfer amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		TransferErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corebank_transfer_errors_total",
				Help: "Total number of transfer errors by kind",
			},
			[]string{"kind"},
		),
		AccountsOpened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "corebank_accounts_opened_total",
			Help: "Total number of accounts opened",
		}),
		AccountsClosed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "corebank_accounts_closed_total",
			Help: "Total number of accounts closed",
		}),
		AccountOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corebank_account_operations_total",
				Help: "Total number of account operations",
			},
			[]string{"operation"},
		),
		DepositsExecuted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "corebank_deposits_executed_total",
			Help: "Total number of deposits executed",
		}),
		WithdrawalsExecuted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "corebank_withdrawals_executed_total",
			Help: "Total number of withdrawals executed",
		}),
		HoldsPlaced: promauto.NewCounter(prometheus.CounterOpts{
			Name: "corebank_holds_placed_total",
			Help: "Total number of holds placed",
		}),
		HoldsReleased: promauto.NewCounter(prometheus.CounterOpts{
			Name: "corebank_holds_released_total",
			Help: "Total number of holds released",
		}),
		HoldsCaptured: promauto.NewCounter(prometheus.CounterOpts{
			Name: "corebank_holds_captured_total",
			Help: "Total number of holds captured",
		}),
	}
}
