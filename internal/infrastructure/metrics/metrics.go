package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transaction metrics
	TransactionsRecorded  prometheus.Counter
	TransactionsRejected  *prometheus.CounterVec
	TransactionDuration   prometheus.Histogram
	EntriesPerTransaction prometheus.Histogram

	// Account metrics
	AccountsCreated prometheus.Counter
	AccountsDeleted prometheus.Counter

	// Balance metrics
	BalanceQueries   prometheus.Counter
	BalanceCacheHits prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		TransactionsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeeper_transactions_recorded_total",
			Help: "Total number of transactions recorded",
		}),
		TransactionsRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookkeeper_transactions_rejected_total",
				Help: "Total number of rejected transactions by reason",
			},
			[]string{"reason"},
		),
		TransactionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bookkeeper_transaction_duration_seconds",
			Help:    "Duration of transaction recording",
			Buckets: prometheus.DefBuckets,
		}),
		EntriesPerTransaction: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bookkeeper_entries_per_transaction",
			Help:    "Number of entries per recorded transaction",
			Buckets: []float64{2, 3, 4, 5, 10, 20, 50},
		}),
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeeper_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeeper_accounts_deleted_total",
			Help: "Total number of accounts deleted",
		}),
		BalanceQueries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeeper_balance_queries_total",
			Help: "Total number of balance computations",
		}),
		BalanceCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeeper_balance_cache_hits_total",
			Help: "Total number of balance reads served from cache",
		}),
	}
}
