package metrics

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MetricsCollector struct {
	registry            *prometheus.Registry
	transactionsApplied *prometheus.CounterVec
	transactionsFailed  *prometheus.CounterVec
	transactionDuration prometheus.Histogram
	accountBalance      *prometheus.GaugeVec
	clientsRegistered   prometheus.Counter
	accountsOpened      *prometheus.CounterVec
	dayRollovers        prometheus.Counter
	mu                  sync.RWMutex
	logger              *slog.Logger
}

func NewMetricsCollector(logger *slog.Logger) *MetricsCollector {
	if logger == nil {
		logger = slog.Default()
	}

	registry := prometheus.NewRegistry()

	collector := &MetricsCollector{
		registry: registry,
		transactionsApplied: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_transactions_applied_total",
			Help: "Total number of credits and debits applied to accounts",
		}, []string{"kind"}),
		transactionsFailed: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_transactions_rejected_total",
			Help: "Total number of rejected credits and debits by reason",
		}, []string{"kind", "reason"}),
		transactionDuration: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_transaction_duration_seconds",
			Help:    "Time taken to apply a transaction",
			Buckets: prometheus.DefBuckets,
		}),
		accountBalance: promauto.With(registry).NewGaugeVec(prometheus.GaugeOpts{
			Name: "ledger_account_balance",
			Help: "Current account balance",
		}, []string{"branch", "number"}),
		clientsRegistered: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "ledger_clients_registered_total",
			Help: "Total number of registered clients",
		}),
		accountsOpened: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_accounts_opened_total",
			Help: "Total number of opened accounts by type",
		}, []string{"type"}),
		dayRollovers: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "ledger_day_rollovers_total",
			Help: "Total number of daily debit counter resets",
		}),
		logger: logger,
	}

	return collector
}

// RecordTransaction counts the outcome under reason "ok" as applied and
// anything else as rejected.
func (m *MetricsCollector) RecordTransaction(kind, reason string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if reason == "ok" {
		m.transactionsApplied.WithLabelValues(kind).Inc()
	} else {
		m.transactionsFailed.WithLabelValues(kind, reason).Inc()
	}

	m.transactionDuration.Observe(duration.Seconds())
}

func (m *MetricsCollector) UpdateAccountBalance(branch, number string, balance float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accountBalance.WithLabelValues(branch, number).Set(balance)
}

func (m *MetricsCollector) RecordClientRegistered() {
	m.clientsRegistered.Inc()
}

func (m *MetricsCollector) RecordAccountOpened(accountType string) {
	m.accountsOpened.WithLabelValues(accountType).Inc()
}

func (m *MetricsCollector) RecordDayRollover() {
	m.dayRollovers.Inc()
}

func (m *MetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}

func (m *MetricsCollector) GetHandler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *MetricsCollector) StartMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.GetHandler())

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		m.logger.Info("Starting metrics server", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			m.logger.Error("Metrics server failed", slog.String("error", err.Error()))
		}
	}()

	return server
}
