package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ufoaiorg/ufoai-sub009/internal/domain/ledger"
)

const (
	// Namespace for all metrics
	namespace = "ufoai"
	// Subsystem for production metrics
	subsystem = "production"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalFinancialCollector is the singleton financial metrics collector
	// Set by SetGlobalFinancialCollector() when metrics are enabled
	globalFinancialCollector FinancialMetricsRecorder
)

// FinancialMetricsRecorder defines the interface for recording credit movements
type FinancialMetricsRecorder interface {
	RecordTransaction(tx *ledger.Transaction)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalFinancialCollector sets the global financial metrics collector
func SetGlobalFinancialCollector(collector FinancialMetricsRecorder) {
	globalFinancialCollector = collector
}

// RecordTransaction records a credit movement globally
func RecordTransaction(tx *ledger.Transaction) {
	if globalFinancialCollector != nil && tx != nil {
		globalFinancialCollector.RecordTransaction(tx)
	}
}

func register(collectors ...prometheus.Collector) error {
	if Registry == nil {
		return nil // Metrics not enabled
	}
	for _, c := range collectors {
		if err := Registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}
