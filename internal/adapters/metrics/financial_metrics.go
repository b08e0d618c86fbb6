package metrics

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ufoaiorg/ufoai-sub009/internal/domain/campaign"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/ledger"
)

// FinancialMetricsCollector handles credit pool metrics
type FinancialMetricsCollector struct {
	// Dependencies
	campaigns campaign.Repository

	creditsBalance    *prometheus.GaugeVec
	transactionsTotal *prometheus.CounterVec
	transactionAmount *prometheus.HistogramVec
	spentTotal        *prometheus.CounterVec

	// Lifecycle
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup

	pollInterval time.Duration
}

// NewFinancialMetricsCollector creates a new financial metrics collector.
// campaigns may be nil, in which case balances only move with recorded transactions.
func NewFinancialMetricsCollector(campaigns campaign.Repository, pollInterval time.Duration) *FinancialMetricsCollector {
	if pollInterval <= 0 {
		pollInterval = 60 * time.Second
	}
	return &FinancialMetricsCollector{
		campaigns:    campaigns,
		pollInterval: pollInterval,

		creditsBalance: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "credits_balance",
				Help:      "Current shared credit balance of each campaign",
			},
			[]string{"campaign"},
		),

		transactionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transactions_total",
				Help:      "Total number of credit movements by type and category",
			},
			[]string{"campaign", "type", "category"},
		),

		transactionAmount: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transaction_amount",
				Help:      "Credit movement amount distribution",
				Buckets:   []float64{10, 50, 100, 500, 1000, 5000, 10000, 100000},
			},
			[]string{"campaign", "type", "category"},
		),

		spentTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "credits_spent_total",
				Help:      "Credits charged for completed units by base",
			},
			[]string{"campaign", "base"},
		),
	}
}

// Register registers all financial metrics with the Prometheus registry
func (c *FinancialMetricsCollector) Register() error {
	return register(c.creditsBalance, c.transactionsTotal, c.transactionAmount, c.spentTotal)
}

// Start begins the balance polling goroutine
func (c *FinancialMetricsCollector) Start(ctx context.Context) {
	if c.campaigns == nil {
		return
	}
	c.ctx, c.cancelFunc = context.WithCancel(ctx)

	c.wg.Add(1)
	go c.pollBalances()
}

// Stop gracefully stops the financial metrics collector
func (c *FinancialMetricsCollector) Stop() {
	if c.cancelFunc != nil {
		c.cancelFunc()
	}
	c.wg.Wait()
}

func (c *FinancialMetricsCollector) pollBalances() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	c.updateBalances()
	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.updateBalances()
		}
	}
}

func (c *FinancialMetricsCollector) updateBalances() {
	summaries, err := c.campaigns.List(c.ctx)
	if err != nil {
		log.Printf("Failed to list campaigns for balance update: %v", err)
		return
	}
	for _, s := range summaries {
		c.creditsBalance.WithLabelValues(s.ID).Set(float64(s.Credits))
	}
}

// RecordTransaction records a credit movement
func (c *FinancialMetricsCollector) RecordTransaction(tx *ledger.Transaction) {
	campaignID := tx.CampaignID()
	txType := tx.TransactionType().String()
	category := tx.Category().String()

	c.creditsBalance.WithLabelValues(campaignID).Set(float64(tx.BalanceAfter()))
	c.transactionsTotal.WithLabelValues(campaignID, txType, category).Inc()

	amount := tx.Amount()
	if amount < 0 {
		amount = -amount
	}
	c.transactionAmount.WithLabelValues(campaignID, txType, category).Observe(float64(amount))

	if tx.TransactionType() == ledger.TransactionTypeProductionCost {
		c.spentTotal.WithLabelValues(campaignID, tx.BaseID()).Add(float64(amount))
	}
}

// InstrumentedTransactionRepository reports every stored transaction to the
// global financial collector
type InstrumentedTransactionRepository struct {
	ledger.TransactionRepository
}

// InstrumentTransactions wraps a repository so stored transactions reach the metrics
func InstrumentTransactions(repo ledger.TransactionRepository) *InstrumentedTransactionRepository {
	return &InstrumentedTransactionRepository{TransactionRepository: repo}
}

// Create stores the transactions and records them once stored
func (r *InstrumentedTransactionRepository) Create(ctx context.Context, transactions ...*ledger.Transaction) error {
	if err := r.TransactionRepository.Create(ctx, transactions...); err != nil {
		return err
	}
	for _, tx := range transactions {
		RecordTransaction(tx)
	}
	return nil
}
