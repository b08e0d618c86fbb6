package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
)

// ProductionMetricsCollector turns production notifications into metrics.
// It is a production.NotificationSink and is usually fanned out next to the
// log sink.
type ProductionMetricsCollector struct {
	eventsTotal     *prometheus.CounterVec
	unitsTotal      *prometheus.CounterVec
	ordersFinished  *prometheus.CounterVec
	blockedTotal    *prometheus.CounterVec
	campaignHour    prometheus.Gauge
	queueDepth      *prometheus.GaugeVec
	ordersCancelled *prometheus.CounterVec
}

// NewProductionMetricsCollector creates a new production metrics collector
func NewProductionMetricsCollector() *ProductionMetricsCollector {
	return &ProductionMetricsCollector{
		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "events_total",
				Help:      "Production notifications by type",
			},
			[]string{"type"},
		),

		unitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "units_completed_total",
				Help:      "Units manufactured or disassembled by base and kind",
			},
			[]string{"base", "kind"},
		),

		ordersFinished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_finished_total",
				Help:      "Orders that produced every unit",
			},
			[]string{"base", "target"},
		),

		blockedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_blocked_total",
				Help:      "Orders that stalled for lack of credits or storage",
			},
			[]string{"base", "reason"},
		),

		campaignHour: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "campaign_hour",
				Help:      "Campaign hour of the last processed notification",
			},
		),

		queueDepth: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "queue_depth",
				Help:      "Orders queued per base",
			},
			[]string{"base"},
		),

		ordersCancelled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_cancelled_total",
				Help:      "Orders cancelled by the player or by lost workspace",
			},
			[]string{"base"},
		),
	}
}

// Register registers all production metrics with the Prometheus registry
func (c *ProductionMetricsCollector) Register() error {
	return register(
		c.eventsTotal,
		c.unitsTotal,
		c.ordersFinished,
		c.blockedTotal,
		c.campaignHour,
		c.queueDepth,
		c.ordersCancelled,
	)
}

// Notify records one production notification
func (c *ProductionMetricsCollector) Notify(ctx context.Context, e production.Event) {
	c.eventsTotal.WithLabelValues(string(e.Type)).Inc()
	if e.Hour > 0 {
		c.campaignHour.Set(float64(e.Hour))
	}

	switch e.Type {
	case production.EventUnitCompleted:
		c.unitsTotal.WithLabelValues(e.BaseID, string(e.Kind)).Inc()
	case production.EventFinished:
		c.ordersFinished.WithLabelValues(e.BaseID, e.TargetID).Inc()
	case production.EventBlockedCredits:
		c.blockedTotal.WithLabelValues(e.BaseID, "credits").Inc()
	case production.EventBlockedSpace:
		c.blockedTotal.WithLabelValues(e.BaseID, "space").Inc()
	case production.EventCancelled:
		c.ordersCancelled.WithLabelValues(e.BaseID).Inc()
	case production.EventQueueEmpty, production.EventQueueEmptied:
		c.queueDepth.WithLabelValues(e.BaseID).Set(0)
	}
}

// ObserveQueues publishes the queue depth of every base in the book
func (c *ProductionMetricsCollector) ObserveQueues(book *production.Book) {
	for _, baseID := range book.BaseIDs() {
		c.queueDepth.WithLabelValues(baseID).Set(float64(book.Queue(baseID).Len()))
	}
}

var _ production.NotificationSink = (*ProductionMetricsCollector)(nil)
