package telemetry

import (
	"log/slog"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/cashflow/payment-records/internal/config"
	"github.com/cashflow/payment-records/internal/port/output"
)

// VictoriaMetricsRecorder implements the PaymentMetrics output port on
// top of process-wide VictoriaMetrics counters and a histogram.
type VictoriaMetricsRecorder struct {
	created            *metrics.Counter
	processedSuccess   *metrics.Counter
	processedFailure   *metrics.Counter
	processingDuration *metrics.Histogram
}

// NewVictoriaMetricsRecorder creates the recorder and registers its series
func NewVictoriaMetricsRecorder() *VictoriaMetricsRecorder {
	return &VictoriaMetricsRecorder{
		created:            metrics.GetOrCreateCounter(`payments_created_total`),
		processedSuccess:   metrics.GetOrCreateCounter(`payments_processed_total{status="success"}`),
		processedFailure:   metrics.GetOrCreateCounter(`payments_processed_total{status="failure"}`),
		processingDuration: metrics.GetOrCreateHistogram(`payments_processing_duration_seconds`),
	}
}

// PaymentCreated increments the created-payments counter
func (r *VictoriaMetricsRecorder) PaymentCreated() {
	r.created.Inc()
}

// PaymentProcessed increments the processed-payments counter by outcome
func (r *VictoriaMetricsRecorder) PaymentProcessed(success bool) {
	if success {
		r.processedSuccess.Inc()
	} else {
		r.processedFailure.Inc()
	}
}

// ProcessingDuration records how long one process call took
func (r *VictoriaMetricsRecorder) ProcessingDuration(d time.Duration) {
	r.processingDuration.Update(d.Seconds())
}

// SetupPush starts background pushing to a remote write endpoint when
// one is configured. Without a URL the metrics stay local, exposed via
// the /metrics handler.
func SetupPush(cfg config.Metrics, logger *slog.Logger) {
	if cfg.PushURL == "" {
		return
	}
	err := metrics.InitPush(cfg.PushURL, time.Duration(cfg.PushIntervalMs)*time.Millisecond, cfg.CommonLabels, true)
	if err != nil {
		logger.Error("error initializing metrics push", "error", err)
	}
}

var _ output.PaymentMetrics = (*VictoriaMetricsRecorder)(nil)
