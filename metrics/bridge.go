package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type BridgeMetrics struct {
	attemptCounter    metric.Int64Counter
	durationHistogram metric.Float64Histogram
	opts              metric.MeasurementOption
}

// NewBridgeMetrics initializes metrics related to bridge attempts
func NewBridgeMetrics(meter metric.Meter, opts metric.MeasurementOption) (*BridgeMetrics, error) {
	attemptCounter, err := meter.Int64Counter(
		"bridge.Attempts",
		metric.WithDescription("Finished bridge attempts, tagged by terminal outcome"),
	)
	if err != nil {
		return nil, err
	}

	durationHistogram, err := meter.Float64Histogram("bridge.DurationSeconds")
	if err != nil {
		return nil, err
	}

	return &BridgeMetrics{
		attemptCounter:    attemptCounter,
		durationHistogram: durationHistogram,
		opts:              opts,
	}, nil
}

func (m *BridgeMetrics) TrackBridgeOutcome(outcome string) {
	m.attemptCounter.Add(
		context.Background(),
		1,
		m.opts,
		metric.WithAttributes(attribute.String("outcome", outcome)),
	)
}

func (m *BridgeMetrics) ObserveBridgeDuration(elapsed time.Duration) {
	m.durationHistogram.Record(context.Background(), elapsed.Seconds(), m.opts)
}
