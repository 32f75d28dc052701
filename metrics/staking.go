package metrics

import (
	"context"

	"go.opentelemetry.io/otel/metric"
)

type StakingMetrics struct {
	droppedSchedulesCounter metric.Int64Counter
	opts                    metric.MeasurementOption
}

// NewStakingMetrics initializes metrics related to vesting schedule reads
func NewStakingMetrics(meter metric.Meter, opts metric.MeasurementOption) (*StakingMetrics, error) {
	droppedSchedulesCounter, err := meter.Int64Counter(
		"staking.DroppedSchedules",
		metric.WithDescription("Vesting schedules omitted from lock lists because they failed to fetch"),
	)
	if err != nil {
		return nil, err
	}

	return &StakingMetrics{
		droppedSchedulesCounter: droppedSchedulesCounter,
		opts:                    opts,
	}, nil
}

func (m *StakingMetrics) TrackDroppedSchedules(count int) {
	m.droppedSchedulesCounter.Add(context.Background(), int64(count), m.opts)
}
