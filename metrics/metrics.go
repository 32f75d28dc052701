package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type SproutlyMetrics struct {
	*BridgeMetrics
	*StakingMetrics
	*HostMetrics
}

// NewSproutlyMetrics creates the service metric instruments with deployment
// attributes attached to every measurement
func NewSproutlyMetrics(ctx context.Context, meter metric.Meter, env, id, version string) (*SproutlyMetrics, error) {
	opts := metric.WithAttributes(
		attribute.String("instance", id),
		attribute.String("env", env),
		attribute.String("version", version),
	)

	hostMetrics, err := NewHostMetrics(ctx, meter, opts)
	if err != nil {
		return nil, err
	}
	bridgeMetrics, err := NewBridgeMetrics(meter, opts)
	if err != nil {
		return nil, err
	}
	stakingMetrics, err := NewStakingMetrics(meter, opts)
	if err != nil {
		return nil, err
	}

	return &SproutlyMetrics{
		BridgeMetrics:  bridgeMetrics,
		StakingMetrics: stakingMetrics,
		HostMetrics:    hostMetrics,
	}, nil
}
