package execre

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/coregx/execre"

var discardLogger = slog.New(slog.DiscardHandler)

// telemetry holds the logger and counters shared by a RegExp and its clones.
type telemetry struct {
	logger  *slog.Logger
	calls   metric.Int64Counter
	matches metric.Int64Counter
	resets  metric.Int64Counter
	attrs   metric.MeasurementOption
}

func newTelemetry(config Config, m mode) *telemetry {
	logger := config.Logger
	if logger == nil {
		logger = discardLogger
	}
	provider := config.MeterProvider
	if provider == nil {
		provider = otel.GetMeterProvider()
	}

	meter := provider.Meter(instrumentationName)
	calls, err := meter.Int64Counter("execre.exec.calls",
		metric.WithDescription("Number of exec calls"))
	if err != nil {
		logger.Warn("execre: counter init failed", "counter", "execre.exec.calls", "error", err)
	}
	matches, err := meter.Int64Counter("execre.exec.matches",
		metric.WithDescription("Number of exec calls that found a match"))
	if err != nil {
		logger.Warn("execre: counter init failed", "counter", "execre.exec.matches", "error", err)
	}
	resets, err := meter.Int64Counter("execre.cursor.resets",
		metric.WithDescription("Number of lastIndex resets after a failed stateful exec"))
	if err != nil {
		logger.Warn("execre: counter init failed", "counter", "execre.cursor.resets", "error", err)
	}

	return &telemetry{
		logger:  logger,
		calls:   calls,
		matches: matches,
		resets:  resets,
		attrs:   metric.WithAttributeSet(attribute.NewSet(attribute.String("mode", m.String()))),
	}
}

// record counts one exec call.
func (t *telemetry) record(matched bool) {
	ctx := context.Background()
	if t.calls != nil {
		t.calls.Add(ctx, 1, t.attrs)
	}
	if matched && t.matches != nil {
		t.matches.Add(ctx, 1, t.attrs)
	}
}

// reset counts and logs a cursor reset.
func (t *telemetry) reset(lastIndex, length int) {
	if t.resets != nil {
		t.resets.Add(context.Background(), 1, t.attrs)
	}
	t.logger.Debug("execre: cursor reset", "lastIndex", lastIndex, "length", length)
}
