package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	readingsIngested metric.Int64Counter
	readingsRejected metric.Int64Counter
	estimatesBuilt   metric.Int64Counter
	alertsDetected   metric.Int64Counter
	scenariosApplied metric.Int64Counter
	rateLimitAllowed metric.Int64Counter
	rateLimitDenied  metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "enervue"
	}
	meter := provider.Meter(name)

	readingsIngested, err := meter.Int64Counter("enervue_readings_ingested_total")
	if err != nil {
		return nil, err
	}
	readingsRejected, err := meter.Int64Counter("enervue_readings_rejected_total")
	if err != nil {
		return nil, err
	}
	estimatesBuilt, err := meter.Int64Counter("enervue_estimates_built_total")
	if err != nil {
		return nil, err
	}
	alertsDetected, err := meter.Int64Counter("enervue_alerts_detected_total")
	if err != nil {
		return nil, err
	}
	scenariosApplied, err := meter.Int64Counter("enervue_scenarios_applied_total")
	if err != nil {
		return nil, err
	}
	rateLimitAllowed, err := meter.Int64Counter("enervue_rate_limit_allowed_total")
	if err != nil {
		return nil, err
	}
	rateLimitDenied, err := meter.Int64Counter("enervue_rate_limit_denied_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		readingsIngested: readingsIngested,
		readingsRejected: readingsRejected,
		estimatesBuilt:   estimatesBuilt,
		alertsDetected:   alertsDetected,
		scenariosApplied: scenariosApplied,
		rateLimitAllowed: rateLimitAllowed,
		rateLimitDenied:  rateLimitDenied,
	}, nil
}

// RecordReadingsIngested adds accepted meter reading counts by source.
func (m *Metrics) RecordReadingsIngested(ctx context.Context, source string, count int) {
	if m == nil || count <= 0 {
		return
	}
	attrs := FilterAttributes(attribute.String("source", strings.TrimSpace(source)))
	m.readingsIngested.Add(ctx, int64(count), metric.WithAttributes(attrs...))
}

// RecordReadingsRejected adds rejected row counts by reason.
func (m *Metrics) RecordReadingsRejected(ctx context.Context, reason string, count int) {
	if m == nil || count <= 0 {
		return
	}
	attrs := FilterAttributes(attribute.String("reason", strings.TrimSpace(reason)))
	m.readingsRejected.Add(ctx, int64(count), metric.WithAttributes(attrs...))
}

// RecordEstimateBuilt increments consumption estimate computations.
func (m *Metrics) RecordEstimateBuilt(ctx context.Context) {
	if m == nil {
		return
	}
	m.estimatesBuilt.Add(ctx, 1)
}

// RecordAlertDetected increments detected alert counts by severity.
func (m *Metrics) RecordAlertDetected(ctx context.Context, severity string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("severity", strings.TrimSpace(severity)))
	m.alertsDetected.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordScenarioApplied increments scenario setup counts by scenario key.
func (m *Metrics) RecordScenarioApplied(ctx context.Context, scenario string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("scenario", strings.TrimSpace(scenario)))
	m.scenariosApplied.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordRateLimitAllowed increments rate limit allow counts.
func (m *Metrics) RecordRateLimitAllowed(ctx context.Context, endpoint string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("endpoint", strings.TrimSpace(endpoint)))
	m.rateLimitAllowed.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordRateLimitDenied increments rate limit deny counts.
func (m *Metrics) RecordRateLimitDenied(ctx context.Context, endpoint, reason string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("endpoint", strings.TrimSpace(endpoint)),
		attribute.String("reason", strings.TrimSpace(reason)),
	)
	m.rateLimitDenied.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"endpoint":    {},
	"status_code": {},
	"source":      {},
	"reason":      {},
	"severity":    {},
	"scenario":    {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
