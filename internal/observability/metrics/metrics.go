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
	costComputations metric.Int64Counter
	priceSheetMisses metric.Int64Counter
	quotesIssued     metric.Int64Counter
	documentUploads  metric.Int64Counter
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
		name = "missioncontrol"
	}
	meter := provider.Meter(name)

	costComputations, err := meter.Int64Counter("missioncontrol_cost_computations_total")
	if err != nil {
		return nil, err
	}
	priceSheetMisses, err := meter.Int64Counter("missioncontrol_price_sheet_misses_total")
	if err != nil {
		return nil, err
	}
	quotesIssued, err := meter.Int64Counter("missioncontrol_quotes_issued_total")
	if err != nil {
		return nil, err
	}
	documentUploads, err := meter.Int64Counter("missioncontrol_document_uploads_total")
	if err != nil {
		return nil, err
	}
	rateLimitAllowed, err := meter.Int64Counter("missioncontrol_rate_limit_allowed_total")
	if err != nil {
		return nil, err
	}
	rateLimitDenied, err := meter.Int64Counter("missioncontrol_rate_limit_denied_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		costComputations: costComputations,
		priceSheetMisses: priceSheetMisses,
		quotesIssued:     quotesIssued,
		documentUploads:  documentUploads,
		rateLimitAllowed: rateLimitAllowed,
		rateLimitDenied:  rateLimitDenied,
	}, nil
}

// RecordCostComputation counts cost breakdowns produced for an order kind.
func (m *Metrics) RecordCostComputation(ctx context.Context, orderKind string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("order_kind", strings.TrimSpace(orderKind)))
	m.costComputations.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordPriceSheetMiss counts lookups that found no price sheet for the client.
func (m *Metrics) RecordPriceSheetMiss(ctx context.Context, orderKind string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("order_kind", strings.TrimSpace(orderKind)))
	m.priceSheetMisses.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func (m *Metrics) RecordQuoteIssued(ctx context.Context, prefix string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("prefix", strings.TrimSpace(prefix)))
	m.quotesIssued.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func (m *Metrics) RecordDocumentUpload(ctx context.Context, entityType string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("entity_type", strings.TrimSpace(entityType)))
	m.documentUploads.Add(ctx, 1, metric.WithAttributes(attrs...))
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
	"order_kind":  {},
	"endpoint":    {},
	"status_code": {},
	"prefix":      {},
	"entity_type": {},
	"reason":      {},
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
