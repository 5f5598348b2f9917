package observability

import (
	"context"

	"verbtrainer/internal/config"
	contextutils "verbtrainer/internal/utils"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// InitMetrics initializes an OTLP-exporting MeterProvider
func InitMetrics(cfg *config.OpenTelemetryConfig) (result0 *metric.MeterProvider, err error) {
	ctx := context.Background()

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to create otel resource: %w", err)
	}

	var exporter metric.Exporter
	switch cfg.Protocol {
	case "grpc":
		opts := []otlpmetricgrpc.Option{
			otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
			otlpmetricgrpc.WithHeaders(cfg.Headers),
		}
		if cfg.Insecure {
			opts = append(opts, otlpmetricgrpc.WithInsecure())
		}
		exporter, err = otlpmetricgrpc.New(ctx, opts...)
		if err != nil {
			return nil, contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to create otlp grpc metric exporter: %w", err)
		}
	case "http":
		opts := []otlpmetrichttp.Option{
			otlpmetrichttp.WithEndpoint(cfg.Endpoint),
			otlpmetrichttp.WithHeaders(cfg.Headers),
		}
		if cfg.Insecure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
		exporter, err = otlpmetrichttp.New(ctx, opts...)
		if err != nil {
			return nil, contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to create otlp http metric exporter: %w", err)
		}
	default:
		return nil, contextutils.WrapErrorf(contextutils.ErrInternalError, "unsupported otel protocol: %s", cfg.Protocol)
	}

	mp := metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(exporter)),
		metric.WithResource(res),
	)
	return mp, nil
}

// TrainerMetrics holds the application level instruments
type TrainerMetrics struct {
	resolutions  otelmetric.Int64Counter
	candidates   otelmetric.Int64Histogram
	quizAnswers  otelmetric.Int64Counter
	translations otelmetric.Int64Counter
}

// NewTrainerMetrics creates the instruments on the given provider. A nil
// provider uses the global one, which is a no-op until SetupObservability
// installs a real MeterProvider.
func NewTrainerMetrics(provider otelmetric.MeterProvider) (*TrainerMetrics, error) {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	meter := provider.Meter("verbtrainer")

	resolutions, err := meter.Int64Counter("verbtrainer.resolutions",
		otelmetric.WithDescription("Phrase resolutions by direction and outcome"))
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to create resolutions counter")
	}
	candidates, err := meter.Int64Histogram("verbtrainer.resolution.candidates",
		otelmetric.WithDescription("Number of candidates returned by a successful resolution"))
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to create candidates histogram")
	}
	quizAnswers, err := meter.Int64Counter("verbtrainer.quiz.answers",
		otelmetric.WithDescription("Quiz answers by result"))
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to create quiz answers counter")
	}
	translations, err := meter.Int64Counter("verbtrainer.translations",
		otelmetric.WithDescription("Translation proxy calls by outcome"))
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to create translations counter")
	}

	return &TrainerMetrics{
		resolutions:  resolutions,
		candidates:   candidates,
		quizAnswers:  quizAnswers,
		translations: translations,
	}, nil
}

// RecordResolution counts a resolution attempt; candidates is 0 for no match
func (m *TrainerMetrics) RecordResolution(ctx context.Context, direction string, candidates int) {
	if m == nil {
		return
	}
	outcome := "match"
	if candidates == 0 {
		outcome = "no_match"
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("direction", direction),
		attribute.String("outcome", outcome),
	)
	m.resolutions.Add(ctx, 1, attrs)
	if candidates > 0 {
		m.candidates.Record(ctx, int64(candidates), otelmetric.WithAttributes(attribute.String("direction", direction)))
	}
}

// RecordQuizAnswer counts a quiz submission or reveal
func (m *TrainerMetrics) RecordQuizAnswer(ctx context.Context, result string) {
	if m == nil {
		return
	}
	m.quizAnswers.Add(ctx, 1, otelmetric.WithAttributes(attribute.String("result", result)))
}

// RecordTranslation counts a translation proxy call
func (m *TrainerMetrics) RecordTranslation(ctx context.Context, provider, outcome string) {
	if m == nil {
		return
	}
	m.translations.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("outcome", outcome),
	))
}
