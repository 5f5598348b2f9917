package observability

import (
	"context"
	"reflect"
	"testing"

	"verbtrainer/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	autosdk "go.opentelemetry.io/auto/sdk"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestSetupObservability_NoneEnabled(t *testing.T) {
	cfg := &config.OpenTelemetryConfig{ServiceName: "test-service", Protocol: "grpc"}

	tp, mp, logger, err := SetupObservability(cfg, "verbtrainer-test")
	require.NoError(t, err)
	assert.Nil(t, tp)
	assert.Nil(t, mp)
	require.NotNil(t, logger)
	assert.Equal(t, "verbtrainer-test", cfg.ServiceName)
}

func TestSetupObservability_StandardSDK(t *testing.T) {
	cfg := &config.OpenTelemetryConfig{
		EnableTracing:  true,
		EnableMetrics:  true,
		ServiceVersion: "1.0.0",
		Protocol:       "grpc",
		Endpoint:       "localhost:4317",
		Insecure:       true,
		SamplingRate:   1.0,
	}
	tp, mp, logger, err := SetupObservability(cfg, "test-service")
	require.NoError(t, err)
	require.NotNil(t, logger)
	require.NotNil(t, mp)

	_, isStandardSDK := tp.(*sdktrace.TracerProvider)
	assert.True(t, isStandardSDK, "expected standard SDK TracerProvider when UseAutoSDK is false")
}

func TestSetupObservability_AutoSDK(t *testing.T) {
	cfg := &config.OpenTelemetryConfig{
		EnableTracing:  true,
		UseAutoSDK:     true,
		ServiceVersion: "1.0.0",
	}
	tp, _, _, err := SetupObservability(cfg, "test-service")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(autosdk.TracerProvider()), reflect.TypeOf(tp))
}

func TestInitStandardTracing_Protocols(t *testing.T) {
	for _, protocol := range []string{"grpc", "http"} {
		t.Run(protocol, func(t *testing.T) {
			cfg := &config.OpenTelemetryConfig{
				ServiceName: "test-service",
				Protocol:    protocol,
				Endpoint:    "localhost:4317",
				Insecure:    true,
			}
			tp, err := InitStandardTracing(cfg)
			require.NoError(t, err)
			_, ok := tp.(*sdktrace.TracerProvider)
			assert.True(t, ok)
		})
	}

	_, err := InitStandardTracing(&config.OpenTelemetryConfig{Protocol: "carrier-pigeon"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported otel protocol")
}

func TestInitMetrics_InvalidProtocol(t *testing.T) {
	_, err := InitMetrics(&config.OpenTelemetryConfig{Protocol: "smoke-signals"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported otel protocol")
}

func TestFinishSpanRecordsError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	run := func(fail bool) (err error) {
		_, span := tp.Tracer("test").Start(context.Background(), "work")
		defer FinishSpan(span, &err)
		if fail {
			err = assert.AnError
		}
		return err
	}

	require.NoError(t, run(false))
	require.Error(t, run(true))

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)

	FinishSpan(nil, nil)
}

func TestTraceFunctionNamesSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	globalTracer = sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)).Tracer("test")
	defer func() { globalTracer = noop.NewTracerProvider().Tracer("noop") }()

	_, span := TracePracticeFunction(context.Background(), "resolve_spanish", AttributeDirection("es"), AttributeInputLength(5))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "practice.resolve_spanish", spans[0].Name())
	assert.Len(t, spans[0].Attributes(), 2)
}

func TestTrainerMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := NewTrainerMetrics(mp)
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordResolution(ctx, "es", 1)
	m.RecordResolution(ctx, "en", 0)
	m.RecordQuizAnswer(ctx, "correct")
	m.RecordTranslation(ctx, "google", "ok")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	names := map[string]bool{}
	for _, metric := range rm.ScopeMetrics[0].Metrics {
		names[metric.Name] = true
	}
	assert.True(t, names["verbtrainer.resolutions"])
	assert.True(t, names["verbtrainer.resolution.candidates"])
	assert.True(t, names["verbtrainer.quiz.answers"])
	assert.True(t, names["verbtrainer.translations"])

	var nilMetrics *TrainerMetrics
	nilMetrics.RecordQuizAnswer(ctx, "correct")
}
