package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "verbtrainer"

var globalTracer trace.Tracer

// InitGlobalTracer initializes the global tracer for the application.
func InitGlobalTracer() {
	globalTracer = otel.Tracer(tracerName)
}

// GetGlobalTracer returns the global tracer instance for the application.
func GetGlobalTracer() trace.Tracer {
	if globalTracer == nil {
		globalTracer = otel.Tracer(tracerName)
	}
	return globalTracer
}

// TraceFunction starts a span named "<service>.<function>".
func TraceFunction(ctx context.Context, serviceName, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	spanName := fmt.Sprintf("%s.%s", serviceName, functionName)
	return GetGlobalTracer().Start(ctx, spanName, trace.WithAttributes(attributes...))
}

// TraceHandlerFunction starts a new span for a handler function.
func TraceHandlerFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "handler", functionName, attributes...)
}

// TraceCatalogFunction starts a new span for catalog loading and lookup.
func TraceCatalogFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "catalog", functionName, attributes...)
}

// TracePracticeFunction starts a new span for a practice (resolve and render) call.
func TracePracticeFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "practice", functionName, attributes...)
}

// TraceQuizFunction starts a new span for a quiz service function.
func TraceQuizFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "quiz", functionName, attributes...)
}

// TraceTranslationFunction starts a new span for a translation service function.
func TraceTranslationFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "translation", functionName, attributes...)
}

// AttributeVerb returns a tracing attribute for a Spanish infinitive.
func AttributeVerb(infinitive string) attribute.KeyValue {
	return attribute.String("verb.infinitive", infinitive)
}

// AttributeTense returns a tracing attribute for a tense label.
func AttributeTense(tense string) attribute.KeyValue {
	return attribute.String("verb.tense", tense)
}

// AttributePronoun returns a tracing attribute for a pronoun index.
func AttributePronoun(index int) attribute.KeyValue {
	return attribute.Int("verb.pronoun", index)
}

// AttributeSense returns a tracing attribute for a sense index.
func AttributeSense(index int) attribute.KeyValue {
	return attribute.Int("verb.sense", index)
}

// AttributeDirection returns a tracing attribute for a resolution direction ("es" or "en").
func AttributeDirection(direction string) attribute.KeyValue {
	return attribute.String("practice.direction", direction)
}

// AttributeInputLength returns a tracing attribute for the length of user input.
func AttributeInputLength(n int) attribute.KeyValue {
	return attribute.Int("input.length", n)
}

// AttributeCandidates returns a tracing attribute for a candidate count.
func AttributeCandidates(n int) attribute.KeyValue {
	return attribute.Int("practice.candidates", n)
}

// AttributeLanguage returns a tracing attribute for a language code.
func AttributeLanguage(lang string) attribute.KeyValue {
	return attribute.String("language", lang)
}
