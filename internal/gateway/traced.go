package gateway

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Traced wraps every call in a span named after the calling feature.
type Traced struct {
	next   Generator
	tracer trace.Tracer
}

func NewTraced(next Generator) *Traced {
	return &Traced{next: next, tracer: otel.Tracer("careerpilot/gateway")}
}

func (t *Traced) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := t.tracer.Start(ctx, "gateway.generate", trace.WithAttributes(
		attribute.String("feature", Feature(ctx)),
		attribute.Int("prompt.chars", len(prompt)),
	))
	defer span.End()

	output, err := t.next.Generate(ctx, prompt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	span.SetAttributes(attribute.Int("response.chars", len(output)))
	return output, nil
}
