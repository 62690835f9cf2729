// Package gateway is the single path to the text-generation model. Every
// feature sends one fully assembled prompt and waits for the whole reply.
package gateway

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when the model finishes without any text.
var ErrEmptyResponse = errors.New("empty response from model")

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

type featureKey struct{}

// WithFeature labels the calls made with ctx, for audit rows and spans.
func WithFeature(ctx context.Context, feature string) context.Context {
	return context.WithValue(ctx, featureKey{}, feature)
}

func Feature(ctx context.Context) string {
	if v, ok := ctx.Value(featureKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
