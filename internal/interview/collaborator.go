package interview

import (
	"context"

	"github.com/muhammadolammi/careerpilot/internal/gateway"
	"github.com/muhammadolammi/careerpilot/internal/prompts"
)

// Collaborator produces questions and evaluations for a session.
type Collaborator interface {
	Questions(ctx context.Context, cfg Config) ([]string, error)
	Evaluate(ctx context.Context, jobRole string, questions, responses []string) (string, error)
}

type GatewayCollaborator struct {
	gen gateway.Generator
}

func NewCollaborator(gen gateway.Generator) *GatewayCollaborator {
	return &GatewayCollaborator{gen: gen}
}

func (g *GatewayCollaborator) Questions(ctx context.Context, cfg Config) ([]string, error) {
	text, err := g.gen.Generate(gateway.WithFeature(ctx, "interview_questions"),
		prompts.Questions(cfg.JobRole, cfg.QuestionCount, cfg.Style, cfg.Difficulty))
	if err != nil {
		return nil, err
	}
	return ParseQuestions(text)
}

func (g *GatewayCollaborator) Evaluate(ctx context.Context, jobRole string, questions, responses []string) (string, error) {
	return g.gen.Generate(gateway.WithFeature(ctx, "interview_evaluation"),
		prompts.Evaluation(jobRole, questions, responses))
}
