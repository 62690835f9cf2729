package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"

	"github.com/muhammadolammi/careerpilot/internal/logger"
)

const agentUserID = "careerpilot"

// Gemini runs each prompt through an ADK agent runner in a throwaway agent
// session, so no conversation history leaks between calls.
type Gemini struct {
	runner   *runner.Runner
	sessions session.Service
	appName  string
	log      *logger.Logger
}

func NewGemini(r *runner.Runner, sessions session.Service, appName string, log *logger.Logger) *Gemini {
	return &Gemini{
		runner:   r,
		sessions: sessions,
		appName:  appName,
		log:      log.With("component", "gateway"),
	}
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	agentSession, err := g.sessions.Create(ctx, &session.CreateRequest{
		AppName:   g.appName,
		UserID:    agentUserID,
		SessionID: uuid.NewString(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create agent session: %w", err)
	}
	defer func() {
		err := g.sessions.Delete(context.WithoutCancel(ctx), &session.DeleteRequest{
			AppName:   agentSession.Session.AppName(),
			UserID:    agentSession.Session.UserID(),
			SessionID: agentSession.Session.ID(),
		})
		if err != nil {
			g.log.Warn("failed to delete agent session", "session_id", agentSession.Session.ID(), "error", err)
		}
	}()

	stream := g.runner.Run(ctx, agentSession.Session.UserID(), agentSession.Session.ID(), &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: prompt},
		},
	}, agent.RunConfig{})

	var output string
	for event, err := range stream {
		if err != nil {
			return "", fmt.Errorf("agent stream error: %w", err)
		}
		if event != nil && event.IsFinalResponse() && event.Content != nil && len(event.Content.Parts) > 0 {
			output = event.Content.Parts[0].Text
		}
	}

	if strings.TrimSpace(output) == "" {
		return "", ErrEmptyResponse
	}
	return output, nil
}
