package gateway

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/muhammadolammi/careerpilot/internal/database"
	"github.com/muhammadolammi/careerpilot/internal/logger"
)

const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

type AuditStore interface {
	InsertGeneration(ctx context.Context, arg database.InsertGenerationParams) error
}

// Recorder writes one audit row per gateway call. A failed insert is logged
// and never changes the call's result.
type Recorder struct {
	next  Generator
	store AuditStore
	log   *logger.Logger
	now   func() time.Time
}

func NewRecorder(next Generator, store AuditStore, log *logger.Logger) *Recorder {
	return &Recorder{next: next, store: store, log: log, now: time.Now}
}

func (r *Recorder) Generate(ctx context.Context, prompt string) (string, error) {
	start := r.now()
	output, err := r.next.Generate(ctx, prompt)

	params := database.InsertGenerationParams{
		ID:            uuid.New(),
		Feature:       Feature(ctx),
		PromptChars:   int32(len(prompt)),
		ResponseChars: int32(len(output)),
		DurationMs:    r.now().Sub(start).Milliseconds(),
		Status:        StatusOK,
	}
	if err != nil {
		params.Status = StatusFailed
		params.Error = sql.NullString{String: err.Error(), Valid: true}
	}
	if insertErr := r.store.InsertGeneration(context.WithoutCancel(ctx), params); insertErr != nil {
		r.log.Warn("failed to record generation", "feature", params.Feature, "error", insertErr)
	}

	return output, err
}
