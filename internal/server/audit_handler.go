package server

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/muhammadolammi/careerpilot/internal/apperr"
	"github.com/muhammadolammi/careerpilot/internal/database"
)

type AuditLister interface {
	ListRecentGenerations(ctx context.Context, limit int32) ([]database.Generation, error)
}

type AuditHandler struct {
	db AuditLister
}

func NewAuditHandler(db AuditLister) *AuditHandler {
	return &AuditHandler{db: db}
}

type generationView struct {
	ID            string    `json:"id"`
	Feature       string    `json:"feature"`
	PromptChars   int32     `json:"prompt_chars"`
	ResponseChars int32     `json:"response_chars"`
	DurationMs    int64     `json:"duration_ms"`
	Status        string    `json:"status"`
	Error         string    `json:"error,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Recent lists the latest gateway calls, newest first.
func (h *AuditHandler) Recent(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 500 {
			respondErr(c, apperr.Validation("limit", "must be between 1 and 500"))
			return
		}
		limit = n
	}

	rows, err := h.db.ListRecentGenerations(c.Request.Context(), int32(limit))
	if err != nil {
		respondErr(c, err)
		return
	}
	out := make([]generationView, 0, len(rows))
	for _, g := range rows {
		out = append(out, generationView{
			ID:            g.ID.String(),
			Feature:       g.Feature,
			PromptChars:   g.PromptChars,
			ResponseChars: g.ResponseChars,
			DurationMs:    g.DurationMs,
			Status:        g.Status,
			Error:         g.Error.String,
			CreatedAt:     g.CreatedAt,
		})
	}
	RespondOK(c, gin.H{"generations": out})
}
