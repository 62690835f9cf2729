package database

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Generation struct {
	ID            uuid.UUID
	Feature       string
	PromptChars   int32
	ResponseChars int32
	DurationMs    int64
	Status        string
	Error         sql.NullString
	CreatedAt     time.Time
}
