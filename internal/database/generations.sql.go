package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

const insertGeneration = `-- name: InsertGeneration :exec
INSERT INTO generations (
id, feature, prompt_chars, response_chars, duration_ms, status, error)
VALUES ( $1, $2, $3, $4, $5, $6, $7)
`

type InsertGenerationParams struct {
	ID            uuid.UUID
	Feature       string
	PromptChars   int32
	ResponseChars int32
	DurationMs    int64
	Status        string
	Error         sql.NullString
}

func (q *Queries) InsertGeneration(ctx context.Context, arg InsertGenerationParams) error {
	_, err := q.db.ExecContext(ctx, insertGeneration,
		arg.ID,
		arg.Feature,
		arg.PromptChars,
		arg.ResponseChars,
		arg.DurationMs,
		arg.Status,
		arg.Error,
	)
	return err
}

const listRecentGenerations = `-- name: ListRecentGenerations :many
SELECT id, feature, prompt_chars, response_chars, duration_ms, status, error, created_at FROM generations
ORDER BY created_at DESC
LIMIT $1
`

func (q *Queries) ListRecentGenerations(ctx context.Context, limit int32) ([]Generation, error) {
	rows, err := q.db.QueryContext(ctx, listRecentGenerations, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Generation
	for rows.Next() {
		var i Generation
		if err := rows.Scan(
			&i.ID,
			&i.Feature,
			&i.PromptChars,
			&i.ResponseChars,
			&i.DurationMs,
			&i.Status,
			&i.Error,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
