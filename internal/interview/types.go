package interview

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/muhammadolammi/careerpilot/internal/apperr"
	"github.com/muhammadolammi/careerpilot/internal/formatter"
	"github.com/muhammadolammi/careerpilot/internal/prompts"
)

type Phase string

const (
	PhaseSetup      Phase = "setup"
	PhaseActive     Phase = "active"
	PhaseEvaluating Phase = "evaluating"
	PhaseEvaluated  Phase = "evaluated"
	PhaseErrored    Phase = "errored"
)

const (
	QuestionSeconds = 60

	NoResponse = prompts.NoResponse
	Skipped    = "(Skipped)"

	DefaultStyle      = "Mixed"
	DefaultDifficulty = "Medium"
)

var (
	QuestionCounts = []int{3, 5, 7, 10}
	Styles         = []string{"Mixed", "Behavioral", "Technical", "Situational", "Standard"}
	Difficulties   = []string{"Easy", "Medium", "Hard", "Expert"}
)

var (
	ErrBusy              = errors.New("interview: another request is already in flight")
	ErrInvalidTransition = errors.New("interview: operation not allowed in current phase")
	ErrStaleQuestion     = errors.New("interview: question is no longer open")
	ErrSessionReset      = errors.New("interview: session was reset")
)

type Config struct {
	JobRole       string `json:"job_role"`
	QuestionCount int    `json:"question_count"`
	Style         string `json:"style"`
	Difficulty    string `json:"difficulty"`
}

// Normalize trims the role, fills style and difficulty defaults and rejects
// anything outside the fixed option sets.
func (c Config) Normalize() (Config, error) {
	c.JobRole = strings.TrimSpace(c.JobRole)
	if c.JobRole == "" {
		return c, apperr.Validation("job_role", "Please enter the job role you're preparing for.")
	}
	if !slices.Contains(QuestionCounts, c.QuestionCount) {
		return c, apperr.Validation("question_count", fmt.Sprintf("must be one of %v", QuestionCounts))
	}
	if c.Style == "" {
		c.Style = DefaultStyle
	}
	if !slices.Contains(Styles, c.Style) {
		return c, apperr.Validation("style", fmt.Sprintf("unknown interview style %q", c.Style))
	}
	if c.Difficulty == "" {
		c.Difficulty = DefaultDifficulty
	}
	if !slices.Contains(Difficulties, c.Difficulty) {
		return c, apperr.Validation("difficulty", fmt.Sprintf("unknown difficulty %q", c.Difficulty))
	}
	return c, nil
}

// Snapshot is a copy of a session's state. Version grows with every change so
// consumers can drop stale copies that arrive out of order.
type Snapshot struct {
	ID         string          `json:"id"`
	Phase      Phase           `json:"phase"`
	Config     *Config         `json:"config,omitempty"`
	Questions  []string        `json:"questions"`
	Responses  []string        `json:"responses"`
	Index      int             `json:"index"`
	Remaining  int             `json:"remaining"`
	Draft      string          `json:"draft,omitempty"`
	Evaluation string          `json:"evaluation,omitempty"`
	Display    *formatter.Tree `json:"display,omitempty"`
	Error      string          `json:"error,omitempty"`
	Pending    bool            `json:"pending"`
	Version    uint64          `json:"version"`
}
