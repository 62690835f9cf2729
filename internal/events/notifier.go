package events

import (
	"sync"
	"time"

	"github.com/muhammadolammi/careerpilot/internal/interview"
	"github.com/muhammadolammi/careerpilot/internal/logger"
)

type position struct {
	phase   interview.Phase
	index   int
	pending bool
}

// Notifier turns snapshots into updates, publishing only when a session
// changes phase or question. Clock ticks and drafts are not published.
type Notifier struct {
	pub Publisher
	log *logger.Logger
	now func() time.Time

	mu   sync.Mutex
	last map[string]position
}

func NewNotifier(pub Publisher, log *logger.Logger) *Notifier {
	return &Notifier{pub: pub, log: log, now: time.Now, last: make(map[string]position)}
}

// Observe is an interview.Listener.
func (n *Notifier) Observe(s interview.Snapshot) {
	pos := position{phase: s.Phase, index: s.Index, pending: s.Pending}
	n.mu.Lock()
	prev, seen := n.last[s.ID]
	if seen && prev == pos {
		n.mu.Unlock()
		return
	}
	n.last[s.ID] = pos
	n.mu.Unlock()

	u := Update{
		SessionID: s.ID,
		Status:    string(s.Phase),
		Message:   message(s),
		Index:     s.Index,
		Timestamp: n.now().UTC(),
	}
	if err := n.pub.Publish(u); err != nil {
		n.log.Warn("failed to publish session update", "session_id", s.ID, "status", u.Status, "error", err)
	}
}

// Forget drops the remembered position of a closed session.
func (n *Notifier) Forget(sessionID string) {
	n.mu.Lock()
	delete(n.last, sessionID)
	n.mu.Unlock()
}

func message(s interview.Snapshot) string {
	switch s.Phase {
	case interview.PhaseActive:
		return "question opened"
	case interview.PhaseEvaluating:
		return "all questions answered, evaluating"
	case interview.PhaseEvaluated:
		return "evaluation ready"
	case interview.PhaseErrored:
		return s.Error
	default:
		if s.Pending {
			return "generating questions"
		}
		return "session reset"
	}
}
