// Package interview runs mock interview sessions: question generation, a
// per-question countdown, answer collection and a final evaluation.
//
// A Controller owns one session. All state lives behind its mutex; the clock
// goroutine and the evaluation goroutine re-enter through the same lock and
// check the session epoch first, so work started before a Reset is dropped.
package interview

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/muhammadolammi/careerpilot/internal/apperr"
	"github.com/muhammadolammi/careerpilot/internal/formatter"
	"github.com/muhammadolammi/careerpilot/internal/logger"
)

type Listener func(Snapshot)

type Controller struct {
	id        string
	collab    Collaborator
	newTicker TickerFactory
	log       *logger.Logger

	mu         sync.Mutex
	phase      Phase
	cfg        *Config
	questions  []string
	responses  []string
	index      int
	remaining  int
	draft      string
	evaluation string
	display    *formatter.Tree
	errMsg     string
	pending    bool
	epoch      uint64
	version    uint64
	ticker     Ticker
	stopClock  chan struct{}

	listenersMu sync.Mutex
	listeners   map[int]Listener
	nextID      int

	closeOnce sync.Once
	done      chan struct{}
}

type Option func(*Controller)

func WithTicker(f TickerFactory) Option { return func(c *Controller) { c.newTicker = f } }

func WithLogger(l *logger.Logger) Option { return func(c *Controller) { c.log = l } }

func NewController(id string, collab Collaborator, opts ...Option) *Controller {
	c := &Controller{
		id:        id,
		collab:    collab,
		newTicker: NewTicker,
		log:       logger.Nop(),
		phase:     PhaseSetup,
		listeners: make(map[int]Listener),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("session_id", id)
	return c
}

func (c *Controller) ID() string { return c.id }

// Done is closed once the session has been closed.
func (c *Controller) Done() <-chan struct{} { return c.done }

// Subscribe registers l for every future snapshot. Listeners run outside the
// controller lock and may be called concurrently.
func (c *Controller) Subscribe(l Listener) (cancel func()) {
	c.listenersMu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = l
	c.listenersMu.Unlock()

	return func() {
		c.listenersMu.Lock()
		delete(c.listeners, id)
		c.listenersMu.Unlock()
	}
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Start validates cfg, asks for questions and opens the first one. Only
// allowed from setup.
func (c *Controller) Start(ctx context.Context, cfg Config) (Snapshot, error) {
	c.mu.Lock()
	if c.phase != PhaseSetup {
		defer c.mu.Unlock()
		return c.snapshotLocked(), ErrInvalidTransition
	}
	if c.pending {
		defer c.mu.Unlock()
		return c.snapshotLocked(), ErrBusy
	}
	cfg, err := cfg.Normalize()
	if err != nil {
		defer c.mu.Unlock()
		return c.snapshotLocked(), err
	}
	c.pending = true
	epoch := c.epoch
	c.changedLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)

	questions, err := c.collab.Questions(ctx, cfg)

	c.mu.Lock()
	if c.epoch != epoch {
		defer c.mu.Unlock()
		c.log.Debug("dropping questions for reset session")
		return c.snapshotLocked(), ErrSessionReset
	}
	c.pending = false
	c.cfg = &cfg
	if err != nil {
		var pe *apperr.ParseError
		if !errors.As(err, &pe) {
			err = apperr.Generation("generate interview questions", err)
		}
		c.log.Error("question generation failed", "error", err)
		c.phase = PhaseErrored
		c.errMsg = err.Error()
		c.changedLocked()
		snap = c.snapshotLocked()
		c.mu.Unlock()
		c.notify(snap)
		return snap, err
	}

	c.questions = Normalize(questions, cfg.QuestionCount)
	c.responses = make([]string, 0, cfg.QuestionCount)
	c.index = 0
	c.phase = PhaseActive
	c.openQuestionLocked()
	c.changedLocked()
	snap = c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
	return snap, nil
}

// Draft stores the live answer buffer for the open question. The buffer is
// what a timeout records.
func (c *Controller) Draft(index int, text string) (Snapshot, error) {
	c.mu.Lock()
	if err := c.checkOpenLocked(index); err != nil {
		defer c.mu.Unlock()
		return c.snapshotLocked(), err
	}
	c.draft = text
	c.changedLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
	return snap, nil
}

// Next records answer for question index and moves on. A blank answer is
// recorded as NoResponse.
func (c *Controller) Next(ctx context.Context, index int, answer string) (Snapshot, error) {
	if strings.TrimSpace(answer) == "" {
		answer = NoResponse
	}
	return c.submit(ctx, index, answer)
}

func (c *Controller) Skip(ctx context.Context, index int) (Snapshot, error) {
	return c.submit(ctx, index, Skipped)
}

func (c *Controller) submit(ctx context.Context, index int, answer string) (Snapshot, error) {
	c.mu.Lock()
	if err := c.checkOpenLocked(index); err != nil {
		defer c.mu.Unlock()
		return c.snapshotLocked(), err
	}
	snap, evaluate := c.finalizeLocked(answer)
	c.mu.Unlock()
	c.notify(snap)
	if evaluate != nil {
		go evaluate(context.WithoutCancel(ctx))
	}
	return snap, nil
}

// Reset returns the session to setup from any phase. Work still in flight
// for the old session is discarded when it completes.
func (c *Controller) Reset() Snapshot {
	c.mu.Lock()
	if c.phase == PhaseSetup && !c.pending {
		defer c.mu.Unlock()
		return c.snapshotLocked()
	}
	c.resetLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
	return snap
}

// Close resets the session, drops all listeners and closes Done.
func (c *Controller) Close() {
	c.mu.Lock()
	c.resetLocked()
	c.mu.Unlock()

	c.listenersMu.Lock()
	clear(c.listeners)
	c.listenersMu.Unlock()

	c.closeOnce.Do(func() { close(c.done) })
}

func (c *Controller) resetLocked() {
	c.disarmLocked()
	c.epoch++
	c.phase = PhaseSetup
	c.cfg = nil
	c.questions = nil
	c.responses = nil
	c.index = 0
	c.remaining = 0
	c.draft = ""
	c.evaluation = ""
	c.display = nil
	c.errMsg = ""
	c.pending = false
	c.changedLocked()
}

func (c *Controller) checkOpenLocked(index int) error {
	if c.phase != PhaseActive {
		return ErrInvalidTransition
	}
	if index != c.index {
		return ErrStaleQuestion
	}
	return nil
}

// finalizeLocked records answer for the open question. On the last question
// it switches to evaluating and returns the evaluation to run.
func (c *Controller) finalizeLocked(answer string) (Snapshot, func(context.Context)) {
	c.responses = append(c.responses, answer)
	c.draft = ""

	if len(c.responses) < len(c.questions) {
		c.index++
		c.openQuestionLocked()
		c.changedLocked()
		return c.snapshotLocked(), nil
	}

	c.disarmLocked()
	c.phase = PhaseEvaluating
	c.remaining = 0
	c.pending = true
	c.changedLocked()

	epoch := c.epoch
	jobRole := c.cfg.JobRole
	questions := slices.Clone(c.questions)
	responses := slices.Clone(c.responses)
	return c.snapshotLocked(), func(ctx context.Context) {
		c.evaluate(ctx, epoch, jobRole, questions, responses)
	}
}

func (c *Controller) evaluate(ctx context.Context, epoch uint64, jobRole string, questions, responses []string) {
	text, err := c.collab.Evaluate(ctx, jobRole, questions, responses)

	c.mu.Lock()
	if c.epoch != epoch {
		c.mu.Unlock()
		c.log.Debug("dropping evaluation for reset session")
		return
	}
	c.pending = false
	if err != nil {
		err = apperr.Generation("evaluate interview", err)
		c.log.Error("evaluation failed", "error", err)
		c.phase = PhaseErrored
		c.errMsg = err.Error()
	} else {
		display := formatter.Render(text)
		c.phase = PhaseEvaluated
		c.evaluation = text
		c.display = &display
	}
	c.changedLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
}

func (c *Controller) openQuestionLocked() {
	c.remaining = QuestionSeconds
	c.draft = ""
	c.armLocked()
}

func (c *Controller) armLocked() {
	c.disarmLocked()
	t := c.newTicker(time.Second)
	stop := make(chan struct{})
	c.ticker, c.stopClock = t, stop
	go c.runClock(t, stop, c.epoch, c.index)
}

func (c *Controller) disarmLocked() {
	if c.ticker == nil {
		return
	}
	c.ticker.Stop()
	close(c.stopClock)
	c.ticker, c.stopClock = nil, nil
}

func (c *Controller) runClock(t Ticker, stop <-chan struct{}, epoch uint64, index int) {
	for {
		select {
		case <-stop:
			return
		case <-t.C():
			if !c.tick(epoch, index) {
				return
			}
		}
	}
}

// tick counts down the open question and records the draft on timeout. It
// reports whether the clock should keep running.
func (c *Controller) tick(epoch uint64, index int) bool {
	c.mu.Lock()
	if c.epoch != epoch || c.phase != PhaseActive || c.index != index {
		c.mu.Unlock()
		return false
	}
	c.remaining--
	if c.remaining > 0 {
		c.changedLocked()
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.notify(snap)
		return true
	}

	answer := c.draft
	if strings.TrimSpace(answer) == "" {
		answer = NoResponse
	}
	c.log.Debug("question timed out", "index", index)
	snap, evaluate := c.finalizeLocked(answer)
	c.mu.Unlock()
	c.notify(snap)
	if evaluate != nil {
		go evaluate(context.Background())
	}
	return false
}

func (c *Controller) changedLocked() { c.version++ }

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:         c.id,
		Phase:      c.phase,
		Questions:  slices.Clone(c.questions),
		Responses:  slices.Clone(c.responses),
		Index:      c.index,
		Remaining:  c.remaining,
		Draft:      c.draft,
		Evaluation: c.evaluation,
		Display:    c.display,
		Error:      c.errMsg,
		Pending:    c.pending,
		Version:    c.version,
	}
	if snap.Questions == nil {
		snap.Questions = []string{}
	}
	if snap.Responses == nil {
		snap.Responses = []string{}
	}
	if c.cfg != nil {
		cfg := *c.cfg
		snap.Config = &cfg
	}
	return snap
}

func (c *Controller) notify(snap Snapshot) {
	c.listenersMu.Lock()
	listeners := make([]Listener, 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.listenersMu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}
