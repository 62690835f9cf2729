package interview

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammadolammi/careerpilot/internal/apperr"
)

const waitFor = 2 * time.Second

type fakeTicker struct {
	ch      chan time.Time
	stopped atomic.Bool
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }
func (f *fakeTicker) Stop()               { f.stopped.Store(true) }

type fakeClock struct {
	mu      sync.Mutex
	tickers []*fakeTicker
}

func (f *fakeClock) factory(time.Duration) Ticker {
	t := &fakeTicker{ch: make(chan time.Time)}
	f.mu.Lock()
	f.tickers = append(f.tickers, t)
	f.mu.Unlock()
	return t
}

func (f *fakeClock) all() []*fakeTicker {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*fakeTicker(nil), f.tickers...)
}

func (f *fakeClock) current(t *testing.T) *fakeTicker {
	t.Helper()
	all := f.all()
	require.NotEmpty(t, all)
	return all[len(all)-1]
}

// fire delivers n ticks to the current ticker. Each send blocks until the
// clock goroutine has picked it up.
func (f *fakeClock) fire(t *testing.T, n int) {
	t.Helper()
	ticker := f.current(t)
	for i := 0; i < n; i++ {
		select {
		case ticker.ch <- time.Now():
		case <-time.After(waitFor):
			t.Fatalf("clock not running after %d ticks", i)
		}
	}
}

type fakeCollab struct {
	mu sync.Mutex

	questions []string
	qErr      error
	qGate     chan struct{}
	qCalls    int
	qConfig   Config

	evaluation string
	eErr       error
	eGate      chan struct{}
	eCalls     int
	eQuestions []string
	eResponses []string
}

func (f *fakeCollab) Questions(_ context.Context, cfg Config) ([]string, error) {
	f.mu.Lock()
	f.qCalls++
	f.qConfig = cfg
	gate := f.qGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return f.questions, f.qErr
}

func (f *fakeCollab) Evaluate(_ context.Context, _ string, questions, responses []string) (string, error) {
	f.mu.Lock()
	f.eCalls++
	f.eQuestions = questions
	f.eResponses = responses
	gate := f.eGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return f.evaluation, f.eErr
}

func (f *fakeCollab) evalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.eCalls
}

func newTestController(collab *fakeCollab) (*Controller, *fakeClock) {
	clock := &fakeClock{}
	return NewController("s1", collab, WithTicker(clock.factory)), clock
}

func waitPhase(t *testing.T, c *Controller, phase Phase) Snapshot {
	t.Helper()
	require.Eventually(t, func() bool { return c.Snapshot().Phase == phase }, waitFor, 5*time.Millisecond)
	return c.Snapshot()
}

func TestStartPadsShortQuestionSet(t *testing.T) {
	collab := &fakeCollab{questions: []string{"Q one?", "Q two?"}}
	c, _ := newTestController(collab)

	snap, err := c.Start(context.Background(), Config{JobRole: "Backend Engineer", QuestionCount: 3})
	require.NoError(t, err)

	assert.Equal(t, PhaseActive, snap.Phase)
	assert.Equal(t, []string{"Q one?", "Q two?", "Tell me about yourself and your background."}, snap.Questions)
	assert.Equal(t, 0, snap.Index)
	assert.Equal(t, QuestionSeconds, snap.Remaining)
	assert.Empty(t, snap.Responses)
	assert.Equal(t, Config{JobRole: "Backend Engineer", QuestionCount: 3, Style: "Mixed", Difficulty: "Medium"}, collab.qConfig)
}

func TestStartRejectsInvalidConfig(t *testing.T) {
	collab := &fakeCollab{questions: []string{"q"}}
	c, clock := newTestController(collab)

	snap, err := c.Start(context.Background(), Config{JobRole: "", QuestionCount: 3})
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, PhaseSetup, snap.Phase)
	assert.Zero(t, collab.qCalls)
	assert.Empty(t, clock.all())
}

func TestAnswerSkipAndTimeoutFillTheLog(t *testing.T) {
	collab := &fakeCollab{questions: []string{"A?", "B?", "C?"}, evaluation: "## Overall\nGood"}
	c, clock := newTestController(collab)
	ctx := context.Background()

	_, err := c.Start(ctx, Config{JobRole: "SRE", QuestionCount: 3})
	require.NoError(t, err)

	snap, err := c.Next(ctx, 0, "My answer")
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Index)
	assert.Equal(t, QuestionSeconds, snap.Remaining)

	snap, err = c.Skip(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Index)
	assert.Len(t, snap.Responses, snap.Index)

	clock.fire(t, QuestionSeconds)

	snap = waitPhase(t, c, PhaseEvaluated)
	assert.Equal(t, []string{"My answer", Skipped, NoResponse}, snap.Responses)
	assert.Equal(t, "## Overall\nGood", snap.Evaluation)
	require.NotNil(t, snap.Display)
	assert.Len(t, snap.Display.Nodes, 2)

	assert.Equal(t, 1, collab.evalCalls())
	assert.Equal(t, []string{"A?", "B?", "C?"}, collab.eQuestions)
	assert.Equal(t, []string{"My answer", Skipped, NoResponse}, collab.eResponses)
}

func TestClockCountsDownAndRestartsAtSixty(t *testing.T) {
	collab := &fakeCollab{questions: []string{"A?", "B?", "C?"}}
	c, clock := newTestController(collab)
	ctx := context.Background()

	_, err := c.Start(ctx, Config{JobRole: "SRE", QuestionCount: 3})
	require.NoError(t, err)

	clock.fire(t, 5)
	require.Eventually(t, func() bool { return c.Snapshot().Remaining == QuestionSeconds-5 }, waitFor, 5*time.Millisecond)

	first := clock.current(t)
	snap, err := c.Next(ctx, 0, "done")
	require.NoError(t, err)
	assert.Equal(t, QuestionSeconds, snap.Remaining)
	assert.True(t, first.stopped.Load())
	assert.Len(t, clock.all(), 2)
}

func TestTimeoutRecordsDraft(t *testing.T) {
	collab := &fakeCollab{questions: []string{"A?", "B?", "C?"}}
	c, clock := newTestController(collab)
	ctx := context.Background()

	_, err := c.Start(ctx, Config{JobRole: "SRE", QuestionCount: 3})
	require.NoError(t, err)
	_, err = c.Draft(0, "I would")
	require.NoError(t, err)

	clock.fire(t, QuestionSeconds)

	require.Eventually(t, func() bool { return c.Snapshot().Index == 1 }, waitFor, 5*time.Millisecond)
	snap := c.Snapshot()
	assert.Equal(t, []string{"I would"}, snap.Responses)
	assert.Empty(t, snap.Draft)
	assert.Equal(t, QuestionSeconds, snap.Remaining)
}

func TestTimeoutWithoutSavedDraft(t *testing.T) {
	collab := &fakeCollab{questions: []string{"A?", "B?", "C?"}}
	c, clock := newTestController(collab)

	_, err := c.Start(context.Background(), Config{JobRole: "SRE", QuestionCount: 3})
	require.NoError(t, err)

	clock.fire(t, QuestionSeconds)

	require.Eventually(t, func() bool { return c.Snapshot().Index == 1 }, waitFor, 5*time.Millisecond)
	assert.Equal(t, []string{NoResponse}, c.Snapshot().Responses)
}

func TestBlankAnswerIsNoResponse(t *testing.T) {
	collab := &fakeCollab{questions: []string{"A?", "B?", "C?"}}
	c, _ := newTestController(collab)
	ctx := context.Background()

	_, err := c.Start(ctx, Config{JobRole: "SRE", QuestionCount: 3})
	require.NoError(t, err)

	snap, err := c.Next(ctx, 0, "   \n")
	require.NoError(t, err)
	assert.Equal(t, []string{NoResponse}, snap.Responses)
}

func TestStaleIndexIsRejected(t *testing.T) {
	collab := &fakeCollab{questions: []string{"A?", "B?", "C?"}}
	c, _ := newTestController(collab)
	ctx := context.Background()

	_, err := c.Start(ctx, Config{JobRole: "SRE", QuestionCount: 3})
	require.NoError(t, err)

	_, err = c.Next(ctx, 0, "first")
	require.NoError(t, err)

	snap, err := c.Next(ctx, 0, "again")
	require.ErrorIs(t, err, ErrStaleQuestion)
	assert.Equal(t, []string{"first"}, snap.Responses)

	_, err = c.Skip(ctx, 2)
	require.ErrorIs(t, err, ErrStaleQuestion)
	_, err = c.Draft(0, "late")
	require.ErrorIs(t, err, ErrStaleQuestion)
	assert.Len(t, c.Snapshot().Responses, 1)
}

func TestEveryQuestionCount(t *testing.T) {
	var many []string
	for i := 1; i <= 12; i++ {
		many = append(many, fmt.Sprintf("Question %d?", i))
	}
	for _, n := range QuestionCounts {
		t.Run(fmt.Sprintf("count_%d", n), func(t *testing.T) {
			collab := &fakeCollab{questions: many, evaluation: "ok"}
			c, clock := newTestController(collab)
			ctx := context.Background()

			snap, err := c.Start(ctx, Config{JobRole: "QA", QuestionCount: n, Style: "Technical", Difficulty: "Hard"})
			require.NoError(t, err)
			require.Len(t, snap.Questions, n)

			for i := 0; i < n; i++ {
				require.Len(t, c.Snapshot().Responses, i)
				if i%2 == 0 {
					_, err = c.Next(ctx, i, fmt.Sprintf("answer %d", i))
				} else {
					_, err = c.Skip(ctx, i)
				}
				require.NoError(t, err)
			}

			snap = waitPhase(t, c, PhaseEvaluated)
			assert.Len(t, snap.Responses, n)
			assert.Equal(t, 1, collab.evalCalls())
			for _, ticker := range clock.all() {
				assert.True(t, ticker.stopped.Load())
			}
		})
	}
}

func TestSkipOnLastQuestionEvaluates(t *testing.T) {
	collab := &fakeCollab{questions: []string{"A?", "B?", "C?"}, evaluation: "fine"}
	c, _ := newTestController(collab)
	ctx := context.Background()

	_, err := c.Start(ctx, Config{JobRole: "SRE", QuestionCount: 3})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = c.Skip(ctx, i)
		require.NoError(t, err)
	}

	snap := waitPhase(t, c, PhaseEvaluated)
	assert.Equal(t, []string{Skipped, Skipped, Skipped}, snap.Responses)
	assert.Equal(t, 1, collab.evalCalls())
}

func TestQuestionGenerationFailure(t *testing.T) {
	collab := &fakeCollab{qErr: errors.New("model overloaded")}
	c, clock := newTestController(collab)
	ctx := context.Background()

	snap, err := c.Start(ctx, Config{JobRole: "SRE", QuestionCount: 5})
	var ge *apperr.GenerationError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, PhaseErrored, snap.Phase)
	assert.Equal(t, "failed to generate interview questions: model overloaded", snap.Error)
	assert.Empty(t, clock.all())

	_, err = c.Start(ctx, Config{JobRole: "SRE", QuestionCount: 5})
	require.ErrorIs(t, err, ErrInvalidTransition)

	snap = c.Reset()
	assert.Equal(t, PhaseSetup, snap.Phase)
	assert.Empty(t, snap.Error)
	assert.Nil(t, snap.Config)
}

func TestBlankQuestionsAreAParseError(t *testing.T) {
	collab := &fakeCollab{qErr: &apperr.ParseError{What: "interview questions", Message: "empty"}}
	c, _ := newTestController(collab)

	snap, err := c.Start(context.Background(), Config{JobRole: "SRE", QuestionCount: 3})
	var pe *apperr.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, PhaseErrored, snap.Phase)
}

func TestEvaluationFailure(t *testing.T) {
	collab := &fakeCollab{questions: []string{"A?", "B?", "C?"}, eErr: errors.New("timeout")}
	c, _ := newTestController(collab)
	ctx := context.Background()

	_, err := c.Start(ctx, Config{JobRole: "SRE", QuestionCount: 3})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = c.Next(ctx, i, "x")
		require.NoError(t, err)
	}

	snap := waitPhase(t, c, PhaseErrored)
	assert.Equal(t, "failed to evaluate interview: timeout", snap.Error)
	assert.Len(t, snap.Responses, 3)
}

func TestResetDuringEvaluationDiscardsResult(t *testing.T) {
	gate := make(chan struct{})
	collab := &fakeCollab{questions: []string{"A?", "B?", "C?"}, evaluation: "late result", eGate: gate}
	c, _ := newTestController(collab)
	ctx := context.Background()

	_, err := c.Start(ctx, Config{JobRole: "SRE", QuestionCount: 3})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = c.Next(ctx, i, "x")
		require.NoError(t, err)
	}
	require.Equal(t, PhaseEvaluating, c.Snapshot().Phase)
	require.Eventually(t, func() bool { return collab.evalCalls() == 1 }, waitFor, 5*time.Millisecond)

	snap := c.Reset()
	assert.Equal(t, PhaseSetup, snap.Phase)

	close(gate)
	time.Sleep(50 * time.Millisecond)

	snap = c.Snapshot()
	assert.Equal(t, PhaseSetup, snap.Phase)
	assert.Empty(t, snap.Evaluation)
	assert.False(t, snap.Pending)
}

func TestResetDuringStart(t *testing.T) {
	gate := make(chan struct{})
	collab := &fakeCollab{questions: []string{"A?", "B?", "C?"}, qGate: gate}
	c, clock := newTestController(collab)

	errc := make(chan error, 1)
	go func() {
		_, err := c.Start(context.Background(), Config{JobRole: "SRE", QuestionCount: 3})
		errc <- err
	}()
	require.Eventually(t, func() bool { return c.Snapshot().Pending }, waitFor, 5*time.Millisecond)

	_, err := c.Start(context.Background(), Config{JobRole: "SRE", QuestionCount: 3})
	require.ErrorIs(t, err, ErrBusy)

	c.Reset()
	close(gate)

	require.ErrorIs(t, <-errc, ErrSessionReset)
	assert.Equal(t, PhaseSetup, c.Snapshot().Phase)
	assert.Empty(t, clock.all())
}

func TestResetStopsClock(t *testing.T) {
	collab := &fakeCollab{questions: []string{"A?", "B?", "C?"}}
	c, clock := newTestController(collab)

	_, err := c.Start(context.Background(), Config{JobRole: "SRE", QuestionCount: 3})
	require.NoError(t, err)

	c.Reset()
	assert.True(t, clock.current(t).stopped.Load())

	snap := c.Snapshot()
	assert.Equal(t, PhaseSetup, snap.Phase)
	assert.Empty(t, snap.Questions)
	assert.Zero(t, snap.Remaining)
}

func TestResetInSetupIsNoop(t *testing.T) {
	c, _ := newTestController(&fakeCollab{})
	before := c.Snapshot()
	after := c.Reset()
	assert.Equal(t, before, after)
}

func TestOperationsOutsideActive(t *testing.T) {
	c, _ := newTestController(&fakeCollab{})
	ctx := context.Background()

	_, err := c.Next(ctx, 0, "x")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = c.Skip(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = c.Draft(0, "x")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestListenersSeeIncreasingVersions(t *testing.T) {
	collab := &fakeCollab{questions: []string{"A?", "B?", "C?"}}
	c, _ := newTestController(collab)
	ctx := context.Background()

	var (
		mu       sync.Mutex
		versions []uint64
	)
	cancel := c.Subscribe(func(s Snapshot) {
		mu.Lock()
		versions = append(versions, s.Version)
		mu.Unlock()
	})

	_, err := c.Start(ctx, Config{JobRole: "SRE", QuestionCount: 3})
	require.NoError(t, err)
	_, err = c.Next(ctx, 0, "a")
	require.NoError(t, err)

	cancel()
	_, err = c.Next(ctx, 1, "b")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, versions, 3)
	assert.IsIncreasing(t, versions)
}

func TestCloseClosesDone(t *testing.T) {
	c, _ := newTestController(&fakeCollab{})
	c.Close()
	select {
	case <-c.Done():
	default:
		t.Fatal("done not closed")
	}
	c.Close()
}
