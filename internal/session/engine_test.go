package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/edusmart/backend/internal/models"
)

// fakeFlow returns scripted questions and difficulty adjustments.
type fakeFlow struct {
	mu             sync.Mutex
	questionErr    error
	adjustErr      error
	nextDifficulty int
	questionCalls  int
	adjustCalls    int
	lastAdjustReq  models.AdjustDifficultyRequest
}

func (f *fakeFlow) GenerateQuestion(ctx context.Context, req models.QuestionRequest) (*models.PracticeQuestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.questionErr != nil {
		return nil, f.questionErr
	}
	f.questionCalls++
	return &models.PracticeQuestion{
		QuestionText:         fmt.Sprintf("Question %d?", f.questionCalls),
		Options:              []string{"right", "wrong A", "wrong B", "wrong C"},
		CorrectAnswerIndices: []int{0},
		Explanation:          "Because it is right.",
	}, nil
}

func (f *fakeFlow) AdjustDifficulty(ctx context.Context, req models.AdjustDifficultyRequest) (*models.DifficultyAdjustment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.adjustCalls++
	f.lastAdjustReq = req
	if f.adjustErr != nil {
		return nil, f.adjustErr
	}
	return &models.DifficultyAdjustment{NewDifficulty: f.nextDifficulty, Reasoning: "scripted"}, nil
}

// fakeSink records accepted summaries and can fail the first N calls.
// A nonzero delay holds each call open to widen overlap windows.
type fakeSink struct {
	mu        sync.Mutex
	failNext  int
	delay     time.Duration
	calls     int
	summaries []models.SessionSummary
}

func (f *fakeSink) AcceptSession(ctx context.Context, userID int64, summary models.SessionSummary) error {
	f.mu.Lock()
	f.calls++
	fail := f.failNext > 0
	if fail {
		f.failNext--
	}
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if fail {
		return errors.New("database unavailable")
	}

	f.mu.Lock()
	f.summaries = append(f.summaries, summary)
	f.mu.Unlock()
	return nil
}

func newTestEngine(flow *fakeFlow, sink *fakeSink) (*Engine, *Manager) {
	return NewEngine(flow, sink, nil), NewManager(0, 0)
}

// runSession answers every question, getting the first `correct` right.
func runSession(t *testing.T, e *Engine, s *Session, correct int) {
	t.Helper()
	ctx := context.Background()

	if _, err := e.FetchQuestion(ctx, s); err != nil {
		t.Fatalf("first question: %v", err)
	}

	for i := 0; i < QuestionsPerSession; i++ {
		answer := []string{"  RIGHT "}
		if i >= correct {
			answer = []string{"wrong A"}
		}

		resp, err := e.SubmitAnswer(ctx, s, answer)
		if err != nil {
			t.Fatalf("answer %d: %v", i+1, err)
		}

		wantCorrect := i < correct
		if resp.Correct != wantCorrect {
			t.Errorf("answer %d: Correct = %v, want %v", i+1, resp.Correct, wantCorrect)
		}

		if i < QuestionsPerSession-1 {
			if resp.SessionOver {
				t.Fatalf("answer %d: session ended early", i+1)
			}
			if _, err := e.NextQuestion(ctx, s); err != nil {
				t.Fatalf("next after answer %d: %v", i+1, err)
			}
		} else if !resp.SessionOver {
			t.Fatal("final answer did not end the session")
		}
	}
}

func TestFullSession_ScoreAndSummary(t *testing.T) {
	flow := &fakeFlow{nextDifficulty: 5}
	sink := &fakeSink{}
	e, m := newTestEngine(flow, sink)
	s := m.Create(1, "Math")

	runSession(t, e, s, 7)

	result, err := e.Result(context.Background(), s)
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if result.Score != 70 {
		t.Errorf("Score = %f, want 70", result.Score)
	}
	if result.CorrectAnswers != 7 {
		t.Errorf("CorrectAnswers = %d, want 7", result.CorrectAnswers)
	}

	if len(sink.summaries) != 1 {
		t.Fatalf("expected 1 accepted summary, got %d", len(sink.summaries))
	}
	summary := sink.summaries[0]
	if summary.Score != 70 {
		t.Errorf("summary score = %f, want 70", summary.Score)
	}
	if len(summary.PerformanceHistory) != QuestionsPerSession {
		t.Errorf("expected %d performance records, got %d", QuestionsPerSession, len(summary.PerformanceHistory))
	}
	for i, rec := range summary.PerformanceHistory {
		if rec.Subject != "Math" {
			t.Errorf("record %d: subject = %q, want Math", i, rec.Subject)
		}
		if rec.Question == "" {
			t.Errorf("record %d: empty question text", i)
		}
	}
}

func TestAdjustmentRequest_UsesRecentWindow(t *testing.T) {
	flow := &fakeFlow{nextDifficulty: 6}
	sink := &fakeSink{}
	e, m := newTestEngine(flow, sink)
	s := m.Create(1, "Science")

	runSession(t, e, s, QuestionsPerSession)

	var window []models.PerformanceRecord
	if err := json.Unmarshal([]byte(flow.lastAdjustReq.PerformanceData), &window); err != nil {
		t.Fatalf("performance data is not valid JSON: %v", err)
	}
	if len(window) > DifficultyWindow {
		t.Errorf("adjustment window has %d records, want at most %d", len(window), DifficultyWindow)
	}
	if flow.lastAdjustReq.CurrentDifficulty < 1 || flow.lastAdjustReq.CurrentDifficulty > 10 {
		t.Errorf("current difficulty %d out of range", flow.lastAdjustReq.CurrentDifficulty)
	}
}

func TestFirstQuestionFetch_Retryable(t *testing.T) {
	flow := &fakeFlow{nextDifficulty: 5, questionErr: errors.New("model timeout")}
	sink := &fakeSink{}
	e, m := newTestEngine(flow, sink)
	s := m.Create(1, "Math")

	if _, err := e.FetchQuestion(context.Background(), s); err == nil {
		t.Fatal("expected fetch error")
	}

	snap := s.Snapshot()
	if snap.State != models.StateAwaitingQuestion {
		t.Fatalf("state after failed fetch = %q, want awaiting_question", snap.State)
	}

	flow.questionErr = nil
	q, err := e.FetchQuestion(context.Background(), s)
	if err != nil {
		t.Fatalf("retry fetch: %v", err)
	}
	if q.Number != 1 {
		t.Errorf("question number = %d, want 1", q.Number)
	}
}

func TestAdjustmentFailure_ContinuesAtSameDifficulty(t *testing.T) {
	flow := &fakeFlow{nextDifficulty: 9, adjustErr: errors.New("model timeout")}
	sink := &fakeSink{}
	e, m := newTestEngine(flow, sink)
	s := m.Create(1, "Math")
	ctx := context.Background()

	if _, err := e.FetchQuestion(ctx, s); err != nil {
		t.Fatal(err)
	}
	if _, err := e.SubmitAnswer(ctx, s, []string{"right"}); err != nil {
		t.Fatal(err)
	}

	resp, err := e.NextQuestion(ctx, s)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if resp.Warning == "" {
		t.Error("expected a warning when adjustment fails")
	}
	if resp.Difficulty != StartDifficulty {
		t.Errorf("difficulty = %d, want unchanged %d", resp.Difficulty, StartDifficulty)
	}
	if resp.Question == nil {
		t.Fatal("expected a question despite the adjustment failure")
	}
}

func TestAdjustment_ClampsOutOfRangeDifficulty(t *testing.T) {
	flow := &fakeFlow{nextDifficulty: 99}
	sink := &fakeSink{}
	e, m := newTestEngine(flow, sink)
	s := m.Create(1, "Math")
	ctx := context.Background()

	if _, err := e.FetchQuestion(ctx, s); err != nil {
		t.Fatal(err)
	}
	if _, err := e.SubmitAnswer(ctx, s, []string{"right"}); err != nil {
		t.Fatal(err)
	}

	resp, err := e.NextQuestion(ctx, s)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if resp.Difficulty != 10 {
		t.Errorf("difficulty = %d, want clamped to 10", resp.Difficulty)
	}
}

func TestAbandonedSession_NeverSubmitsSummary(t *testing.T) {
	flow := &fakeFlow{nextDifficulty: 5}
	sink := &fakeSink{}
	e, m := newTestEngine(flow, sink)
	s := m.Create(1, "Math")
	ctx := context.Background()

	if _, err := e.FetchQuestion(ctx, s); err != nil {
		t.Fatal(err)
	}
	if _, err := e.SubmitAnswer(ctx, s, []string{"right"}); err != nil {
		t.Fatal(err)
	}

	if err := e.Abandon(s); err != nil {
		t.Fatalf("abandon: %v", err)
	}

	if _, err := e.SubmitAnswer(ctx, s, []string{"right"}); !errors.Is(err, ErrInvalidState) {
		t.Errorf("answer after abandon: expected ErrInvalidState, got %v", err)
	}
	if _, err := e.NextQuestion(ctx, s); err == nil {
		t.Error("next after abandon should fail")
	}

	if sink.calls != 0 {
		t.Errorf("abandoned session submitted %d summaries, want 0", sink.calls)
	}
}

func TestAbandon_RejectedForCompleteSession(t *testing.T) {
	flow := &fakeFlow{nextDifficulty: 5}
	sink := &fakeSink{}
	e, m := newTestEngine(flow, sink)
	s := m.Create(1, "Math")

	runSession(t, e, s, 5)

	if err := e.Abandon(s); !errors.Is(err, ErrInvalidState) {
		t.Errorf("abandoning a complete session: expected ErrInvalidState, got %v", err)
	}
	if len(sink.summaries) != 1 {
		t.Errorf("expected the summary to survive, got %d", len(sink.summaries))
	}
}

func TestSummarySubmission_IdempotentWithRetry(t *testing.T) {
	flow := &fakeFlow{nextDifficulty: 5}
	sink := &fakeSink{failNext: 1}
	e, m := newTestEngine(flow, sink)
	s := m.Create(1, "Math")
	ctx := context.Background()

	runSession(t, e, s, 8)

	// The completion-time submit failed; the first Result retries it.
	result, err := e.Result(ctx, s)
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if result.Score != 80 {
		t.Errorf("Score = %f, want 80", result.Score)
	}

	// Further Result calls must not submit again.
	if _, err := e.Result(ctx, s); err != nil {
		t.Fatalf("second result: %v", err)
	}
	if _, err := e.Result(ctx, s); err != nil {
		t.Fatalf("third result: %v", err)
	}

	if len(sink.summaries) != 1 {
		t.Errorf("expected exactly 1 accepted summary, got %d", len(sink.summaries))
	}
	if sink.calls != 2 {
		t.Errorf("expected 2 sink calls (1 failed + 1 retry), got %d", sink.calls)
	}
}

func TestSummarySubmission_SingleAcceptUnderConcurrentResults(t *testing.T) {
	flow := &fakeFlow{nextDifficulty: 5}
	sink := &fakeSink{failNext: 1, delay: 50 * time.Millisecond}
	e, m := newTestEngine(flow, sink)
	s := m.Create(1, "Math")
	ctx := context.Background()

	// The completion-time persist fails, leaving the retry path open.
	runSession(t, e, s, 6)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := e.Result(ctx, s); err != nil {
				t.Errorf("result: %v", err)
			}
		}()
	}
	wg.Wait()

	if len(sink.summaries) != 1 {
		t.Fatalf("summary accepted %d times, want exactly 1", len(sink.summaries))
	}

	// Once persisted, further reads never reach the sink again.
	calls := sink.calls
	if _, err := e.Result(ctx, s); err != nil {
		t.Fatalf("result after persist: %v", err)
	}
	if sink.calls != calls {
		t.Errorf("sink called %d more times after a successful persist", sink.calls-calls)
	}
}

func TestManager_ScopesSessionsToOwner(t *testing.T) {
	m := NewManager(0, 0)
	s := m.Create(1, "Math")

	if _, err := m.Get(s.ID, 1); err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
	if _, err := m.Get(s.ID, 2); !errors.Is(err, ErrNotFound) {
		t.Errorf("other user's lookup: expected ErrNotFound, got %v", err)
	}
	if _, err := m.Get("nonexistent", 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing id: expected ErrNotFound, got %v", err)
	}
}
