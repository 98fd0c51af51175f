package session

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/edusmart/backend/internal/flows"
	"github.com/edusmart/backend/internal/models"
)

const (
	// QuestionsPerSession is how many questions one practice session asks.
	QuestionsPerSession = 10

	// DifficultyWindow is how many of the most recent answers feed the
	// difficulty adjustment between questions.
	DifficultyWindow = 5

	// StartDifficulty is where every new session begins.
	StartDifficulty = 3
)

var (
	ErrNotFound     = errors.New("session not found")
	ErrBusy         = errors.New("a request for this session is already in progress")
	ErrInvalidState = errors.New("operation not valid in the session's current state")
	ErrAbandoned    = errors.New("session was abandoned")
)

// QuestionFlow is the slice of the flows service the engine needs.
type QuestionFlow interface {
	GenerateQuestion(ctx context.Context, req models.QuestionRequest) (*models.PracticeQuestion, error)
	AdjustDifficulty(ctx context.Context, req models.AdjustDifficultyRequest) (*models.DifficultyAdjustment, error)
}

// SummarySink receives the summary of a completed session. Implementations
// must tolerate being called once per session at most.
type SummarySink interface {
	AcceptSession(ctx context.Context, userID int64, summary models.SessionSummary) error
}

// AgeLookup resolves a user's age so questions can be pitched at their level.
type AgeLookup interface {
	GetAge(ctx context.Context, userID int64) (*int, error)
}

// Session is one in-flight practice session. All fields are guarded by mu.
type Session struct {
	ID      string
	UserID  int64
	Subject string

	mu       sync.Mutex
	inflight bool

	state               models.SessionState
	difficulty          int
	questionNumber      int
	correctCount        int
	current             *models.PracticeQuestion
	asked               []string
	history             []models.PerformanceRecord
	adjustmentReasoning string
	issuedAt            time.Time
	submitted           bool
	submitting          bool
	lastActive          time.Time
}

func (s *Session) Snapshot() models.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.SessionSnapshot{
		SessionID:         s.ID,
		Subject:           s.Subject,
		State:             s.state,
		Difficulty:        s.difficulty,
		QuestionsAnswered: len(s.history),
		CorrectAnswers:    s.correctCount,
		TotalQuestions:    QuestionsPerSession,
	}
}

// Engine drives sessions through their state machine. Model calls run
// outside the session lock; a response that lands after the session was
// abandoned is discarded.
type Engine struct {
	flows QuestionFlow
	sink  SummarySink
	ages  AgeLookup
}

func NewEngine(flowService QuestionFlow, sink SummarySink, ages AgeLookup) *Engine {
	return &Engine{flows: flowService, sink: sink, ages: ages}
}

func newSession(id string, userID int64, subject string) *Session {
	return &Session{
		ID:         id,
		UserID:     userID,
		Subject:    subject,
		state:      models.StateAwaitingQuestion,
		difficulty: StartDifficulty,
		lastActive: time.Now(),
	}
}

// beginCall marks the session busy for the duration of a model call.
// It fails if another call is in flight or the state does not match.
func (s *Session) beginCall(want ...models.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight {
		return ErrBusy
	}
	for _, st := range want {
		if s.state == st {
			s.inflight = true
			s.lastActive = time.Now()
			return nil
		}
	}
	return ErrInvalidState
}

func (s *Session) endCall() {
	s.mu.Lock()
	s.inflight = false
	s.lastActive = time.Now()
	s.mu.Unlock()
}

// FetchQuestion asks the model for the session's next question. Valid only
// while the session awaits a question, so a failed fetch can simply be
// retried without advancing any other state.
func (e *Engine) FetchQuestion(ctx context.Context, s *Session) (*models.SessionQuestion, error) {
	if err := s.beginCall(models.StateAwaitingQuestion); err != nil {
		return nil, err
	}
	defer s.endCall()

	s.mu.Lock()
	req := models.QuestionRequest{
		Subject:           s.Subject,
		Difficulty:        s.difficulty,
		PreviousQuestions: append([]string(nil), s.asked...),
	}
	userID := s.UserID
	s.mu.Unlock()

	if e.ages != nil {
		if age, err := e.ages.GetAge(ctx, userID); err == nil && age != nil {
			req.Age = age
		}
	}

	question, err := e.flows.GenerateQuestion(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == models.StateAbandoned {
		return nil, ErrAbandoned
	}
	if err != nil {
		// Stay in awaiting_question so the client can retry.
		return nil, err
	}

	s.current = question
	s.asked = append(s.asked, question.QuestionText)
	s.questionNumber++
	s.issuedAt = time.Now()
	s.state = models.StateAwaitingAnswer

	return &models.SessionQuestion{
		Number:       s.questionNumber,
		QuestionText: question.QuestionText,
		Options:      append([]string(nil), question.Options...),
		MultiSelect:  question.MultiSelect(),
	}, nil
}

// SubmitAnswer scores the submitted answers against the current question,
// records the outcome, and completes the session after the final question.
func (e *Engine) SubmitAnswer(ctx context.Context, s *Session, answers []string) (*models.SubmitSessionAnswerResponse, error) {
	s.mu.Lock()

	if s.inflight {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	if s.state != models.StateAwaitingAnswer {
		s.mu.Unlock()
		return nil, ErrInvalidState
	}

	q := s.current
	correct := CheckAnswer(answers, q.CorrectAnswers())

	s.history = append(s.history, models.PerformanceRecord{
		Question:  q.QuestionText,
		Correct:   correct,
		TimeTaken: time.Since(s.issuedAt).Seconds(),
		Subject:   s.Subject,
	})
	if correct {
		s.correctCount++
	}

	s.current = nil
	s.lastActive = time.Now()

	resp := &models.SubmitSessionAnswerResponse{
		Correct:        correct,
		CorrectAnswers: q.CorrectAnswers(),
		Explanation:    q.Explanation,
	}

	if s.questionNumber >= QuestionsPerSession {
		s.state = models.StateComplete
		resp.SessionOver = true
		s.mu.Unlock()
		e.submitSummary(ctx, s)
		return resp, nil
	}

	s.state = models.StateAnswered
	s.mu.Unlock()
	return resp, nil
}

// NextQuestion adjusts difficulty from recent performance and fetches the
// next question. An adjustment failure is not fatal; the session continues
// at its current difficulty with a warning for the client.
func (e *Engine) NextQuestion(ctx context.Context, s *Session) (*models.NextQuestionResponse, error) {
	if err := s.beginCall(models.StateAnswered); err != nil {
		// A previous call already adjusted but failed to fetch; retry
		// the fetch without adjusting again.
		if errors.Is(err, ErrInvalidState) {
			if retry := e.retryFetch(ctx, s); retry != nil {
				return retry, nil
			}
		}
		return nil, err
	}

	s.mu.Lock()
	window := s.history
	if len(window) > DifficultyWindow {
		window = window[len(window)-DifficultyWindow:]
	}
	performanceData, _ := json.Marshal(window)
	adjReq := models.AdjustDifficultyRequest{
		StudentID:         s.ID,
		CurrentDifficulty: flows.ClampDifficulty(s.difficulty),
		PerformanceData:   string(performanceData),
	}
	s.mu.Unlock()

	var warning string
	adjustment, err := e.flows.AdjustDifficulty(ctx, adjReq)

	s.mu.Lock()
	if s.state == models.StateAbandoned {
		s.mu.Unlock()
		s.endCall()
		return nil, ErrAbandoned
	}
	if err != nil {
		warning = "Difficulty could not be adjusted. Continuing at the current level."
		log.Printf("WARN: [session] difficulty adjustment failed for session %s: %v", s.ID, err)
		s.adjustmentReasoning = ""
	} else {
		s.difficulty = flows.ClampDifficulty(adjustment.NewDifficulty)
		s.adjustmentReasoning = adjustment.Reasoning
	}
	s.state = models.StateAwaitingQuestion
	s.mu.Unlock()
	s.endCall()

	question, err := e.FetchQuestion(ctx, s)
	if err != nil {
		// Session stays in awaiting_question; NextQuestion retries land
		// in retryFetch and do not re-run the adjustment.
		return nil, err
	}

	s.mu.Lock()
	resp := &models.NextQuestionResponse{
		Difficulty:          s.difficulty,
		AdjustmentReasoning: s.adjustmentReasoning,
		Question:            question,
		Warning:             warning,
	}
	s.mu.Unlock()
	return resp, nil
}

func (e *Engine) retryFetch(ctx context.Context, s *Session) *models.NextQuestionResponse {
	s.mu.Lock()
	awaiting := s.state == models.StateAwaitingQuestion && s.questionNumber > 0
	s.mu.Unlock()
	if !awaiting {
		return nil
	}

	question, err := e.FetchQuestion(ctx, s)
	if err != nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return &models.NextQuestionResponse{
		Difficulty:          s.difficulty,
		AdjustmentReasoning: s.adjustmentReasoning,
		Question:            question,
	}
}

// Abandon ends the session without recording anything. Completed sessions
// cannot be abandoned; their summary already exists.
func (e *Engine) Abandon(s *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == models.StateComplete {
		return ErrInvalidState
	}
	s.state = models.StateAbandoned
	return nil
}

// Result returns the final score of a completed session, retrying the
// summary submission if an earlier attempt failed.
func (e *Engine) Result(ctx context.Context, s *Session) (*models.SessionResultResponse, error) {
	s.mu.Lock()
	if s.state != models.StateComplete {
		s.mu.Unlock()
		return nil, ErrInvalidState
	}
	resp := &models.SessionResultResponse{
		Score:           SessionScore(s.correctCount, QuestionsPerSession),
		CorrectAnswers:  s.correctCount,
		TotalQuestions:  QuestionsPerSession,
		FinalDifficulty: s.difficulty,
	}
	submitted := s.submitted
	s.mu.Unlock()

	if !submitted {
		e.submitSummary(ctx, s)
		s.mu.Lock()
		if !s.submitted {
			resp.Warning = "Your results could not be saved. They will be retried."
		}
		s.mu.Unlock()
	}

	return resp, nil
}

// submitSummary persists the session summary at most once. The submitting
// flag claims the attempt before the lock is released, so overlapping
// callers cannot each reach the sink; submitted is only set on success so
// a failed persist can be retried.
func (e *Engine) submitSummary(ctx context.Context, s *Session) {
	s.mu.Lock()
	if s.state != models.StateComplete || s.submitted || s.submitting {
		s.mu.Unlock()
		return
	}
	s.submitting = true
	summary := models.SessionSummary{
		Score:              SessionScore(s.correctCount, QuestionsPerSession),
		PerformanceHistory: append([]models.PerformanceRecord(nil), s.history...),
	}
	userID := s.UserID
	s.mu.Unlock()

	err := e.sink.AcceptSession(ctx, userID, summary)

	s.mu.Lock()
	s.submitting = false
	if err == nil {
		s.submitted = true
	}
	s.mu.Unlock()

	if err != nil {
		log.Printf("WARN: [session] failed to persist summary for session %s: %v", s.ID, err)
	}
}
