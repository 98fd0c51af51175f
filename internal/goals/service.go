package goals

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/edusmart/backend/internal/models"
)

// ErrEmptyText rejects goals whose text is empty or whitespace.
var ErrEmptyText = errors.New("goal text must not be empty")

// dueSoonWindow is how far ahead a deadline counts as approaching.
const dueSoonWindow = 3 // days

// DeadlineStatus derives the urgency of a goal's deadline relative to now.
// A deadline earlier today is not overdue; overdue means strictly before
// today. Due soon covers today through three days out, inclusive.
func DeadlineStatus(g models.Goal, now time.Time) models.DeadlineStatus {
	if g.Deadline == nil || g.Completed {
		return models.DeadlineNone
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	deadline := g.Deadline.In(now.Location())
	deadlineDay := time.Date(deadline.Year(), deadline.Month(), deadline.Day(), 0, 0, 0, 0, now.Location())

	switch {
	case deadlineDay.Before(today):
		return models.DeadlineOverdue
	case !deadlineDay.After(today.AddDate(0, 0, dueSoonWindow)):
		return models.DeadlineDueSoon
	default:
		return models.DeadlineNone
	}
}

// GoalStore is the persistence surface the service drives.
type GoalStore interface {
	Insert(ctx context.Context, userID int64, text string, deadline *time.Time) (*models.Goal, error)
	BulkInsert(ctx context.Context, userID int64, texts []string) ([]models.Goal, error)
	List(ctx context.Context, userID int64) ([]models.Goal, error)
	ToggleComplete(ctx context.Context, userID, goalID int64) (bool, error)
	Delete(ctx context.Context, userID, goalID int64) (bool, error)
	CompletedCount(ctx context.Context, userID int64) (int, error)
}

// Service owns goal CRUD for every user.
type Service struct {
	store GoalStore

	mu        sync.Mutex
	observers []func()
}

func NewService(store GoalStore) *Service {
	return &Service{store: store}
}

// Subscribe registers a listener invoked synchronously after every
// successful mutation.
func (s *Service) Subscribe(fn func()) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

func (s *Service) notify() {
	s.mu.Lock()
	observers := append([]func(){}, s.observers...)
	s.mu.Unlock()
	for _, fn := range observers {
		fn()
	}
}

func (s *Service) Add(ctx context.Context, userID int64, text string, deadline *time.Time) (*models.Goal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	goal, err := s.store.Insert(ctx, userID, text, deadline)
	if err != nil {
		return nil, err
	}
	goal.DeadlineStatus = DeadlineStatus(*goal, time.Now())
	s.notify()
	return goal, nil
}

// ImportGoals bulk-creates one goal per non-empty text, preserving order.
// Used by the career roadmap flow to seed skills as goals.
func (s *Service) ImportGoals(ctx context.Context, userID int64, texts []string) ([]models.Goal, error) {
	cleaned := make([]string, 0, len(texts))
	for _, t := range texts {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	if len(cleaned) == 0 {
		return []models.Goal{}, nil
	}

	inserted, err := s.store.BulkInsert(ctx, userID, cleaned)
	if err != nil {
		return nil, err
	}
	s.notify()
	return inserted, nil
}

func (s *Service) List(ctx context.Context, userID int64) (*models.GoalListResponse, error) {
	goals, err := s.store.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	completed := 0
	for i := range goals {
		goals[i].DeadlineStatus = DeadlineStatus(goals[i], now)
		if goals[i].Completed {
			completed++
		}
	}

	return &models.GoalListResponse{Goals: goals, CompletedCount: completed}, nil
}

// ToggleComplete flips completion. Absent ids are silent no-ops.
func (s *Service) ToggleComplete(ctx context.Context, userID, goalID int64) error {
	changed, err := s.store.ToggleComplete(ctx, userID, goalID)
	if err != nil {
		return err
	}
	if changed {
		s.notify()
	}
	return nil
}

// Delete removes a goal. Absent ids are silent no-ops.
func (s *Service) Delete(ctx context.Context, userID, goalID int64) error {
	changed, err := s.store.Delete(ctx, userID, goalID)
	if err != nil {
		return err
	}
	if changed {
		s.notify()
	}
	return nil
}

func (s *Service) CompletedCount(ctx context.Context, userID int64) (int, error) {
	return s.store.CompletedCount(ctx, userID)
}
