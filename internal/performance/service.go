package performance

import (
	"context"
	"fmt"
	"sync"

	"github.com/edusmart/backend/internal/models"
)

// strengthCarryWeight is how heavily the existing strength outweighs one
// session when blending: new = (old*2 + session) / 3.
const strengthCarryWeight = 2

// BlendStrength folds one session's per-topic result into the running
// strength estimate. Output stays within [min(old, session), max(old,
// session)], so strengths can never leave the 0-100 range.
func BlendStrength(old, session float64) float64 {
	return (old*strengthCarryWeight + session) / (strengthCarryWeight + 1)
}

// SessionTopicScores computes the percent-correct per subject for one
// session's answer history.
func SessionTopicScores(history []models.PerformanceRecord) map[string]float64 {
	totals := make(map[string]int)
	corrects := make(map[string]int)
	for _, rec := range history {
		if rec.Subject == "" {
			continue
		}
		totals[rec.Subject]++
		if rec.Correct {
			corrects[rec.Subject]++
		}
	}

	scores := make(map[string]float64, len(totals))
	for subject, total := range totals {
		scores[subject] = 100 * float64(corrects[subject]) / float64(total)
	}
	return scores
}

// OverallProgress is the arithmetic mean of all progress point scores,
// zero when there is no history.
func OverallProgress(points []models.ProgressPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	var sum float64
	for _, p := range points {
		sum += p.Score
	}
	return sum / float64(len(points))
}

// StrongestTopic picks the highest strength. Strict comparison means the
// first-encountered topic wins ties; the input must be in first-seen order.
func StrongestTopic(strengths []models.TopicStrength) *models.TopicStrength {
	if len(strengths) == 0 {
		return nil
	}
	best := strengths[0]
	for _, ts := range strengths[1:] {
		if ts.Strength > best.Strength {
			best = ts
		}
	}
	return &best
}

// WeakestTopic picks the lowest strength, first-encountered on ties.
func WeakestTopic(strengths []models.TopicStrength) *models.TopicStrength {
	if len(strengths) == 0 {
		return nil
	}
	worst := strengths[0]
	for _, ts := range strengths[1:] {
		if ts.Strength < worst.Strength {
			worst = ts
		}
	}
	return &worst
}

// AggregateStore is the persistence surface the service drives.
type AggregateStore interface {
	SaveSessionAggregates(ctx context.Context, userID int64, score float64, topicScores map[string]float64) error
	ListProgressPoints(ctx context.Context, userID int64) ([]models.ProgressPoint, error)
	ListTopicStrengths(ctx context.Context, userID int64) ([]models.TopicStrength, error)
	GetAge(ctx context.Context, userID int64) (*int, error)
	SetAge(ctx context.Context, userID int64, age int) error
	ResetData(ctx context.Context, userID int64) error
}

// Service owns the durable performance aggregates for every user.
type Service struct {
	store AggregateStore

	mu        sync.Mutex
	observers []func()
}

func NewService(store AggregateStore) *Service {
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

// AcceptSession records one completed session: a new progress point labeled
// from the history length, and a blended strength per subject encountered.
// Both writes land in one transaction, so a failure leaves no partial state.
func (s *Service) AcceptSession(ctx context.Context, userID int64, summary models.SessionSummary) error {
	if summary.Score < 0 || summary.Score > 100 {
		return fmt.Errorf("session score %f out of range", summary.Score)
	}

	topicScores := SessionTopicScores(summary.PerformanceHistory)
	if err := s.store.SaveSessionAggregates(ctx, userID, summary.Score, topicScores); err != nil {
		return fmt.Errorf("save session aggregates: %w", err)
	}

	s.notify()
	return nil
}

func (s *Service) Dashboard(ctx context.Context, userID int64, completedGoals int) (*models.DashboardResponse, error) {
	points, err := s.store.ListProgressPoints(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list progress points: %w", err)
	}
	strengths, err := s.store.ListTopicStrengths(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list topic strengths: %w", err)
	}

	overall := OverallProgress(points)
	return &models.DashboardResponse{
		OverallProgress: overall,
		SessionCount:    len(points),
		StrongestTopic:  StrongestTopic(strengths),
		WeakestTopic:    WeakestTopic(strengths),
		ProgressData:    points,
		TopicStrengths:  strengths,
		CompletedGoals:  completedGoals,
		Badges:          ComputeBadges(overall, len(points), completedGoals),
	}, nil
}

func (s *Service) Progress(ctx context.Context, userID int64) ([]models.ProgressPoint, error) {
	return s.store.ListProgressPoints(ctx, userID)
}

func (s *Service) GetAge(ctx context.Context, userID int64) (*int, error) {
	return s.store.GetAge(ctx, userID)
}

func (s *Service) SetAge(ctx context.Context, userID int64, age int) error {
	if age < 1 || age > 120 {
		return fmt.Errorf("age %d out of range", age)
	}
	if err := s.store.SetAge(ctx, userID, age); err != nil {
		return err
	}
	s.notify()
	return nil
}

// ResetData wipes every aggregate the identity owns. This backs the
// logout / switch-identity contract: the next login starts clean.
func (s *Service) ResetData(ctx context.Context, userID int64) error {
	if err := s.store.ResetData(ctx, userID); err != nil {
		return fmt.Errorf("reset data: %w", err)
	}
	s.notify()
	return nil
}
