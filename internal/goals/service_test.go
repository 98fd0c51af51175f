package goals

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/edusmart/backend/internal/models"
)

func goalWithDeadline(deadline time.Time) models.Goal {
	return models.Goal{Text: "study", Deadline: &deadline}
}

func TestDeadlineStatus(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)
	day := func(offset int) time.Time {
		return now.AddDate(0, 0, offset)
	}

	tests := []struct {
		name string
		goal models.Goal
		want models.DeadlineStatus
	}{
		{"no deadline", models.Goal{Text: "study"}, models.DeadlineNone},
		{"yesterday is overdue", goalWithDeadline(day(-1)), models.DeadlineOverdue},
		{"last week is overdue", goalWithDeadline(day(-7)), models.DeadlineOverdue},
		{"today is due soon, not overdue", goalWithDeadline(day(0)), models.DeadlineDueSoon},
		{"earlier today is still not overdue", goalWithDeadline(now.Add(-6 * time.Hour)), models.DeadlineDueSoon},
		{"tomorrow is due soon", goalWithDeadline(day(1)), models.DeadlineDueSoon},
		{"three days out is due soon", goalWithDeadline(day(3)), models.DeadlineDueSoon},
		{"four days out is not due soon", goalWithDeadline(day(4)), models.DeadlineNone},
		{"next month has no status", goalWithDeadline(day(30)), models.DeadlineNone},
	}

	for _, tt := range tests {
		if got := DeadlineStatus(tt.goal, now); got != tt.want {
			t.Errorf("%s: DeadlineStatus = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestDeadlineStatus_CompletedGoalHasNone(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)
	deadline := now.AddDate(0, 0, -5)
	g := models.Goal{Text: "done", Completed: true, Deadline: &deadline}

	if got := DeadlineStatus(g, now); got != models.DeadlineNone {
		t.Errorf("completed goal: DeadlineStatus = %q, want none", got)
	}
}

func TestService_AddRejectsEmptyText(t *testing.T) {
	svc := NewService(nil)

	for _, text := range []string{"", "   ", "\t\n"} {
		if _, err := svc.Add(context.Background(), 1, text, nil); err != ErrEmptyText {
			t.Errorf("Add(%q): expected ErrEmptyText, got %v", text, err)
		}
	}
}

func TestService_ImportFiltersEmptyTexts(t *testing.T) {
	svc := NewService(nil)

	// All-empty input never reaches the store, so a nil store is safe.
	imported, err := svc.ImportGoals(context.Background(), 1, []string{"", "  ", "\n"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(imported) != 0 {
		t.Errorf("expected no goals, got %d", len(imported))
	}
}

// fakeGoalStore keeps goals in memory and reports mutations.
type fakeGoalStore struct {
	insertErr error
	nextID    int64
	goals     map[int64]*models.Goal
}

func newFakeGoalStore() *fakeGoalStore {
	return &fakeGoalStore{goals: make(map[int64]*models.Goal)}
}

func (f *fakeGoalStore) Insert(ctx context.Context, userID int64, text string, deadline *time.Time) (*models.Goal, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.nextID++
	g := &models.Goal{ID: f.nextID, Text: text, Deadline: deadline, CreatedAt: time.Now()}
	f.goals[g.ID] = g
	return g, nil
}

func (f *fakeGoalStore) BulkInsert(ctx context.Context, userID int64, texts []string) ([]models.Goal, error) {
	inserted := make([]models.Goal, 0, len(texts))
	for _, text := range texts {
		g, err := f.Insert(ctx, userID, text, nil)
		if err != nil {
			return nil, err
		}
		inserted = append(inserted, *g)
	}
	return inserted, nil
}

func (f *fakeGoalStore) List(ctx context.Context, userID int64) ([]models.Goal, error) {
	goals := []models.Goal{}
	for id := int64(1); id <= f.nextID; id++ {
		if g, ok := f.goals[id]; ok {
			goals = append(goals, *g)
		}
	}
	return goals, nil
}

func (f *fakeGoalStore) ToggleComplete(ctx context.Context, userID, goalID int64) (bool, error) {
	g, ok := f.goals[goalID]
	if !ok {
		return false, nil
	}
	g.Completed = !g.Completed
	return true, nil
}

func (f *fakeGoalStore) Delete(ctx context.Context, userID, goalID int64) (bool, error) {
	if _, ok := f.goals[goalID]; !ok {
		return false, nil
	}
	delete(f.goals, goalID)
	return true, nil
}

func (f *fakeGoalStore) CompletedCount(ctx context.Context, userID int64) (int, error) {
	count := 0
	for _, g := range f.goals {
		if g.Completed {
			count++
		}
	}
	return count, nil
}

func TestService_MutationsNotifySubscribers(t *testing.T) {
	store := newFakeGoalStore()
	svc := NewService(store)
	ctx := context.Background()

	notified := 0
	svc.Subscribe(func() { notified++ })

	goal, err := svc.Add(ctx, 1, "Learn fractions", nil)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if notified != 1 {
		t.Fatalf("after add: %d notifications, want 1", notified)
	}

	if err := svc.ToggleComplete(ctx, 1, goal.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if notified != 2 {
		t.Errorf("after toggle: %d notifications, want 2", notified)
	}

	if err := svc.Delete(ctx, 1, goal.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if notified != 3 {
		t.Errorf("after delete: %d notifications, want 3", notified)
	}

	if _, err := svc.ImportGoals(ctx, 1, []string{"Learn Go", "Learn SQL"}); err != nil {
		t.Fatalf("import: %v", err)
	}
	if notified != 4 {
		t.Errorf("after import: %d notifications, want 4 (one per bulk import)", notified)
	}
}

func TestService_NoopsAndFailuresDoNotNotify(t *testing.T) {
	store := newFakeGoalStore()
	svc := NewService(store)
	ctx := context.Background()

	notified := 0
	svc.Subscribe(func() { notified++ })

	// Absent ids are silent no-ops and must not look like mutations.
	if err := svc.ToggleComplete(ctx, 1, 42); err != nil {
		t.Fatalf("toggle absent: %v", err)
	}
	if err := svc.Delete(ctx, 1, 42); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
	if notified != 0 {
		t.Fatalf("no-ops notified %d listeners, want 0", notified)
	}

	store.insertErr = errors.New("database unavailable")
	if _, err := svc.Add(ctx, 1, "Learn fractions", nil); err == nil {
		t.Fatal("expected the store failure to surface")
	}
	if notified != 0 {
		t.Errorf("failed add notified %d listeners, want 0", notified)
	}
}

func TestService_CompletedCountTracksToggles(t *testing.T) {
	store := newFakeGoalStore()
	svc := NewService(store)
	ctx := context.Background()

	a, _ := svc.Add(ctx, 1, "Goal A", nil)
	b, _ := svc.Add(ctx, 1, "Goal B", nil)
	svc.Add(ctx, 1, "Goal C", nil)

	svc.ToggleComplete(ctx, 1, a.ID)
	svc.ToggleComplete(ctx, 1, b.ID)
	svc.ToggleComplete(ctx, 1, b.ID)

	count, err := svc.CompletedCount(ctx, 1)
	if err != nil {
		t.Fatalf("completed count: %v", err)
	}
	if count != 1 {
		t.Errorf("CompletedCount = %d, want 1 (A completed, B toggled back)", count)
	}

	resp, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.CompletedCount != 1 {
		t.Errorf("list CompletedCount = %d, want 1", resp.CompletedCount)
	}
	if len(resp.Goals) != 3 {
		t.Errorf("expected 3 goals, got %d", len(resp.Goals))
	}
}
