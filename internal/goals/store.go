package goals

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/edusmart/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Insert(ctx context.Context, userID int64, text string, deadline *time.Time) (*models.Goal, error) {
	var g models.Goal
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO goals (user_id, text, deadline) VALUES ($1, $2, $3)
		 RETURNING id, text, completed, deadline, created_at`,
		userID, text, deadline,
	).Scan(&g.ID, &g.Text, &g.Completed, &g.Deadline, &g.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert goal: %w", err)
	}
	return &g, nil
}

// BulkInsert creates one incomplete, deadline-less goal per text in one
// transaction, preserving input order.
func (s *Store) BulkInsert(ctx context.Context, userID int64, texts []string) ([]models.Goal, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	inserted := make([]models.Goal, 0, len(texts))
	for _, text := range texts {
		var g models.Goal
		err := tx.QueryRow(
			`INSERT INTO goals (user_id, text) VALUES ($1, $2)
			 RETURNING id, text, completed, deadline, created_at`,
			userID, text,
		).Scan(&g.ID, &g.Text, &g.Completed, &g.Deadline, &g.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("insert goal: %w", err)
		}
		inserted = append(inserted, g)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return inserted, nil
}

func (s *Store) List(ctx context.Context, userID int64) ([]models.Goal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, completed, deadline, created_at
		 FROM goals WHERE user_id = $1 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(&g.ID, &g.Text, &g.Completed, &g.Deadline, &g.CreatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// ToggleComplete flips the goal's completed flag. An absent or foreign id
// is a no-op; the returned bool reports whether a row changed.
func (s *Store) ToggleComplete(ctx context.Context, userID, goalID int64) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE goals SET completed = NOT completed WHERE id = $1 AND user_id = $2`,
		goalID, userID,
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

// Delete removes the goal. Absent or foreign ids are no-ops.
func (s *Store) Delete(ctx context.Context, userID, goalID int64) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM goals WHERE id = $1 AND user_id = $2`,
		goalID, userID,
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

func (s *Store) CompletedCount(ctx context.Context, userID int64) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM goals WHERE user_id = $1 AND completed = TRUE`,
		userID,
	).Scan(&count)
	return count, err
}
