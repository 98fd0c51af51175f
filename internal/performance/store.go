package performance

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/edusmart/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// SaveSessionAggregates appends the session's progress point and folds its
// per-topic scores into the stored strengths, all in one transaction. The
// point label is derived from the history length at insert time and never
// renumbered afterwards.
func (s *Store) SaveSessionAggregates(ctx context.Context, userID int64, score float64, topicScores map[string]float64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow(
		`SELECT COUNT(*) FROM progress_points WHERE user_id = $1`,
		userID,
	).Scan(&count); err != nil {
		return fmt.Errorf("count progress points: %w", err)
	}

	label := fmt.Sprintf("Day %d", count+1)
	if _, err := tx.Exec(
		`INSERT INTO progress_points (user_id, label, score) VALUES ($1, $2, $3)`,
		userID, label, score,
	); err != nil {
		return fmt.Errorf("insert progress point: %w", err)
	}

	for topic, sessionScore := range topicScores {
		var old float64
		err := tx.QueryRow(
			`SELECT strength FROM topic_strengths WHERE user_id = $1 AND topic = $2`,
			userID, topic,
		).Scan(&old)

		switch {
		case err == sql.ErrNoRows:
			if _, err := tx.Exec(
				`INSERT INTO topic_strengths (user_id, topic, strength) VALUES ($1, $2, $3)`,
				userID, topic, sessionScore,
			); err != nil {
				return fmt.Errorf("insert topic strength: %w", err)
			}
		case err != nil:
			return fmt.Errorf("get topic strength: %w", err)
		default:
			if _, err := tx.Exec(
				`UPDATE topic_strengths SET strength = $3, updated_at = NOW()
				 WHERE user_id = $1 AND topic = $2`,
				userID, topic, BlendStrength(old, sessionScore),
			); err != nil {
				return fmt.Errorf("update topic strength: %w", err)
			}
		}
	}

	return tx.Commit()
}

func (s *Store) ListProgressPoints(ctx context.Context, userID int64) ([]models.ProgressPoint, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT label, score FROM progress_points WHERE user_id = $1 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := []models.ProgressPoint{}
	for rows.Next() {
		var p models.ProgressPoint
		if err := rows.Scan(&p.Label, &p.Score); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// ListTopicStrengths returns strengths in first-seen order, which is the
// tie-break order for strongest/weakest selection.
func (s *Store) ListTopicStrengths(ctx context.Context, userID int64) ([]models.TopicStrength, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT topic, strength FROM topic_strengths WHERE user_id = $1 ORDER BY first_seen, id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	strengths := []models.TopicStrength{}
	for rows.Next() {
		var ts models.TopicStrength
		if err := rows.Scan(&ts.Topic, &ts.Strength); err != nil {
			return nil, err
		}
		strengths = append(strengths, ts)
	}
	return strengths, rows.Err()
}

func (s *Store) GetAge(ctx context.Context, userID int64) (*int, error) {
	var age *int
	err := s.db.QueryRowContext(ctx,
		`SELECT age FROM users WHERE id = $1`,
		userID,
	).Scan(&age)
	if err != nil {
		return nil, err
	}
	return age, nil
}

func (s *Store) SetAge(ctx context.Context, userID int64, age int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET age = $2, updated_at = NOW() WHERE id = $1`,
		userID, age,
	)
	return err
}

// ResetData deletes every performance row the user owns, plus their goals
// and declared age.
func (s *Store) ResetData(ctx context.Context, userID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM progress_points WHERE user_id = $1`,
		`DELETE FROM topic_strengths WHERE user_id = $1`,
		`DELETE FROM goals WHERE user_id = $1`,
		`UPDATE users SET age = NULL, updated_at = NOW() WHERE id = $1`,
	} {
		if _, err := tx.Exec(stmt, userID); err != nil {
			return err
		}
	}

	return tx.Commit()
}
