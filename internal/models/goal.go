package models

import "time"

// DeadlineStatus is derived from a goal's deadline at read time, never stored.
type DeadlineStatus string

const (
	DeadlineNone    DeadlineStatus = ""
	DeadlineOverdue DeadlineStatus = "overdue"
	DeadlineDueSoon DeadlineStatus = "due_soon"
)

// Goal is a user-authored study objective scoped to one identity.
type Goal struct {
	ID        int64      `json:"id"`
	Text      string     `json:"text"`
	Completed bool       `json:"completed"`
	Deadline  *time.Time `json:"deadline"`
	CreatedAt time.Time  `json:"created_at"`

	// Derived, populated on read
	DeadlineStatus DeadlineStatus `json:"deadline_status,omitempty"`
}

type CreateGoalRequest struct {
	Text     string     `json:"text"`
	Deadline *time.Time `json:"deadline,omitempty"`
}

type ImportGoalsRequest struct {
	Texts []string `json:"texts"`
}

type GoalListResponse struct {
	Goals          []Goal `json:"goals"`
	CompletedCount int    `json:"completed_count"`
}
