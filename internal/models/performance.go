package models

// ── Session Aggregates ───────────────────────────────────

// PerformanceRecord is one answered question within a practice session.
// Records are immutable once created and owned by the session that made them.
type PerformanceRecord struct {
	Question  string  `json:"question"`
	Correct   bool    `json:"correct"`
	TimeTaken float64 `json:"timeTaken"`
	Subject   string  `json:"subject"`
}

// SessionSummary is the outcome of one completed practice session.
// PerformanceHistory holds exactly one record per question asked.
type SessionSummary struct {
	Score              float64             `json:"score"`
	PerformanceHistory []PerformanceRecord `json:"performanceHistory"`
}

// ProgressPoint is one entry in the long-run score history. Labels are
// assigned from the history length at append time and never renumbered.
type ProgressPoint struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// TopicStrength is the blended 0-100 competence estimate for one subject.
type TopicStrength struct {
	Topic    string  `json:"topic"`
	Strength float64 `json:"strength"`
}

// ── Badges ───────────────────────────────────────────────

type Badge struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ── Request / Response Types ─────────────────────────────

type DashboardResponse struct {
	OverallProgress float64         `json:"overall_progress"`
	SessionCount    int             `json:"session_count"`
	StrongestTopic  *TopicStrength  `json:"strongest_topic"`
	WeakestTopic    *TopicStrength  `json:"weakest_topic"`
	ProgressData    []ProgressPoint `json:"progress_data"`
	TopicStrengths  []TopicStrength `json:"topic_strengths"`
	CompletedGoals  int             `json:"completed_goals"`
	Badges          []Badge         `json:"badges"`
}

type AgeRequest struct {
	Age int `json:"age"`
}

type AgeResponse struct {
	Age *int `json:"age"`
}
