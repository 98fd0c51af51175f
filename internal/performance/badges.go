package performance

import "github.com/edusmart/backend/internal/models"

// badgeDef is one earnable badge and its qualifying threshold.
type badgeDef struct {
	key         string
	name        string
	description string
	qualifies   func(overall float64, sessions, completedGoals int) bool
}

// badgeDefs is the fixed badge table, lowest tier first within each track.
var badgeDefs = []badgeDef{
	{
		key:         "first_session",
		name:        "First Steps",
		description: "Complete your first practice session",
		qualifies: func(overall float64, sessions, goals int) bool {
			return sessions >= 1
		},
	},
	{
		key:         "consistent_learner",
		name:        "Consistent Learner",
		description: "Complete 5 practice sessions",
		qualifies: func(overall float64, sessions, goals int) bool {
			return sessions >= 5
		},
	},
	{
		key:         "dedicated_student",
		name:        "Dedicated Student",
		description: "Complete 20 practice sessions",
		qualifies: func(overall float64, sessions, goals int) bool {
			return sessions >= 20
		},
	},
	{
		key:         "high_achiever",
		name:        "High Achiever",
		description: "Hold an overall score above 80",
		qualifies: func(overall float64, sessions, goals int) bool {
			return overall > 80
		},
	},
	{
		key:         "top_performer",
		name:        "Top Performer",
		description: "Hold an overall score above 90",
		qualifies: func(overall float64, sessions, goals int) bool {
			return overall > 90
		},
	},
	{
		key:         "goal_setter",
		name:        "Goal Setter",
		description: "Complete 5 goals",
		qualifies: func(overall float64, sessions, goals int) bool {
			return goals >= 5
		},
	},
	{
		key:         "goal_crusher",
		name:        "Goal Crusher",
		description: "Complete 15 goals",
		qualifies: func(overall float64, sessions, goals int) bool {
			return goals >= 15
		},
	},
}

// ComputeBadges evaluates the badge table against the current aggregates.
// Badges are derived on every read and never persisted, so losing a
// qualifying condition loses the badge.
func ComputeBadges(overall float64, sessions, completedGoals int) []models.Badge {
	badges := []models.Badge{}
	for _, def := range badgeDefs {
		if def.qualifies(overall, sessions, completedGoals) {
			badges = append(badges, models.Badge{
				Key:         def.key,
				Name:        def.name,
				Description: def.description,
			})
		}
	}
	return badges
}
