package flows

import (
	"context"
	"fmt"
	"strings"

	"github.com/edusmart/backend/internal/models"
)

// GenerateLessonPlan builds a beginner-level lesson plan for a topic.
func (s *Service) GenerateLessonPlan(ctx context.Context, req models.LessonPlanRequest) (*models.LessonPlan, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return nil, inputErrorf("topic is required")
	}

	resp, err := s.llm.Generate(ctx, LessonPlanSystemPrompt(), BuildLessonPlanPrompt(req.Topic))
	if err != nil {
		return nil, fmt.Errorf("generate lesson plan: %w", err)
	}

	var plan models.LessonPlan
	if err := parseResponse(resp.Content, &plan); err != nil {
		return nil, fmt.Errorf("parse lesson plan response: %w", err)
	}

	if plan.Title == "" || len(plan.KeyConcepts) == 0 {
		return nil, fmt.Errorf("invalid lesson plan from model: missing title or key concepts")
	}

	return &plan, nil
}

// GenerateRecommendations suggests what a student should study next based on
// their past performance and the available lessons.
func (s *Service) GenerateRecommendations(ctx context.Context, req models.RecommendationsRequest) (*models.Recommendations, error) {
	if strings.TrimSpace(req.PastPerformanceData) == "" {
		return nil, inputErrorf("pastPerformanceData is required")
	}

	resp, err := s.llm.Generate(ctx, RecommendationsSystemPrompt(), BuildRecommendationsPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("generate recommendations: %w", err)
	}

	var recs models.Recommendations
	if err := parseResponse(resp.Content, &recs); err != nil {
		return nil, fmt.Errorf("parse recommendations response: %w", err)
	}

	return &recs, nil
}
