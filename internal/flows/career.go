package flows

import (
	"context"
	"fmt"
	"strings"

	"github.com/edusmart/backend/internal/models"
)

// GenerateCareerRoadmap produces an ordered skill roadmap for a job role.
// The skills can be bulk-imported into the goal tracker by the caller.
func (s *Service) GenerateCareerRoadmap(ctx context.Context, req models.CareerRoadmapRequest) (*models.CareerRoadmap, error) {
	if strings.TrimSpace(req.JobRole) == "" {
		return nil, inputErrorf("jobRole is required")
	}

	resp, err := s.llm.Generate(ctx, CareerRoadmapSystemPrompt(), BuildCareerRoadmapPrompt(req.JobRole))
	if err != nil {
		return nil, fmt.Errorf("generate career roadmap: %w", err)
	}

	var roadmap models.CareerRoadmap
	if err := parseResponse(resp.Content, &roadmap); err != nil {
		return nil, fmt.Errorf("parse career roadmap response: %w", err)
	}

	if len(roadmap.Roadmap) == 0 {
		return nil, fmt.Errorf("invalid roadmap from model: no steps")
	}

	return &roadmap, nil
}

// RecommendCourses lists real online courses for a topic.
func (s *Service) RecommendCourses(ctx context.Context, req models.RecommendCoursesRequest) (*models.RecommendedCourses, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return nil, inputErrorf("topic is required")
	}

	resp, err := s.llm.Generate(ctx, RecommendCoursesSystemPrompt(), BuildRecommendCoursesPrompt(req.Topic))
	if err != nil {
		return nil, fmt.Errorf("recommend courses: %w", err)
	}

	var courses models.RecommendedCourses
	if err := parseResponse(resp.Content, &courses); err != nil {
		return nil, fmt.Errorf("parse course recommendations response: %w", err)
	}

	return &courses, nil
}
