package flows

import (
	"context"
	"fmt"
	"strings"

	"github.com/edusmart/backend/internal/models"
)

// GradeEssay scores an essay out of 100 and returns structured feedback
// plus an enhanced rewrite.
func (s *Service) GradeEssay(ctx context.Context, req models.GradeEssayRequest) (*models.EssayFeedback, error) {
	if strings.TrimSpace(req.EssayText) == "" {
		return nil, inputErrorf("essayText is required")
	}

	resp, err := s.llm.Generate(ctx, EssaySystemPrompt(), BuildEssayPrompt(req.EssayText))
	if err != nil {
		return nil, fmt.Errorf("grade essay: %w", err)
	}

	var feedback models.EssayFeedback
	if err := parseResponse(resp.Content, &feedback); err != nil {
		return nil, fmt.Errorf("parse essay feedback response: %w", err)
	}

	if feedback.OverallScore < 0 {
		feedback.OverallScore = 0
	}
	if feedback.OverallScore > 100 {
		feedback.OverallScore = 100
	}

	return &feedback, nil
}
