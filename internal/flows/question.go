package flows

import (
	"context"
	"fmt"
	"strings"

	"github.com/edusmart/backend/internal/models"
)

// Difficulty bounds for practice questions. The adjustment flow and the
// session engine both clamp into this range.
const (
	MinDifficulty = 1
	MaxDifficulty = 10
)

// ClampDifficulty forces a difficulty value into the valid range.
func ClampDifficulty(d int) int {
	if d < MinDifficulty {
		return MinDifficulty
	}
	if d > MaxDifficulty {
		return MaxDifficulty
	}
	return d
}

// GenerateQuestion produces one multiple-choice question for the subject at
// the given difficulty, avoiding repeats of previously asked questions.
func (s *Service) GenerateQuestion(ctx context.Context, req models.QuestionRequest) (*models.PracticeQuestion, error) {
	if strings.TrimSpace(req.Subject) == "" {
		return nil, inputErrorf("subject is required")
	}
	if req.Difficulty < MinDifficulty || req.Difficulty > MaxDifficulty {
		return nil, inputErrorf("difficulty must be between %d and %d", MinDifficulty, MaxDifficulty)
	}

	resp, err := s.llm.Generate(ctx, QuestionSystemPrompt(), BuildQuestionPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("generate question: %w", err)
	}

	var question models.PracticeQuestion
	if err := parseResponse(resp.Content, &question); err != nil {
		return nil, fmt.Errorf("parse question response: %w", err)
	}

	if err := validateQuestion(&question); err != nil {
		return nil, fmt.Errorf("invalid question from model: %w", err)
	}

	return &question, nil
}

func validateQuestion(q *models.PracticeQuestion) error {
	if strings.TrimSpace(q.QuestionText) == "" {
		return fmt.Errorf("empty question text")
	}
	if len(q.Options) != 4 {
		return fmt.Errorf("expected 4 options, got %d", len(q.Options))
	}
	if len(q.CorrectAnswerIndices) == 0 {
		return fmt.Errorf("no correct answer indices")
	}
	for _, idx := range q.CorrectAnswerIndices {
		if idx < 0 || idx >= len(q.Options) {
			return fmt.Errorf("correct answer index %d out of range", idx)
		}
	}
	if q.Explanation == "" {
		return fmt.Errorf("empty explanation")
	}
	return nil
}
