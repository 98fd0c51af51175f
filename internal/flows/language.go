package flows

import (
	"context"
	"fmt"
	"strings"

	"github.com/edusmart/backend/internal/models"
)

// LanguageTutor translates, corrects, or explains the user's text.
func (s *Service) LanguageTutor(ctx context.Context, req models.LanguageTutorRequest) (*models.LanguageTutorResult, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, inputErrorf("text is required")
	}
	switch req.Task {
	case models.TaskTranslate:
		if req.SourceLanguage == "" || req.TargetLanguage == "" {
			return nil, inputErrorf("sourceLanguage and targetLanguage are required for translation")
		}
	case models.TaskCorrect, models.TaskExplain:
		if req.SourceLanguage == "" {
			return nil, inputErrorf("sourceLanguage is required")
		}
	default:
		return nil, inputErrorf("task must be 'translate', 'correct', or 'explain'")
	}

	resp, err := s.llm.Generate(ctx, LanguageTutorSystemPrompt(), BuildLanguageTutorPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("language tutor: %w", err)
	}

	var result models.LanguageTutorResult
	if err := parseResponse(resp.Content, &result); err != nil {
		return nil, fmt.Errorf("parse language tutor response: %w", err)
	}

	return &result, nil
}

// SolveProblem returns a step-by-step solution and the final answer.
func (s *Service) SolveProblem(ctx context.Context, req models.SolveProblemRequest) (*models.ProblemSolution, error) {
	if strings.TrimSpace(req.ProblemText) == "" {
		return nil, inputErrorf("problemText is required")
	}

	resp, err := s.llm.Generate(ctx, SolverSystemPrompt(), BuildSolverPrompt(req.ProblemText))
	if err != nil {
		return nil, fmt.Errorf("solve problem: %w", err)
	}

	var solution models.ProblemSolution
	if err := parseResponse(resp.Content, &solution); err != nil {
		return nil, fmt.Errorf("parse solution response: %w", err)
	}

	return &solution, nil
}
