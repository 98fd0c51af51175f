package flows

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/edusmart/backend/internal/models"
)

// ErrInvalidPerformanceData is returned when the performance payload is not
// valid JSON. The check runs before any model call is made.
var ErrInvalidPerformanceData = &InputError{Msg: "performanceData must be a valid JSON string"}

// AdjustDifficulty asks the model for a new difficulty level based on recent
// performance. The returned difficulty is clamped into [1, 10]; callers
// should clamp again rather than trust the flow to have done so.
func (s *Service) AdjustDifficulty(ctx context.Context, req models.AdjustDifficultyRequest) (*models.DifficultyAdjustment, error) {
	if strings.TrimSpace(req.StudentID) == "" {
		return nil, inputErrorf("studentId is required")
	}
	if !json.Valid([]byte(req.PerformanceData)) {
		return nil, ErrInvalidPerformanceData
	}
	req.CurrentDifficulty = ClampDifficulty(req.CurrentDifficulty)

	resp, err := s.llm.Generate(ctx, DifficultySystemPrompt(), BuildDifficultyPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("adjust difficulty: %w", err)
	}

	var adjustment models.DifficultyAdjustment
	if err := parseResponse(resp.Content, &adjustment); err != nil {
		return nil, fmt.Errorf("parse difficulty response: %w", err)
	}

	adjustment.NewDifficulty = ClampDifficulty(adjustment.NewDifficulty)
	return &adjustment, nil
}
