package flows

import (
	"context"
	"errors"
	"testing"

	"github.com/edusmart/backend/internal/models"
)

// recordingClient captures every prompt it is asked to generate and
// replies with a fixed canned response.
type recordingClient struct {
	calls    int
	response string
	err      error
}

func (c *recordingClient) Generate(ctx context.Context, systemPrompt, userPrompt string) (*LLMResponse, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &LLMResponse{Content: c.response}, nil
}

func TestAdjustDifficulty_RejectsMalformedPerformanceData(t *testing.T) {
	client := &recordingClient{response: `{"newDifficulty": 5, "reasoning": "ok"}`}
	svc := NewServiceWithClient(client, "test")

	inputs := []string{
		"not json",
		"{incomplete",
		"",
	}

	for _, data := range inputs {
		_, err := svc.AdjustDifficulty(context.Background(), models.AdjustDifficultyRequest{
			StudentID:         "user-1",
			CurrentDifficulty: 5,
			PerformanceData:   data,
		})
		if !errors.Is(err, ErrInvalidPerformanceData) {
			t.Errorf("performanceData %q: expected ErrInvalidPerformanceData, got: %v", data, err)
		}
	}

	if client.calls != 0 {
		t.Errorf("expected no model calls for malformed input, got %d", client.calls)
	}
}

func TestAdjustDifficulty_RequiresStudentID(t *testing.T) {
	client := &recordingClient{response: `{"newDifficulty": 5, "reasoning": "ok"}`}
	svc := NewServiceWithClient(client, "test")

	_, err := svc.AdjustDifficulty(context.Background(), models.AdjustDifficultyRequest{
		CurrentDifficulty: 5,
		PerformanceData:   `[]`,
	})

	var inputErr *InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected InputError, got: %v", err)
	}
	if client.calls != 0 {
		t.Errorf("expected no model calls, got %d", client.calls)
	}
}

func TestAdjustDifficulty_ClampsModelOutput(t *testing.T) {
	tests := []struct {
		response string
		want     int
	}{
		{`{"newDifficulty": 15, "reasoning": "way up"}`, 10},
		{`{"newDifficulty": 0, "reasoning": "way down"}`, 1},
		{`{"newDifficulty": -3, "reasoning": "broken"}`, 1},
		{`{"newDifficulty": 7, "reasoning": "in range"}`, 7},
	}

	for _, tt := range tests {
		client := &recordingClient{response: tt.response}
		svc := NewServiceWithClient(client, "test")

		adj, err := svc.AdjustDifficulty(context.Background(), models.AdjustDifficultyRequest{
			StudentID:         "user-1",
			CurrentDifficulty: 5,
			PerformanceData:   `[{"question":"q","correct":true,"timeTaken":4.2,"subject":"Math"}]`,
		})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if adj.NewDifficulty != tt.want {
			t.Errorf("response %s: NewDifficulty = %d, want %d", tt.response, adj.NewDifficulty, tt.want)
		}
	}
}

func TestClampDifficulty(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-5, 1},
		{0, 1},
		{1, 1},
		{5, 5},
		{10, 10},
		{11, 10},
		{100, 10},
	}

	for _, tt := range tests {
		if got := ClampDifficulty(tt.in); got != tt.want {
			t.Errorf("ClampDifficulty(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
