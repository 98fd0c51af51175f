package flows

import (
	"testing"

	"github.com/edusmart/backend/internal/models"
)

const validQuestionJSON = `{
	"questionText": "What is 7 multiplied by 8?",
	"options": ["54", "56", "63", "49"],
	"correctAnswerIndices": [1],
	"explanation": "7 times 8 equals 56."
}`

func TestParseResponse_ValidJSON(t *testing.T) {
	var q models.PracticeQuestion
	if err := parseResponse(validQuestionJSON, &q); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if q.QuestionText != "What is 7 multiplied by 8?" {
		t.Errorf("unexpected question text: %q", q.QuestionText)
	}
	if len(q.Options) != 4 {
		t.Errorf("expected 4 options, got %d", len(q.Options))
	}
}

func TestParseResponse_MarkdownFences(t *testing.T) {
	inputs := []string{
		"```json\n" + validQuestionJSON + "\n```",
		"```\n" + validQuestionJSON + "\n```",
		"  \n" + validQuestionJSON + "  \n",
	}

	for _, input := range inputs {
		var q models.PracticeQuestion
		if err := parseResponse(input, &q); err != nil {
			t.Errorf("expected no error for input %q..., got: %v", input[:10], err)
		}
		if len(q.CorrectAnswerIndices) != 1 || q.CorrectAnswerIndices[0] != 1 {
			t.Errorf("expected correctAnswerIndices [1], got %v", q.CorrectAnswerIndices)
		}
	}
}

func TestParseResponse_MalformedJSON(t *testing.T) {
	var q models.PracticeQuestion
	if err := parseResponse("the answer is 56", &q); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestCorrectAnswers_ResolvesIndices(t *testing.T) {
	q := models.PracticeQuestion{
		Options:              []string{"Mercury", "Venus", "Earth", "Mars"},
		CorrectAnswerIndices: []int{0, 2},
	}

	got := q.CorrectAnswers()
	if len(got) != 2 || got[0] != "Mercury" || got[1] != "Earth" {
		t.Errorf("CorrectAnswers() = %v, want [Mercury Earth]", got)
	}
	if !q.MultiSelect() {
		t.Error("expected MultiSelect() to be true for two correct answers")
	}
}

func TestCorrectAnswers_SkipsOutOfRangeIndices(t *testing.T) {
	q := models.PracticeQuestion{
		Options:              []string{"A", "B"},
		CorrectAnswerIndices: []int{1, 5, -1},
	}

	got := q.CorrectAnswers()
	if len(got) != 1 || got[0] != "B" {
		t.Errorf("CorrectAnswers() = %v, want [B]", got)
	}
}
