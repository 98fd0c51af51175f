package flows

import (
	"context"
	"strings"
)

// MockClient returns deterministic canned responses for local development.
// It picks the response by matching the flow persona in the system prompt.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	return &LLMResponse{
		Content:      mockContentFor(systemPrompt),
		PromptTokens: 500,
		OutputTokens: 800,
	}, nil
}

func mockContentFor(systemPrompt string) string {
	switch {
	case strings.Contains(systemPrompt, "multiple-choice practice question"):
		return `{
			"questionText": "[Mock] What is 7 multiplied by 8?",
			"options": ["54", "56", "63", "49"],
			"correctAnswerIndices": [1],
			"explanation": "[Mock] 7 times 8 equals 56."
		}`
	case strings.Contains(systemPrompt, "adaptive learning paths"):
		return `{
			"newDifficulty": 4,
			"reasoning": "[Mock] You're doing great, let's try something a bit more challenging!"
		}`
	case strings.Contains(systemPrompt, "lesson plan"):
		return `{
			"title": "[Mock] Introduction to Fractions",
			"introduction": "[Mock] Fractions describe parts of a whole.",
			"keyConcepts": ["Numerator and denominator", "Equivalent fractions", "Simplifying"],
			"example": {"problem": "[Mock] Simplify 4/8.", "solution": "[Mock] Divide both by 4 to get 1/2."},
			"practiceProblems": [
				{"question": "[Mock] Simplify 6/9.", "answer": "2/3"},
				{"question": "[Mock] Add 1/4 and 1/4.", "answer": "1/2"}
			],
			"youtubeVideoIds": ["dQw4w9WgXcQ"]
		}`
	case strings.Contains(systemPrompt, "writing instructor"):
		return `{
			"overallScore": 78,
			"overallFeedback": "[Mock] A solid essay with a clear argument.",
			"strengths": ["[Mock] Clear thesis", "[Mock] Good structure"],
			"areasForImprovement": ["[Mock] Vary sentence length", "[Mock] Strengthen the conclusion"],
			"enhancedEssay": "[Mock] The enhanced essay text."
		}`
	case strings.Contains(systemPrompt, "career advisor"):
		return `{
			"jobRole": "[Mock] Software Engineer",
			"roadmap": [
				{"skill": "Programming fundamentals", "description": "[Mock] Core concepts every engineer needs."},
				{"skill": "Data structures", "description": "[Mock] How information is organized and accessed."}
			],
			"recommendedCourses": [
				{"title": "[Mock] CS50", "provider": "edX"},
				{"title": "[Mock] The Complete Developer Bootcamp", "provider": "Udemy"}
			]
		}`
	case strings.Contains(systemPrompt, "personalized lesson"):
		return `{
			"recommendations": [
				"[Mock] Two-Digit Multiplication Practice — you struggled with double digits.",
				"[Mock] Understanding Remainders in Division — division accuracy was lowest."
			]
		}`
	case strings.Contains(systemPrompt, "language tutor"):
		return `{
			"processedText": "[Mock] Hola, mundo.",
			"explanation": "[Mock] A literal translation of the greeting."
		}`
	case strings.Contains(systemPrompt, "problem solver"):
		return `{
			"solution": "[Mock] Step 1: identify the variables. Step 2: apply the formula.",
			"answer": "[Mock] 42"
		}`
	case strings.Contains(systemPrompt, "academic advisor"):
		return `{
			"courses": [
				{"title": "[Mock] Machine Learning", "provider": "Coursera"},
				{"title": "[Mock] Practical Deep Learning", "provider": "fast.ai"}
			]
		}`
	default:
		return `{}`
	}
}
