package models

// SessionState is the lifecycle position of one practice session.
type SessionState string

const (
	StateAwaitingQuestion SessionState = "awaiting_question"
	StateAwaitingAnswer   SessionState = "awaiting_answer"
	StateAnswered         SessionState = "answered"
	StateComplete         SessionState = "complete"
	StateAbandoned        SessionState = "abandoned"
)

type StartSessionRequest struct {
	Subject string `json:"subject"`
}

type StartSessionResponse struct {
	SessionID      string           `json:"session_id"`
	Subject        string           `json:"subject"`
	Difficulty     int              `json:"difficulty"`
	TotalQuestions int              `json:"total_questions"`
	Question       *SessionQuestion `json:"question"`
	Warning        string           `json:"warning,omitempty"`
}

// SessionQuestion is the client-facing view of the current question.
// Correct answers and the explanation are withheld until after scoring.
type SessionQuestion struct {
	Number       int      `json:"number"`
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
	MultiSelect  bool     `json:"multi_select"`
}

type SubmitSessionAnswerRequest struct {
	Answers []string `json:"answers"`
}

type SubmitSessionAnswerResponse struct {
	Correct        bool     `json:"correct"`
	CorrectAnswers []string `json:"correct_answers"`
	Explanation    string   `json:"explanation"`
	SessionOver    bool     `json:"session_over"`
}

type NextQuestionResponse struct {
	Difficulty          int              `json:"difficulty"`
	AdjustmentReasoning string           `json:"adjustment_reasoning,omitempty"`
	Question            *SessionQuestion `json:"question"`
	Warning             string           `json:"warning,omitempty"`
}

type SessionSnapshot struct {
	SessionID         string       `json:"session_id"`
	Subject           string       `json:"subject"`
	State             SessionState `json:"state"`
	Difficulty        int          `json:"difficulty"`
	QuestionsAnswered int          `json:"questions_answered"`
	CorrectAnswers    int          `json:"correct_answers"`
	TotalQuestions    int          `json:"total_questions"`
}

type SessionResultResponse struct {
	Score           float64 `json:"score"`
	CorrectAnswers  int     `json:"correct_answers"`
	TotalQuestions  int     `json:"total_questions"`
	FinalDifficulty int     `json:"final_difficulty"`
	Warning         string  `json:"warning,omitempty"`
}
