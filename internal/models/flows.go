package models

// Flow output types use the camelCase field names the model is instructed to
// emit, so the structs double as the wire schema for parsing responses.

// ── Practice Question ────────────────────────────────────

type QuestionRequest struct {
	Subject           string   `json:"subject"`
	Difficulty        int      `json:"difficulty"`
	PreviousQuestions []string `json:"previousQuestions,omitempty"`
	Age               *int     `json:"age,omitempty"`
}

type PracticeQuestion struct {
	QuestionText         string   `json:"questionText"`
	Options              []string `json:"options"`
	CorrectAnswerIndices []int    `json:"correctAnswerIndices"`
	Explanation          string   `json:"explanation"`
}

// CorrectAnswers resolves the correct answer indices to option texts.
func (q *PracticeQuestion) CorrectAnswers() []string {
	answers := make([]string, 0, len(q.CorrectAnswerIndices))
	for _, idx := range q.CorrectAnswerIndices {
		if idx >= 0 && idx < len(q.Options) {
			answers = append(answers, q.Options[idx])
		}
	}
	return answers
}

// MultiSelect reports whether more than one option must be chosen.
func (q *PracticeQuestion) MultiSelect() bool {
	return len(q.CorrectAnswerIndices) > 1
}

// ── Difficulty Adjustment ────────────────────────────────

type AdjustDifficultyRequest struct {
	StudentID         string `json:"studentId"`
	CurrentDifficulty int    `json:"currentDifficulty"`
	PerformanceData   string `json:"performanceData"`
}

type DifficultyAdjustment struct {
	NewDifficulty int    `json:"newDifficulty"`
	Reasoning     string `json:"reasoning"`
}

// ── Lesson Plan ──────────────────────────────────────────

type LessonPlanRequest struct {
	Topic string `json:"topic"`
}

type LessonExample struct {
	Problem  string `json:"problem"`
	Solution string `json:"solution"`
}

type LessonPracticeProblem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type LessonPlan struct {
	Title            string                  `json:"title"`
	Introduction     string                  `json:"introduction"`
	KeyConcepts      []string                `json:"keyConcepts"`
	Example          LessonExample           `json:"example"`
	PracticeProblems []LessonPracticeProblem `json:"practiceProblems"`
	YoutubeVideoIDs  []string                `json:"youtubeVideoIds"`
}

// ── Essay Grading ────────────────────────────────────────

type GradeEssayRequest struct {
	EssayText string `json:"essayText"`
}

type EssayFeedback struct {
	OverallScore        float64  `json:"overallScore"`
	OverallFeedback     string   `json:"overallFeedback"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areasForImprovement"`
	EnhancedEssay       string   `json:"enhancedEssay"`
}

// ── Career Roadmap ───────────────────────────────────────

type CareerRoadmapRequest struct {
	JobRole string `json:"jobRole"`
}

type RoadmapStep struct {
	Skill       string `json:"skill"`
	Description string `json:"description"`
}

type CourseRecommendation struct {
	Title    string `json:"title"`
	Provider string `json:"provider"`
}

type CareerRoadmap struct {
	JobRole            string                 `json:"jobRole"`
	Roadmap            []RoadmapStep          `json:"roadmap"`
	RecommendedCourses []CourseRecommendation `json:"recommendedCourses"`
}

// ── Personalized Recommendations ─────────────────────────

type RecommendationsRequest struct {
	StudentID           string `json:"studentId"`
	PastPerformanceData string `json:"pastPerformanceData"`
	AvailableLessons    string `json:"availableLessons"`
}

type Recommendations struct {
	Recommendations []string `json:"recommendations"`
}

// ── Language Tutor ───────────────────────────────────────

type LanguageTask string

const (
	TaskTranslate LanguageTask = "translate"
	TaskCorrect   LanguageTask = "correct"
	TaskExplain   LanguageTask = "explain"
)

type LanguageTutorRequest struct {
	Text           string       `json:"text"`
	Task           LanguageTask `json:"task"`
	SourceLanguage string       `json:"sourceLanguage,omitempty"`
	TargetLanguage string       `json:"targetLanguage,omitempty"`
}

type LanguageTutorResult struct {
	ProcessedText string `json:"processedText"`
	Explanation   string `json:"explanation,omitempty"`
}

// ── Problem Solver ───────────────────────────────────────

type SolveProblemRequest struct {
	ProblemText string `json:"problemText"`
}

type ProblemSolution struct {
	Solution string `json:"solution"`
	Answer   string `json:"answer"`
}

// ── Course Recommendation ────────────────────────────────

type RecommendCoursesRequest struct {
	Topic string `json:"topic"`
}

type RecommendedCourses struct {
	Courses []CourseRecommendation `json:"courses"`
}
