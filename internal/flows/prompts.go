package flows

import (
	"fmt"
	"strings"

	"github.com/edusmart/backend/internal/models"
)

// Every flow sends a system prompt naming the persona and a user prompt
// carrying the request. All prompts end with the same JSON-only directive
// so the responses parse without prose preambles.

const jsonOnlyDirective = "Respond with a single JSON object matching the requested fields. Do not include any text outside the JSON."

func QuestionSystemPrompt() string {
	return "You are an expert tutor. Your task is to generate a single multiple-choice practice question for a student. " + jsonOnlyDirective
}

func BuildQuestionPrompt(req models.QuestionRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "The subject is: %s. If the subject is 'General', you can choose a topic from any field like Math, Science, History, or General Knowledge.\n", req.Subject)
	fmt.Fprintf(&b, "The difficulty level (1-10) is: %d\n", req.Difficulty)
	if req.Age != nil {
		fmt.Fprintf(&b, "The student's age is: %d\n", *req.Age)
	}

	if len(req.PreviousQuestions) > 0 {
		b.WriteString("\nThe student has already answered the following questions in this session. Do not generate a question that is substantially similar to any of these:\n")
		for _, q := range req.PreviousQuestions {
			fmt.Fprintf(&b, "- %q\n", q)
		}
	}

	b.WriteString(`
Generate one multiple-choice question with exactly 4 options in the "options" array.
The question should be clear and concise.
Indicate the 0-based index (0, 1, 2, or 3) of the correct answer(s) in the "correctAnswerIndices" array. There can be one or more correct answers.
Provide a brief and clear explanation for the correct answer in "explanation".

Fields: questionText, options, correctAnswerIndices, explanation.`)

	return b.String()
}

func DifficultySystemPrompt() string {
	return "You are an AI tutor specializing in creating adaptive learning paths. Your task is to dynamically adjust the difficulty of questions for a student based on their recent performance data. " + jsonOnlyDirective
}

func BuildDifficultyPrompt(req models.AdjustDifficultyRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Student ID: %s\n", req.StudentID)
	fmt.Fprintf(&b, "Current Difficulty Level: %d\n", req.CurrentDifficulty)
	fmt.Fprintf(&b, "Recent Performance Data: %s\n", req.PerformanceData)

	b.WriteString(`
Analyze the student's performance data and determine whether to increase, decrease, or maintain the difficulty level. Provide a new difficulty level (an integer between 1 and 10) in "newDifficulty".

Your reasoning should be concise and encouraging. Consider factors such as the number of correct/incorrect answers and the time spent on each question. A higher proportion of correct answers suggests an increase in difficulty, while a high number of incorrect answers suggests a decrease.

Fields: newDifficulty, reasoning.`)

	return b.String()
}

func LessonPlanSystemPrompt() string {
	return "You are an expert tutor. Your task is to create a simple and clear lesson plan for a student who wants to learn about a specific topic. " + jsonOnlyDirective
}

func BuildLessonPlanPrompt(topic string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "The topic is: %s\n", topic)
	b.WriteString(`
Generate a lesson plan with the following components:
1. A clear title for the lesson ("title").
2. A brief, engaging introduction to the topic ("introduction").
3. A list of key concepts, formulas, or rules ("keyConcepts").
4. One clear, step-by-step example problem and its solution ("example" with "problem" and "solution").
5. Two or three practice problems for the student to solve, along with their answers ("practiceProblems" with "question" and "answer").
6. Up to four relevant, high-quality educational YouTube video IDs for the topic, ordered by relevance ("youtubeVideoIds" — just the 11-character IDs, not full URLs).

Keep the language simple and encouraging. The goal is to make the topic understandable for a beginner.`)

	return b.String()
}

func EssaySystemPrompt() string {
	return "You are an expert writing instructor. Your task is to grade an essay and provide constructive feedback. " + jsonOnlyDirective
}

func BuildEssayPrompt(essayText string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Essay Text:\n%s\n", essayText)
	b.WriteString(`
Evaluate the essay based on clarity, argumentation, structure, and grammar. Provide a numerical score out of 100 in "overallScore".

Your feedback should include:
1. An overall summary of the essay's quality ("overallFeedback").
2. A list of 2-3 specific strengths ("strengths").
3. A list of 2-3 specific areas for improvement with actionable advice ("areasForImprovement").
4. A rewritten, enhanced version of the essay that incorporates your suggested improvements ("enhancedEssay"). The tone and core message should remain the same as the original.

Be encouraging and focus on helping the writer improve.`)

	return b.String()
}

func CareerRoadmapSystemPrompt() string {
	return "You are an expert career advisor. Your task is to create a detailed, step-by-step learning roadmap for an aspiring professional. " + jsonOnlyDirective
}

func BuildCareerRoadmapPrompt(jobRole string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "The user aspires to become a %q.\n", jobRole)
	b.WriteString(`
Generate:
1. The job role the roadmap is for ("jobRole").
2. An ordered list of skills or technologies to learn, each with a detailed explanation of the skill and its importance for the role ("roadmap" with "skill" and "description").
3. A list of 3-5 highly recommended real courses for the overall job role, each with a title and the platform or institution offering it ("recommendedCourses" with "title" and "provider").`)

	return b.String()
}

func RecommendationsSystemPrompt() string {
	return "You are an AI-powered tutor that provides personalized lesson and question recommendations to students based on their past performance. " + jsonOnlyDirective
}

func BuildRecommendationsPrompt(req models.RecommendationsRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Student ID: %s\n", req.StudentID)
	fmt.Fprintf(&b, "Past Performance Data: %s\n", req.PastPerformanceData)
	fmt.Fprintf(&b, "Available Lessons: %s\n", req.AvailableLessons)

	b.WriteString(`
Recommend the lessons or question types this student should focus on next, each with a brief explanation of why ("recommendations" — a list of strings).`)

	return b.String()
}

func LanguageTutorSystemPrompt() string {
	return "You are an expert language tutor. Perform the requested task on the user's text. " + jsonOnlyDirective
}

func BuildLanguageTutorPrompt(req models.LanguageTutorRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Task: %s\n", req.Task)
	if req.SourceLanguage != "" {
		fmt.Fprintf(&b, "Source Language: %s\n", req.SourceLanguage)
	}
	if req.TargetLanguage != "" {
		fmt.Fprintf(&b, "Target Language: %s\n", req.TargetLanguage)
	}
	fmt.Fprintf(&b, "User's Text: %q\n", req.Text)

	b.WriteString(`
- If the task is 'translate', translate the text from the source language to the target language and put the result in "processedText".
- If the task is 'correct', correct any grammatical errors in the text, put the corrected version in "processedText", and a brief explanation of the correction in "explanation".
- If the task is 'explain', explain the grammatical concept demonstrated in the text in "explanation" and return the original text in "processedText".`)

	return b.String()
}

func SolverSystemPrompt() string {
	return "You are an expert problem solver. Your task is to analyze the given problem and provide a detailed step-by-step solution and the final answer. " + jsonOnlyDirective
}

func BuildSolverPrompt(problemText string) string {
	return fmt.Sprintf("Problem:\n%s\n\nProvide a detailed, step-by-step solution in \"solution\" and the final answer in \"answer\".", problemText)
}

func RecommendCoursesSystemPrompt() string {
	return "You are an expert academic advisor. Your task is to recommend a list of real, well-known online courses for a specific topic. " + jsonOnlyDirective
}

func BuildRecommendCoursesPrompt(topic string) string {
	return fmt.Sprintf("The topic is: %s\n\nRecommend 5 to 10 real, well-known online courses for this topic (\"courses\" with \"title\" and \"provider\").", topic)
}
