package model

import "time"

type ResultStatus string

const (
	ResultPending  ResultStatus = "pending"
	ResultReleased ResultStatus = "released"
)

type QuestionResult struct {
	QuestionNumber int    `json:"question_number"`
	StudentAnswer  string `json:"student_answer"`
	CorrectAnswer  string `json:"correct_answer"`
	IsCorrect      bool   `json:"is_correct"`
	PointsEarned   int    `json:"points_earned"`
	Feedback       string `json:"feedback"`
}

// QuizResult records one graded submission. Answers and QuestionResults always
// have exactly as many entries as the quiz has questions; short submissions are
// padded with empty answers during grading.
//
// swagger:model QuizResult
type QuizResult struct {
	ID              string           `json:"id"`
	StudentID       string           `json:"student_id"`
	QuizID          string           `json:"quiz_id"`
	Answers         []string         `json:"answers"`
	TotalQuestions  int              `json:"total_questions"`
	CorrectAnswers  int              `json:"correct_answers"`
	ScorePercentage float64          `json:"score_percentage"`
	Grade           string           `json:"grade"`
	QuestionResults []QuestionResult `json:"question_results"`
	OverallFeedback string           `json:"overall_feedback"`
	SubmittedAt     time.Time        `json:"submitted_at"`
	Status          ResultStatus     `json:"status"`
}
