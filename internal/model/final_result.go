package model

import "time"

// CombinedResult is the ephemeral join of a student's quiz and video scores.
// It is computed on demand and only persisted, as a FinalResult, for students
// the selection engine admits.
type CombinedResult struct {
	StudentID      string  `json:"student_id"`
	QuizScore      float64 `json:"quiz_score"`
	QuizGrade      string  `json:"quiz_grade"`
	QuizFeedback   string  `json:"quiz_feedback"`
	QuizSubmitted  bool    `json:"quiz_submitted"`
	VideoScore     float64 `json:"video_score"`
	VideoGrade     string  `json:"video_grade"`
	VideoFeedback  string  `json:"video_feedback"`
	VideoSubmitted bool    `json:"video_submitted"`
	VideoLink      string  `json:"video_link,omitempty"`
	TotalScore     float64 `json:"total_score"`
	FinalGrade     string  `json:"final_grade"`
}

// swagger:model FinalResult
type FinalResult struct {
	ID         string    `json:"id"`
	StudentID  string    `json:"student_id"`
	QuizScore  float64   `json:"quiz_score"`
	VideoScore float64   `json:"video_score"`
	TotalScore float64   `json:"total_score"`
	FinalGrade string    `json:"final_grade"`
	Selected   bool      `json:"selected"`
	ReleasedAt time.Time `json:"released_at"`
	Status     string    `json:"status"`
}
