package model

import "time"

type VideoStatus string

const (
	VideoSubmitted VideoStatus = "submitted"
	VideoAnalyzed  VideoStatus = "analyzed"
)

type CriterionScore struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// VideoAnalysis is the full assessment report attached to a submission. The
// five criterion scores are a weighted decomposition of TotalScore
// (30/25/20/15/10), not independently assessed values.
type VideoAnalysis struct {
	ContentQuality        CriterionScore `json:"content_quality"`
	ClarityCommunication  CriterionScore `json:"clarity_communication"`
	TechnicalKnowledge    CriterionScore `json:"technical_knowledge"`
	StructureOrganization CriterionScore `json:"structure_organization"`
	EngagementDelivery    CriterionScore `json:"engagement_delivery"`
	TotalScore            float64        `json:"total_score"`
	ScorePercentage       float64        `json:"score_percentage"`
	Grade                 string         `json:"grade"`
	Strengths             []string       `json:"strengths"`
	AreasForImprovement   []string       `json:"areas_for_improvement"`
	OverallFeedback       string         `json:"overall_feedback"`
}

// VideoSubmission is created once per student; a second submission for the
// same student id is rejected. The analysis step is the only mutation: it
// attaches the report fields and flips Status to analyzed.
//
// swagger:model VideoSubmission
type VideoSubmission struct {
	ID          string         `json:"id"`
	StudentID   string         `json:"student_id"`
	VideoLink   string         `json:"video_link"`
	Topic       string         `json:"topic"`
	FileID      string         `json:"file_id"`
	DirectLink  string         `json:"direct_link"`
	SubmittedAt time.Time      `json:"submitted_at"`
	Status      VideoStatus    `json:"status"`
	Transcript  string         `json:"transcript,omitempty"`
	Score       float64        `json:"video_score"`
	Grade       string         `json:"video_grade,omitempty"`
	Feedback    string         `json:"video_feedback,omitempty"`
	Analysis    *VideoAnalysis `json:"detailed_analysis,omitempty"`
	AnalyzedAt  *time.Time     `json:"analyzed_at,omitempty"`
}
