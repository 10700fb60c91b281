package service

import (
	"context"

	"aisb_backend/internal/model"
	"aisb_backend/internal/repository"
)

// DashboardStats is the admin overview: collection counts and score averages.
type DashboardStats struct {
	Students        int     `json:"students"`
	Quizzes         int     `json:"quizzes"`
	QuizSubmissions int     `json:"quiz_submissions"`
	PendingResults  int     `json:"pending_results"`
	Videos          int     `json:"videos"`
	VideosAnalyzed  int     `json:"videos_analyzed"`
	FinalReleased   int     `json:"final_released"`
	AvgQuizScore    float64 `json:"avg_quiz_score"`
	AvgVideoScore   float64 `json:"avg_video_score"`
}

type DashboardService struct {
	studentRepo *repository.StudentRepository
	quizRepo    *repository.QuizRepository
	resultRepo  *repository.ResultRepository
	videoRepo   *repository.VideoRepository
	finalRepo   *repository.FinalResultRepository
}

func NewDashboardService(
	studentRepo *repository.StudentRepository,
	quizRepo *repository.QuizRepository,
	resultRepo *repository.ResultRepository,
	videoRepo *repository.VideoRepository,
	finalRepo *repository.FinalResultRepository,
) *DashboardService {
	return &DashboardService{
		studentRepo: studentRepo,
		quizRepo:    quizRepo,
		resultRepo:  resultRepo,
		videoRepo:   videoRepo,
		finalRepo:   finalRepo,
	}
}

// Overview loads every collection and reduces it to counters. The video
// average covers analyzed submissions only; unanalyzed ones have no score yet.
func (s *DashboardService) Overview(ctx context.Context) (*DashboardStats, error) {
	students, err := s.studentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	quizzes, err := s.quizRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	results, err := s.resultRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	videos, err := s.videoRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	finals, err := s.finalRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		Students:        len(students),
		Quizzes:         len(quizzes),
		QuizSubmissions: len(results),
		Videos:          len(videos),
		FinalReleased:   len(finals),
	}

	var quizTotal float64
	for _, r := range results {
		quizTotal += r.ScorePercentage
		if r.Status == model.ResultPending {
			stats.PendingResults++
		}
	}
	if len(results) > 0 {
		stats.AvgQuizScore = round2(quizTotal / float64(len(results)))
	}

	var videoTotal float64
	for _, v := range videos {
		if v.Status == model.VideoAnalyzed {
			stats.VideosAnalyzed++
			videoTotal += v.Score
		}
	}
	if stats.VideosAnalyzed > 0 {
		stats.AvgVideoScore = round2(videoTotal / float64(stats.VideosAnalyzed))
	}

	return stats, nil
}
