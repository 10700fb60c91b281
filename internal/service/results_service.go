package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"aisb_backend/internal/model"
	"aisb_backend/internal/repository"
	"aisb_backend/internal/store"
	"aisb_backend/internal/util"
	"aisb_backend/pkg/logger"

	"go.uber.org/zap"
)

// Combined score weights.
const (
	quizWeight  = 0.6
	videoWeight = 0.4
)

// AggregateOptions controls which students a combined-results pass covers.
// IncludeVideoOnly admits students who submitted a video without taking any
// quiz; their quiz component scores zero.
type AggregateOptions struct {
	IncludeVideoOnly bool
}

// FinalReleaseSummary reports a final-results release pass.
type FinalReleaseSummary struct {
	Selected  int     `json:"selected"`
	Released  int     `json:"released"`
	Skipped   int     `json:"skipped"`
	Errors    int     `json:"errors"`
	ReportURL string  `json:"report_url,omitempty"`
	TopCut    float64 `json:"top_percentage"`
}

type ResultsService struct {
	resultRepo  *repository.ResultRepository
	videoRepo   *repository.VideoRepository
	studentRepo *repository.StudentRepository
	finalRepo   *repository.FinalResultRepository
	email       *EmailService
	storage     *StorageService
}

func NewResultsService(
	resultRepo *repository.ResultRepository,
	videoRepo *repository.VideoRepository,
	studentRepo *repository.StudentRepository,
	finalRepo *repository.FinalResultRepository,
	email *EmailService,
	storage *StorageService,
) *ResultsService {
	return &ResultsService{
		resultRepo:  resultRepo,
		videoRepo:   videoRepo,
		studentRepo: studentRepo,
		finalRepo:   finalRepo,
		email:       email,
		storage:     storage,
	}
}

// CombinedResults joins quiz and video scores per student. A student with
// several quiz results keeps the last one in store order. A missing component
// contributes zero to the weighted total.
func (s *ResultsService) CombinedResults(ctx context.Context, opts AggregateOptions) ([]model.CombinedResult, error) {
	quizResults, err := s.resultRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	videos, err := s.videoRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return CombineResults(quizResults, videos, opts), nil
}

// CombineResults is the pure aggregation over already loaded records.
func CombineResults(quizResults []model.QuizResult, videos []model.VideoSubmission, opts AggregateOptions) []model.CombinedResult {
	byStudent := make(map[string]*model.CombinedResult)
	var order []string

	for _, r := range quizResults {
		c, ok := byStudent[r.StudentID]
		if !ok {
			c = &model.CombinedResult{StudentID: r.StudentID}
			byStudent[r.StudentID] = c
			order = append(order, r.StudentID)
		}
		c.QuizScore = r.ScorePercentage
		c.QuizGrade = r.Grade
		c.QuizFeedback = r.OverallFeedback
		c.QuizSubmitted = true
	}

	for _, v := range videos {
		c, ok := byStudent[v.StudentID]
		if !ok {
			if !opts.IncludeVideoOnly {
				continue
			}
			c = &model.CombinedResult{StudentID: v.StudentID}
			byStudent[v.StudentID] = c
			order = append(order, v.StudentID)
		}
		c.VideoScore = v.Score
		c.VideoGrade = v.Grade
		c.VideoFeedback = v.Feedback
		c.VideoSubmitted = true
		c.VideoLink = v.VideoLink
	}

	out := make([]model.CombinedResult, 0, len(order))
	for _, id := range order {
		c := byStudent[id]
		c.TotalScore = math.Round((c.QuizScore*quizWeight+c.VideoScore*videoWeight)*100) / 100
		c.FinalGrade = util.LetterGrade(c.TotalScore)
		out = append(out, *c)
	}
	return out
}

// SelectTopStudents returns the top percentage of results by total score.
// The sort is stable, so ties keep their aggregation order. Any non-empty
// input selects at least one student; an empty input selects none.
func SelectTopStudents(results []model.CombinedResult, percentage float64) []model.CombinedResult {
	if len(results) == 0 {
		return []model.CombinedResult{}
	}

	ranked := make([]model.CombinedResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalScore > ranked[j].TotalScore
	})

	n := int(math.Floor(float64(len(ranked)) * percentage / 100))
	if n < 1 {
		n = 1
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// ReleaseFinalResults selects the top percentage of students and persists a
// FinalResult for each. The per-student record is created atomically, so
// running a release twice never duplicates results: already released students
// are counted as skipped and not re-notified. A summary report is archived
// after the pass.
func (s *ResultsService) ReleaseFinalResults(ctx context.Context, percentage float64, opts AggregateOptions) (*FinalReleaseSummary, error) {
	combined, err := s.CombinedResults(ctx, opts)
	if err != nil {
		return nil, err
	}
	selected := SelectTopStudents(combined, percentage)

	summary := &FinalReleaseSummary{Selected: len(selected), TopCut: percentage}
	now := time.Now()

	for _, c := range selected {
		final := &model.FinalResult{
			StudentID:  c.StudentID,
			QuizScore:  c.QuizScore,
			VideoScore: c.VideoScore,
			TotalScore: c.TotalScore,
			FinalGrade: c.FinalGrade,
			Selected:   true,
			ReleasedAt: now,
			Status:     "selected",
		}
		if _, err := s.finalRepo.Create(ctx, final); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				summary.Skipped++
				continue
			}
			logger.Log.Error("failed to persist final result",
				zap.String("student_id", c.StudentID), zap.Error(err))
			summary.Errors++
			continue
		}
		summary.Released++

		if student, err := s.studentRepo.FindByID(ctx, c.StudentID); err == nil {
			go s.email.SendFinalSelectionNotification(student.Email, student.Name, c)
		}
	}

	if s.storage != nil {
		if url, err := s.archiveReport(ctx, combined, selected, percentage, now); err != nil {
			logger.Log.Warn("failed to archive selection report", zap.Error(err))
		} else {
			summary.ReportURL = url
		}
	}

	logger.Log.Info("final results released",
		zap.Float64("top_percentage", percentage),
		zap.Int("selected", summary.Selected),
		zap.Int("released", summary.Released),
		zap.Int("skipped", summary.Skipped),
		zap.Int("errors", summary.Errors))
	return summary, nil
}

func (s *ResultsService) archiveReport(ctx context.Context, combined, selected []model.CombinedResult, percentage float64, at time.Time) (string, error) {
	report := map[string]any{
		"generated_at":   at,
		"top_percentage": percentage,
		"total_students": len(combined),
		"selected":       selected,
		"all_results":    combined,
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("reports/selection_%s.json", at.Format("20060102_150405"))
	return s.storage.ArchiveReport(ctx, filename, data)
}

// FinalResults lists persisted final results, for the admin dashboard.
func (s *ResultsService) FinalResults(ctx context.Context) ([]model.FinalResult, error) {
	return s.finalRepo.List(ctx)
}

// StudentFinalResult returns the student's released final result, or
// ErrResultNotFound when the student was not selected or no release has run.
func (s *ResultsService) StudentFinalResult(ctx context.Context, studentID string) (*model.FinalResult, error) {
	final, err := s.finalRepo.FindByStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, util.ErrResultNotFound
		}
		return nil, err
	}
	return final, nil
}
