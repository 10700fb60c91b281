package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"aisb_backend/internal/model"
	"aisb_backend/internal/repository"
	"aisb_backend/internal/store"
	"aisb_backend/internal/util"
	"aisb_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	quizListCacheKey = "aisb:quizzes"
	quizListCacheTTL = 5 * time.Minute
)

// ReleaseSummary reports a release pass over pending results.
type ReleaseSummary struct {
	Released int `json:"released"`
	Skipped  int `json:"skipped"`
	Errors   int `json:"errors"`
}

type QuizService struct {
	quizRepo    *repository.QuizRepository
	resultRepo  *repository.ResultRepository
	studentRepo *repository.StudentRepository
	generator   QuizGenerator
	grader      QuizGrader
	email       *EmailService
	redis       *redis.Client
}

func NewQuizService(
	quizRepo *repository.QuizRepository,
	resultRepo *repository.ResultRepository,
	studentRepo *repository.StudentRepository,
	generator QuizGenerator,
	grader QuizGrader,
	email *EmailService,
	redisClient *redis.Client,
) *QuizService {
	return &QuizService{
		quizRepo:    quizRepo,
		resultRepo:  resultRepo,
		studentRepo: studentRepo,
		generator:   generator,
		grader:      grader,
		email:       email,
		redis:       redisClient,
	}
}

// CreateQuiz generates a quiz for the given parameters and persists it.
func (s *QuizService) CreateQuiz(ctx context.Context, topic string, numQuestions int, difficulty model.Difficulty, questionType model.QuestionType, createdBy string) (*model.Quiz, error) {
	quiz, err := s.generator.Generate(ctx, topic, numQuestions, difficulty, questionType)
	if err != nil {
		return nil, err
	}
	quiz.CreatedBy = createdBy
	quiz.CreatedAt = time.Now()

	if _, err := s.quizRepo.Create(ctx, quiz); err != nil {
		return nil, err
	}
	s.invalidateQuizCache(ctx)

	logger.Log.Info("quiz created",
		zap.String("quiz_id", quiz.ID),
		zap.String("topic", quiz.Topic),
		zap.Int("questions", quiz.TotalQuestions))
	return quiz, nil
}

// ListQuizzes returns all quizzes, served from the redis cache when one is
// configured. Cache failures fall through to the store.
func (s *QuizService) ListQuizzes(ctx context.Context) ([]model.Quiz, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, quizListCacheKey).Result(); err == nil {
			var quizzes []model.Quiz
			if err := json.Unmarshal([]byte(cached), &quizzes); err == nil {
				return quizzes, nil
			}
		}
	}

	quizzes, err := s.quizRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(quizzes); err == nil {
			if err := s.redis.Set(ctx, quizListCacheKey, data, quizListCacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache quiz list", zap.Error(err))
			}
		}
	}
	return quizzes, nil
}

func (s *QuizService) invalidateQuizCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, quizListCacheKey).Err(); err != nil {
		logger.Log.Warn("failed to invalidate quiz cache", zap.Error(err))
	}
}

func (s *QuizService) GetQuiz(ctx context.Context, id string) (*model.Quiz, error) {
	quiz, err := s.quizRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return quiz, nil
}

// SubmitQuiz grades the answers and stores the result with status pending.
// The score is not shown to the student until an administrator releases it.
func (s *QuizService) SubmitQuiz(ctx context.Context, studentID, quizID string, answers []string) (*model.QuizResult, error) {
	quiz, err := s.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	correct := make([]string, len(quiz.Questions))
	for i, q := range quiz.Questions {
		correct[i] = q.CorrectAnswer
	}

	report := s.grader.Grade(ctx, answers, correct, quiz.Questions, quiz.QuestionType)

	result := &model.QuizResult{
		StudentID:       studentID,
		QuizID:          quizID,
		Answers:         answers,
		TotalQuestions:  report.TotalQuestions,
		CorrectAnswers:  report.CorrectAnswers,
		ScorePercentage: report.ScorePercentage,
		Grade:           report.Grade,
		QuestionResults: report.QuestionResults,
		OverallFeedback: report.OverallFeedback,
		SubmittedAt:     time.Now(),
		Status:          model.ResultPending,
	}
	if _, err := s.resultRepo.Create(ctx, result); err != nil {
		return nil, err
	}

	if student, err := s.studentRepo.FindByID(ctx, studentID); err == nil {
		go s.email.SendQuizSubmissionConfirmation(student.Email, student.Name, quiz.Topic, result.SubmittedAt)
	}

	logger.Log.Info("quiz submitted",
		zap.String("student_id", studentID),
		zap.String("quiz_id", quizID),
		zap.Float64("score", result.ScorePercentage))
	return result, nil
}

// ReleaseResults flips pending results for a quiz to released and notifies
// the students. When minScore is non-nil, only results at or above it are
// released; the rest stay pending and are counted as skipped. Notification
// failures do not roll back the release.
func (s *QuizService) ReleaseResults(ctx context.Context, quizID string, minScore *float64) (*ReleaseSummary, error) {
	quiz, err := s.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	results, err := s.resultRepo.ListByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	summary := &ReleaseSummary{}
	for _, result := range results {
		if result.Status != model.ResultPending {
			continue
		}
		if minScore != nil && result.ScorePercentage < *minScore {
			summary.Skipped++
			continue
		}
		if err := s.resultRepo.UpdateStatus(ctx, result.ID, model.ResultReleased); err != nil {
			logger.Log.Error("failed to release result",
				zap.String("result_id", result.ID), zap.Error(err))
			summary.Errors++
			continue
		}
		summary.Released++

		if student, err := s.studentRepo.FindByID(ctx, result.StudentID); err == nil {
			go s.email.SendQuizResultNotification(student.Email, student.Name, quiz.Topic,
				result.ScorePercentage, result.Grade, result.OverallFeedback)
		}
	}

	logger.Log.Info("quiz results released",
		zap.String("quiz_id", quizID),
		zap.Int("released", summary.Released),
		zap.Int("skipped", summary.Skipped),
		zap.Int("errors", summary.Errors))
	return summary, nil
}

// StudentResults returns the student's quiz results. Pending results are
// reduced to a submission receipt so scores stay hidden until release.
func (s *QuizService) StudentResults(ctx context.Context, studentID string) ([]map[string]any, error) {
	results, err := s.resultRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(results))
	for _, r := range results {
		if r.Status == model.ResultReleased {
			out = append(out, map[string]any{
				"result_id":        r.ID,
				"quiz_id":          r.QuizID,
				"status":           r.Status,
				"submitted_at":     r.SubmittedAt,
				"score_percentage": r.ScorePercentage,
				"grade":            r.Grade,
				"correct_answers":  r.CorrectAnswers,
				"total_questions":  r.TotalQuestions,
				"question_results": r.QuestionResults,
				"overall_feedback": r.OverallFeedback,
			})
			continue
		}
		out = append(out, map[string]any{
			"result_id":    r.ID,
			"quiz_id":      r.QuizID,
			"status":       r.Status,
			"submitted_at": r.SubmittedAt,
			"message":      "Results will be available once released by the administrator",
		})
	}
	return out, nil
}

// QuizResults returns all results for a quiz, for the admin dashboard.
func (s *QuizService) QuizResults(ctx context.Context, quizID string) ([]model.QuizResult, error) {
	if _, err := s.GetQuiz(ctx, quizID); err != nil {
		return nil, err
	}
	return s.resultRepo.ListByQuiz(ctx, quizID)
}
