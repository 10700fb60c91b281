package service

import (
	"context"
	"errors"
	"time"

	"aisb_backend/internal/model"
	"aisb_backend/internal/repository"
	"aisb_backend/internal/store"
	"aisb_backend/internal/util"
	"aisb_backend/pkg/logger"
	"aisb_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const videoSubmitLockTTL = 30 * time.Second

type VideoService struct {
	videoRepo   *repository.VideoRepository
	studentRepo *repository.StudentRepository
	analyzer    VideoAnalyzer
	email       *EmailService
	redis       *redis.Client
}

func NewVideoService(
	videoRepo *repository.VideoRepository,
	studentRepo *repository.StudentRepository,
	analyzer VideoAnalyzer,
	email *EmailService,
	redisClient *redis.Client,
) *VideoService {
	return &VideoService{
		videoRepo:   videoRepo,
		studentRepo: studentRepo,
		analyzer:    analyzer,
		email:       email,
		redis:       redisClient,
	}
}

// SubmitVideo validates the Drive link and records the submission. Each
// student gets exactly one submission; the store enforces that atomically,
// and a short redis lock shields it from rapid double-clicks when redis is
// configured.
func (s *VideoService) SubmitVideo(ctx context.Context, studentID, videoLink, topic string) (*model.VideoSubmission, error) {
	validation := ValidateDriveLink(videoLink)
	if !validation.Valid {
		logger.Log.Warn("rejected video link",
			zap.String("student_id", studentID), zap.String("reason", validation.Message))
		return nil, util.ErrInvalidVideoLink
	}

	if s.redis != nil {
		lockKey := "aisb:video_submit:" + studentID
		ok, err := s.redis.SetNX(ctx, lockKey, 1, videoSubmitLockTTL).Result()
		if err == nil {
			if !ok {
				return nil, util.ErrVideoAlreadySubmitted
			}
			defer s.redis.Del(ctx, lockKey)
		}
	}

	video := &model.VideoSubmission{
		StudentID:   studentID,
		VideoLink:   videoLink,
		Topic:       topic,
		FileID:      validation.FileID,
		DirectLink:  validation.DirectLink,
		SubmittedAt: time.Now(),
		Status:      model.VideoSubmitted,
	}
	if _, err := s.videoRepo.Create(ctx, video); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, util.ErrVideoAlreadySubmitted
		}
		return nil, err
	}

	if student, err := s.studentRepo.FindByID(ctx, studentID); err == nil {
		go s.email.SendVideoSubmissionConfirmation(student.Email, video.ID)
	}

	logger.Log.Info("video submitted",
		zap.String("student_id", studentID), zap.String("video_id", video.ID))
	return video, nil
}

// AnalyzeVideo scores a submission and attaches the analysis. Analyzing an
// already analyzed submission is a no-op.
func (s *VideoService) AnalyzeVideo(ctx context.Context, videoID string) (*model.VideoSubmission, error) {
	video, err := s.videoRepo.FindByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, util.ErrVideoNotFound
		}
		return nil, err
	}
	if video.Status == model.VideoAnalyzed {
		return video, nil
	}

	transcript := s.analyzer.ExtractTranscript(video.VideoLink)
	analysis := s.analyzer.Analyze(ctx, transcript, video.Topic)

	if err := s.videoRepo.AttachAnalysis(ctx, video.ID, analysis, transcript); err != nil {
		return nil, err
	}

	logger.Log.Info("video analyzed",
		zap.String("video_id", video.ID),
		zap.Float64("score", analysis.ScorePercentage),
		zap.String("grade", analysis.Grade))
	return s.videoRepo.FindByID(ctx, video.ID)
}

// AnalyzePending walks submissions still awaiting analysis and processes
// them. It is invoked by the background analyzer loop and returns how many
// submissions it analyzed.
func (s *VideoService) AnalyzePending(ctx context.Context) int {
	videos, err := s.videoRepo.List(ctx)
	if err != nil {
		logger.Log.Error("failed to list video submissions", zap.Error(err))
		return 0
	}

	analyzed := 0
	for _, v := range videos {
		if v.Status != model.VideoSubmitted {
			continue
		}
		if _, err := s.AnalyzeVideo(ctx, v.ID); err != nil {
			logger.Log.Error("background analysis failed",
				zap.String("video_id", v.ID), zap.Error(err))
			continue
		}
		monitoring.VideosAnalyzed.Inc()
		analyzed++
	}
	return analyzed
}

// StudentVideoStatus returns the student's submission, or ErrVideoNotFound
// when nothing has been submitted yet.
func (s *VideoService) StudentVideoStatus(ctx context.Context, studentID string) (*model.VideoSubmission, error) {
	video, err := s.videoRepo.FindByStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, util.ErrVideoNotFound
		}
		return nil, err
	}
	return video, nil
}

// ListVideos returns every submission, for the admin dashboard.
func (s *VideoService) ListVideos(ctx context.Context) ([]model.VideoSubmission, error) {
	return s.videoRepo.List(ctx)
}
