package repository

import (
	"context"
	"time"

	"aisb_backend/internal/model"
	"aisb_backend/internal/store"
)

type VideoRepository struct {
	Store store.Store
}

func NewVideoRepository(st store.Store) *VideoRepository {
	return &VideoRepository{Store: st}
}

// Create enforces the one-submission-per-student invariant at the store level:
// the existence check and the insert are a single atomic operation.
func (r *VideoRepository) Create(ctx context.Context, video *model.VideoSubmission) (string, error) {
	id, err := r.Store.CreateUnique(ctx, store.CollectionVideos, "student_id", video.StudentID, video)
	if err != nil {
		return "", err
	}
	video.ID = id
	return id, nil
}

func (r *VideoRepository) FindByID(ctx context.Context, id string) (*model.VideoSubmission, error) {
	var v model.VideoSubmission
	if err := r.Store.Get(ctx, store.CollectionVideos, id, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VideoRepository) FindByStudent(ctx context.Context, studentID string) (*model.VideoSubmission, error) {
	var videos []model.VideoSubmission
	if err := r.Store.Query(ctx, store.CollectionVideos, "student_id", studentID, &videos); err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, store.ErrNotFound
	}
	return &videos[0], nil
}

func (r *VideoRepository) List(ctx context.Context) ([]model.VideoSubmission, error) {
	var videos []model.VideoSubmission
	err := r.Store.List(ctx, store.CollectionVideos, &videos)
	return videos, err
}

// AttachAnalysis records the analysis outcome and flips the submission to
// analyzed.
func (r *VideoRepository) AttachAnalysis(ctx context.Context, id string, analysis *model.VideoAnalysis, transcript string) error {
	now := time.Now()
	return r.Store.Update(ctx, store.CollectionVideos, id, map[string]any{
		"status":            model.VideoAnalyzed,
		"analyzed_at":       now,
		"transcript":        transcript,
		"video_score":       analysis.ScorePercentage,
		"video_grade":       analysis.Grade,
		"video_feedback":    analysis.OverallFeedback,
		"detailed_analysis": analysis,
	})
}
