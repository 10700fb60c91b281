package repository

import (
	"context"

	"aisb_backend/internal/model"
	"aisb_backend/internal/store"
)

type ResultRepository struct {
	Store store.Store
}

func NewResultRepository(st store.Store) *ResultRepository {
	return &ResultRepository{Store: st}
}

func (r *ResultRepository) Create(ctx context.Context, result *model.QuizResult) (string, error) {
	id, err := r.Store.Create(ctx, store.CollectionResults, result)
	if err != nil {
		return "", err
	}
	result.ID = id
	return id, nil
}

func (r *ResultRepository) FindByID(ctx context.Context, id string) (*model.QuizResult, error) {
	var res model.QuizResult
	if err := r.Store.Get(ctx, store.CollectionResults, id, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ResultRepository) ListByQuiz(ctx context.Context, quizID string) ([]model.QuizResult, error) {
	var results []model.QuizResult
	err := r.Store.Query(ctx, store.CollectionResults, "quiz_id", quizID, &results)
	return results, err
}

func (r *ResultRepository) ListByStudent(ctx context.Context, studentID string) ([]model.QuizResult, error) {
	var results []model.QuizResult
	err := r.Store.Query(ctx, store.CollectionResults, "student_id", studentID, &results)
	return results, err
}

func (r *ResultRepository) List(ctx context.Context) ([]model.QuizResult, error) {
	var results []model.QuizResult
	err := r.Store.List(ctx, store.CollectionResults, &results)
	return results, err
}

func (r *ResultRepository) UpdateStatus(ctx context.Context, id string, status model.ResultStatus) error {
	return r.Store.Update(ctx, store.CollectionResults, id, map[string]any{"status": status})
}
