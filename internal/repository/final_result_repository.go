package repository

import (
	"context"

	"aisb_backend/internal/model"
	"aisb_backend/internal/store"
)

type FinalResultRepository struct {
	Store store.Store
}

func NewFinalResultRepository(st store.Store) *FinalResultRepository {
	return &FinalResultRepository{Store: st}
}

// Create is one-per-student: releasing final results twice must not produce
// duplicate rows, so the insert is guarded on student_id.
func (r *FinalResultRepository) Create(ctx context.Context, result *model.FinalResult) (string, error) {
	id, err := r.Store.CreateUnique(ctx, store.CollectionFinalResults, "student_id", result.StudentID, result)
	if err != nil {
		return "", err
	}
	result.ID = id
	return id, nil
}

func (r *FinalResultRepository) FindByStudent(ctx context.Context, studentID string) (*model.FinalResult, error) {
	var results []model.FinalResult
	if err := r.Store.Query(ctx, store.CollectionFinalResults, "student_id", studentID, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, store.ErrNotFound
	}
	return &results[0], nil
}

func (r *FinalResultRepository) List(ctx context.Context) ([]model.FinalResult, error) {
	var results []model.FinalResult
	err := r.Store.List(ctx, store.CollectionFinalResults, &results)
	return results, err
}
