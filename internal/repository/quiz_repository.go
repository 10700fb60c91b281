package repository

import (
	"context"

	"aisb_backend/internal/model"
	"aisb_backend/internal/store"
)

type QuizRepository struct {
	Store store.Store
}

func NewQuizRepository(st store.Store) *QuizRepository {
	return &QuizRepository{Store: st}
}

func (r *QuizRepository) Create(ctx context.Context, quiz *model.Quiz) (string, error) {
	id, err := r.Store.Create(ctx, store.CollectionQuizzes, quiz)
	if err != nil {
		return "", err
	}
	quiz.ID = id
	return id, nil
}

func (r *QuizRepository) FindByID(ctx context.Context, id string) (*model.Quiz, error) {
	var q model.Quiz
	if err := r.Store.Get(ctx, store.CollectionQuizzes, id, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuizRepository) List(ctx context.Context) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.Store.List(ctx, store.CollectionQuizzes, &quizzes)
	return quizzes, err
}
