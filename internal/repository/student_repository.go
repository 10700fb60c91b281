package repository

import (
	"context"

	"aisb_backend/internal/model"
	"aisb_backend/internal/store"
)

type StudentRepository struct {
	Store store.Store
}

func NewStudentRepository(st store.Store) *StudentRepository {
	return &StudentRepository{Store: st}
}

func (r *StudentRepository) Create(ctx context.Context, student *model.Student) (string, error) {
	id, err := r.Store.Create(ctx, store.CollectionStudents, student)
	if err != nil {
		return "", err
	}
	student.ID = id
	return id, nil
}

func (r *StudentRepository) FindByID(ctx context.Context, id string) (*model.Student, error) {
	var s model.Student
	if err := r.Store.Get(ctx, store.CollectionStudents, id, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StudentRepository) FindByEmail(ctx context.Context, email string) (*model.Student, error) {
	var students []model.Student
	if err := r.Store.Query(ctx, store.CollectionStudents, "email", email, &students); err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, store.ErrNotFound
	}
	return &students[0], nil
}

func (r *StudentRepository) List(ctx context.Context) ([]model.Student, error) {
	var students []model.Student
	err := r.Store.List(ctx, store.CollectionStudents, &students)
	return students, err
}
