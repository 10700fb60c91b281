package service

import (
	"context"
	"errors"
	"time"

	"aisb_backend/internal/config"
	"aisb_backend/internal/model"
	"aisb_backend/internal/repository"
	"aisb_backend/internal/store"
	"aisb_backend/internal/util"
	"aisb_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	studentRepo *repository.StudentRepository
	email       *EmailService
	config      *config.Config
}

func NewAuthService(studentRepo *repository.StudentRepository, email *EmailService, cfg *config.Config) *AuthService {
	return &AuthService{studentRepo: studentRepo, email: email, config: cfg}
}

// Register creates a student account. The email address is the login
// identity and must be unique.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*model.Student, error) {
	_, err := s.studentRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	student := &model.Student{
		Name:         name,
		Email:        email,
		Password:     string(hashed),
		RegisteredAt: time.Now(),
		Status:       model.StudentActive,
	}
	if _, err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	go s.email.SendRegistrationConfirmation(student.Email, student.Name)

	logger.Log.Info("student registered",
		zap.String("student_id", student.ID), zap.String("email", student.Email))
	return student, nil
}

// Login verifies the credentials and issues a student token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.Student, error) {
	student, err := s.studentRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil, util.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateStudentJWT(student, s.config.JWT.Secret, s.config.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, student, nil
}

// AdminLogin checks the configured administrator credentials and issues an
// admin token.
func (s *AuthService) AdminLogin(username, password string) (string, error) {
	if username != s.config.Admin.Username || password != s.config.Admin.Password {
		return "", util.ErrInvalidCredentials
	}
	return util.GenerateAdminJWT(username, s.config.JWT.Secret, s.config.JWT.ExpireTime)
}

// GetStudent fetches a student profile by id.
func (s *AuthService) GetStudent(ctx context.Context, id string) (*model.Student, error) {
	student, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, err
	}
	return student, nil
}
