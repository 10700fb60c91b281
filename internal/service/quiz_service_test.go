package service

import (
	"context"
	"testing"

	"aisb_backend/internal/config"
	"aisb_backend/internal/model"
	"aisb_backend/internal/repository"
	"aisb_backend/internal/store"
)

func testStore(t *testing.T) store.Store {
	t.Helper()
	st, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return st
}

func testQuizService(t *testing.T, st store.Store) (*QuizService, *repository.StudentRepository) {
	t.Helper()
	studentRepo := repository.NewStudentRepository(st)
	email := NewEmailService(config.EmailConfig{}, nil)
	svc := NewQuizService(
		repository.NewQuizRepository(st),
		repository.NewResultRepository(st),
		studentRepo,
		NewQuizGenerator(nil),
		NewQuizGrader(nil),
		email,
		nil,
	)
	return svc, studentRepo
}

func TestSubmitQuizStoresPendingResult(t *testing.T) {
	st := testStore(t)
	svc, studentRepo := testQuizService(t, st)
	ctx := context.Background()

	student := &model.Student{Name: "Alice", Email: "alice@example.com"}
	if _, err := studentRepo.Create(ctx, student); err != nil {
		t.Fatalf("create student: %v", err)
	}

	quiz, err := svc.CreateQuiz(ctx, "AI", 4, model.DifficultyEasy, model.QuestionMCQ, "admin")
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}

	// Mock MCQ answers are always "A".
	result, err := svc.SubmitQuiz(ctx, student.ID, quiz.ID, []string{"A", "A", "B", "B"})
	if err != nil {
		t.Fatalf("SubmitQuiz: %v", err)
	}

	if result.Status != model.ResultPending {
		t.Errorf("Status = %q, want pending", result.Status)
	}
	if result.ScorePercentage != 50.0 {
		t.Errorf("ScorePercentage = %v, want 50.0", result.ScorePercentage)
	}

	// Pending results surface as receipts without scores.
	views, err := svc.StudentResults(ctx, student.ID)
	if err != nil {
		t.Fatalf("StudentResults: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("len = %d, want 1", len(views))
	}
	if _, hasScore := views[0]["score_percentage"]; hasScore {
		t.Error("pending result leaked its score")
	}
}

func TestSubmitQuizUnknownQuiz(t *testing.T) {
	svc, _ := testQuizService(t, testStore(t))

	if _, err := svc.SubmitQuiz(context.Background(), "student", "missing", []string{"A"}); err == nil {
		t.Fatal("expected error for unknown quiz")
	}
}

func TestReleaseResults(t *testing.T) {
	st := testStore(t)
	svc, studentRepo := testQuizService(t, st)
	ctx := context.Background()

	alice := &model.Student{Name: "Alice", Email: "alice@example.com"}
	bob := &model.Student{Name: "Bob", Email: "bob@example.com"}
	studentRepo.Create(ctx, alice)
	studentRepo.Create(ctx, bob)

	quiz, _ := svc.CreateQuiz(ctx, "AI", 2, model.DifficultyEasy, model.QuestionMCQ, "admin")
	svc.SubmitQuiz(ctx, alice.ID, quiz.ID, []string{"A", "A"}) // 100%
	svc.SubmitQuiz(ctx, bob.ID, quiz.ID, []string{"B", "B"})   // 0%

	minScore := 60.0
	summary, err := svc.ReleaseResults(ctx, quiz.ID, &minScore)
	if err != nil {
		t.Fatalf("ReleaseResults: %v", err)
	}
	if summary.Released != 1 || summary.Skipped != 1 || summary.Errors != 0 {
		t.Fatalf("summary = %+v, want 1 released, 1 skipped", summary)
	}

	// A second pass with no filter picks up the remaining pending result.
	summary, err = svc.ReleaseResults(ctx, quiz.ID, nil)
	if err != nil {
		t.Fatalf("ReleaseResults: %v", err)
	}
	if summary.Released != 1 || summary.Skipped != 0 {
		t.Fatalf("second pass summary = %+v, want the skipped result released", summary)
	}

	// Released results expose their scores.
	views, _ := svc.StudentResults(ctx, alice.ID)
	if views[0]["score_percentage"] != 100.0 {
		t.Errorf("released score = %v, want 100.0", views[0]["score_percentage"])
	}
}
