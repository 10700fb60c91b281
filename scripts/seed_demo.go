// Seeds demo data for local development: three students, a sample quiz with
// graded submissions and an analyzed video per student.
//
// Usage: go run scripts/seed_demo.go
package main

import (
	"context"
	"fmt"
	"log"

	"aisb_backend/internal/config"
	"aisb_backend/internal/model"
	"aisb_backend/internal/repository"
	"aisb_backend/internal/service"
	"aisb_backend/internal/store"
	"aisb_backend/pkg/logger"
)

var demoStudents = []struct {
	Name     string
	Email    string
	Password string
	Answers  []string
	Video    string
}{
	{"Alice Johnson", "alice@example.com", "password123", []string{"A", "A", "A", "A", "A"}, "https://drive.google.com/file/d/demo-alice-001/view"},
	{"Bob Smith", "bob@example.com", "password123", []string{"A", "B", "A", "C", "A"}, "https://drive.google.com/file/d/demo-bob-002/view"},
	{"Carol Davis", "carol@example.com", "password123", []string{"B", "B", "C", "C", "D"}, "https://drive.google.com/file/d/demo-carol-003/view"},
}

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.InitLogger(cfg)

	st, err := store.NewFileStore(cfg.Store.LocalPath)
	if err != nil {
		log.Fatalf("Failed to open local store: %v", err)
	}

	ctx := context.Background()

	studentRepo := repository.NewStudentRepository(st)
	quizRepo := repository.NewQuizRepository(st)
	resultRepo := repository.NewResultRepository(st)
	videoRepo := repository.NewVideoRepository(st)

	email := service.NewEmailService(cfg.Email, nil)
	auth := service.NewAuthService(studentRepo, email, cfg)
	quizSvc := service.NewQuizService(quizRepo, resultRepo, studentRepo,
		service.NewQuizGenerator(nil), service.NewQuizGrader(nil), email, nil)
	videoSvc := service.NewVideoService(videoRepo, studentRepo,
		service.NewVideoAnalyzer(nil), email, nil)

	quiz, err := quizSvc.CreateQuiz(ctx, "Artificial Intelligence Fundamentals", 5,
		model.DifficultyMedium, model.QuestionMCQ, "seed")
	if err != nil {
		log.Fatalf("Failed to create quiz: %v", err)
	}
	fmt.Printf("Created quiz %s (%s)\n", quiz.ID, quiz.Topic)

	for _, d := range demoStudents {
		student, err := auth.Register(ctx, d.Name, d.Email, d.Password)
		if err != nil {
			log.Printf("Skipping %s: %v", d.Email, err)
			continue
		}

		result, err := quizSvc.SubmitQuiz(ctx, student.ID, quiz.ID, d.Answers)
		if err != nil {
			log.Fatalf("Failed to submit quiz for %s: %v", d.Email, err)
		}

		video, err := videoSvc.SubmitVideo(ctx, student.ID, d.Video, quiz.Topic)
		if err != nil {
			log.Fatalf("Failed to submit video for %s: %v", d.Email, err)
		}
		if _, err := videoSvc.AnalyzeVideo(ctx, video.ID); err != nil {
			log.Fatalf("Failed to analyze video for %s: %v", d.Email, err)
		}

		fmt.Printf("Seeded %s: quiz %.1f%%, video submitted\n", d.Email, result.ScorePercentage)
	}

	fmt.Println("Demo data ready")
}
