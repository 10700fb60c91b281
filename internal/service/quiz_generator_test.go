package service

import (
	"context"
	"testing"

	"aisb_backend/internal/model"
	"aisb_backend/pkg/logger"

	"go.uber.org/zap"
)

func init() {
	logger.Log = zap.NewNop()
}

func TestMockGeneratorMCQ(t *testing.T) {
	gen := NewQuizGenerator(nil)

	quiz, err := gen.Generate(context.Background(), "Artificial Intelligence", 5, model.DifficultyMedium, model.QuestionMCQ)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if quiz.TotalQuestions != 5 || len(quiz.Questions) != 5 {
		t.Fatalf("question count = %d/%d, want 5", quiz.TotalQuestions, len(quiz.Questions))
	}
	if quiz.Topic != "Artificial Intelligence" {
		t.Errorf("Topic = %q", quiz.Topic)
	}
	for i, q := range quiz.Questions {
		if q.Number != i+1 {
			t.Errorf("question %d numbered %d", i, q.Number)
		}
		if len(q.Options) != 4 {
			t.Errorf("question %d has %d options, want 4", q.Number, len(q.Options))
		}
		if q.CorrectAnswer == "" {
			t.Errorf("question %d has no correct answer", q.Number)
		}
	}
}

func TestMockGeneratorTrueFalse(t *testing.T) {
	gen := NewQuizGenerator(nil)

	quiz, err := gen.Generate(context.Background(), "ML", 3, model.DifficultyEasy, model.QuestionTrueFalse)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, q := range quiz.Questions {
		if len(q.Options) != 2 {
			t.Errorf("question %d has %d options, want True/False", q.Number, len(q.Options))
		}
		if q.CorrectAnswer != "True" && q.CorrectAnswer != "False" {
			t.Errorf("question %d answer = %q", q.Number, q.CorrectAnswer)
		}
	}
}

func TestMockGeneratorQA(t *testing.T) {
	gen := NewQuizGenerator(nil)

	quiz, err := gen.Generate(context.Background(), "Neural Networks", 2, model.DifficultyHard, model.QuestionQA)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, q := range quiz.Questions {
		if len(q.Options) != 0 {
			t.Errorf("QA question %d should have no options, got %v", q.Number, q.Options)
		}
		if q.CorrectAnswer == "" {
			t.Errorf("QA question %d needs a sample answer", q.Number)
		}
	}
}

func TestParseGeneratedQuizRenumbers(t *testing.T) {
	reply := `{"questions": [
		{"question_number": 7, "question": "Q one", "options": ["A) x","B) y","C) z","D) w"], "correct_answer": "A"},
		{"question_number": 9, "question": "Q two", "options": ["A) x","B) y","C) z","D) w"], "correct_answer": "B"}
	]}`

	quiz, err := parseGeneratedQuiz(reply, "AI", model.DifficultyMedium, model.QuestionMCQ)
	if err != nil {
		t.Fatalf("parseGeneratedQuiz: %v", err)
	}
	if quiz.TotalQuestions != 2 {
		t.Fatalf("TotalQuestions = %d, want 2", quiz.TotalQuestions)
	}
	for i, q := range quiz.Questions {
		if q.Number != i+1 {
			t.Errorf("question %d numbered %d, want renumbered contiguously", i, q.Number)
		}
	}
}

func TestParseGeneratedQuizRejectsEmpty(t *testing.T) {
	if _, err := parseGeneratedQuiz(`{"questions": []}`, "AI", model.DifficultyEasy, model.QuestionMCQ); err == nil {
		t.Fatal("expected error for quiz without questions")
	}
}
