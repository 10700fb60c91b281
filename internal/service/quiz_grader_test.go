package service

import (
	"testing"

	"aisb_backend/internal/model"
)

func questionsOf(n int) []model.Question {
	qs := make([]model.Question, n)
	for i := range qs {
		qs[i] = model.Question{Number: i + 1, Text: "q"}
	}
	return qs
}

func TestGradeAnswersHalfCorrect(t *testing.T) {
	report := GradeAnswers([]string{"A", "B"}, []string{"A", "C"}, questionsOf(2))

	if report.CorrectAnswers != 1 {
		t.Fatalf("CorrectAnswers = %d, want 1", report.CorrectAnswers)
	}
	if report.ScorePercentage != 50.0 {
		t.Fatalf("ScorePercentage = %v, want 50.0", report.ScorePercentage)
	}
	if report.Grade != "F" {
		t.Fatalf("Grade = %q, want F", report.Grade)
	}
	if !report.QuestionResults[0].IsCorrect || report.QuestionResults[1].IsCorrect {
		t.Fatalf("unexpected per-question outcomes: %+v", report.QuestionResults)
	}
	if report.QuestionResults[0].Feedback != "Correct!" {
		t.Errorf("correct feedback = %q", report.QuestionResults[0].Feedback)
	}
	if report.QuestionResults[1].Feedback != "Incorrect. The correct answer is: C" {
		t.Errorf("incorrect feedback = %q", report.QuestionResults[1].Feedback)
	}
}

func TestGradeAnswersMatchingIgnoresCaseAndWhitespace(t *testing.T) {
	report := GradeAnswers([]string{"  a "}, []string{"A"}, questionsOf(1))
	if report.CorrectAnswers != 1 {
		t.Fatalf("expected ' a ' to match 'A', got %+v", report.QuestionResults[0])
	}
	if report.ScorePercentage != 100.0 {
		t.Fatalf("ScorePercentage = %v, want 100.0", report.ScorePercentage)
	}
}

func TestGradeAnswersPadsMissingAnswers(t *testing.T) {
	report := GradeAnswers([]string{"A"}, []string{"A", "B", "C"}, questionsOf(3))

	if report.TotalQuestions != 3 {
		t.Fatalf("TotalQuestions = %d, want 3", report.TotalQuestions)
	}
	if report.CorrectAnswers != 1 {
		t.Fatalf("CorrectAnswers = %d, want 1", report.CorrectAnswers)
	}
	for i := 1; i < 3; i++ {
		qr := report.QuestionResults[i]
		if qr.StudentAnswer != "" || qr.IsCorrect {
			t.Errorf("question %d: expected padded incorrect answer, got %+v", i+1, qr)
		}
	}
}

func TestGradeAnswersNoQuestions(t *testing.T) {
	report := GradeAnswers(nil, nil, nil)

	if report.ScorePercentage != 0 {
		t.Fatalf("ScorePercentage = %v, want 0", report.ScorePercentage)
	}
	if report.Grade != "F" {
		t.Fatalf("Grade = %q, want F", report.Grade)
	}
	if len(report.QuestionResults) != 0 {
		t.Fatalf("QuestionResults = %v, want empty", report.QuestionResults)
	}
}

func TestGradeAnswersThirdRounding(t *testing.T) {
	report := GradeAnswers([]string{"A", "X", "X"}, []string{"A", "B", "C"}, questionsOf(3))
	if report.ScorePercentage != 33.33 {
		t.Fatalf("ScorePercentage = %v, want 33.33", report.ScorePercentage)
	}
}
