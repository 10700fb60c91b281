package service

import (
	"context"
	"testing"

	"aisb_backend/internal/config"
	"aisb_backend/internal/model"
	"aisb_backend/internal/repository"
	"aisb_backend/internal/store"
)

func TestCombineResultsQuizOnly(t *testing.T) {
	quizResults := []model.QuizResult{
		{StudentID: "s1", ScorePercentage: 80, Grade: "B"},
	}

	combined := CombineResults(quizResults, nil, AggregateOptions{})
	if len(combined) != 1 {
		t.Fatalf("len = %d, want 1", len(combined))
	}

	c := combined[0]
	if !c.QuizSubmitted || c.VideoSubmitted {
		t.Fatalf("submission flags wrong: %+v", c)
	}
	if c.TotalScore != 48.0 {
		t.Fatalf("TotalScore = %v, want 48.0 (80 * 0.6)", c.TotalScore)
	}
	if c.FinalGrade != "F" {
		t.Fatalf("FinalGrade = %q, want F", c.FinalGrade)
	}
}

func TestCombineResultsBothComponents(t *testing.T) {
	quizResults := []model.QuizResult{
		{StudentID: "s1", ScorePercentage: 80, Grade: "B"},
	}
	videos := []model.VideoSubmission{
		{StudentID: "s1", Score: 90, Grade: "A", VideoLink: "https://drive.google.com/file/d/x/view"},
	}

	combined := CombineResults(quizResults, videos, AggregateOptions{})
	c := combined[0]
	if c.TotalScore != 84.0 {
		t.Fatalf("TotalScore = %v, want 84.0 (80*0.6 + 90*0.4)", c.TotalScore)
	}
	if c.FinalGrade != "B" {
		t.Fatalf("FinalGrade = %q, want B", c.FinalGrade)
	}
	if !c.VideoSubmitted || c.VideoLink == "" {
		t.Fatalf("video fields not carried: %+v", c)
	}
}

func TestCombineResultsVideoOnlyPolicy(t *testing.T) {
	videos := []model.VideoSubmission{
		{StudentID: "s2", Score: 75, Grade: "C"},
	}

	combined := CombineResults(nil, videos, AggregateOptions{})
	if len(combined) != 0 {
		t.Fatalf("video-only student included without IncludeVideoOnly: %+v", combined)
	}

	combined = CombineResults(nil, videos, AggregateOptions{IncludeVideoOnly: true})
	if len(combined) != 1 {
		t.Fatalf("len = %d, want 1", len(combined))
	}
	if combined[0].TotalScore != 30.0 {
		t.Fatalf("TotalScore = %v, want 30.0 (75 * 0.4)", combined[0].TotalScore)
	}
	if combined[0].QuizSubmitted {
		t.Fatal("QuizSubmitted should be false")
	}
}

func TestCombineResultsLastQuizResultWins(t *testing.T) {
	quizResults := []model.QuizResult{
		{StudentID: "s1", ScorePercentage: 40, Grade: "F"},
		{StudentID: "s1", ScorePercentage: 90, Grade: "A"},
	}

	combined := CombineResults(quizResults, nil, AggregateOptions{})
	if len(combined) != 1 {
		t.Fatalf("len = %d, want 1", len(combined))
	}
	if combined[0].QuizScore != 90 {
		t.Fatalf("QuizScore = %v, want the later result (90)", combined[0].QuizScore)
	}
}

func rankedResults(scores ...float64) []model.CombinedResult {
	out := make([]model.CombinedResult, len(scores))
	for i, s := range scores {
		out[i] = model.CombinedResult{StudentID: string(rune('a' + i)), TotalScore: s}
	}
	return out
}

func TestSelectTopStudents(t *testing.T) {
	results := rankedResults(10, 90, 50, 70, 30, 80, 60, 20, 40, 100)

	top := SelectTopStudents(results, 20)
	if len(top) != 2 {
		t.Fatalf("len = %d, want 2 (20%% of 10)", len(top))
	}
	if top[0].TotalScore != 100 || top[1].TotalScore != 90 {
		t.Fatalf("wrong ranking: %v, %v", top[0].TotalScore, top[1].TotalScore)
	}
}

func TestSelectTopStudentsMinimumOne(t *testing.T) {
	top := SelectTopStudents(rankedResults(10, 90, 50, 70, 30, 80, 60, 20, 40, 100), 0.5)
	if len(top) != 1 {
		t.Fatalf("len = %d, want floor below 1 raised to 1", len(top))
	}
	if top[0].TotalScore != 100 {
		t.Fatalf("top score = %v, want 100", top[0].TotalScore)
	}
}

func TestSelectTopStudentsEmpty(t *testing.T) {
	if top := SelectTopStudents(nil, 50); len(top) != 0 {
		t.Fatalf("empty input selected %d students", len(top))
	}
}

func TestSelectTopStudentsStableOnTies(t *testing.T) {
	results := []model.CombinedResult{
		{StudentID: "first", TotalScore: 80},
		{StudentID: "second", TotalScore: 80},
		{StudentID: "third", TotalScore: 70},
	}

	top := SelectTopStudents(results, 100)
	if top[0].StudentID != "first" || top[1].StudentID != "second" {
		t.Fatalf("tie order not preserved: %v", []string{top[0].StudentID, top[1].StudentID})
	}
}

func TestSelectTopStudentsDoesNotMutateInput(t *testing.T) {
	results := rankedResults(10, 90)
	SelectTopStudents(results, 100)
	if results[0].TotalScore != 10 {
		t.Fatal("input slice was reordered")
	}
}

func testResultsService(t *testing.T, st store.Store) (*ResultsService, *repository.StudentRepository, *repository.ResultRepository) {
	t.Helper()
	studentRepo := repository.NewStudentRepository(st)
	resultRepo := repository.NewResultRepository(st)
	svc := NewResultsService(
		resultRepo,
		repository.NewVideoRepository(st),
		studentRepo,
		repository.NewFinalResultRepository(st),
		NewEmailService(config.EmailConfig{}, nil),
		nil,
	)
	return svc, studentRepo, resultRepo
}

func TestCombinedResultsStableOnFileStore(t *testing.T) {
	st := testStore(t)
	svc, studentRepo, resultRepo := testResultsService(t, st)
	ctx := context.Background()

	student := &model.Student{Name: "alice", Email: "alice@example.com"}
	studentRepo.Create(ctx, student)
	resultRepo.Create(ctx, &model.QuizResult{StudentID: student.ID, ScorePercentage: 40, Grade: "F"})
	resultRepo.Create(ctx, &model.QuizResult{StudentID: student.ID, ScorePercentage: 90, Grade: "A"})

	// The later result must win on every pass over an unchanged store.
	for i := 0; i < 50; i++ {
		combined, err := svc.CombinedResults(ctx, AggregateOptions{})
		if err != nil {
			t.Fatalf("CombinedResults: %v", err)
		}
		if len(combined) != 1 {
			t.Fatalf("combined = %d rows, want 1", len(combined))
		}
		if combined[0].QuizScore != 90 {
			t.Fatalf("QuizScore = %v on pass %d, want 90 (last submitted result)", combined[0].QuizScore, i)
		}
	}
}

func TestReleaseFinalResultsIdempotent(t *testing.T) {
	st := testStore(t)
	svc, studentRepo, resultRepo := testResultsService(t, st)
	ctx := context.Background()

	scores := map[string]float64{"alice": 95, "bob": 70, "carol": 40}
	for name, score := range scores {
		student := &model.Student{Name: name, Email: name + "@example.com"}
		studentRepo.Create(ctx, student)
		resultRepo.Create(ctx, &model.QuizResult{
			StudentID: student.ID, ScorePercentage: score, Grade: "X",
		})
	}

	summary, err := svc.ReleaseFinalResults(ctx, 40, AggregateOptions{})
	if err != nil {
		t.Fatalf("ReleaseFinalResults: %v", err)
	}
	if summary.Selected != 1 || summary.Released != 1 {
		t.Fatalf("summary = %+v, want 1 selected and released (40%% of 3 floors to 1)", summary)
	}

	// Re-running the same release must not duplicate anything.
	summary, err = svc.ReleaseFinalResults(ctx, 40, AggregateOptions{})
	if err != nil {
		t.Fatalf("second ReleaseFinalResults: %v", err)
	}
	if summary.Released != 0 || summary.Skipped != 1 {
		t.Fatalf("second summary = %+v, want 0 released, 1 skipped", summary)
	}

	finals, err := svc.FinalResults(ctx)
	if err != nil {
		t.Fatalf("FinalResults: %v", err)
	}
	if len(finals) != 1 {
		t.Fatalf("persisted finals = %d, want 1", len(finals))
	}
	if finals[0].TotalScore != 57.0 {
		t.Errorf("TotalScore = %v, want 57.0 (95 * 0.6)", finals[0].TotalScore)
	}
	if finals[0].Status != "selected" {
		t.Errorf("Status = %q, want %q", finals[0].Status, "selected")
	}

	// A wider release adds the next student without touching the first.
	summary, err = svc.ReleaseFinalResults(ctx, 70, AggregateOptions{})
	if err != nil {
		t.Fatalf("wider ReleaseFinalResults: %v", err)
	}
	if summary.Released != 1 || summary.Skipped != 1 {
		t.Fatalf("wider summary = %+v, want 1 new release, 1 skipped", summary)
	}
}
