package service

import (
	"context"
	"errors"
	"testing"

	"aisb_backend/internal/config"
	"aisb_backend/internal/model"
	"aisb_backend/internal/repository"
	"aisb_backend/internal/store"
	"aisb_backend/internal/util"
)

func testVideoService(t *testing.T, st store.Store) (*VideoService, *repository.StudentRepository) {
	t.Helper()
	studentRepo := repository.NewStudentRepository(st)
	svc := NewVideoService(
		repository.NewVideoRepository(st),
		studentRepo,
		NewVideoAnalyzer(nil),
		NewEmailService(config.EmailConfig{}, nil),
		nil,
	)
	return svc, studentRepo
}

func TestSubmitVideoRejectsBadLink(t *testing.T) {
	svc, _ := testVideoService(t, testStore(t))

	_, err := svc.SubmitVideo(context.Background(), "s1", "https://example.com/video", "AI")
	if !errors.Is(err, util.ErrInvalidVideoLink) {
		t.Fatalf("err = %v, want ErrInvalidVideoLink", err)
	}
}

func TestSubmitVideoOncePerStudent(t *testing.T) {
	st := testStore(t)
	svc, studentRepo := testVideoService(t, st)
	ctx := context.Background()

	student := &model.Student{Name: "Alice", Email: "alice@example.com"}
	studentRepo.Create(ctx, student)

	link := "https://drive.google.com/file/d/FIRST123/view"
	video, err := svc.SubmitVideo(ctx, student.ID, link, "AI")
	if err != nil {
		t.Fatalf("SubmitVideo: %v", err)
	}
	if video.Status != model.VideoSubmitted {
		t.Errorf("Status = %q, want submitted", video.Status)
	}
	if video.FileID != "FIRST123" {
		t.Errorf("FileID = %q, want FIRST123", video.FileID)
	}

	_, err = svc.SubmitVideo(ctx, student.ID, "https://drive.google.com/file/d/SECOND456/view", "AI")
	if !errors.Is(err, util.ErrVideoAlreadySubmitted) {
		t.Fatalf("second submission err = %v, want ErrVideoAlreadySubmitted", err)
	}
}

func TestAnalyzeVideoIdempotent(t *testing.T) {
	st := testStore(t)
	svc, studentRepo := testVideoService(t, st)
	ctx := context.Background()

	student := &model.Student{Name: "Alice", Email: "alice@example.com"}
	studentRepo.Create(ctx, student)

	video, err := svc.SubmitVideo(ctx, student.ID, "https://drive.google.com/file/d/ABC/view", "AI")
	if err != nil {
		t.Fatalf("SubmitVideo: %v", err)
	}

	analyzed, err := svc.AnalyzeVideo(ctx, video.ID)
	if err != nil {
		t.Fatalf("AnalyzeVideo: %v", err)
	}
	if analyzed.Status != model.VideoAnalyzed {
		t.Fatalf("Status = %q, want analyzed", analyzed.Status)
	}
	if analyzed.Score <= 0 || analyzed.Score > 100 {
		t.Fatalf("Score = %v, want in (0, 100]", analyzed.Score)
	}
	if analyzed.Analysis == nil {
		t.Fatal("detailed analysis not attached")
	}
	if analyzed.AnalyzedAt == nil {
		t.Fatal("analyzed_at not set")
	}

	// A second run keeps the stored result.
	again, err := svc.AnalyzeVideo(ctx, video.ID)
	if err != nil {
		t.Fatalf("second AnalyzeVideo: %v", err)
	}
	if again.Score != analyzed.Score {
		t.Fatalf("score changed on re-analysis: %v != %v", again.Score, analyzed.Score)
	}
}

func TestAnalyzePendingProcessesBacklog(t *testing.T) {
	st := testStore(t)
	svc, studentRepo := testVideoService(t, st)
	ctx := context.Background()

	for _, name := range []string{"a", "b"} {
		student := &model.Student{Name: name, Email: name + "@example.com"}
		studentRepo.Create(ctx, student)
		if _, err := svc.SubmitVideo(ctx, student.ID,
			"https://drive.google.com/file/d/vid-"+name+"/view", "AI"); err != nil {
			t.Fatalf("SubmitVideo(%s): %v", name, err)
		}
	}

	if n := svc.AnalyzePending(ctx); n != 2 {
		t.Fatalf("AnalyzePending = %d, want 2", n)
	}
	if n := svc.AnalyzePending(ctx); n != 0 {
		t.Fatalf("second AnalyzePending = %d, want 0", n)
	}
}

func TestStudentVideoStatusMissing(t *testing.T) {
	svc, _ := testVideoService(t, testStore(t))

	_, err := svc.StudentVideoStatus(context.Background(), "nobody")
	if !errors.Is(err, util.ErrVideoNotFound) {
		t.Fatalf("err = %v, want ErrVideoNotFound", err)
	}
}
