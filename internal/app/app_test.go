package app

import (
	"context"
	"testing"
	"time"

	"aisb_backend/internal/config"
	"aisb_backend/internal/repository"
	"aisb_backend/internal/service"
	"aisb_backend/internal/store"
	"aisb_backend/pkg/logger"

	"go.uber.org/zap"
)

func init() {
	logger.Log = zap.NewNop()
}

func TestApplyConfigSwapsLiveConfig(t *testing.T) {
	app := &App{}
	first := &config.Config{}
	first.Server.Port = "8080"
	app.current.Store(first)

	second := &config.Config{}
	second.Server.Port = "9090"
	app.applyConfig(second)

	if got := app.current.Load(); got != second {
		t.Fatalf("live config = %+v, want the reloaded one", got)
	}
}

func TestRunVideoAnalyzerStopsOnCancel(t *testing.T) {
	st, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	video := service.NewVideoService(
		repository.NewVideoRepository(st),
		repository.NewStudentRepository(st),
		service.NewVideoAnalyzer(nil),
		service.NewEmailService(config.EmailConfig{}, nil),
		nil,
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		runVideoAnalyzer(ctx, time.Millisecond, video)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("analyzer goroutine kept running after cancel")
	}
}
