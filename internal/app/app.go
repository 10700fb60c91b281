package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"aisb_backend/internal/config"
	"aisb_backend/internal/controller"
	"aisb_backend/internal/repository"
	"aisb_backend/internal/service"
	"aisb_backend/internal/store"
	"aisb_backend/pkg/configwatcher"
	"aisb_backend/pkg/database"
	"aisb_backend/pkg/logger"
	"aisb_backend/pkg/monitoring"
	"aisb_backend/pkg/security"
	"aisb_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	Store    store.Store
	services *services

	// current holds the live config served to request handlers; the config
	// watcher swaps it on file change.
	current        atomic.Pointer[config.Config]
	stopBackground context.CancelFunc
}

// applyConfig swaps the config that request handlers read from the gin
// context. Settings consumed at construction time (store backend, redis,
// tracing) still need a restart.
func (a *App) applyConfig(cfg *config.Config) {
	a.current.Store(cfg)
	logger.Log.Info("configuration reloaded")
}

type repositories struct {
	student     *repository.StudentRepository
	quiz        *repository.QuizRepository
	result      *repository.ResultRepository
	video       *repository.VideoRepository
	finalResult *repository.FinalResultRepository
}

type services struct {
	ai        *service.AIService
	email     *service.EmailService
	storage   *service.StorageService
	auth      *service.AuthService
	quiz      *service.QuizService
	video     *service.VideoService
	results   *service.ResultsService
	dashboard *service.DashboardService
}

type controllers struct {
	auth      *controller.AuthController
	quiz      *controller.QuizController
	video     *controller.VideoController
	results   *controller.ResultsController
	dashboard *controller.DashboardController
	health    *controller.HealthController
}

// initStore builds the record store per config. The database backend wraps
// MySQL in a fallback to the local JSON store; the file backend skips the
// database entirely.
func (a *App) initStore(cfg *config.Config) (store.Store, *gorm.DB) {
	local, err := store.NewFileStore(cfg.Store.LocalPath)
	if err != nil {
		logger.Log.Fatal("failed to initialize local record store", zap.Error(err))
	}

	if cfg.Store.Backend == "file" {
		logger.Log.Info("using file record store", zap.String("path", cfg.Store.LocalPath))
		return local, nil
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Warn("database unavailable at startup, using local record store", zap.Error(err))
		return local, nil
	}

	return store.NewFallbackStore(store.NewDocumentStore(db), local), db
}

func (a *App) initRepositories(st store.Store) *repositories {
	return &repositories{
		student:     repository.NewStudentRepository(st),
		quiz:        repository.NewQuizRepository(st),
		result:      repository.NewResultRepository(st),
		video:       repository.NewVideoRepository(st),
		finalResult: repository.NewFinalResultRepository(st),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.ai = service.NewAIService(cfg.AI)
	s.email = service.NewEmailService(cfg.Email, s.ai)
	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.student, s.email, cfg)
	s.quiz = service.NewQuizService(repos.quiz, repos.result, repos.student,
		service.NewQuizGenerator(s.ai), service.NewQuizGrader(s.ai), s.email, rdb)
	s.video = service.NewVideoService(repos.video, repos.student,
		service.NewVideoAnalyzer(s.ai), s.email, rdb)
	s.results = service.NewResultsService(repos.result, repos.video, repos.student,
		repos.finalResult, s.email, s.storage)
	s.dashboard = service.NewDashboardService(repos.student, repos.quiz, repos.result,
		repos.video, repos.finalResult)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, st store.Store) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		quiz:      controller.NewQuizController(s.quiz),
		video:     controller.NewVideoController(s.video),
		results:   controller.NewResultsController(s.results),
		dashboard: controller.NewDashboardController(s.dashboard),
		health:    controller.NewHealthController(db, st),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(func(c *gin.Context) {
		c.Set("config", a.current.Load())
		c.Next()
	})

	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	windowMinutes := cfg.RateLimit.WindowMinutes
	if windowMinutes <= 0 {
		windowMinutes = 1
	}
	router.Use(security.RateLimiter(maxRequests, time.Duration(windowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// runVideoAnalyzer periodically picks up video submissions still awaiting
// assessment, until ctx is cancelled.
func runVideoAnalyzer(ctx context.Context, interval time.Duration, video *service.VideoService) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			passCtx, cancel := context.WithTimeout(ctx, 50*time.Second)
			if n := video.AnalyzePending(passCtx); n > 0 {
				logger.Log.Info("background analyzer pass complete", zap.Int("analyzed", n))
			}
			cancel()
		}
	}
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	app := &App{Config: cfg}
	app.current.Store(cfg)

	st, db := app.initStore(cfg)
	app.Store = st
	app.DB = db

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("redis unavailable, continuing without cache", zap.Error(err))
		rdb = nil
	}
	app.Redis = rdb

	repos := app.initRepositories(st)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, st)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("aisb-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers)

	if cfg.Storage.Type == "local" && cfg.Storage.LocalPath != "" {
		router.Static("/files", cfg.Storage.LocalPath)
	}

	bgCtx, cancel := context.WithCancel(context.Background())
	app.stopBackground = cancel
	go runVideoAnalyzer(bgCtx, time.Minute, services.video)

	go configwatcher.WatchConfig(filepath.Join("configs", "config.yaml"), app.applyConfig)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	a.stopBackground()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
