package app

import (
	"aisb_backend/docs"
	"aisb_backend/internal/middleware"
	"aisb_backend/internal/util"
	"aisb_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.POST("/admin/login", c.auth.AdminLogin)
	}

	student := router.Group("/api")
	student.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(util.RoleStudent))
	{
		student.GET("/profile", c.auth.Profile)
		student.GET("/quizzes", c.quiz.ListQuizzes)
		student.GET("/quizzes/:id", c.quiz.GetQuiz)
		student.POST("/quizzes/submit", c.quiz.SubmitQuiz)
		student.GET("/results", c.quiz.MyResults)
		student.GET("/results/final", c.results.MyFinalResult)
		student.POST("/videos", c.video.SubmitVideo)
		student.GET("/videos/status", c.video.MyVideoStatus)
	}

	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(util.RoleAdmin))
	{
		admin.GET("/dashboard", c.dashboard.Overview)
		admin.POST("/quizzes", c.quiz.CreateQuiz)
		admin.GET("/quizzes/:id/results", c.quiz.QuizResults)
		admin.POST("/quizzes/:id/release", c.quiz.ReleaseResults)
		admin.GET("/videos", c.video.ListVideos)
		admin.POST("/videos/:id/analyze", c.video.AnalyzeVideo)
		admin.GET("/results/combined", c.results.CombinedResults)
		admin.GET("/results/top", c.results.TopStudents)
		admin.POST("/results/release", c.results.ReleaseFinal)
		admin.GET("/results/final", c.results.FinalResults)
	}
}
