package controller

import (
	"errors"

	"aisb_backend/internal/model"
	"aisb_backend/internal/service"
	"aisb_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// swagger:model CreateQuizRequest
type CreateQuizRequest struct {
	Topic        string `json:"topic" binding:"required"`
	NumQuestions int    `json:"num_questions" binding:"required,min=1,max=50"`
	Difficulty   string `json:"difficulty" binding:"required,oneof=easy medium hard"`
	QuestionType string `json:"question_type" binding:"required,oneof=MCQ TrueFalse QA"`
}

// swagger:model SubmitQuizRequest
type SubmitQuizRequest struct {
	QuizID  string   `json:"quiz_id" binding:"required"`
	Answers []string `json:"answers" binding:"required"`
}

// swagger:model ReleaseResultsRequest
type ReleaseResultsRequest struct {
	MinScore *float64 `json:"min_score"`
}

// CreateQuiz godoc
// @Summary Create a quiz
// @Description Generates a quiz on the given topic and stores it
// @Tags quiz
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CreateQuizRequest true "Quiz parameters"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Failure 400 {object} util.Response
// @Failure 500 {object} util.Response
// @Router /api/admin/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	var req CreateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	createdBy := ""
	if claims != nil {
		createdBy = claims.SubjectID
	}

	quiz, err := c.QuizService.CreateQuiz(ctx.Request.Context(), req.Topic, req.NumQuestions,
		model.Difficulty(req.Difficulty), model.QuestionType(req.QuestionType), createdBy)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, quiz)
}

// ListQuizzes godoc
// @Summary List available quizzes
// @Description Students receive quizzes with the answer key stripped
// @Tags quiz
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Quiz}
// @Router /api/quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	quizzes, err := c.QuizService.ListQuizzes(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims != nil && claims.Role == util.RoleAdmin {
		util.Success(ctx, quizzes)
		return
	}

	sanitized := make([]model.Quiz, 0, len(quizzes))
	for i := range quizzes {
		sanitized = append(sanitized, quizzes[i].ForStudent())
	}
	util.Success(ctx, sanitized)
}

// GetQuiz godoc
// @Summary Fetch a quiz by id
// @Tags quiz
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Quiz id"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	quiz, err := c.QuizService.GetQuiz(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims != nil && claims.Role == util.RoleAdmin {
		util.Success(ctx, quiz)
		return
	}
	util.Success(ctx, quiz.ForStudent())
}

// SubmitQuiz godoc
// @Summary Submit quiz answers
// @Description Grades the answers and stores a pending result
// @Tags quiz
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body SubmitQuizRequest true "Answers"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response "Quiz not found"
// @Router /api/quizzes/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	var req SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.QuizService.SubmitQuiz(ctx.Request.Context(), claims.SubjectID, req.QuizID, req.Answers)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	// The score stays hidden until the result is released.
	util.Success(ctx, gin.H{
		"result_id":    result.ID,
		"quiz_id":      result.QuizID,
		"status":       result.Status,
		"submitted_at": result.SubmittedAt,
		"message":      "Quiz submitted successfully. Results will be available once released.",
	})
}

// MyResults godoc
// @Summary Current student's quiz results
// @Tags quiz
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/results [get]
func (c *QuizController) MyResults(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	results, err := c.QuizService.StudentResults(ctx.Request.Context(), claims.SubjectID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

// QuizResults godoc
// @Summary All results for a quiz
// @Tags quiz
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Quiz id"
// @Success 200 {object} util.Response{data=[]model.QuizResult}
// @Failure 404 {object} util.Response
// @Router /api/admin/quizzes/{id}/results [get]
func (c *QuizController) QuizResults(ctx *gin.Context) {
	results, err := c.QuizService.QuizResults(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, results)
}

// ReleaseResults godoc
// @Summary Release pending results for a quiz
// @Description Flips pending results to released and emails the students
// @Tags quiz
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Quiz id"
// @Param   body body ReleaseResultsRequest false "Optional minimum score filter"
// @Success 200 {object} util.Response{data=service.ReleaseSummary}
// @Failure 404 {object} util.Response
// @Router /api/admin/quizzes/{id}/release [post]
func (c *QuizController) ReleaseResults(ctx *gin.Context) {
	var req ReleaseResultsRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	summary, err := c.QuizService.ReleaseResults(ctx.Request.Context(), ctx.Param("id"), req.MinScore)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, summary)
}
