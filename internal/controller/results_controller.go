package controller

import (
	"errors"
	"strconv"

	"aisb_backend/internal/service"
	"aisb_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResultsController struct {
	ResultsService *service.ResultsService
}

func NewResultsController(resultsService *service.ResultsService) *ResultsController {
	return &ResultsController{ResultsService: resultsService}
}

// swagger:model ReleaseFinalRequest
type ReleaseFinalRequest struct {
	TopPercentage    float64 `json:"top_percentage" binding:"required,gt=0,lte=100"`
	IncludeVideoOnly bool    `json:"include_video_only"`
}

func aggregateOptions(ctx *gin.Context) service.AggregateOptions {
	includeVideoOnly, _ := strconv.ParseBool(ctx.Query("include_video_only"))
	return service.AggregateOptions{IncludeVideoOnly: includeVideoOnly}
}

// CombinedResults godoc
// @Summary Combined quiz and video results
// @Description Weighted totals per student, computed on demand
// @Tags results
// @Produce  json
// @Security BearerAuth
// @Param   include_video_only query bool false "Include students without quiz results"
// @Success 200 {object} util.Response{data=[]model.CombinedResult}
// @Router /api/admin/results/combined [get]
func (c *ResultsController) CombinedResults(ctx *gin.Context) {
	results, err := c.ResultsService.CombinedResults(ctx.Request.Context(), aggregateOptions(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

// TopStudents godoc
// @Summary Preview the top students selection
// @Description Ranks combined results without persisting anything
// @Tags results
// @Produce  json
// @Security BearerAuth
// @Param   percentage query number true "Top percentage to select"
// @Param   include_video_only query bool false "Include students without quiz results"
// @Success 200 {object} util.Response{data=[]model.CombinedResult}
// @Failure 400 {object} util.Response
// @Router /api/admin/results/top [get]
func (c *ResultsController) TopStudents(ctx *gin.Context) {
	percentage, err := strconv.ParseFloat(ctx.Query("percentage"), 64)
	if err != nil || percentage <= 0 || percentage > 100 {
		util.BadRequest(ctx, "percentage must be a number in (0, 100]")
		return
	}

	combined, err := c.ResultsService.CombinedResults(ctx.Request.Context(), aggregateOptions(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, service.SelectTopStudents(combined, percentage))
}

// ReleaseFinal godoc
// @Summary Release final results for the top students
// @Description Persists one final result per selected student and emails them; re-running skips students already released
// @Tags results
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body ReleaseFinalRequest true "Selection parameters"
// @Success 200 {object} util.Response{data=service.FinalReleaseSummary}
// @Failure 400 {object} util.Response
// @Router /api/admin/results/release [post]
func (c *ResultsController) ReleaseFinal(ctx *gin.Context) {
	var req ReleaseFinalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	summary, err := c.ResultsService.ReleaseFinalResults(ctx.Request.Context(), req.TopPercentage,
		service.AggregateOptions{IncludeVideoOnly: req.IncludeVideoOnly})
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// FinalResults godoc
// @Summary List persisted final results
// @Tags results
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.FinalResult}
// @Router /api/admin/results/final [get]
func (c *ResultsController) FinalResults(ctx *gin.Context) {
	results, err := c.ResultsService.FinalResults(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

// MyFinalResult godoc
// @Summary Current student's final result
// @Tags results
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.FinalResult}
// @Failure 404 {object} util.Response "Not selected or not released yet"
// @Router /api/results/final [get]
func (c *ResultsController) MyFinalResult(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	final, err := c.ResultsService.StudentFinalResult(ctx.Request.Context(), claims.SubjectID)
	if err != nil {
		if errors.Is(err, util.ErrResultNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, final)
}
