package controller

import (
	"errors"

	"aisb_backend/internal/service"
	"aisb_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type VideoController struct {
	VideoService *service.VideoService
}

func NewVideoController(videoService *service.VideoService) *VideoController {
	return &VideoController{VideoService: videoService}
}

// swagger:model SubmitVideoRequest
type SubmitVideoRequest struct {
	VideoLink string `json:"video_link" binding:"required"`
	Topic     string `json:"topic" binding:"required"`
}

// SubmitVideo godoc
// @Summary Submit a presentation video
// @Description Records a Google Drive link for assessment, one per student
// @Tags video
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body SubmitVideoRequest true "Drive link and topic"
// @Success 201 {object} util.Response{data=model.VideoSubmission}
// @Failure 400 {object} util.Response "Invalid Drive link"
// @Failure 409 {object} util.Response "Already submitted"
// @Router /api/videos [post]
func (c *VideoController) SubmitVideo(ctx *gin.Context) {
	var req SubmitVideoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	video, err := c.VideoService.SubmitVideo(ctx.Request.Context(), claims.SubjectID, req.VideoLink, req.Topic)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidVideoLink):
			util.BadRequest(ctx, "Please provide a valid Google Drive sharing link")
		case errors.Is(err, util.ErrVideoAlreadySubmitted):
			util.Error(ctx, 409, "You have already submitted a video")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, video)
}

// MyVideoStatus godoc
// @Summary Current student's video status
// @Tags video
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.VideoSubmission}
// @Failure 404 {object} util.Response "No submission yet"
// @Router /api/videos/status [get]
func (c *VideoController) MyVideoStatus(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	video, err := c.VideoService.StudentVideoStatus(ctx.Request.Context(), claims.SubjectID)
	if err != nil {
		if errors.Is(err, util.ErrVideoNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, video)
}

// ListVideos godoc
// @Summary All video submissions
// @Tags video
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.VideoSubmission}
// @Router /api/admin/videos [get]
func (c *VideoController) ListVideos(ctx *gin.Context) {
	videos, err := c.VideoService.ListVideos(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, videos)
}

// AnalyzeVideo godoc
// @Summary Analyze a video submission
// @Description Runs the assessment for one submission, idempotent
// @Tags video
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Video id"
// @Success 200 {object} util.Response{data=model.VideoSubmission}
// @Failure 404 {object} util.Response
// @Router /api/admin/videos/{id}/analyze [post]
func (c *VideoController) AnalyzeVideo(ctx *gin.Context) {
	video, err := c.VideoService.AnalyzeVideo(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrVideoNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, video)
}
