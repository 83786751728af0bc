package controllers

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"cratedig/models"
	"cratedig/services"
	"cratedig/utils"
)

type PlaylistController struct {
	db       *gorm.DB
	pipeline *services.PlaylistPipeline
}

func NewPlaylistController(db *gorm.DB, pipeline *services.PlaylistPipeline) *PlaylistController {
	return &PlaylistController{db: db, pipeline: pipeline}
}

type processPlaylistRequest struct {
	PlaylistURL string `json:"playlist_url" binding:"required"`
	OwnerID     string `json:"owner_id" binding:"required"`
}

// ProcessPlaylist runs the full ingest pipeline for a playlist and returns
// the job summary. The request is synchronous from the caller's point of view.
func (c *PlaylistController) ProcessPlaylist(ctx *gin.Context) {
	var req processPlaylistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(ctx, "playlist_url and owner_id are required")
		return
	}

	summary, err := c.pipeline.ProcessPlaylist(ctx.Request.Context(), req.PlaylistURL, req.OwnerID, AuthUser(ctx))
	if err != nil {
		respondPipelineError(ctx, err)
		return
	}

	ctx.JSON(200, summary)
}

// GetJob returns a playlist job with its processed tracks
func (c *PlaylistController) GetJob(ctx *gin.Context) {
	jobID := ctx.Param("job_id")

	var job models.PlaylistJob
	if err := c.db.Where("job_id = ?", jobID).First(&job).Error; err != nil {
		utils.NotFound(ctx, "Job not found")
		return
	}
	if job.OwnerID != AuthUser(ctx) {
		utils.Forbidden(ctx, "Job belongs to a different user")
		return
	}

	var tracks []models.ProcessedTrack
	if err := c.db.Where("job_id = ?", jobID).Order("id").Find(&tracks).Error; err != nil {
		utils.InternalError(ctx, "Failed to load job tracks")
		return
	}

	ctx.JSON(200, gin.H{
		"job":    job,
		"tracks": tracks,
	})
}

// respondPipelineError maps the pipeline failure taxonomy onto HTTP statuses
func respondPipelineError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		utils.BadRequest(ctx, err.Error())
	case errors.Is(err, services.ErrOwnerMismatch):
		utils.Forbidden(ctx, err.Error())
	case errors.Is(err, services.ErrPlaylistEmpty):
		utils.NotFound(ctx, err.Error())
	default:
		log.Printf("Pipeline request failed: %v", err)
		utils.InternalError(ctx, "Playlist processing failed")
	}
}
