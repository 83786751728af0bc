package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"cratedig/models"
	"cratedig/utils"
)

type TrackController struct {
	db *gorm.DB
}

func NewTrackController(db *gorm.DB) *TrackController {
	return &TrackController{db: db}
}

// GetTracks lists the authenticated user's processed tracks, optionally
// filtered by job or status
func (c *TrackController) GetTracks(ctx *gin.Context) {
	query := c.db.Where("owner_id = ?", AuthUser(ctx))
	if jobID := ctx.Query("job_id"); jobID != "" {
		query = query.Where("job_id = ?", jobID)
	}
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var tracks []models.ProcessedTrack
	if err := query.Order("id").Find(&tracks).Error; err != nil {
		utils.InternalError(ctx, "Failed to fetch tracks")
		return
	}
	ctx.JSON(200, tracks)
}

// GetTrackByID returns one processed track with its persisted listings
func (c *TrackController) GetTrackByID(ctx *gin.Context) {
	var track models.ProcessedTrack
	if err := c.db.Where("id = ? AND owner_id = ?", ctx.Param("id"), AuthUser(ctx)).First(&track).Error; err != nil {
		utils.NotFound(ctx, "Track not found")
		return
	}

	var listings []models.TrackListing
	if err := c.db.Where("track_id = ?", track.ID).Order("id").Find(&listings).Error; err != nil {
		utils.InternalError(ctx, "Failed to fetch listings")
		return
	}

	ctx.JSON(200, gin.H{
		"track":    track,
		"listings": listings,
	})
}

type correctMatchRequest struct {
	OwnedRecordID uint `json:"owned_record_id"`
}

// CorrectMatch manually re-links a processed track to an owned record, or
// clears the link when owned_record_id is 0. Manual decisions always win over
// the matcher, so the track leaves the review queue either way.
func (c *TrackController) CorrectMatch(ctx *gin.Context) {
	var track models.ProcessedTrack
	if err := c.db.Where("id = ? AND owner_id = ?", ctx.Param("id"), AuthUser(ctx)).First(&track).Error; err != nil {
		utils.NotFound(ctx, "Track not found")
		return
	}

	var req correctMatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(ctx, err.Error())
		return
	}

	if req.OwnedRecordID == 0 {
		track.OwnedRecordID = nil
		track.Confidence = 0
		track.Status = "unmatched"
	} else {
		var owned models.OwnedRecord
		if err := c.db.Where("id = ? AND owner_id = ?", req.OwnedRecordID, AuthUser(ctx)).First(&owned).Error; err != nil {
			utils.BadRequest(ctx, "Owned record not found for this user")
			return
		}
		track.OwnedRecordID = &owned.ID
		track.Confidence = 100
		track.Status = "corrected"
	}

	if err := c.db.Save(&track).Error; err != nil {
		utils.InternalError(ctx, "Failed to update track")
		return
	}
	ctx.JSON(200, track)
}
