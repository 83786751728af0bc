package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"cratedig/services"
	"cratedig/utils"
)

type MarketplaceController struct {
	pipeline *services.PlaylistPipeline
}

func NewMarketplaceController(pipeline *services.PlaylistPipeline) *MarketplaceController {
	return &MarketplaceController{pipeline: pipeline}
}

// Search aggregates marketplace offers for an artist/title pair. An optional
// track_id persists the listings onto that processed track.
func (c *MarketplaceController) Search(ctx *gin.Context) {
	artist := ctx.Query("artist")
	title := ctx.Query("title")
	remix := ctx.Query("remix")
	ownerID := ctx.Query("owner_id")

	if !utils.ValidateRequest(ctx,
		utils.ValidateStringNotEmpty(artist, "artist"),
		utils.ValidateStringNotEmpty(title, "title"),
		utils.ValidateStringNotEmpty(ownerID, "owner_id"),
	) {
		return
	}

	var trackID uint
	if raw := ctx.Query("track_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.BadRequest(ctx, "track_id must be a number")
			return
		}
		trackID = uint(parsed)
	}

	listings, err := c.pipeline.SearchMarketplace(ctx.Request.Context(), artist, title, remix, ownerID, AuthUser(ctx), trackID)
	if err != nil {
		respondPipelineError(ctx, err)
		return
	}

	ctx.JSON(200, gin.H{"listings": listings})
}
