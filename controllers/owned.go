package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"cratedig/models"
	"cratedig/services"
	"cratedig/utils"
)

type OwnedController struct {
	db       *gorm.DB
	importer *services.CatalogImporter
}

func NewOwnedController(db *gorm.DB) *OwnedController {
	return &OwnedController{db: db, importer: services.NewCatalogImporter(db)}
}

// GetOwned lists the authenticated user's owned catalog
func (c *OwnedController) GetOwned(ctx *gin.Context) {
	var records []models.OwnedRecord
	if err := c.db.Where("owner_id = ?", AuthUser(ctx)).Order("artist, title").Find(&records).Error; err != nil {
		utils.InternalError(ctx, "Failed to fetch owned records")
		return
	}
	ctx.JSON(200, records)
}

type createOwnedRequest struct {
	Artist           string `json:"artist" binding:"required"`
	Title            string `json:"title" binding:"required"`
	Format           string `json:"format"`
	DiscogsReleaseID int    `json:"discogs_release_id"`
}

// CreateOwned adds a single record to the catalog, computing the normalized
// search key the matcher will compare against
func (c *OwnedController) CreateOwned(ctx *gin.Context) {
	var req createOwnedRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(ctx, "artist and title are required")
		return
	}
	if !utils.ValidateRequest(ctx,
		utils.ValidateStringLength(req.Artist, "artist", 1, 512),
		utils.ValidateStringLength(req.Title, "title", 1, 512),
		utils.ValidateDiscogsReleaseID(req.DiscogsReleaseID),
	) {
		return
	}

	record := models.OwnedRecord{
		OwnerID:          AuthUser(ctx),
		Artist:           req.Artist,
		Title:            req.Title,
		NormalizedKey:    services.Normalize(req.Artist + " " + req.Title),
		Format:           req.Format,
		DiscogsReleaseID: req.DiscogsReleaseID,
	}
	if err := c.db.Create(&record).Error; err != nil {
		utils.InternalError(ctx, "Failed to create owned record")
		return
	}
	ctx.JSON(201, record)
}

// DeleteOwned removes a record from the catalog
func (c *OwnedController) DeleteOwned(ctx *gin.Context) {
	result := c.db.Where("id = ? AND owner_id = ?", ctx.Param("id"), AuthUser(ctx)).Delete(&models.OwnedRecord{})
	if result.Error != nil {
		utils.InternalError(ctx, "Failed to delete owned record")
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(ctx, "Owned record not found")
		return
	}
	ctx.Status(204)
}

// ImportCatalog ingests a CSV library export for the authenticated user.
// Partial failures reduce the import and are counted in the summary.
func (c *OwnedController) ImportCatalog(ctx *gin.Context) {
	file, _, err := ctx.Request.FormFile("file")
	if err != nil {
		utils.BadRequest(ctx, "A CSV file upload named 'file' is required")
		return
	}
	defer file.Close()

	summary, err := c.importer.ImportCSV(AuthUser(ctx), file)
	if err != nil {
		respondPipelineError(ctx, err)
		return
	}
	ctx.JSON(200, summary)
}
