package routes

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"cratedig/controllers"
	"cratedig/database"
	"cratedig/discogs"
	"cratedig/marketplace"
	"cratedig/services"
	"cratedig/youtube"
)

func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}

// NewAggregator wires the configured marketplace providers in registration
// order: Discogs first for physical copies, then the digital stores
func NewAggregator() *marketplace.Aggregator {
	return marketplace.NewAggregator(
		discogs.NewMarketplaceProvider(discogs.NewClient("")),
		marketplace.NewBeatportProvider(),
		marketplace.NewBandcampProvider(),
		marketplace.NewJunoDownloadProvider(),
	)
}

func SetupRoutes(r *gin.Engine) {
	db := database.GetDB()

	pipeline := services.NewPlaylistPipeline(db, youtube.NewClient(""), NewAggregator())

	playlistController := controllers.NewPlaylistController(db, pipeline)
	marketplaceController := controllers.NewMarketplaceController(pipeline)
	trackController := controllers.NewTrackController(db)
	ownedController := controllers.NewOwnedController(db)

	r.Use(SecurityHeadersMiddleware())

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil {
			c.JSON(503, gin.H{
				"status":    "unhealthy",
				"error":     "database connection error",
				"timestamp": time.Now().Unix(),
			})
			return
		}

		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := sqlDB.PingContext(pingCtx); err != nil {
			c.JSON(503, gin.H{
				"status":    "unhealthy",
				"error":     "database ping failed",
				"timestamp": time.Now().Unix(),
			})
			return
		}

		c.JSON(200, gin.H{
			"status":    "healthy",
			"database":  "connected",
			"timestamp": time.Now().Unix(),
		})
	})

	api := r.Group("/", controllers.AuthRequired())

	api.POST("/playlists/process", playlistController.ProcessPlaylist)
	api.GET("/jobs/:job_id", playlistController.GetJob)

	api.GET("/marketplace/search", marketplaceController.Search)

	api.GET("/tracks", trackController.GetTracks)
	api.GET("/tracks/:id", trackController.GetTrackByID)
	api.PUT("/tracks/:id/match", trackController.CorrectMatch)

	api.GET("/owned", ownedController.GetOwned)
	api.POST("/owned", ownedController.CreateOwned)
	api.DELETE("/owned/:id", ownedController.DeleteOwned)
	api.POST("/owned/import", ownedController.ImportCatalog)
}
