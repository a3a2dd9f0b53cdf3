package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/bitebrain/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestIDMiddleware(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
	)

	router.GET("/health", handler.Health)

	api := router.Group("/api/v1")
	{
		api.GET("/health", handler.Health)

		api.GET("/recommendations", handler.Recommend)
		api.POST("/recommendations", handler.Recommend)
		api.POST("/recommendations/species", handler.RecommendSpecies)

		api.GET("/species", handler.ListSpecies)
		api.GET("/species/:id", handler.GetSpecies)
		api.POST("/species/suitable", handler.SuitableSpecies)

		api.GET("/solunar/day", handler.SolunarDay)
		api.GET("/solunar/week", handler.SolunarWeek)
		api.GET("/solunar/current", handler.SolunarCurrent)

		api.GET("/spots", handler.ListSpots)
		api.GET("/spots/:id", handler.GetSpot)

		api.GET("/outlook", handler.Outlook)

		tiles := api.Group("/tiles")
		tiles.POST("/regions", handler.CreateRegion)
		tiles.GET("/regions", handler.ListRegions)
		tiles.GET("/regions/:id", handler.GetRegion)
		tiles.DELETE("/regions/:id", handler.DeleteRegion)
		tiles.GET("/usage", handler.TileUsage)
		tiles.GET("/:z/:x/:y", handler.GetTile)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
