package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tripflow/itinerary-backend-go/internal/config"
	"github.com/tripflow/itinerary-backend-go/internal/handler"
	"github.com/tripflow/itinerary-backend-go/internal/middleware"
)

// SetupRouter wires middleware and routes
func SetupRouter(cfg *config.Config, itineraries *handler.ItineraryHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.RateLimit(60, time.Minute))

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Itinerary Backend API is running",
		})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.Auth(cfg.JWTSecret))
	{
		group := api.Group("/itineraries")
		{
			group.POST("", itineraries.Create)
			group.GET("", itineraries.List)
			group.GET("/:id", itineraries.Get)
			group.GET("/:id/gaps", itineraries.DetectGaps)
			group.POST("/:id/normalize", itineraries.Normalize)
		}
	}

	return r
}
