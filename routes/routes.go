package routes

import (
	"net/http"
	"time"

	"medibook/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRoutes registers all endpoints on the router.
func SetupRoutes(r *gin.Engine) {
	// Allow the web frontend to call the API from any origin. Tighten the
	// origin list per deployment.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Healthcare Booking API",
			"status":  "running",
		})
	})
	r.GET("/health", handlers.HealthHandler)

	api := r.Group("/api")
	{
		api.POST("/chat", handlers.ChatHandler)
		api.GET("/specialties", handlers.SpecialtiesHandler)
	}
}
