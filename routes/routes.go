package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"expertbook/config"
	"expertbook/handlers"
	"expertbook/realtime"
	"expertbook/utils"
)

// CORSMiddleware builds the CORS policy from configuration.
func CORSMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     config.AppConfig.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}

// RegisterExpertRoutes registers the expert catalogue endpoints.
func RegisterExpertRoutes(r *gin.Engine, h *handlers.ExpertHandler) {
	api := r.Group("/api/experts")
	{
		api.GET("", h.ListExpertsHandler)
		api.GET("/:id", h.GetExpertByIDHandler)
	}
}

// RegisterBookingRoutes registers the booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	api := r.Group("/api/bookings")
	{
		api.POST("", h.CreateBookingHandler)
		api.GET("", h.GetBookingsByEmailHandler)
		api.PATCH("/:id/status", h.UpdateBookingStatusHandler)
	}
}

// RegisterRealtimeRoute registers the websocket endpoint observers connect to.
func RegisterRealtimeRoute(r *gin.Engine, hub *realtime.Hub) {
	r.GET("/ws", handlers.WSHandler(hub))
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}
