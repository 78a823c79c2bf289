package routes

import (
	"net/http"
	"time"

	"clinicvoice/handlers"
	"clinicvoice/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// passThrough stands in for a guard that was not configured.
func passThrough(c *gin.Context) { c.Next() }

func orPass(h gin.HandlerFunc) gin.HandlerFunc {
	if h == nil {
		return passThrough
	}
	return h
}

// RegisterVoiceRoutes registers the webhooks Twilio calls during a phone call.
func RegisterVoiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/", hb.Index)

	voice := r.Group("")
	{
		voice.Use(orPass(hb.WebhookGuard))
		voice.POST("/voice", hb.InboundCall)
		voice.POST("/process", hb.ProcessSpeech)
		voice.POST("/status", hb.CallStatus)
	}
}

// RegisterAPIRoutes registers the endpoints used by back-office clients.
func RegisterAPIRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("")
	{
		api.Use(orPass(hb.APIAuth))

		api.POST("/make_call", orPass(hb.CallLimiter), hb.MakeCall)
		api.GET("/api/appointments", hb.ListAppointments)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"checks": utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Preflight requests never reach a group, so CORS is global.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterVoiceRoutes(r, hb)
	RegisterAPIRoutes(r, hb)
	RegisterHealthRoute(r)
}
