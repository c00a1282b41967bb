package routes

import (
	"net/http"
	"time"

	"ayursutra/handlers"
	"ayursutra/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the sign-in flow endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/signin", hb.SignInHandler)
		api.POST("/verify", hb.VerifyHandler)
		api.POST("/resend", hb.ResendHandler)

		api.GET("/me", middleware.JWTAuthMiddleware(), hb.ProfileHandler)
		api.POST("/signout", middleware.JWTAuthMiddleware(), hb.SignOutHandler)
	}
}

// RegisterClinicRoutes registers discovery and clinic management endpoints.
func RegisterClinicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/clinics")
	{
		api.GET("", middleware.PositionMiddleware(), hb.ListClinicsHandler)
		api.GET("/:id", hb.GetClinicHandler)

		// Owner endpoints require authentication.
		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.POST("", hb.RegisterClinicHandler)
		protected.GET("/dashboard", hb.DashboardHandler)
		protected.POST("/slots", hb.AddSlotHandler)
		protected.PATCH("/slots", hb.ToggleSlotHandler)
	}
}

// RegisterBookingRoutes registers selection and booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.SelectionHandler)
		api.POST("", hb.BookSlotHandler)
		api.POST("/select", hb.SelectHandler)
	}
}

// RegisterReviewRoutes registers review endpoints.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reviews")
	{
		api.GET("", hb.ListReviewsHandler)
		api.POST("", middleware.JWTAuthMiddleware(), hb.SubmitReviewHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "AyurSutra is up"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Device-Latitude", "X-Device-Longitude"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterAuthRoutes(r, hb)
	RegisterClinicRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterHealthRoute(r)
}
