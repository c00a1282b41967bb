package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Auth endpoints
	SignInHandler  gin.HandlerFunc
	VerifyHandler  gin.HandlerFunc
	ResendHandler  gin.HandlerFunc
	ProfileHandler gin.HandlerFunc
	SignOutHandler gin.HandlerFunc

	// Discovery endpoints
	ListClinicsHandler gin.HandlerFunc
	GetClinicHandler   gin.HandlerFunc

	// Clinic endpoints
	RegisterClinicHandler gin.HandlerFunc
	DashboardHandler      gin.HandlerFunc
	AddSlotHandler        gin.HandlerFunc
	ToggleSlotHandler     gin.HandlerFunc

	// Booking endpoints
	SelectHandler    gin.HandlerFunc
	BookSlotHandler  gin.HandlerFunc
	SelectionHandler gin.HandlerFunc

	// Review endpoints
	ListReviewsHandler  gin.HandlerFunc
	SubmitReviewHandler gin.HandlerFunc
}
