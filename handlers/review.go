package handlers

import (
	"errors"
	"net/http"

	"ayursutra/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListReviewsHandler returns all reviews for a clinic.
func ListReviewsHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		clinicID := c.Query("clinicId")
		if clinicID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "clinicId is required"})
			return
		}

		reviews, err := svc.ListReviews(clinicID)
		if err != nil {
			logger.Error("Failed to list reviews", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reviews"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"reviews": reviews})
	}
}

// SubmitReviewHandler records a patient review.
func SubmitReviewHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req struct {
			ClinicID string `json:"clinicId"`
			UserName string `json:"userName"`
			Rating   int    `json:"rating"`
			Text     string `json:"comment"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		review, err := svc.SubmitReview(req.ClinicID, req.UserName, req.Rating, req.Text)
		if err != nil {
			var verr *booking.ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
				return
			}
			logger.Error("Failed to submit review", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit review"})
			return
		}
		c.JSON(http.StatusCreated, review)
	}
}
