package handlers

import (
	"errors"
	"net/http"

	"ayursutra/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SelectHandler records the caller's clinic or therapy choice.
func SelectHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req struct {
			ClinicID string `json:"clinicId"`
			Therapy  string `json:"therapy"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		userID := c.GetString("userID")
		ctx := c.Request.Context()

		if req.ClinicID != "" {
			clinic, err := svc.SelectClinic(ctx, userID, req.ClinicID)
			if err != nil {
				var verr *booking.ValidationError
				if errors.As(err, &verr) {
					c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
					return
				}
				logger.Error("Failed to select clinic", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to select clinic"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"clinic": clinic})
			return
		}

		if req.Therapy != "" {
			if err := svc.SelectTherapy(ctx, userID, req.Therapy); err != nil {
				var verr *booking.ValidationError
				if errors.As(err, &verr) {
					c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
					return
				}
				logger.Error("Failed to select therapy", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to select therapy"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"therapy": req.Therapy})
			return
		}

		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide a clinicId or a therapy"})
	}
}

// BookSlotHandler books a slot against the current selection. The response
// reports whether the clinic mailbox was reached; the booking stands either way.
func BookSlotHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req struct {
			Slot   string `json:"slot"`
			Email  string `json:"email"`
			Rating int    `json:"rating"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		result, err := svc.BookSlot(c.Request.Context(), c.GetString("userID"), booking.BookingRequest{
			Slot:   req.Slot,
			Email:  req.Email,
			Rating: req.Rating,
		})
		if err != nil {
			var verr *booking.ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
				return
			}
			logger.Error("Booking failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Booking failed"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"booking":   result.Booking,
			"emailSent": result.EmailSent,
		})
	}
}

// SelectionHandler returns the caller's current selection and bookings.
func SelectionHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		session, err := svc.CurrentSelection(c.Request.Context(), c.GetString("userID"))
		if err != nil {
			logger.Error("Failed to load selection", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load selection"})
			return
		}
		c.JSON(http.StatusOK, session)
	}
}
