package handlers

import (
	"errors"
	"net/http"

	clinicSvc "ayursutra/services/clinic"
	"ayursutra/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterClinicHandler creates a clinic owned by the authenticated account.
func RegisterClinicHandler(svc clinicSvc.ClinicService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req struct {
			Name         string   `json:"clinicName"`
			Address      string   `json:"location"`
			MobileNumber string   `json:"mobileNumber"`
			Therapies    []string `json:"therapies"`
			TimeSlots    []string `json:"timeSlots"`
			Latitude     *float64 `json:"latitude"`
			Longitude    *float64 `json:"longitude"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		clinic, err := svc.Register(c.Request.Context(), c.GetString("userID"), clinicSvc.RegistrationInput{
			Name:         req.Name,
			Address:      req.Address,
			MobileNumber: req.MobileNumber,
			Therapies:    req.Therapies,
			TimeSlots:    req.TimeSlots,
			Latitude:     req.Latitude,
			Longitude:    req.Longitude,
		})
		if err != nil {
			var verr *clinicSvc.ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
				return
			}
			logger.Error("Clinic registration failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
			return
		}
		c.JSON(http.StatusCreated, clinic)
	}
}

// DashboardHandler returns the owner's aggregated dashboard. The clinic id is
// taken from the query, falling back to the cached session context.
func DashboardHandler(svc clinicSvc.ClinicService, contexts *utils.SessionContextStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		clinicID := c.Query("clinicId")
		if clinicID == "" {
			sc, err := contexts.Load(c.Request.Context(), c.GetString("userID"))
			if err != nil {
				logger.Warn("Failed to load session context", zap.Error(err))
			} else {
				clinicID = sc.ClinicID
			}
		}
		if clinicID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No clinic registered for this account"})
			return
		}

		data, err := svc.Dashboard(c.Request.Context(), clinicID)
		if err != nil {
			var verr *clinicSvc.ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusNotFound, gin.H{"error": verr.Message})
				return
			}
			logger.Error("Failed to load dashboard", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
			return
		}
		c.JSON(http.StatusOK, data)
	}
}

// AddSlotHandler adds a time slot to the clinic's schedule.
func AddSlotHandler(svc clinicSvc.ClinicService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req struct {
			ClinicID string `json:"clinicId"`
			Label    string `json:"label"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		clinic, err := svc.AddSlot(req.ClinicID, req.Label)
		if err != nil {
			var verr *clinicSvc.ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
				return
			}
			logger.Error("Failed to add slot", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add slot"})
			return
		}
		c.JSON(http.StatusOK, clinic)
	}
}

// ToggleSlotHandler flips a slot between available and unavailable.
func ToggleSlotHandler(svc clinicSvc.ClinicService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req struct {
			ClinicID string `json:"clinicId"`
			Label    string `json:"label"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		clinic, err := svc.ToggleSlot(req.ClinicID, req.Label)
		if err != nil {
			var verr *clinicSvc.ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
				return
			}
			logger.Error("Failed to toggle slot", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle slot"})
			return
		}
		c.JSON(http.StatusOK, clinic)
	}
}
