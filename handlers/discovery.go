package handlers

import (
	"net/http"

	"ayursutra/middleware"
	"ayursutra/services/discovery"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListClinicsHandler returns the clinic directory, narrowed to the caller's
// surroundings when a position was resolved.
func ListClinicsHandler(svc discovery.DiscoveryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		position := middleware.PositionFromContext(c)
		clinics, filtered, err := svc.ListClinics(position)
		if err != nil {
			logger.Error("Failed to list clinics", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load clinics"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"clinics":  clinics,
			"filtered": filtered,
		})
	}
}

// GetClinicHandler returns a single clinic by id.
func GetClinicHandler(svc discovery.DiscoveryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		clinic, err := svc.GetClinic(c.Param("id"))
		if err != nil {
			logger.Error("Failed to fetch clinic", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load clinic"})
			return
		}
		if clinic == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Clinic not found"})
			return
		}
		c.JSON(http.StatusOK, clinic)
	}
}
