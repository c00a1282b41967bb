package middleware

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"ayursutra/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PositionKey is the context key carrying the caller's resolved coordinates,
// or nil when no position could be determined.
const PositionKey = "devicePosition"

type ipLookupResult struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
	Country   string  `json:"country_name"`
}

// geoCache caches IP lookup results so the external API is hit at most once
// per address.
var geoCache = make(map[string]*models.Coordinates)
var cacheMutex sync.RWMutex

func isPrivateIP(ip string) bool {
	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return false
	}
	return parsedIP.IsLoopback() || parsedIP.IsPrivate()
}

// lookupIPPosition resolves coordinates for a public IP via ipapi.co. A nil
// result means the position is unknown; that is never an error for the caller.
func lookupIPPosition(ip string, logger *zap.Logger) *models.Coordinates {
	cacheMutex.RLock()
	if pos, exists := geoCache[ip]; exists {
		cacheMutex.RUnlock()
		return pos
	}
	cacheMutex.RUnlock()

	if ip == "" || isPrivateIP(ip) {
		return nil
	}

	url := fmt.Sprintf("https://ipapi.co/%s/json/", ip)
	client := http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		logger.Warn("IP geolocation lookup failed", zap.String("ip", ip), zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("IP geolocation lookup returned non-OK status",
			zap.String("ip", ip), zap.Int("status", resp.StatusCode))
		return nil
	}

	var result ipLookupResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		logger.Warn("failed to decode IP geolocation response", zap.String("ip", ip), zap.Error(err))
		return nil
	}
	if result.Latitude == 0 && result.Longitude == 0 {
		return nil
	}

	pos := &models.Coordinates{Latitude: result.Latitude, Longitude: result.Longitude}
	cacheMutex.Lock()
	geoCache[ip] = pos
	cacheMutex.Unlock()
	return pos
}

// PositionMiddleware resolves the caller's position. Device-reported headers
// win; otherwise the client IP is looked up. Requests without a resolvable
// position proceed with no position set.
func PositionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := zap.L()

		latHeader := c.GetHeader("X-Device-Latitude")
		lngHeader := c.GetHeader("X-Device-Longitude")
		if latHeader != "" && lngHeader != "" {
			lat, latErr := strconv.ParseFloat(latHeader, 64)
			lng, lngErr := strconv.ParseFloat(lngHeader, 64)
			if latErr == nil && lngErr == nil {
				c.Set(PositionKey, &models.Coordinates{Latitude: lat, Longitude: lng})
				c.Next()
				return
			}
			logger.Warn("malformed device position headers",
				zap.String("lat", latHeader), zap.String("lng", lngHeader))
		}

		if pos := lookupIPPosition(getClientIP(c), logger); pos != nil {
			c.Set(PositionKey, pos)
		}
		c.Next()
	}
}

// PositionFromContext returns the resolved coordinates, or nil.
func PositionFromContext(c *gin.Context) *models.Coordinates {
	value, exists := c.Get(PositionKey)
	if !exists {
		return nil
	}
	pos, ok := value.(*models.Coordinates)
	if !ok {
		return nil
	}
	return pos
}
