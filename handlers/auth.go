package handlers

import (
	"errors"
	"net/http"
	"strings"

	"ayursutra/services/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SignInHandler requests a one-time code for the submitted identifier.
func SignInHandler(svc auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req struct {
			Identifier string `json:"identifier"`
			Channel    string `json:"channel"`
			Role       string `json:"role"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		code, err := svc.RequestCode(c.Request.Context(), req.Identifier, req.Channel, req.Role)
		if err != nil {
			var verr *auth.ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
				return
			}
			logger.Error("Failed to issue sign-in code", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"userId":      code.UserID,
			"channel":     code.Channel,
			"role":        code.Role,
			"verifyRoute": code.VerifyRoute,
		})
	}
}

// VerifyHandler exchanges the six-digit code for a session and resolves the
// post-sign-in route.
func VerifyHandler(svc auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req struct {
			UserID            string   `json:"userId"`
			Digits            []string `json:"digits"`
			Role              string   `json:"role"`
			PriorSessionToken string   `json:"priorSessionToken"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		result, err := svc.Verify(c.Request.Context(), auth.VerifyInput{
			UserID:            req.UserID,
			Digits:            req.Digits,
			Role:              req.Role,
			PriorSessionToken: req.PriorSessionToken,
		})
		if err != nil {
			var verr *auth.ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
				return
			}
			logger.Warn("Verification failed", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"userId":       result.UserID,
			"token":        result.Token,
			"sessionToken": result.SessionToken,
			"route":        result.Route,
			"clinicId":     result.ClinicID,
		})
	}
}

// ResendHandler re-issues the code once the resend window has elapsed.
func ResendHandler(svc auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req struct {
			UserID string `json:"userId"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		code, err := svc.ResendCode(c.Request.Context(), req.UserID)
		if err != nil {
			var blocked *auth.ResendBlockedError
			if errors.As(err, &blocked) {
				c.JSON(http.StatusTooManyRequests, gin.H{
					"error":      blocked.Error(),
					"retryAfter": int(blocked.RetryAfter.Seconds() + 0.5),
				})
				return
			}
			var verr *auth.ValidationError
			if errors.As(err, &verr) {
				// An expired flow can only be restarted from the sign-in screen.
				c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "route": auth.RouteSignin})
				return
			}
			logger.Error("Failed to resend code", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"userId":      code.UserID,
			"verifyRoute": code.VerifyRoute,
		})
	}
}

// ProfileHandler returns the signed-in account from the identity provider.
func ProfileHandler(svc auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		account, err := svc.Profile(c.Request.Context(), c.GetHeader("X-Session-Token"))
		if err != nil {
			var verr *auth.ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
				return
			}
			logger.Warn("Failed to fetch account profile", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, account)
	}
}

// SignOutHandler closes the provider session, revokes the bearer token, and
// clears cached context.
func SignOutHandler(svc auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req struct {
			SessionToken string `json:"sessionToken"`
		}
		// The body is optional; sign-out works with just the bearer identity.
		_ = c.ShouldBindJSON(&req)

		bearer := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		userID := c.GetString("userID")
		if err := svc.SignOut(c.Request.Context(), userID, bearer, req.SessionToken); err != nil {
			logger.Error("Sign-out failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Sign-out failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "signed out"})
	}
}
