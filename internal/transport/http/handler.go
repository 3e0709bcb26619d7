package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qzterxm/HealthUp/internal/auth/dto"
	authErrors "github.com/qzterxm/HealthUp/internal/auth/errors"
	"github.com/qzterxm/HealthUp/internal/auth/service"
)

type Handler struct {
	auth  service.AuthService
	reset service.PasswordResetService
	log   *zap.Logger
}

func NewHandler(auth service.AuthService, reset service.PasswordResetService, log *zap.Logger) *Handler {
	return &Handler{auth: auth, reset: reset, log: log}
}

// Register mounts all routes. resetLimit guards only the password-reset
// endpoints; the router-level limiter covers the rest.
func (h *Handler) Register(r *gin.Engine, resetLimit gin.HandlerFunc) {
	api := r.Group("/api/auth")
	api.POST("/register", h.register)
	api.POST("/login", h.login)
	api.POST("/refresh", h.refresh)

	resetGroup := api.Group("/password-reset")
	if resetLimit != nil {
		resetGroup.Use(resetLimit)
	}
	resetGroup.POST("/request", h.resetRequest)
	resetGroup.POST("/validate", h.resetValidate)
	resetGroup.POST("/complete", h.resetComplete)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
	})
}

func (h *Handler) register(c *gin.Context) {
	var body dto.RegisterDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Registration successful",
		"data": gin.H{
			"id":    user.ID.String(),
			"email": user.Email,
			"role":  user.Role.String(),
		},
	})
}

func (h *Handler) login(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := h.auth.Login(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data": gin.H{
			"accessToken":  pair.AccessToken,
			"refreshToken": pair.RefreshToken,
			"expiresAt":    pair.RefreshExpiresAt,
		},
	})
}

func (h *Handler) refresh(c *gin.Context) {
	var body dto.RefreshDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := h.auth.Refresh(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Token refreshed",
		"data": gin.H{
			"accessToken":  pair.AccessToken,
			"refreshToken": pair.RefreshToken,
			"expiresAt":    pair.RefreshExpiresAt,
		},
	})
}

func (h *Handler) resetRequest(c *gin.Context) {
	var body dto.ResetRequestDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.reset.Request(c.Request.Context(), body.Email); err != nil {
		h.handleError(c, err)
		return
	}

	// Same body whether or not the account exists.
	c.JSON(http.StatusOK, gin.H{
		"message": "If the account exists, a reset code has been sent",
	})
}

func (h *Handler) resetValidate(c *gin.Context) {
	var body dto.ResetValidateDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := h.reset.Validate(c.Request.Context(), body.UserID, body.ResetCode)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reset code is valid",
		"data":    gin.H{"userId": userID.String()},
	})
}

func (h *Handler) resetComplete(c *gin.Context) {
	var body dto.ResetCompleteDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.reset.Complete(c.Request.Context(), body); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset"})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case authErrors.IsInvalidArgument(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case authErrors.IsTokenMalformed(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid token format"})
	case authErrors.IsInvalidCredentials(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case authErrors.IsInvalidToken(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
	case authErrors.IsInvalidResetCode(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired reset code"})
	case authErrors.IsAlreadyExists(err):
		c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
	case authErrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case authErrors.IsDeliveryFailed(err):
		h.log.Error("reset code delivery failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send reset code"})
	default:
		h.log.Error("unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
