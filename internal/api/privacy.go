package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/socialite-app/backend/internal/middleware"
	"github.com/socialite-app/backend/internal/service"
	"github.com/socialite-app/backend/internal/types"
)

type PrivacyHandler struct {
	privacyService *service.PrivacyService
}

// NewPrivacyHandler creates a new PrivacyHandler instance
func NewPrivacyHandler(privacyService *service.PrivacyService) *PrivacyHandler {
	return &PrivacyHandler{privacyService: privacyService}
}

// RegisterRoutes wires the privacy settings and block list endpoints.
func (h *PrivacyHandler) RegisterRoutes(router *gin.RouterGroup, validator middleware.TokenValidator) {
	privacy := router.Group("/privacy")
	privacy.Use(middleware.AuthMiddleware(validator))
	{
		privacy.GET("", h.GetSettings)
		privacy.PUT("", h.UpdateSettings)
	}

	users := router.Group("/users")
	users.Use(middleware.AuthMiddleware(validator))
	{
		users.POST("/:username/block", h.BlockUser)
		users.DELETE("/:username/block", h.UnblockUser)
	}
}

func (h *PrivacyHandler) GetSettings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	settings, err := h.privacyService.GetOrCreate(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (h *PrivacyHandler) UpdateSettings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req types.UpdatePrivacySettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	settings, err := h.privacyService.Update(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (h *PrivacyHandler) BlockUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	// Reason is optional; an empty body is accepted.
	var req types.BlockUserRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	if err := h.privacyService.BlockUser(c.Request.Context(), userID, c.Param("username"), req.Reason); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user blocked"})
}

func (h *PrivacyHandler) UnblockUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.privacyService.UnblockUser(c.Request.Context(), userID, c.Param("username")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user unblocked"})
}
