package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/socialite-app/backend/internal/middleware"
	"github.com/socialite-app/backend/internal/service"
)

type FollowHandler struct {
	followService *service.FollowService
}

// NewFollowHandler creates a new FollowHandler instance
func NewFollowHandler(followService *service.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// RegisterRoutes wires the follow endpoints.
func (h *FollowHandler) RegisterRoutes(router *gin.RouterGroup, validator middleware.TokenValidator) {
	users := router.Group("/users")
	users.Use(middleware.AuthMiddleware(validator))
	{
		users.POST("/:username/follow", h.Follow)
		users.DELETE("/:username/follow", h.Unfollow)
	}
}

func (h *FollowHandler) Follow(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.followService.FollowUser(c.Request.Context(), userID, c.Param("username")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "following"})
}

func (h *FollowHandler) Unfollow(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.followService.UnfollowUser(c.Request.Context(), userID, c.Param("username")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "unfollowed"})
}
