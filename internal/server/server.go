package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/socialite-app/backend/internal/api"
	"github.com/socialite-app/backend/internal/database"
	"github.com/socialite-app/backend/internal/middleware"
	"github.com/socialite-app/backend/internal/service"
)

// Server wires the HTTP router to the service layer.
type Server struct {
	router *gin.Engine
	http   *http.Server
}

// Deps carries everything the server needs to assemble its handlers.
type Deps struct {
	DB      *gorm.DB
	Redis   *redis.Client
	Auth    *service.AuthService
	Profile *service.ProfileService
	Privacy *service.PrivacyService
	Follow  *service.FollowService
}

// New builds the router and registers every handler group under /api/v1.
func New(deps Deps) *Server {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), deps.DB); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	authLimiter := middleware.NewAuthRateLimiter(deps.Redis)
	authGroup := v1.Group("")
	authGroup.Use(authLimiter.ByIPMiddleware())
	api.NewAuthHandler(deps.Auth).RegisterRoutes(authGroup)

	api.NewProfileHandler(deps.Profile).RegisterRoutes(v1, deps.Auth, deps.DB)
	api.NewPrivacyHandler(deps.Privacy).RegisterRoutes(v1, deps.Auth)
	api.NewFollowHandler(deps.Follow).RegisterRoutes(v1, deps.Auth)

	return &Server{router: router}
}

// Router exposes the underlying engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start blocks serving HTTP on the given port until Shutdown is called.
func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
