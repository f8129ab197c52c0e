package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/socialite-app/backend/config"
	"github.com/socialite-app/backend/internal/database"
	"github.com/socialite-app/backend/internal/server"
	"github.com/socialite-app/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	s3Cfg, err := config.NewS3Config(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize S3: %v", err)
	}

	emailService := service.NewEmailService()
	otpService := service.NewOTPService(redisClient)
	authService := service.NewAuthService(db, cfg.JWTSecret, otpService, emailService)
	privacyService := service.NewPrivacyService(db)
	followService := service.NewFollowService(db)
	profileService := service.NewProfileService(db, service.NewS3Storage(s3Cfg), followService, privacyService)

	srv := server.New(server.Deps{
		DB:      db,
		Redis:   redisClient,
		Auth:    authService,
		Profile: profileService,
		Privacy: privacyService,
		Follow:  followService,
	})

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on port %s", cfg.ServerPort)
		errChan <- srv.Start(cfg.ServerPort)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
