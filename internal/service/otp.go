package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const otpTTL = 10 * time.Minute

// OTPService issues and checks time-boxed one-time codes backed by Redis.
type OTPService struct {
	redis *redis.Client
}

// NewOTPService creates a new OTPService instance
func NewOTPService(redisClient *redis.Client) *OTPService {
	return &OTPService{redis: redisClient}
}

// Generate creates a 6-digit code for the user, replacing any outstanding
// one.
func (s *OTPService) Generate(ctx context.Context, userID uuid.UUID) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	code := fmt.Sprintf("%06d", n.Int64())

	if err := s.redis.Set(ctx, otpKey(userID), code, otpTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store code: %w", err)
	}
	return code, nil
}

// Verify checks the code and consumes it on success.
func (s *OTPService) Verify(ctx context.Context, userID uuid.UUID, code string) (bool, error) {
	stored, err := s.redis.Get(ctx, otpKey(userID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read code: %w", err)
	}
	if stored != code {
		return false, nil
	}
	if err := s.redis.Del(ctx, otpKey(userID)).Err(); err != nil {
		return false, fmt.Errorf("failed to consume code: %w", err)
	}
	return true, nil
}

func otpKey(userID uuid.UUID) string {
	return fmt.Sprintf("otp:email_verification:%s", userID)
}
