package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/socialite-app/backend/internal/models"
)

// userByUsername resolves a username to its user record.
func userByUsername(ctx context.Context, db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	err := db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &user, nil
}
