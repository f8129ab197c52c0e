package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/types"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret", nil, nil)

	token, err := svc.Register(context.Background(), &types.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)

	loginToken, err := svc.Login(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, loginToken)

	_, err = svc.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RegisterRejectsDuplicates(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret", nil, nil)

	_, err := svc.Register(context.Background(), &types.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &types.RegisterRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Register(context.Background(), &types.RegisterRequest{
		Username: "alice",
		Email:    "alice2@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthService_PasswordsAreHashed(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret", nil, nil)

	_, err := svc.Register(context.Background(), &types.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.Where("username = ?", "alice").First(&user).Error)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)
}

func TestAuthService_ValidateTokenRejectsGarbage(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret", nil, nil)

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_ValidateTokenRejectsWrongSecret(t *testing.T) {
	db := setupTestDB(t)
	issuer := NewAuthService(db, "secret-a", nil, nil)
	verifier := NewAuthService(db, "secret-b", nil, nil)

	user := createUser(t, db, "alice")
	token, err := issuer.GenerateToken(&types.TokenClaims{
		UserID:   user.ID,
		Username: user.Username,
	})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
