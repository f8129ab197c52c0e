package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/types"
)

// AuthService handles signup, login and token issue/verify.
type AuthService struct {
	db        *gorm.DB
	jwtSecret string
	otp       *OTPService
	email     IEmailService
}

// NewAuthService creates a new AuthService instance
func NewAuthService(db *gorm.DB, jwtSecret string, otp *OTPService, email IEmailService) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: jwtSecret,
		otp:       otp,
		email:     email,
	}
}

// Register creates the account and kicks off email verification. The
// verification email is best effort; a mail failure never fails the signup.
func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (string, error) {
	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return "", ErrEmailTaken
	}
	if err := s.db.WithContext(ctx).Where("username = ?", req.Username).First(&existing).Error; err == nil {
		return "", ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := models.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return "", err
	}

	if s.otp != nil && s.email != nil {
		code, err := s.otp.Generate(ctx, user.ID)
		if err != nil {
			log.Printf("[AuthService] failed to generate verification code for %s: %v", user.Email, err)
		} else if err := s.email.SendVerificationEmail(&user, code); err != nil {
			log.Printf("[AuthService] failed to send verification email to %s: %v", user.Email, err)
		}
	}

	return s.GenerateToken(&types.TokenClaims{
		UserID:          user.ID,
		Username:        user.Username,
		IsEmailVerified: user.EmailVerified,
	})
}

// Login verifies credentials and returns a fresh token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.GenerateToken(&types.TokenClaims{
		UserID:          user.ID,
		Username:        user.Username,
		IsEmailVerified: user.EmailVerified,
	})
}

// VerifyEmail checks the one-time code and flags the account verified.
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) error {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	ok, err := s.otp.Verify(ctx, user.ID, code)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCode
	}

	if err := s.db.WithContext(ctx).Model(&user).Update("email_verified", true).Error; err != nil {
		return err
	}

	if s.email != nil {
		if err := s.email.SendWelcomeEmail(&user); err != nil {
			log.Printf("[AuthService] failed to send welcome email to %s: %v", user.Email, err)
		}
	}
	return nil
}

// ResendVerification issues a fresh code for an unverified account.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if user.EmailVerified {
		return nil
	}

	code, err := s.otp.Generate(ctx, user.ID)
	if err != nil {
		return err
	}
	return s.email.SendVerificationEmail(&user, code)
}

// GenerateToken signs a 24h token carrying the given claims.
func (s *AuthService) GenerateToken(claims *types.TokenClaims) (string, error) {
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken parses and verifies a token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
