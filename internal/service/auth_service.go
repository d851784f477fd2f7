package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/storefront-api/internal/config"
	"github.com/storefront-api/internal/mailer"
	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/repository"
	"github.com/storefront-api/pkg/crypto"
)

var (
	// ErrInvalidCredentials is returned for unknown email and wrong
	// password alike, so callers cannot probe which accounts exist
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserTaken          = errors.New("user already registered")
	ErrInvalidToken       = errors.New("invalid token")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrInvalidResetToken  = errors.New("reset token is invalid or has expired")
	ErrMailDispatch       = errors.New("failed to send email")
)

// ResetTokenTTL is how long a password-reset token stays valid
const ResetTokenTTL = 10 * time.Minute

// AuthService handles registration, login, tokens and the reset flow
type AuthService struct {
	userRepo  *repository.UserRepository
	mailer    mailer.Mailer
	jwtConfig config.JWTConfig
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo *repository.UserRepository, m mailer.Mailer, jwtConfig config.JWTConfig) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		mailer:    m,
		jwtConfig: jwtConfig,
	}
}

// RegisterRequest represents the registration request
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=100"`
}

// LoginRequest represents the login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthClaims represents the JWT claims
type AuthClaims struct {
	UserID       uint `json:"user_id"`
	TokenVersion int  `json:"token_version"`
	jwt.RegisteredClaims
}

// Register registers a new user and issues a token
func (s *AuthService) Register(req *RegisterRequest) (*models.User, string, error) {
	passwordHash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         models.RoleUser,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, "", ErrUserTaken
		}
		return nil, "", err
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login authenticates a user and issues a token
func (s *AuthService) Login(req *LoginRequest) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !crypto.CheckPassword(req.Password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// ValidateToken validates a JWT token and returns the claims
func (s *AuthService) ValidateToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtConfig.Secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))

	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*AuthClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// GenerateToken issues a signed token for a user. The embedded token version
// ties the token to the user's current password.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	expiresIn := time.Duration(s.jwtConfig.ExpireHours) * time.Hour

	claims := &AuthClaims{
		UserID:       user.ID,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "storefront-api",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtConfig.Secret))
}

// GetUserByID retrieves a user by ID
func (s *AuthService) GetUserByID(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// UpdatePassword changes a user's password after verifying the old one.
// Outstanding tokens are invalidated by bumping the token version.
func (s *AuthService) UpdatePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	if !crypto.CheckPassword(oldPassword, user.PasswordHash) {
		return ErrWrongPassword
	}

	hash, err := crypto.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	user.TokenVersion++
	return s.userRepo.Update(user)
}

// ForgotPassword starts the reset flow. The response is uniform whether or
// not the email belongs to an account. A failed mail dispatch clears the
// stored token fields again so no orphaned pending reset survives.
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}
		return err
	}

	token, tokenHash, err := crypto.GenerateResetToken()
	if err != nil {
		return err
	}

	expiry := time.Now().Add(ResetTokenTTL)
	user.ResetTokenHash = &tokenHash
	user.ResetTokenExpiry = &expiry
	if err := s.userRepo.Update(user); err != nil {
		return err
	}

	body := fmt.Sprintf(
		"You requested a password reset. Use the following token to complete it:\n\n%s\n\nThis token is valid for 10 minutes only.",
		token,
	)
	if err := s.mailer.Send(user.Email, "Password reset", body); err != nil {
		user.ResetTokenHash = nil
		user.ResetTokenExpiry = nil
		if rbErr := s.userRepo.Update(user); rbErr != nil {
			return rbErr
		}
		return ErrMailDispatch
	}

	return nil
}

// ResetPassword consumes a reset token: the stored hash must match and the
// expiry must still be in the future. Password hash, cleared reset fields
// and the bumped token version are persisted in one update.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	tokenHash := crypto.HashResetToken(token)

	user, err := s.userRepo.GetByValidResetToken(tokenHash, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	hash, err := crypto.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	user.ResetTokenHash = nil
	user.ResetTokenExpiry = nil
	user.TokenVersion++
	return s.userRepo.Update(user)
}
