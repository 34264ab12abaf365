package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/devconnect/devconnect-backend/internal/config"
	"github.com/devconnect/devconnect-backend/internal/models"
	"github.com/devconnect/devconnect-backend/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken = errors.New("User already exists")
	// ErrInvalidCredentials is returned for unknown email and wrong password
	// alike; callers must not be able to tell which case occurred.
	ErrInvalidCredentials = errors.New("Invalid Credentials")
	ErrUserNotFound       = errors.New("user not found")
)

const bcryptCost = 10

// AuthService is the credential store: it owns registration, password
// verification and the lookup of the authenticated user.
type AuthService struct {
	users  repository.UserRepository
	tokens *TokenService
	cfg    *config.Config
}

func NewAuthService(users repository.UserRepository, tokens *TokenService, cfg *config.Config) *AuthService {
	return &AuthService{users: users, tokens: tokens, cfg: cfg}
}

// Register creates a user with a salted bcrypt hash and a derived gravatar,
// then issues a long-validity token. The unique index on email is the source
// of truth for duplicates; the FindByEmail pre-check just gives the common
// case a cheaper path.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (string, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: string(hash),
		Avatar:   models.GravatarURL(email),
	}

	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", ErrEmailTaken
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	return s.tokens.Issue(user.ID, s.cfg.RegisterTokenExpiry)
}

// Login verifies credentials and issues a token with the default validity.
// Only unknown-email and wrong-password collapse into ErrInvalidCredentials;
// a storage failure is not a credential failure and propagates as one.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID, s.cfg.JWTExpiry)
}

// CurrentUser loads the account behind a verified token. Tokens are not
// revoked on deletion, so this is also the freshness check for callers that
// need the account to still exist.
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
