package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/devconnect/devconnect-backend/internal/config"
	"github.com/devconnect/devconnect-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:           "test-secret",
		JWTExpiry:           time.Hour,
		RegisterTokenExpiry: 100 * time.Hour,
	}
}

func TestAuthServiceRegister(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:  "successful registration",
			email: "a@x.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
			},
		},
		{
			name:  "duplicate caught by pre-check",
			email: "taken@x.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "taken@x.com").Return(&models.User{Email: "taken@x.com"}, nil)
			},
			expectedError: ErrEmailTaken,
		},
		{
			name:  "duplicate caught by unique index",
			email: "raced@x.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "raced@x.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			tokens := NewTokenService("test-secret")
			service := NewAuthService(mockRepo, tokens, testConfig())

			token, err := service.Register(context.Background(), "A", tt.email, "secret1")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthServiceRegisterStoresHashNotPlaintext(t *testing.T) {
	mockRepo := new(MockUserRepository)
	var created *models.User
	mockRepo.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*models.User)
		}).Return(nil)

	tokens := NewTokenService("test-secret")
	service := NewAuthService(mockRepo, tokens, testConfig())

	token, err := service.Register(context.Background(), "A", "a@x.com", "secret1")
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.NotEqual(t, "secret1", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret1")))
	assert.Equal(t, models.GravatarURL("a@x.com"), created.Avatar)

	// The returned token names the created user.
	userID, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
}

func TestAuthServiceLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &models.User{ID: uuid.New(), Email: "a@x.com", Password: string(hash)}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "a@x.com",
			password: "secret1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(user, nil)
			},
		},
		{
			name:     "wrong password",
			email:    "a@x.com",
			password: "wrong",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(user, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "nobody@x.com",
			password: "secret1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nobody@x.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			tokens := NewTokenService("test-secret")
			service := NewAuthService(mockRepo, tokens, testConfig())

			token, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				// Unknown email and wrong password must be indistinguishable.
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				userID, verr := tokens.Verify(token)
				require.NoError(t, verr)
				assert.Equal(t, user.ID, userID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthServiceLoginStorageFailure(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "a@x.com").
		Return(nil, errors.New("connection refused"))

	service := NewAuthService(mockRepo, NewTokenService("test-secret"), testConfig())

	token, err := service.Login(context.Background(), "a@x.com", "secret1")
	require.Error(t, err)
	assert.Empty(t, token)

	// A storage outage must not masquerade as a credential failure.
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	assert.ErrorContains(t, err, "connection refused")
}

func TestAuthServiceCurrentUser(t *testing.T) {
	user := &models.User{ID: uuid.New(), Name: "A", Email: "a@x.com"}

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	missing := uuid.New()
	mockRepo.On("FindByID", mock.Anything, missing).Return(nil, gorm.ErrRecordNotFound)

	service := NewAuthService(mockRepo, NewTokenService("test-secret"), testConfig())

	got, err := service.CurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	_, err = service.CurrentUser(context.Background(), missing)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
