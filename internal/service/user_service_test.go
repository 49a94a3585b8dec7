package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"conduit/internal/auth"
	apperrors "conduit/internal/errors"
	"conduit/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) FavoriteArticleIDs(ctx context.Context, userID uint) ([]uint, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService("test-secret", time.Hour)
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestUserService_Register(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			username: "jane",
			email:    "jane@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("ExistsByUsernameOrEmail", mock.Anything, "jane", "jane@example.com").Return(false, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "username or email taken",
			username: "jane",
			email:    "jane@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("ExistsByUsernameOrEmail", mock.Anything, "jane", "jane@example.com").Return(true, nil)
			},
			expectedError: apperrors.ErrUserExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMock(repo)

			svc := NewUserService(repo, newTestJWTService(), nil, bcrypt.MinCost)
			user, err := svc.Register(context.Background(), tt.username, tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.username, user.Username)
				assert.NotEqual(t, tt.password, user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tt.password)))
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestUserService_Login(t *testing.T) {
	stored := &model.User{ID: 1, Username: "jane", Email: "jane@example.com"}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*testing.T, *MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "jane@example.com",
			password: "password123",
			setupMock: func(t *testing.T, m *MockUserRepository) {
				user := *stored
				user.PasswordHash = mustHash(t, "password123")
				m.On("FindByEmail", mock.Anything, "jane@example.com").Return(&user, nil)
			},
			expectedError: nil,
		},
		{
			name:     "wrong password",
			email:    "jane@example.com",
			password: "not-the-password",
			setupMock: func(t *testing.T, m *MockUserRepository) {
				user := *stored
				user.PasswordHash = mustHash(t, "password123")
				m.On("FindByEmail", mock.Anything, "jane@example.com").Return(&user, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "password123",
			setupMock: func(t *testing.T, m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMock(t, repo)

			svc := NewUserService(repo, newTestJWTService(), nil, bcrypt.MinCost)
			user, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, stored.Email, user.Email)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestUserService_UpdateUser(t *testing.T) {
	repo := new(MockUserRepository)
	existing := &model.User{
		ID:           1,
		Username:     "jane",
		Email:        "jane@example.com",
		Bio:          "old bio",
		PasswordHash: mustHash(t, "password123"),
	}
	repo.On("FindByID", mock.Anything, uint(1)).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	svc := NewUserService(repo, newTestJWTService(), nil, bcrypt.MinCost)

	bio := "new bio"
	password := "new-password"
	user, err := svc.UpdateUser(context.Background(), 1, ProfileUpdate{Bio: &bio, Password: &password})

	assert.NoError(t, err)
	assert.Equal(t, "new bio", user.Bio)
	assert.Equal(t, "jane", user.Username, "unspecified fields stay untouched")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)))
	repo.AssertExpectations(t)
}

func TestUserService_UpdateUser_NotFound(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByID", mock.Anything, uint(42)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewUserService(repo, newTestJWTService(), nil, bcrypt.MinCost)
	bio := "bio"
	_, err := svc.UpdateUser(context.Background(), 42, ProfileUpdate{Bio: &bio})

	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	repo.AssertExpectations(t)
}

func TestUserService_IssueToken(t *testing.T) {
	jwtService := newTestJWTService()
	svc := NewUserService(new(MockUserRepository), jwtService, nil, bcrypt.MinCost)

	user := &model.User{ID: 7, Username: "jane", Email: "jane@example.com"}
	token, err := svc.IssueToken(user)
	assert.NoError(t, err)

	claims, err := jwtService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "jane", claims.Username)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.NotNil(t, claims.ExpiresAt, "tokens are time-bounded")
}
