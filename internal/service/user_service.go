package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"conduit/internal/auth"
	"conduit/internal/cache"
	apperrors "conduit/internal/errors"
	"conduit/internal/model"
	"conduit/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// ProfileUpdate carries the optional fields of a profile update. Nil fields
// are left untouched.
type ProfileUpdate struct {
	Username *string
	Email    *string
	Bio      *string
	Image    *string
	Password *string
}

// UserService handles registration, login, and profile operations.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
	FindByID(ctx context.Context, id uint) (*model.User, error)
	UpdateUser(ctx context.Context, id uint, update ProfileUpdate) (*model.User, error)
	IssueToken(user *model.User) (string, error)
}

type userService struct {
	repo       repository.UserRepository
	jwtService *auth.JWTService
	cache      *cache.Client
	bcryptCost int
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository, jwtService *auth.JWTService, cache *cache.Client, bcryptCost int) UserService {
	return &userService{
		repo:       repo,
		jwtService: jwtService,
		cache:      cache,
		bcryptCost: bcryptCost,
	}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// Register creates a user with a hashed password. The uniqueness check runs
// to completion before the insert.
func (s *userService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	taken, err := s.repo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("check user existence: %w", err)
	}
	if taken {
		return nil, apperrors.ErrUserExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login authenticates by email and password.
func (s *userService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// FindByID resolves a user, serving repeated lookups from cache. The auth
// middleware calls this once per authenticated request.
func (s *userService) FindByID(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

// UpdateUser applies a partial profile update. A supplied password is
// re-hashed before it is stored.
func (s *userService) UpdateUser(ctx context.Context, id uint, update ProfileUpdate) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if update.Username != nil {
		user.Username = *update.Username
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if update.Image != nil {
		user.Image = *update.Image
	}
	if update.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*update.Password), s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return user, nil
}

// IssueToken signs a fresh token for the user.
func (s *userService) IssueToken(user *model.User) (string, error) {
	return s.jwtService.GenerateToken(user.ID, user.Username, user.Email)
}
