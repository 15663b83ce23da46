package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vibast-solutions/ms-go-blog-auth/app/entity"
	"github.com/vibast-solutions/ms-go-blog-auth/app/repository"
	"github.com/vibast-solutions/ms-go-blog-auth/app/types"
	"github.com/vibast-solutions/ms-go-blog-auth/config"

	"github.com/sirupsen/logrus"
)

const (
	defaultUsersPageSize = 50
	suggestedTeachers    = 2
)

type profileRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uint64) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	Search(ctx context.Context, term string, limit int) ([]*entity.User, error)
	SuggestTeachers(ctx context.Context, limit int) ([]*entity.User, error)
	UpdateNames(ctx context.Context, userID uint64, firstname, lastname string) error
	ToggleVerified(ctx context.Context, userID uint64) error
}

type UserService interface {
	Profile(ctx context.Context, userID uint64) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID uint64, req *types.UpdateProfileRequest) (*entity.User, error)
	ToggleVerification(ctx context.Context, userID uint64) (*entity.User, error)
	ToggleVerificationByEmail(ctx context.Context, email string) (*entity.User, error)
	ListUsers(ctx context.Context, req *types.ListUsersRequest) ([]*entity.User, error)
	SearchUsers(ctx context.Context, query string) ([]*entity.User, error)
	SuggestTeachers(ctx context.Context) ([]*entity.User, error)
	SeedAdmin(ctx context.Context) (bool, error)
}

type userService struct {
	userRepo profileRepository
	hasher   PasswordHasher
	admin    config.AdminConfig
}

func NewUserService(userRepo profileRepository, hasher PasswordHasher, cfg *config.Config) UserService {
	if hasher == nil {
		hasher = NewBcryptHasher(0)
	}
	return &userService{
		userRepo: userRepo,
		hasher:   hasher,
		admin:    cfg.Admin,
	}
}

func (s *userService) Profile(ctx context.Context, userID uint64) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uint64, req *types.UpdateProfileRequest) (*entity.User, error) {
	if err := s.userRepo.UpdateNames(ctx, userID, req.FirstName, req.LastName); err != nil {
		return nil, err
	}
	return s.Profile(ctx, userID)
}

func (s *userService) ToggleVerification(ctx context.Context, userID uint64) (*entity.User, error) {
	if err := s.userRepo.ToggleVerified(ctx, userID); err != nil {
		return nil, err
	}
	return s.Profile(ctx, userID)
}

func (s *userService) ToggleVerificationByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.ToggleVerification(ctx, user.ID)
}

func (s *userService) ListUsers(ctx context.Context, req *types.ListUsersRequest) ([]*entity.User, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultUsersPageSize
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}
	return s.userRepo.List(ctx, limit, offset)
}

// SearchUsers matches first or last name case-insensitively. A blank query
// matches nobody.
func (s *userService) SearchUsers(ctx context.Context, query string) ([]*entity.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*entity.User{}, nil
	}
	return s.userRepo.Search(ctx, query, defaultUsersPageSize)
}

func (s *userService) SuggestTeachers(ctx context.Context) ([]*entity.User, error) {
	return s.userRepo.SuggestTeachers(ctx, suggestedTeachers)
}

// SeedAdmin creates the configured admin account unless it already exists.
// It reports whether an account was created.
func (s *userService) SeedAdmin(ctx context.Context) (bool, error) {
	email := NormalizeEmail(s.admin.Email)
	if email == "" || s.admin.Password == "" {
		logrus.Info("Admin credentials not configured, skipping admin seeding")
		return false, nil
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	hashedPassword, err := s.hasher.Hash(s.admin.Password)
	if err != nil {
		return false, err
	}

	now := time.Now()
	admin := &entity.User{
		Firstname:    "Admin",
		Lastname:     "User",
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         entity.RoleAdmin,
		IsVerified:   true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err = s.userRepo.Create(ctx, admin); err != nil {
		// Another instance seeded it first.
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return false, nil
		}
		return false, fmt.Errorf("seed admin: %w", err)
	}

	logrus.WithField("email", email).Info("Default admin account created")
	return true, nil
}
