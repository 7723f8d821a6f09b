package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/findash/findash/internal/auth"
	"github.com/findash/findash/internal/metrics"
	"github.com/findash/findash/internal/model"
	"github.com/findash/findash/internal/repository"
)

// User service errors.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailExists   = errors.New("email already exists")
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrEmptyName     = errors.New("name must not be empty")
	ErrEmptyPassword = errors.New("password must not be empty")
	// ErrUserHasRecords rejects deleting a user who still owns
	// expenses, incomes or goals.
	ErrUserHasRecords = errors.New("user still owns records")
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// UserCache caches user lookups. A cache miss is (nil, nil); cache
// failures never surface past the service.
type UserCache interface {
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	SetUser(ctx context.Context, user *model.User) error
	InvalidateUser(ctx context.Context, user *model.User) error
}

// UserService handles user resource logic.
type UserService struct {
	store   UserStore
	cache   UserCache
	metrics metrics.Recorder
}

// NewUserService creates a new UserService. cache may be nil, in which
// case every read goes to the store.
func NewUserService(store UserStore, cache UserCache, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{
		store:   store,
		cache:   cache,
		metrics: recorder,
	}
}

// CreateUserInput defines input for creating a user.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

// UserPatch holds the mutable user fields for a merge-update.
// Nil fields are left untouched.
type UserPatch struct {
	Name     *string
	Email    *string
	Password *string
}

// List returns all users. Administrative, no scoping.
func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Get returns the user with the given id or ErrUserNotFound.
func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	if s.cache != nil {
		if cached, _ := s.cache.GetUserByID(ctx, id); cached != nil {
			s.metrics.IncUserCacheHit()
			return cached, nil
		}
		s.metrics.IncUserCacheMiss()
	}

	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.SetUser(ctx, user)
	}

	return user, nil
}

// GetByEmail returns the user with the given email or ErrUserNotFound.
// The lookup is exact; a missing email is a normal not-found outcome,
// never a nil user.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.cache != nil {
		if cached, _ := s.cache.GetUserByEmail(ctx, email); cached != nil {
			s.metrics.IncUserCacheHit()
			return cached, nil
		}
		s.metrics.IncUserCacheMiss()
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.SetUser(ctx, user)
	}

	return user, nil
}

// Create validates the input, hashes the password and inserts the user.
// The returned user has its id populated by the store.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*model.User, error) {
	if input.Name == "" {
		return nil, ErrEmptyName
	}
	if !emailRegex.MatchString(input.Email) {
		return nil, ErrInvalidEmail
	}
	if input.Password == "" {
		return nil, ErrEmptyPassword
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.IncCreated(metrics.KindUser)

	return user, nil
}

// Update merge-updates the user with the given id: only fields present
// in the patch are overwritten. Absent ids are a not-found outcome.
func (s *UserService) Update(ctx context.Context, id int64, patch UserPatch) (*model.User, error) {
	existing, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user for update: %w", err)
	}

	stale := *existing

	override(&existing.Name, patch.Name)
	override(&existing.Email, patch.Email)

	if existing.Name == "" {
		return nil, ErrEmptyName
	}
	if !emailRegex.MatchString(existing.Email) {
		return nil, ErrInvalidEmail
	}

	if patch.Password != nil {
		if *patch.Password == "" {
			return nil, ErrEmptyPassword
		}
		hash, err := auth.HashPassword(*patch.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		existing.PasswordHash = hash
	}

	if err := s.store.UpdateUser(ctx, existing); err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repository.ErrEmailExists):
			return nil, ErrEmailExists
		default:
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	if s.cache != nil {
		// Drop both the old and new cache keys; the email may have changed.
		_ = s.cache.InvalidateUser(ctx, &stale)
		_ = s.cache.InvalidateUser(ctx, existing)
	}

	s.metrics.IncUpdated(metrics.KindUser)

	return existing, nil
}

// Delete removes the user with the given id. Deleting an absent id is a
// silent no-op. Owned records are not cascaded.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	var cached *model.User
	if s.cache != nil {
		cached, _ = s.cache.GetUserByID(ctx, id)
	}

	if err := s.store.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserHasRecords) {
			return ErrUserHasRecords
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if s.cache != nil {
		if cached == nil {
			cached = &model.User{ID: id}
		}
		_ = s.cache.InvalidateUser(ctx, cached)
	}

	s.metrics.IncDeleted(metrics.KindUser)

	return nil
}
