// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/newsdesk/newsdesk/internal/metrics"
	"github.com/newsdesk/newsdesk/internal/model"
	"github.com/newsdesk/newsdesk/internal/repository"
)

// Service errors.
var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserStore persists users.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	UserExists(ctx context.Context, id int64) (bool, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) (bool, error)
}

// AccountService handles registration and credential checks.
type AccountService struct {
	store   UserStore
	hasher  PasswordHasher
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(store UserStore, hasher PasswordHasher, recorder metrics.Recorder, logger *slog.Logger) *AccountService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountService{
		store:   store,
		hasher:  hasher,
		metrics: recorder,
		logger:  logger,
	}
}

// Register creates a user. Returns ErrDuplicateUsername if the username is taken.
func (s *AccountService) Register(ctx context.Context, username, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			s.metrics.IncRegistration("duplicate")
			return ErrDuplicateUsername
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.IncRegistration("success")
	return nil
}

// Login returns the user id for valid credentials. Unknown usernames and
// wrong passwords both return ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, username, password string) (int64, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncLogin("invalid")
			return 0, ErrInvalidCredentials
		}
		return 0, fmt.Errorf("failed to load user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.logger.Warn("stored password hash is unreadable",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}
	if err != nil || !ok {
		s.metrics.IncLogin("invalid")
		return 0, ErrInvalidCredentials
	}

	s.metrics.IncLogin("success")
	return user.ID, nil
}

// UserExists reports whether a user id is registered.
func (s *AccountService) UserExists(ctx context.Context, id int64) (bool, error) {
	return s.store.UserExists(ctx, id)
}
