// Package auth handles account registration and login on top of the
// ledger repository. It owns credential hashing; the repository only ever
// stores the resulting opaque hash.
package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"tally/internal/core"
	applog "tally/internal/log"
	"tally/internal/storage"
)

// ErrInvalidCredentials is returned for both unknown usernames and wrong
// passwords so a caller cannot probe which accounts exist.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Service registers and authenticates users.
type Service struct {
	repo *storage.Repository
	log  *applog.Logger
}

func NewService(repo *storage.Repository, logger *applog.Logger) *Service {
	return &Service{repo: repo, log: logger.WithComponent(applog.ComponentAuth)}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, username, password string) (core.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return core.User{}, core.NewValidationError("username", "username is required")
	}
	if strings.TrimSpace(password) == "" {
		return core.User{}, core.NewValidationError("password", "password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return core.User{}, core.NewTransactionError(core.CodeLedgerError, "failed to hash password", err)
	}

	user, err := s.repo.CreateUser(ctx, core.User{Username: username, PasswordHash: string(hash)})
	if err != nil {
		return core.User{}, err
	}

	s.log.InfoContext(ctx, "user registered", applog.FieldUserID, user.ID)
	return user, nil
}

// Login verifies the credentials and returns the matching user.
func (s *Service) Login(ctx context.Context, username, password string) (core.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if core.IsNotFound(err) {
			return core.User{}, ErrInvalidCredentials
		}
		return core.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return core.User{}, ErrInvalidCredentials
	}

	s.log.InfoContext(ctx, "user logged in", applog.FieldUserID, user.ID)
	return user, nil
}
