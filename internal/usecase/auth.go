package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/venuslabs/venus-backend/internal/domain"
	"github.com/venuslabs/venus-backend/internal/password"
	"github.com/venuslabs/venus-backend/internal/repository"
	"github.com/venuslabs/venus-backend/internal/session"
)

type AuthUsecase struct {
	users    repository.UserRepository
	hasher   password.Hasher
	sessions *session.Manager
}

func NewAuthUsecase(users repository.UserRepository, hasher password.Hasher, sessions *session.Manager) *AuthUsecase {
	return &AuthUsecase{
		users:    users,
		hasher:   hasher,
		sessions: sessions,
	}
}

// Register creates an account and mints a session credential for it.
// Emails are normalized before the uniqueness check.
func (u *AuthUsecase) Register(ctx context.Context, email, plainPassword string) (*domain.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || plainPassword == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	hash, err := u.hasher.Hash(plainPassword)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.Create(ctx, email, hash)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, "", domain.ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := u.sessions.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue session: %w", err)
	}
	return user, token, nil
}

// Login verifies credentials and mints a session credential. Unknown email
// and wrong password return the same error so callers cannot probe which
// accounts exist.
func (u *AuthUsecase) Login(ctx context.Context, email, plainPassword string) (*domain.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || plainPassword == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if !u.hasher.Verify(user.PasswordHash, plainPassword) {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := u.sessions.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue session: %w", err)
	}
	return user, token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
