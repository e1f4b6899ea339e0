package repository

import (
	"context"

	"github.com/venuslabs/venus-backend/internal/domain"
)

type UserRepository interface {
	// Create persists a new user. Emails are stored normalized; a duplicate
	// yields domain.ErrEmailTaken.
	Create(ctx context.Context, email, passwordHash string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
