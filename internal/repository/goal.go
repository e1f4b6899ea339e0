package repository

import (
	"context"

	"github.com/venuslabs/venus-backend/internal/domain"
)

// Usecases depend on the interface, not a concrete implementation.
// This way we can swap the storage backend without touching business rules,
// and pass a memory implementation in tests.
type GoalRepository interface {
	Create(ctx context.Context, goal *domain.Goal) (*domain.Goal, error)
	// ListByOwner returns the owner's goals, most recent first.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Goal, error)
	// GetByID scopes the lookup to ownerID; a goal owned by someone else is
	// indistinguishable from a missing one (domain.ErrGoalNotFound).
	GetByID(ctx context.Context, goalID, ownerID string) (*domain.Goal, error)
	// Withdraw transitions the goal from locked to withdrawn, recording
	// emergencyUsed. The status check and the update are one atomic step:
	// of two concurrent calls exactly one succeeds, the other gets
	// domain.ErrGoalWithdrawn.
	Withdraw(ctx context.Context, goalID, ownerID string, emergencyUsed bool) (*domain.Goal, error)
}
