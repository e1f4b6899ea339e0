package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/venuslabs/venus-backend/internal/domain"
)

type GoalRepository struct {
	mu      sync.Mutex
	byOwner map[string][]*domain.Goal
}

func NewGoalRepository() *GoalRepository {
	return &GoalRepository{byOwner: make(map[string][]*domain.Goal)}
}

func (r *GoalRepository) Create(_ context.Context, goal *domain.Goal) (*domain.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g := *goal
	g.ID = uuid.NewString()
	g.CreatedAt = time.Now()
	r.byOwner[g.OwnerID] = append(r.byOwner[g.OwnerID], &g)

	out := g
	return &out, nil
}

func (r *GoalRepository) ListByOwner(_ context.Context, ownerID string) ([]*domain.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.byOwner[ownerID]
	goals := make([]*domain.Goal, 0, len(stored))
	// Goals are appended in creation order; listings are most recent first.
	for i := len(stored) - 1; i >= 0; i-- {
		out := *stored[i]
		goals = append(goals, &out)
	}
	return goals, nil
}

func (r *GoalRepository) GetByID(_ context.Context, goalID, ownerID string) (*domain.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g := r.find(goalID, ownerID)
	if g == nil {
		return nil, domain.ErrGoalNotFound
	}
	out := *g
	return &out, nil
}

// Withdraw performs the status check and the transition under one lock, so
// concurrent calls for the same goal serialize and only one can succeed.
func (r *GoalRepository) Withdraw(_ context.Context, goalID, ownerID string, emergencyUsed bool) (*domain.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g := r.find(goalID, ownerID)
	if g == nil {
		return nil, domain.ErrGoalNotFound
	}
	if g.Status == domain.GoalStatusWithdrawn {
		return nil, domain.ErrGoalWithdrawn
	}

	g.Status = domain.GoalStatusWithdrawn
	g.EmergencyUsed = emergencyUsed

	out := *g
	return &out, nil
}

// find must be called with the lock held.
func (r *GoalRepository) find(goalID, ownerID string) *domain.Goal {
	for _, g := range r.byOwner[ownerID] {
		if g.ID == goalID {
			return g
		}
	}
	return nil
}
