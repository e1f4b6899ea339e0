package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/venuslabs/venus-backend/internal/domain"
	"github.com/venuslabs/venus-backend/internal/repository"
)

type SavingsUsecase struct {
	goals repository.GoalRepository
	now   func() time.Time
}

func NewSavingsUsecase(goals repository.GoalRepository) *SavingsUsecase {
	return &SavingsUsecase{
		goals: goals,
		now:   time.Now,
	}
}

type CreateGoalInput struct {
	OwnerID          string
	Label            string
	Amount           float64
	LockUntil        time.Time
	EmergencyAllowed bool
}

func (u *SavingsUsecase) CreateGoal(ctx context.Context, input CreateGoalInput) (*domain.Goal, error) {
	label := strings.TrimSpace(input.Label)
	if label == "" {
		return nil, fmt.Errorf("%w: label is required", domain.ErrInvalidInput)
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be a positive number", domain.ErrInvalidInput)
	}
	if input.LockUntil.IsZero() {
		return nil, fmt.Errorf("%w: lock date is required", domain.ErrInvalidInput)
	}

	goal := &domain.Goal{
		OwnerID:          input.OwnerID,
		Label:            label,
		Amount:           input.Amount,
		LockUntil:        input.LockUntil,
		Status:           domain.GoalStatusLocked,
		EmergencyAllowed: input.EmergencyAllowed,
		EmergencyUsed:    false,
	}

	created, err := u.goals.Create(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}
	return created, nil
}

func (u *SavingsUsecase) ListGoals(ctx context.Context, ownerID string) ([]*domain.Goal, error) {
	goals, err := u.goals.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

// Withdraw runs the single locked -> withdrawn transition. Whether it counts
// as an emergency follows from the clock: past the lock date the release is
// normal, before it the goal must have opted in. The repository makes the
// final status flip atomic, so a concurrent duplicate observes
// domain.ErrGoalWithdrawn.
func (u *SavingsUsecase) Withdraw(ctx context.Context, ownerID, goalID string) (*domain.Goal, error) {
	goal, err := u.goals.GetByID(ctx, goalID, ownerID)
	if err != nil {
		return nil, err
	}

	if goal.Status == domain.GoalStatusWithdrawn {
		return nil, domain.ErrGoalWithdrawn
	}

	// Inclusive boundary: a lock date of exactly "now" is unlocked.
	timeUnlocked := !u.now().Before(goal.LockUntil)
	if !timeUnlocked && !goal.EmergencyAllowed {
		return nil, domain.ErrWithdrawalLocked
	}

	updated, err := u.goals.Withdraw(ctx, goalID, ownerID, !timeUnlocked)
	if err != nil {
		return nil, err
	}
	return updated, nil
}
