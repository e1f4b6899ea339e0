package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/venuslabs/venus-backend/internal/domain"
)

type GoalRepository struct {
	pool *pgxpool.Pool
}

func NewGoalRepository(pool *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{pool: pool}
}

func (r *GoalRepository) Create(ctx context.Context, goal *domain.Goal) (*domain.Goal, error) {
	query := `
		INSERT INTO savings_goals (
			owner_id, label, amount, lock_until, status,
			emergency_allowed, emergency_used
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, owner_id, label, amount, lock_until, status,
		          emergency_allowed, emergency_used, created_at`

	row := r.pool.QueryRow(ctx, query,
		goal.OwnerID,
		goal.Label,
		goal.Amount,
		goal.LockUntil,
		goal.Status,
		goal.EmergencyAllowed,
		goal.EmergencyUsed,
	)
	return scanGoal(row)
}

func (r *GoalRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Goal, error) {
	query := `
		SELECT id, owner_id, label, amount, lock_until, status,
		       emergency_allowed, emergency_used, created_at
		FROM savings_goals
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	goals := make([]*domain.Goal, 0)
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

func (r *GoalRepository) GetByID(ctx context.Context, goalID, ownerID string) (*domain.Goal, error) {
	query := `
		SELECT id, owner_id, label, amount, lock_until, status,
		       emergency_allowed, emergency_used, created_at
		FROM savings_goals
		WHERE id = $1 AND owner_id = $2`

	row := r.pool.QueryRow(ctx, query, goalID, ownerID)
	return scanGoal(row)
}

// Withdraw flips status in a single conditional UPDATE so two concurrent
// withdrawals of the same goal cannot both succeed.
func (r *GoalRepository) Withdraw(ctx context.Context, goalID, ownerID string, emergencyUsed bool) (*domain.Goal, error) {
	query := `
		UPDATE savings_goals
		SET    status         = 'withdrawn',
		       emergency_used = $3
		WHERE  id = $1 AND owner_id = $2 AND status = 'locked'
		RETURNING id, owner_id, label, amount, lock_until, status,
		          emergency_allowed, emergency_used, created_at`

	row := r.pool.QueryRow(ctx, query, goalID, ownerID, emergencyUsed)
	updated, err := scanGoal(row)
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, domain.ErrGoalNotFound) {
		return nil, err
	}

	// No row matched: either the goal is gone or it lost the race.
	existing, lookupErr := r.GetByID(ctx, goalID, ownerID)
	if lookupErr != nil {
		return nil, lookupErr
	}
	if existing.Status == domain.GoalStatusWithdrawn {
		return nil, domain.ErrGoalWithdrawn
	}
	return nil, domain.ErrGoalNotFound
}

func scanGoal(row pgx.Row) (*domain.Goal, error) {
	var g domain.Goal
	err := row.Scan(
		&g.ID,
		&g.OwnerID,
		&g.Label,
		&g.Amount,
		&g.LockUntil,
		&g.Status,
		&g.EmergencyAllowed,
		&g.EmergencyUsed,
		&g.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, fmt.Errorf("scan goal: %w", err)
	}
	return &g, nil
}
