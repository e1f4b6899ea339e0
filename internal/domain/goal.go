package domain

import (
	"errors"
	"time"
)

var (
	ErrGoalNotFound     = errors.New("savings goal not found")
	ErrGoalWithdrawn    = errors.New("goal already withdrawn")
	ErrWithdrawalLocked = errors.New("goal does not allow emergency withdrawal yet")
)

type GoalStatus string

const (
	GoalStatusLocked    GoalStatus = "locked"
	GoalStatusWithdrawn GoalStatus = "withdrawn"
)

// Goal is a lockable savings goal. It starts locked and can move to
// withdrawn exactly once; EmergencyUsed records whether that happened
// before LockUntil.
type Goal struct {
	ID               string
	OwnerID          string
	Label            string
	Amount           float64
	LockUntil        time.Time
	Status           GoalStatus
	EmergencyAllowed bool
	EmergencyUsed    bool
	CreatedAt        time.Time
}
