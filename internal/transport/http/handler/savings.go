package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/venuslabs/venus-backend/internal/domain"
	"github.com/venuslabs/venus-backend/internal/metrics"
	"github.com/venuslabs/venus-backend/internal/usecase"
)

type savingsUsecaser interface {
	CreateGoal(ctx context.Context, input usecase.CreateGoalInput) (*domain.Goal, error)
	ListGoals(ctx context.Context, ownerID string) ([]*domain.Goal, error)
	Withdraw(ctx context.Context, ownerID, goalID string) (*domain.Goal, error)
}

type SavingsHandler struct {
	savings savingsUsecaser
	logger  *slog.Logger
}

func NewSavingsHandler(savings savingsUsecaser, logger *slog.Logger) *SavingsHandler {
	return &SavingsHandler{
		savings: savings,
		logger:  logger.With("component", "savings_handler"),
	}
}

// Field names match the reference client payloads.
type createGoalRequest struct {
	Label            string  `json:"label" binding:"required"`
	Amount           float64 `json:"amount"`
	LockUntil        string  `json:"lockUntil" binding:"required"`
	EmergencyAllowed bool    `json:"emergencyAllowed"`
}

type goalResponse struct {
	ID               string            `json:"id"`
	Label            string            `json:"label"`
	Amount           float64           `json:"amount"`
	LockUntil        time.Time         `json:"lockUntil"`
	Status           domain.GoalStatus `json:"status"`
	EmergencyAllowed bool              `json:"emergencyAllowed"`
	EmergencyUsed    bool              `json:"emergencyUsed"`
	CreatedAt        time.Time         `json:"createdAt"`
}

func toGoalResponse(g *domain.Goal) goalResponse {
	return goalResponse{
		ID:               g.ID,
		Label:            g.Label,
		Amount:           g.Amount,
		LockUntil:        g.LockUntil,
		Status:           g.Status,
		EmergencyAllowed: g.EmergencyAllowed,
		EmergencyUsed:    g.EmergencyUsed,
		CreatedAt:        g.CreatedAt,
	}
}

// GET /api/savings
func (h *SavingsHandler) List(c *gin.Context) {
	ownerID := c.GetString("userID")

	goals, err := h.savings.ListGoals(c.Request.Context(), ownerID)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list goals", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	out := make([]goalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, toGoalResponse(g))
	}
	c.JSON(http.StatusOK, gin.H{"goals": out})
}

// POST /api/savings
func (h *SavingsHandler) Create(c *gin.Context) {
	ownerID := c.GetString("userID")

	var req createGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": errMissingGoalFields})
		return
	}
	if req.Amount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": errMissingGoalFields})
		return
	}
	if req.Amount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": errAmountNotPositive})
		return
	}

	lockUntil, err := parseLockUntil(req.LockUntil)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": errBadLockDate})
		return
	}

	goal, err := h.savings.CreateGoal(c.Request.Context(), usecase.CreateGoalInput{
		OwnerID:          ownerID,
		Label:            req.Label,
		Amount:           req.Amount,
		LockUntil:        lockUntil,
		EmergencyAllowed: req.EmergencyAllowed,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"message": errMissingGoalFields})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "create goal", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	metrics.GoalsCreatedTotal.Inc()
	c.JSON(http.StatusCreated, gin.H{
		"message": "savings goal created.",
		"goal":    toGoalResponse(goal),
	})
}

// POST /api/savings/:id/emergency-withdraw
func (h *SavingsHandler) Withdraw(c *gin.Context) {
	ownerID := c.GetString("userID")
	goalID := c.Param("id")

	goal, err := h.savings.Withdraw(c.Request.Context(), ownerID, goalID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrGoalNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": errGoalNotFound})
		case errors.Is(err, domain.ErrGoalWithdrawn):
			c.JSON(http.StatusBadRequest, gin.H{"message": errGoalWithdrawn})
		case errors.Is(err, domain.ErrWithdrawalLocked):
			c.JSON(http.StatusForbidden, gin.H{"message": errWithdrawalLocked})
		default:
			h.logger.ErrorContext(c.Request.Context(), "withdraw goal", "goal_id", goalID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		}
		return
	}

	msg := "goal withdrawn (lock date passed)."
	kind := "matured"
	if goal.EmergencyUsed {
		msg = "emergency withdrawal processed."
		kind = "emergency"
	}
	metrics.WithdrawalsTotal.WithLabelValues(kind).Inc()

	c.JSON(http.StatusOK, gin.H{
		"message": msg,
		"goal":    toGoalResponse(goal),
	})
}

// parseLockUntil accepts RFC 3339 timestamps and bare dates, which is what
// the client's date input submits.
func parseLockUntil(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
