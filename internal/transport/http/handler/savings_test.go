package handler_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/venuslabs/venus-backend/internal/domain"
	"github.com/venuslabs/venus-backend/internal/transport/http/handler"
	"github.com/venuslabs/venus-backend/internal/usecase"
)

type fakeSavingsUsecase struct {
	createGoal func(ctx context.Context, input usecase.CreateGoalInput) (*domain.Goal, error)
	listGoals  func(ctx context.Context, ownerID string) ([]*domain.Goal, error)
	withdraw   func(ctx context.Context, ownerID, goalID string) (*domain.Goal, error)
}

func (f *fakeSavingsUsecase) CreateGoal(ctx context.Context, input usecase.CreateGoalInput) (*domain.Goal, error) {
	return f.createGoal(ctx, input)
}

func (f *fakeSavingsUsecase) ListGoals(ctx context.Context, ownerID string) ([]*domain.Goal, error) {
	return f.listGoals(ctx, ownerID)
}

func (f *fakeSavingsUsecase) Withdraw(ctx context.Context, ownerID, goalID string) (*domain.Goal, error) {
	return f.withdraw(ctx, ownerID, goalID)
}

// newSavingsEngine wires the handler behind a stub gateway that injects the
// owner identity, mirroring what the auth middleware does in production.
func newSavingsEngine(uc *fakeSavingsUsecase, ownerID string) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	h := handler.NewSavingsHandler(uc, logger)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("userID", ownerID) })
	r.GET("/api/savings", h.List)
	r.POST("/api/savings", h.Create)
	r.POST("/api/savings/:id/emergency-withdraw", h.Withdraw)
	return r
}

var lockedGoal = &domain.Goal{
	ID:        "goal-1",
	OwnerID:   "user-1",
	Label:     "trip",
	Amount:    100,
	LockUntil: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
	Status:    domain.GoalStatusLocked,
}

// ---- List ----

func TestListGoals_ScopesToAuthenticatedOwner(t *testing.T) {
	var gotOwner string
	uc := &fakeSavingsUsecase{
		listGoals: func(_ context.Context, ownerID string) ([]*domain.Goal, error) {
			gotOwner = ownerID
			return []*domain.Goal{lockedGoal}, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/savings", nil)
	newSavingsEngine(uc, "user-1").ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotOwner != "user-1" {
		t.Errorf("owner = %q, want user-1", gotOwner)
	}
	if !strings.Contains(w.Body.String(), `"goal-1"`) {
		t.Errorf("body %q missing goal", w.Body.String())
	}
}

func TestListGoals_Empty_ReturnsEmptyArray(t *testing.T) {
	uc := &fakeSavingsUsecase{
		listGoals: func(_ context.Context, _ string) ([]*domain.Goal, error) {
			return nil, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/savings", nil)
	newSavingsEngine(uc, "user-1").ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"goals":[]`) {
		t.Errorf("body %q should contain an empty goals array, not null", w.Body.String())
	}
}

// ---- Create ----

func TestCreateGoal_MissingLabel_Returns400(t *testing.T) {
	w := postJSON(t, newSavingsEngine(&fakeSavingsUsecase{}, "user-1"), "/api/savings",
		`{"amount":100,"lockUntil":"2026-01-01"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCreateGoal_ZeroAmount_Returns400(t *testing.T) {
	w := postJSON(t, newSavingsEngine(&fakeSavingsUsecase{}, "user-1"), "/api/savings",
		`{"label":"trip","amount":0,"lockUntil":"2026-01-01"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCreateGoal_NegativeAmount_Returns400(t *testing.T) {
	w := postJSON(t, newSavingsEngine(&fakeSavingsUsecase{}, "user-1"), "/api/savings",
		`{"label":"trip","amount":-5,"lockUntil":"2026-01-01"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "positive") {
		t.Errorf("body %q should mention the amount rule", w.Body.String())
	}
}

func TestCreateGoal_UnparseableLockDate_Returns400(t *testing.T) {
	w := postJSON(t, newSavingsEngine(&fakeSavingsUsecase{}, "user-1"), "/api/savings",
		`{"label":"trip","amount":100,"lockUntil":"not-a-date"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCreateGoal_Success_Returns201(t *testing.T) {
	var gotInput usecase.CreateGoalInput
	uc := &fakeSavingsUsecase{
		createGoal: func(_ context.Context, input usecase.CreateGoalInput) (*domain.Goal, error) {
			gotInput = input
			return lockedGoal, nil
		},
	}

	w := postJSON(t, newSavingsEngine(uc, "user-1"), "/api/savings",
		`{"label":"trip","amount":100,"lockUntil":"2026-01-01","emergencyAllowed":true}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	if gotInput.OwnerID != "user-1" {
		t.Errorf("owner = %q, want user-1", gotInput.OwnerID)
	}
	if !gotInput.EmergencyAllowed {
		t.Error("emergencyAllowed not passed through")
	}
	want := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !gotInput.LockUntil.Equal(want) {
		t.Errorf("lockUntil = %v, want %v", gotInput.LockUntil, want)
	}
}

func TestCreateGoal_AcceptsRFC3339LockDate(t *testing.T) {
	var gotLockUntil time.Time
	uc := &fakeSavingsUsecase{
		createGoal: func(_ context.Context, input usecase.CreateGoalInput) (*domain.Goal, error) {
			gotLockUntil = input.LockUntil
			return lockedGoal, nil
		},
	}

	w := postJSON(t, newSavingsEngine(uc, "user-1"), "/api/savings",
		`{"label":"trip","amount":100,"lockUntil":"2026-01-01T15:04:05Z"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	want := time.Date(2026, time.January, 1, 15, 4, 5, 0, time.UTC)
	if !gotLockUntil.Equal(want) {
		t.Errorf("lockUntil = %v, want %v", gotLockUntil, want)
	}
}

// ---- Withdraw ----

func TestWithdraw_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", domain.ErrGoalNotFound, http.StatusNotFound},
		{"already withdrawn", domain.ErrGoalWithdrawn, http.StatusBadRequest},
		{"still locked", domain.ErrWithdrawalLocked, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeSavingsUsecase{
				withdraw: func(_ context.Context, _, _ string) (*domain.Goal, error) {
					return nil, tt.err
				},
			}
			w := postJSON(t, newSavingsEngine(uc, "user-1"),
				"/api/savings/goal-1/emergency-withdraw", ``)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestWithdraw_Matured_MessageSaysLockDatePassed(t *testing.T) {
	withdrawn := *lockedGoal
	withdrawn.Status = domain.GoalStatusWithdrawn
	withdrawn.EmergencyUsed = false

	uc := &fakeSavingsUsecase{
		withdraw: func(_ context.Context, _, goalID string) (*domain.Goal, error) {
			return &withdrawn, nil
		},
	}
	w := postJSON(t, newSavingsEngine(uc, "user-1"),
		"/api/savings/goal-1/emergency-withdraw", ``)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "lock date passed") {
		t.Errorf("body %q should say the lock date passed", w.Body.String())
	}
}

func TestWithdraw_Emergency_MessageSaysEmergency(t *testing.T) {
	withdrawn := *lockedGoal
	withdrawn.Status = domain.GoalStatusWithdrawn
	withdrawn.EmergencyUsed = true

	uc := &fakeSavingsUsecase{
		withdraw: func(_ context.Context, _, _ string) (*domain.Goal, error) {
			return &withdrawn, nil
		},
	}
	w := postJSON(t, newSavingsEngine(uc, "user-1"),
		"/api/savings/goal-1/emergency-withdraw", ``)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "emergency withdrawal processed") {
		t.Errorf("body %q should say emergency withdrawal", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"emergencyUsed":true`) {
		t.Errorf("body %q should expose emergencyUsed", w.Body.String())
	}
}
