package handler_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/venuslabs/venus-backend/internal/domain"
	"github.com/venuslabs/venus-backend/internal/session"
	"github.com/venuslabs/venus-backend/internal/transport/http/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeAuthUsecase implements the unexported authUsecaser interface via method matching.
type fakeAuthUsecase struct {
	register func(ctx context.Context, email, password string) (*domain.User, string, error)
	login    func(ctx context.Context, email, password string) (*domain.User, string, error)
}

func (f *fakeAuthUsecase) Register(ctx context.Context, email, password string) (*domain.User, string, error) {
	return f.register(ctx, email, password)
}

func (f *fakeAuthUsecase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	return f.login(ctx, email, password)
}

func newAuthEngine(uc *fakeAuthUsecase) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	h := handler.NewAuthHandler(uc, logger, false)

	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/logout", h.Logout)
	return r
}

func postJSON(t *testing.T, r http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func authCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

// ---- Register ----

func TestRegister_InvalidJSON_Returns400(t *testing.T) {
	w := postJSON(t, newAuthEngine(&fakeAuthUsecase{}), "/api/auth/register", `{bad json}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRegister_MissingPassword_Returns400(t *testing.T) {
	w := postJSON(t, newAuthEngine(&fakeAuthUsecase{}), "/api/auth/register",
		`{"email":"a@x.com"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRegister_EmailTaken_Returns409(t *testing.T) {
	uc := &fakeAuthUsecase{
		register: func(_ context.Context, _, _ string) (*domain.User, string, error) {
			return nil, "", domain.ErrEmailTaken
		},
	}
	w := postJSON(t, newAuthEngine(uc), "/api/auth/register",
		`{"email":"a@x.com","password":"secret"}`)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestRegister_UsecaseError_Returns500(t *testing.T) {
	uc := &fakeAuthUsecase{
		register: func(_ context.Context, _, _ string) (*domain.User, string, error) {
			return nil, "", errors.New("db down")
		},
	}
	w := postJSON(t, newAuthEngine(uc), "/api/auth/register",
		`{"email":"a@x.com","password":"secret"}`)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestRegister_Success_Returns201AndSetsCookie(t *testing.T) {
	uc := &fakeAuthUsecase{
		register: func(_ context.Context, email, _ string) (*domain.User, string, error) {
			return &domain.User{ID: "user-1", Email: email}, "signed-token", nil
		},
	}
	w := postJSON(t, newAuthEngine(uc), "/api/auth/register",
		`{"email":"a@x.com","password":"secret"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"user-1"`) {
		t.Errorf("body %q does not contain user id", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "signed-token") {
		t.Error("token leaked into the response body")
	}

	c := authCookie(w)
	if c == nil {
		t.Fatal("session cookie not set")
	}
	if c.Value != "signed-token" {
		t.Errorf("cookie value = %q, want the issued token", c.Value)
	}
	if !c.HttpOnly {
		t.Error("session cookie is not HttpOnly")
	}
	if c.MaxAge != int(session.TokenTTL.Seconds()) {
		t.Errorf("cookie MaxAge = %d, want %d", c.MaxAge, int(session.TokenTTL.Seconds()))
	}
}

// ---- Login ----

func TestLogin_BadCredentials_Returns401(t *testing.T) {
	uc := &fakeAuthUsecase{
		login: func(_ context.Context, _, _ string) (*domain.User, string, error) {
			return nil, "", domain.ErrInvalidCredentials
		},
	}
	w := postJSON(t, newAuthEngine(uc), "/api/auth/login",
		`{"email":"a@x.com","password":"wrong"}`)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if authCookie(w) != nil {
		t.Error("cookie set on failed login")
	}
}

func TestLogin_Success_Returns200AndSetsCookie(t *testing.T) {
	uc := &fakeAuthUsecase{
		login: func(_ context.Context, email, _ string) (*domain.User, string, error) {
			return &domain.User{ID: "user-1", Email: email}, "signed-token", nil
		},
	}
	w := postJSON(t, newAuthEngine(uc), "/api/auth/login",
		`{"email":"a@x.com","password":"secret"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if authCookie(w) == nil {
		t.Error("session cookie not set")
	}
}

// ---- Logout ----

func TestLogout_ClearsCookie(t *testing.T) {
	w := postJSON(t, newAuthEngine(&fakeAuthUsecase{}), "/api/auth/logout", ``)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	c := authCookie(w)
	if c == nil {
		t.Fatal("expected an expiring cookie")
	}
	if c.Value != "" || c.MaxAge >= 0 {
		t.Errorf("cookie not cleared: value=%q maxAge=%d", c.Value, c.MaxAge)
	}
}
