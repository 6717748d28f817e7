package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medrec/go-medrec-backend/internal/apperr"
	"github.com/medrec/go-medrec-backend/internal/auth"
	"github.com/medrec/go-medrec-backend/internal/domain"
)

const guardSecret = "guard-test-secret"

// stubResolver returns a fixed principal or error without touching a DB.
type stubResolver struct {
	principal *domain.Principal
	err       error
}

func (s *stubResolver) Identify(ctx context.Context, claims *auth.Claims) (*domain.Principal, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.principal, nil
}

func newGuardRouter(g *Guard, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler(false))
	handlers := append([]gin.HandlerFunc{g.RequireAuth()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		p, _ := PrincipalFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": p.ID, "role": p.RoleName})
	})
	r.GET("/protected/:id", handlers...)
	return r
}

func doGet(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validToken(t *testing.T) string {
	t.Helper()
	tok, err := auth.GenerateToken(guardSecret, 7, "u@example.com", domain.RoleStaff, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return tok
}

func TestRequireAuth_StateTable(t *testing.T) {
	resolver := &stubResolver{principal: &domain.Principal{ID: 7, RoleName: domain.RoleStaff}}
	g := NewGuard(guardSecret, resolver)
	r := newGuardRouter(g)

	// no header
	if w := doGet(r, "/protected/7", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("no header: expected 401, got %d", w.Code)
	}
	// malformed header
	if w := doGet(r, "/protected/7", "Token abc"); w.Code != http.StatusUnauthorized {
		t.Fatalf("malformed: expected 401, got %d", w.Code)
	}
	if w := doGet(r, "/protected/7", "Bearer "); w.Code != http.StatusUnauthorized {
		t.Fatalf("empty bearer: expected 401, got %d", w.Code)
	}
	// garbage token
	if w := doGet(r, "/protected/7", "Bearer not.a.jwt"); w.Code != http.StatusUnauthorized {
		t.Fatalf("garbage: expected 401, got %d", w.Code)
	}
	// expired token
	expired, err := auth.GenerateToken(guardSecret, 7, "u@example.com", domain.RoleStaff, -time.Minute)
	if err != nil {
		t.Fatalf("generate expired: %v", err)
	}
	if w := doGet(r, "/protected/7", "Bearer "+expired); w.Code != http.StatusUnauthorized {
		t.Fatalf("expired: expected 401, got %d", w.Code)
	}
	// valid token, happy path
	if w := doGet(r, "/protected/7", "Bearer "+validToken(t)); w.Code != http.StatusOK {
		t.Fatalf("valid: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestRequireAuth_ResolverOutcomes(t *testing.T) {
	// user behind the token no longer exists
	g := NewGuard(guardSecret, &stubResolver{err: apperr.New("account no longer exists", http.StatusUnauthorized)})
	if w := doGet(newGuardRouter(g), "/protected/7", "Bearer "+validToken(t)); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing user: expected 401, got %d", w.Code)
	}

	// user exists but is deactivated
	g = NewGuard(guardSecret, &stubResolver{err: apperr.New("account is deactivated", http.StatusForbidden)})
	if w := doGet(newGuardRouter(g), "/protected/7", "Bearer "+validToken(t)); w.Code != http.StatusForbidden {
		t.Fatalf("inactive user: expected 403, got %d", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	staff := &stubResolver{principal: &domain.Principal{ID: 7, RoleName: domain.RoleStaff}}
	g := NewGuard(guardSecret, staff)
	r := newGuardRouter(g, RequireRole(domain.RoleAdmin))

	if w := doGet(r, "/protected/7", "Bearer "+validToken(t)); w.Code != http.StatusForbidden {
		t.Fatalf("staff on admin route: expected 403, got %d", w.Code)
	}

	admin := &stubResolver{principal: &domain.Principal{ID: 7, RoleName: domain.RoleAdmin}}
	r = newGuardRouter(NewGuard(guardSecret, admin), RequireRole(domain.RoleAdmin))
	if w := doGet(r, "/protected/7", "Bearer "+validToken(t)); w.Code != http.StatusOK {
		t.Fatalf("admin on admin route: expected 200, got %d", w.Code)
	}
}

func TestRequireOwnershipOrAdmin(t *testing.T) {
	self := &stubResolver{principal: &domain.Principal{ID: 7, RoleName: domain.RoleStaff}}
	r := newGuardRouter(NewGuard(guardSecret, self), RequireOwnershipOrAdmin("id"))

	if w := doGet(r, "/protected/7", "Bearer "+validToken(t)); w.Code != http.StatusOK {
		t.Fatalf("owner: expected 200, got %d", w.Code)
	}
	if w := doGet(r, "/protected/8", "Bearer "+validToken(t)); w.Code != http.StatusForbidden {
		t.Fatalf("other user: expected 403, got %d", w.Code)
	}

	admin := &stubResolver{principal: &domain.Principal{ID: 1, RoleName: domain.RoleAdmin}}
	r = newGuardRouter(NewGuard(guardSecret, admin), RequireOwnershipOrAdmin("id"))
	if w := doGet(r, "/protected/8", "Bearer "+validToken(t)); w.Code != http.StatusOK {
		t.Fatalf("admin on someone else: expected 200, got %d", w.Code)
	}
}

func TestOptionalAuth_FailOpen(t *testing.T) {
	gin.SetMode(gin.TestMode)
	g := NewGuard(guardSecret, &stubResolver{principal: &domain.Principal{ID: 7, RoleName: domain.RoleStaff}})

	r := gin.New()
	r.Use(ErrorHandler(false))
	r.GET("/open", g.OptionalAuth(), func(c *gin.Context) {
		if p, ok := PrincipalFrom(c); ok {
			c.JSON(http.StatusOK, gin.H{"user": p.ID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": nil})
	})

	// anonymous proceeds
	if w := doGet(r, "/open", ""); w.Code != http.StatusOK {
		t.Fatalf("anonymous: expected 200, got %d", w.Code)
	}
	// bad credentials still proceed, without a principal
	w := doGet(r, "/open", "Bearer not.a.jwt")
	if w.Code != http.StatusOK {
		t.Fatalf("bad token: expected 200, got %d", w.Code)
	}
	if got := w.Body.String(); got != `{"user":null}` {
		t.Fatalf("bad token must stay anonymous, got %s", got)
	}
	// valid credentials attach the principal
	w = doGet(r, "/open", "Bearer "+validToken(t))
	if got := w.Body.String(); got != `{"user":7}` {
		t.Fatalf("valid token: expected principal, got %s", got)
	}
}
