// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the authentication guard. A bearer token is verified
// (HS256 signature plus expiry), the account behind it is re-read, and the
// resulting Principal is attached to the Gin context for handlers and gates
// further down the chain.
//
// Guard outcomes are explicit: Authenticate distinguishes an authenticated
// request, an anonymous one (no credentials offered), and a rejected one
// (credentials offered but bad). RequireAuth turns Anonymous and Rejected
// into errors; OptionalAuth lets both proceed without a principal.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/medrec/go-medrec-backend/internal/apperr"
	"github.com/medrec/go-medrec-backend/internal/auth"
	"github.com/medrec/go-medrec-backend/internal/domain"
)

// principalKey is the Gin context key under which the Principal is stored.
const principalKey = "principal"

// IdentityResolver resolves verified token claims into a live Principal.
// Implemented by services.AuthService.
type IdentityResolver interface {
	Identify(ctx context.Context, claims *auth.Claims) (*domain.Principal, error)
}

// AuthOutcome is the result of an authentication attempt.
type AuthOutcome int

const (
	// OutcomeAnonymous means the request carried no credentials.
	OutcomeAnonymous AuthOutcome = iota
	// OutcomeAuthenticated means a principal was established.
	OutcomeAuthenticated
	// OutcomeRejected means credentials were offered but did not verify.
	OutcomeRejected
)

// Guard bundles the token secret with the identity resolver.
type Guard struct {
	Secret   string
	Resolver IdentityResolver
}

// NewGuard constructs a Guard.
func NewGuard(secret string, resolver IdentityResolver) *Guard {
	return &Guard{Secret: secret, Resolver: resolver}
}

// Authenticate inspects the Authorization header and classifies the request.
// On OutcomeAuthenticated the returned principal is non-nil; on
// OutcomeRejected err carries the reason.
func (g *Guard) Authenticate(c *gin.Context) (*domain.Principal, AuthOutcome, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, OutcomeAnonymous, nil
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return nil, OutcomeRejected, apperr.New("malformed authorization header", http.StatusUnauthorized)
	}

	claims, err := auth.VerifyToken(g.Secret, strings.TrimSpace(parts[1]))
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil, OutcomeRejected, apperr.New("token expired", http.StatusUnauthorized)
		}
		return nil, OutcomeRejected, apperr.New("invalid token", http.StatusUnauthorized)
	}

	principal, err := g.Resolver.Identify(c.Request.Context(), claims)
	if err != nil {
		return nil, OutcomeRejected, err
	}
	return principal, OutcomeAuthenticated, nil
}

// RequireAuth rejects anonymous and bad-credential requests and attaches the
// principal for everything past it.
func (g *Guard) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, outcome, err := g.Authenticate(c)
		switch outcome {
		case OutcomeAuthenticated:
			c.Set(principalKey, principal)
			c.Next()
		case OutcomeAnonymous:
			c.Error(apperr.New("authentication required", http.StatusUnauthorized))
			c.Abort()
		default:
			c.Error(err)
			c.Abort()
		}
	}
}

// OptionalAuth attaches a principal when valid credentials are present and
// lets the request proceed anonymously otherwise, including when offered
// credentials fail to verify.
func (g *Guard) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if principal, outcome, _ := g.Authenticate(c); outcome == OutcomeAuthenticated {
			c.Set(principalKey, principal)
		}
		c.Next()
	}
}

// RequireRole gates a route to principals holding one of the given roles.
// Must run after RequireAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok {
			c.Error(apperr.New("authentication required", http.StatusUnauthorized))
			c.Abort()
			return
		}
		for _, r := range roles {
			if principal.RoleName == r {
				c.Next()
				return
			}
		}
		c.Error(apperr.New("insufficient permissions", http.StatusForbidden))
		c.Abort()
	}
}

// RequireOwnershipOrAdmin gates a route to admins or to the user whose ID
// matches the named path parameter. Must run after RequireAuth.
func RequireOwnershipOrAdmin(idParam string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok {
			c.Error(apperr.New("authentication required", http.StatusUnauthorized))
			c.Abort()
			return
		}
		if principal.IsAdmin() {
			c.Next()
			return
		}
		if id := c.Param(idParam); id == strconv.Itoa(principal.ID) {
			c.Next()
			return
		}
		c.Error(apperr.New("insufficient permissions", http.StatusForbidden))
		c.Abort()
	}
}

// PrincipalFrom returns the principal attached by the guard, if any.
func PrincipalFrom(c *gin.Context) (*domain.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*domain.Principal)
	return p, ok
}
