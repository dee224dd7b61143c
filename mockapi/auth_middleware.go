package mockapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-pg-admin/staff"
	"github.com/jrsteele09/go-pg-admin/token"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyClaims stores the validated token claims
	ContextKeyClaims ContextKey = "claims"
	// ContextKeyStaff stores the authenticated staff account
	ContextKeyStaff ContextKey = "staff"
)

func claimsFromContext(ctx context.Context) *token.Claims {
	claims, _ := ctx.Value(ContextKeyClaims).(*token.Claims)
	return claims
}

func staffFromContext(ctx context.Context) *staff.Staff {
	s, _ := ctx.Value(ContextKeyStaff).(*staff.Staff)
	return s
}

// RequireAuth validates the Bearer access token. Missing, malformed, expired
// and revoked tokens, and tokens of unknown or blocked staff, get a 401.
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, http.StatusUnauthorized, "Missing Authorization header")
				return
			}

			scheme, raw, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || raw == "" {
				writeError(w, http.StatusUnauthorized, "Invalid Authorization header format")
				return
			}

			claims, err := s.issuer.Validate(raw)
			if err != nil {
				s.logger.Debug().Err(err).Msg("Rejected token")
				writeError(w, http.StatusUnauthorized, "Session expired, please log in again")
				return
			}

			account, err := s.staff.GetByID(claims.Subject)
			if err != nil || account.Blocked {
				writeError(w, http.StatusUnauthorized, "Account is not active")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
			ctx = context.WithValue(ctx, ContextKeyStaff, account)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequirePermission authenticates like RequireAuth and then answers 403 when
// the staff member lacks perm.
func (s *Server) RequirePermission(perm string) func(http.HandlerFunc) http.HandlerFunc {
	requireAuth := s.RequireAuth()
	return func(next http.HandlerFunc) http.HandlerFunc {
		return requireAuth(func(w http.ResponseWriter, r *http.Request) {
			if !staffFromContext(r.Context()).CanAccess(perm) {
				writeError(w, http.StatusForbidden, "You do not have permission to do this")
				return
			}
			next(w, r)
		})
	}
}
