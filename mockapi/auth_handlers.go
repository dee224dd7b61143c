package mockapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-pg-admin/pgadmin"
	"github.com/jrsteele09/go-pg-admin/staff"
)

const invalidCredentials = "Invalid email or password"

// LoginHandler checks staff credentials and issues an access token. Bad
// credentials get a 400 so that clients do not mistake them for an expired session.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pgadmin.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		req.Email = strings.TrimSpace(req.Email)
		if req.Email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "Email and password are required")
			return
		}

		account, err := s.staff.GetByEmail(req.Email)
		if err != nil || !staff.CheckPasswordHash(req.Password, account.PasswordHash) {
			s.logger.Info().Str("email", req.Email).Msg("Failed login attempt")
			writeError(w, http.StatusBadRequest, invalidCredentials)
			return
		}
		if account.Blocked {
			writeError(w, http.StatusForbidden, "Account is blocked")
			return
		}

		signed, _, err := s.issuer.Issue(account)
		if err != nil {
			s.logger.Err(err).Msg("Failed to issue token")
			writeError(w, http.StatusInternalServerError, "Could not log in")
			return
		}
		// The profile carries the previous login, so read it before recording this one.
		profile := account.Profile()
		if err := s.staff.SetLastLogin(account.ID, NowTimeFunc()); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to record last login")
		}

		writeData(w, "Login successful", pgadmin.LoginResponse{
			Token:     signed,
			Staff:     profile,
			ExpiresIn: s.issuer.ExpiresIn(),
		})
	}
}

// LogoutHandler revokes the presented token.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.issuer.Revoke(claimsFromContext(r.Context())); err != nil {
			s.logger.Err(err).Msg("Failed to revoke token")
			writeError(w, http.StatusInternalServerError, "Could not log out")
			return
		}
		writeData[any](w, "Logged out", nil)
	}
}

func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeData(w, "OK", staffFromContext(r.Context()).Profile())
	}
}
