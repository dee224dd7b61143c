package mockapi

import (
	"fmt"
	"strings"

	"github.com/jrsteele09/go-pg-admin/internal/config"
	"github.com/jrsteele09/go-pg-admin/staff"
)

// InitialiseStaff seeds an owner, a manager and a warden account when the
// staff repo is empty. All three share the configured admin password.
func (s *Server) InitialiseStaff(cfg config.ServerConfig) error {
	existing, err := s.staff.List()
	if err != nil {
		return fmt.Errorf("[mockapi InitialiseStaff] failed to list staff: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Debug().Int("count", len(existing)).Msg("Staff already initialised")
		return nil
	}

	adminEmail := cfg.GetAdminEmail()
	domain := "pg.local"
	if _, d, found := strings.Cut(adminEmail, "@"); found {
		domain = d
	}

	accounts := []struct {
		name  string
		email string
		role  staff.RoleType
	}{
		{"PG Owner", adminEmail, staff.RoleAdmin},
		{"Priya Nair", "manager@" + domain, staff.RoleManager},
		{"Ramesh Kumar", "warden@" + domain, staff.RoleWarden},
	}
	for _, a := range accounts {
		account, err := staff.New(a.name, a.email, a.role, cfg.GetAdminPassword())
		if err != nil {
			return fmt.Errorf("[mockapi InitialiseStaff] %s: %w", a.email, err)
		}
		if err := s.staff.Upsert(account); err != nil {
			return fmt.Errorf("[mockapi InitialiseStaff] failed to store %s: %w", a.email, err)
		}
	}

	if s.env == "DEV" {
		s.logger.Info().Msg("👤 Staff accounts:")
		for _, a := range accounts {
			s.logger.Info().Msgf("   %-8s %s", a.role, a.email)
		}
		s.logger.Info().Msg("   Password: value of ADMIN_PASSWORD")
	}
	return nil
}
