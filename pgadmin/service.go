package pgadmin

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/jrsteele09/go-pg-admin/apiclient"
	"github.com/jrsteele09/go-pg-admin/filters"
	apperrors "github.com/jrsteele09/go-pg-admin/internal/errors"
	"github.com/jrsteele09/go-pg-admin/sessions"
	"github.com/jrsteele09/go-pg-admin/table"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EndpointLogin   = "/auth/login"
	EndpointLogout  = "/auth/logout"
	EndpointSummary = "/reports/summary"
)

const DefaultPageSize = 10

// API is the subset of *apiclient.Client the service calls.
type API interface {
	Get(ctx context.Context, endpoint string, headers ...http.Header) (*apiclient.Response, error)
	Post(ctx context.Context, endpoint string, body any, headers ...http.Header) (*apiclient.Response, error)
	Patch(ctx context.Context, endpoint string, body any, headers ...http.Header) (*apiclient.Response, error)
	PostFormData(ctx context.Context, endpoint string, form *apiclient.FormData, headers ...http.Header) (*apiclient.Response, error)
}

// SessionWriter is satisfied by *sessions.Manager.
type SessionWriter interface {
	SetSession(token string, profile sessions.Profile, expiresIn string) error
	ClearSession()
}

var (
	_ API           = (*apiclient.Client)(nil)
	_ SessionWriter = (*sessions.Manager)(nil)
)

// Service fetches and mutates PG data on behalf of the logged in staff member.
type Service struct {
	api      API
	sessions SessionWriter
	pageSize int
	logger   zerolog.Logger
}

type Option func(*Service)

func WithPageSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(api API, sessions SessionWriter, opts ...Option) *Service {
	s := &Service{
		api:      api,
		sessions: sessions,
		pageSize: DefaultPageSize,
		logger:   log.Logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) PageSize() int { return s.pageSize }

// Login exchanges credentials for a token and stores the new session.
func (s *Service) Login(ctx context.Context, email, password string) (sessions.Profile, error) {
	resp, err := s.api.Post(ctx, EndpointLogin, LoginRequest{Email: email, Password: password})
	if err != nil {
		return sessions.Profile{}, err
	}
	env, err := apiclient.Result[LoginResponse](resp)
	if err != nil {
		return sessions.Profile{}, fmt.Errorf("login: %w", err)
	}
	if env.Data.Token == "" {
		return sessions.Profile{}, fmt.Errorf("login returned no token: %w", apperrors.ErrInvalidResponse)
	}
	if err := s.sessions.SetSession(env.Data.Token, env.Data.Staff, env.Data.ExpiresIn); err != nil {
		return sessions.Profile{}, err
	}
	s.logger.Info().Str("staff_id", env.Data.Staff.ID).Str("role", env.Data.Staff.Role).Msg("Logged in")
	return env.Data.Staff, nil
}

// Logout tells the backend and clears the local session. The session is
// cleared even when the backend call fails.
func (s *Service) Logout(ctx context.Context) error {
	defer s.sessions.ClearSession()

	resp, err := s.api.Post(ctx, EndpointLogout, nil)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrAuthExpired) {
			return nil
		}
		return fmt.Errorf("logout: %w", err)
	}
	if !resp.OK() {
		s.logger.Warn().Int("status", resp.StatusCode).Msg("Backend logout rejected")
	}
	return nil
}

// Result is one fetch of a list page.
type Result struct {
	Rows []table.Row
	Info table.PageInfo
}

// Fetch loads the rows of page narrowed by values. ServerPaged pages request
// pageNo and the sort from the backend; ClientPaged pages load everything.
func (s *Service) Fetch(ctx context.Context, page Page, values filters.Values, pageNo int, sort table.SortState) (Result, error) {
	query := apiclient.NewQuery().Filters(values)
	if page.Mode == table.ServerPaged {
		query.Page(max(pageNo, 1)).Limit(s.pageSize)
		if sort.Active() {
			query.Sort(sort.Key, string(sort.Direction))
		}
	}

	resp, err := s.api.Get(ctx, query.Endpoint(page.Endpoint))
	if err != nil {
		return Result{}, err
	}
	env, err := apiclient.Result[[]table.Row](resp)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", page.Name, err)
	}

	rows := env.Data
	if rows == nil {
		rows = []table.Row{}
	}
	info := table.PageInfo{CurrentPage: 1, PageSize: s.pageSize, TotalItems: len(rows)}
	if p := env.Pagination; p != nil {
		info = table.PageInfo{
			CurrentPage: p.Page,
			PageSize:    p.Limit,
			TotalItems:  p.Total,
			TotalPages:  p.TotalPages,
		}
	}
	s.logger.Debug().Str("page", page.Name).Int("rows", len(rows)).Int("total", info.TotalItems).Msg("Fetched")
	return Result{Rows: rows, Info: info}, nil
}

func (s *Service) DashboardStats(ctx context.Context) (Summary, error) {
	resp, err := s.api.Get(ctx, EndpointSummary)
	if err != nil {
		return Summary{}, err
	}
	env, err := apiclient.Result[Summary](resp)
	if err != nil {
		return Summary{}, fmt.Errorf("summary: %w", err)
	}
	return env.Data, nil
}

func (s *Service) Approve(ctx context.Context, id, remarks string) (Approval, error) {
	return s.decide(ctx, id, Decision{Status: ApprovalApproved, Remarks: remarks})
}

func (s *Service) Reject(ctx context.Context, id, remarks string) (Approval, error) {
	return s.decide(ctx, id, Decision{Status: ApprovalRejected, Remarks: remarks})
}

func (s *Service) decide(ctx context.Context, id string, decision Decision) (Approval, error) {
	resp, err := s.api.Patch(ctx, "/approvals/"+url.PathEscape(id), decision)
	if err != nil {
		return Approval{}, err
	}
	env, err := apiclient.Result[Approval](resp)
	if err != nil {
		return Approval{}, fmt.Errorf("approval %s: %w", id, err)
	}
	return env.Data, nil
}

// UploadReceipt attaches a receipt file to a payment.
func (s *Service) UploadReceipt(ctx context.Context, paymentID, fileName string, content io.Reader) (Payment, error) {
	form := apiclient.NewFormData().
		AddField("paymentId", paymentID).
		AddFile("receipt", fileName, content)

	resp, err := s.api.PostFormData(ctx, "/payments/"+url.PathEscape(paymentID)+"/receipt", form)
	if err != nil {
		return Payment{}, err
	}
	env, err := apiclient.Result[Payment](resp)
	if err != nil {
		return Payment{}, fmt.Errorf("receipt for %s: %w", paymentID, err)
	}
	return env.Data, nil
}
