package mockapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/go-pg-admin/internal/config"
	"github.com/jrsteele09/go-pg-admin/mockapi/datastore"
	"github.com/jrsteele09/go-pg-admin/staff"
	"github.com/jrsteele09/go-pg-admin/token"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Server is the development backend the console talks to. It serves the same
// JSON envelope contract as the production API from in-memory data.
type Server struct {
	env      string
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	staff    staff.Repo
	issuer   *token.Issuer
	data     *datastore.Store
	limiter  *rate.Limiter
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	logger   zerolog.Logger
}

type Option func(*Server)

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRateLimit overrides the configured requests per second; 0 disables limiting.
func WithRateLimit(perSecond int) Option {
	return func(s *Server) {
		s.limiter = newLimiter(perSecond)
	}
}

func New(cfg config.Config, staffRepo staff.Repo, data *datastore.Store, opts ...Option) (*Server, error) {
	issuer, err := token.NewIssuer(string(cfg.GetJWTSecret()), cfg.GetTokenExpiresIn(), token.NewInMemoryRevokedTokenCache())
	if err != nil {
		return nil, fmt.Errorf("[mockapi New] failed to create token issuer: %w", err)
	}

	s := &Server{
		env:      cfg.GetEnv(),
		mux:      http.NewServeMux(),
		config:   cfg,
		staff:    staffRepo,
		issuer:   issuer,
		data:     data,
		limiter:  newLimiter(cfg.GetRequestsPerSecond()),
		registry: prometheus.NewRegistry(),
		logger:   log.Logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pgadmin_mockapi_requests_total",
		Help: "Requests served by the development backend.",
	}, []string{"method", "code"})
	s.registry.MustRegister(s.requests)

	if err := s.InitialiseStaff(cfg); err != nil {
		return nil, fmt.Errorf("[mockapi New] failed to initialise staff: %w", err)
	}

	s.initRoutes()
	s.logRoutes()
	return s, nil
}

func newLimiter(perSecond int) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(perSecond), perSecond*2)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Registry exposes the server's metrics, e.g. for tests.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

func (s *Server) Issuer() *token.Issuer {
	return s.issuer
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		method, path, found := strings.Cut(route, " ")
		if !found {
			method, path = "", route
		}
		s.logger.Info().Msgf("[%s] %s", colourMethod(method), path)
	}
}
