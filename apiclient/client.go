package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/go-pg-admin/internal/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RouteLogin is where the client navigates when the backend rejects the session.
const RouteLogin = "/login"

const (
	contentTypeJSON = "application/json"
	headerRequestID = "X-Request-ID"
)

// AuthProvider supplies the Authorization header and forgets the session when
// the backend rejects it. *sessions.Manager satisfies it.
type AuthProvider interface {
	AuthHeader() http.Header
	ClearSession()
}

// Navigator moves the user to another view.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) { f(route) }

// Client is the single request path for every backend call. It attaches the
// auth header and turns a 401 into a cleared session plus a login redirect.
// There is no retry and no token refresh.
type Client struct {
	baseURL    string
	httpClient *http.Client
	auth       AuthProvider
	navigator  Navigator
	logger     zerolog.Logger
	metrics    *Metrics
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(c *Client) {
		c.metrics = metrics
	}
}

// New creates a client for the backend rooted at baseURL (e.g. "http://localhost:8080/api").
// Requests are bounded only by the caller's context.
func New(baseURL string, auth AuthProvider, navigator Navigator, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		auth:       auth,
		navigator:  navigator,
		logger:     log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Response is a completed non-401 exchange. Non-2xx statuses are returned
// as-is for the caller to interpret.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return fmt.Errorf("empty body (status %d): %w", r.StatusCode, apperrors.ErrInvalidResponse)
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("status %d: %w: %v", r.StatusCode, apperrors.ErrInvalidResponse, err)
	}
	return nil
}

func (c *Client) Get(ctx context.Context, endpoint string, headers ...http.Header) (*Response, error) {
	return c.doJSON(ctx, http.MethodGet, endpoint, nil, headers)
}

func (c *Client) Post(ctx context.Context, endpoint string, body any, headers ...http.Header) (*Response, error) {
	return c.doJSON(ctx, http.MethodPost, endpoint, body, headers)
}

func (c *Client) Put(ctx context.Context, endpoint string, body any, headers ...http.Header) (*Response, error) {
	return c.doJSON(ctx, http.MethodPut, endpoint, body, headers)
}

func (c *Client) Patch(ctx context.Context, endpoint string, body any, headers ...http.Header) (*Response, error) {
	return c.doJSON(ctx, http.MethodPatch, endpoint, body, headers)
}

func (c *Client) Delete(ctx context.Context, endpoint string, body any, headers ...http.Header) (*Response, error) {
	return c.doJSON(ctx, http.MethodDelete, endpoint, body, headers)
}

// PostFormData uploads a multipart form. The content type carries the
// multipart boundary instead of application/json.
func (c *Client) PostFormData(ctx context.Context, endpoint string, form *FormData, headers ...http.Header) (*Response, error) {
	body, contentType, err := form.encode()
	if err != nil {
		return nil, fmt.Errorf("POST %s: failed to encode form: %w", endpoint, err)
	}
	return c.do(ctx, http.MethodPost, endpoint, body, contentType, headers)
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, body any, headers []http.Header) (*Response, error) {
	var reader io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s %s: failed to encode body: %w", method, endpoint, err)
		}
		reader = bytes.NewReader(data)
		contentType = contentTypeJSON
	}
	return c.do(ctx, method, endpoint, reader, contentType, headers)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader, contentType string, headers []http.Header) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(endpoint), body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}

	for key, values := range c.auth.AuthHeader() {
		req.Header[key] = values
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	requestID := uuid.New().String()
	req.Header.Set(headerRequestID, requestID)
	for _, h := range headers {
		for key, values := range h {
			req.Header.Del(key)
			for _, v := range values {
				req.Header.Add(key, v)
			}
		}
	}

	logger := c.logger.With().Str("method", method).Str("endpoint", endpoint).Str("request_id", requestID).Logger()
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observe(method, "error", time.Since(start))
		logger.Debug().Err(err).Msg("Request failed")
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.observe(method, "error", time.Since(start))
		return nil, fmt.Errorf("%s %s: failed to read body: %w", method, endpoint, err)
	}
	c.metrics.observe(method, strconv.Itoa(resp.StatusCode), time.Since(start))
	logger.Debug().Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("Request completed")

	if resp.StatusCode == http.StatusUnauthorized {
		c.metrics.authExpired()
		logger.Info().Msg("Session rejected by backend, redirecting to login")
		c.auth.ClearSession()
		if c.navigator != nil {
			c.navigator.Navigate(RouteLogin)
		}
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, apperrors.ErrAuthExpired)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

func (c *Client) url(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	return c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
}
