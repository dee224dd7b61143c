package apiclient

import (
	"fmt"

	apperrors "github.com/jrsteele09/go-pg-admin/internal/errors"
)

// Envelope is the JSON shape every backend endpoint answers with.
type Envelope[T any] struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Error      string      `json:"error,omitempty"`
	Data       T           `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination is the server side paging metadata of collection endpoints.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Decode reads the envelope from resp. It does not look at Success; see Result.
func Decode[T any](resp *Response) (Envelope[T], error) {
	var env Envelope[T]
	if err := resp.Decode(&env); err != nil {
		return env, err
	}
	return env, nil
}

// Result decodes the envelope and turns success=false, or an undecodable non-2xx
// body, into an ErrRequestFailed carrying the backend's message.
func Result[T any](resp *Response) (Envelope[T], error) {
	env, err := Decode[T](resp)
	if err != nil {
		if !resp.OK() {
			return env, fmt.Errorf("status %d: %w", resp.StatusCode, apperrors.ErrRequestFailed)
		}
		return env, err
	}
	if !env.Success {
		msg := env.Message
		if env.Error != "" {
			msg = env.Error
		}
		return env, fmt.Errorf("%s: %w", msg, apperrors.ErrRequestFailed)
	}
	return env, nil
}
