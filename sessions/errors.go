package sessions

import (
	"errors"

	apperrors "github.com/jrsteele09/go-pg-admin/internal/errors"
)

var (
	ErrSessionExpired = apperrors.ErrSessionExpired
	ErrProfileCorrupt = apperrors.ErrCorruptProfile
	ErrSessionCorrupt = errors.New("corrupt session record")
)
