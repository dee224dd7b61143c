package token

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/go-pg-admin/internal/errors"
	"github.com/jrsteele09/go-pg-admin/sessions"
	"github.com/jrsteele09/go-pg-admin/staff"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

const IssuerName = "pg-admin"

// Claims are carried by every access token.
type Claims struct {
	Name string `json:"name,omitempty"`
	Role string `json:"role,omitempty"`
	jwtlib.RegisteredClaims
}

// Issuer signs and verifies HS256 access tokens for staff accounts.
type Issuer struct {
	secret    []byte
	expiresIn string
	lifetime  time.Duration
	revoked   RevokedTokenCache
}

// NewIssuer creates an issuer whose tokens live for expiresIn ("8h", "30m", "7d").
func NewIssuer(secret, expiresIn string, revoked RevokedTokenCache) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("token secret is required")
	}
	lifetime, err := sessions.ParseExpiresIn(expiresIn)
	if err != nil {
		return nil, fmt.Errorf("token lifetime: %w", err)
	}
	if revoked == nil {
		revoked = NewInMemoryRevokedTokenCache()
	}
	return &Issuer{
		secret:    []byte(secret),
		expiresIn: expiresIn,
		lifetime:  lifetime,
		revoked:   revoked,
	}, nil
}

// ExpiresIn is the lifetime string reported to clients alongside each token.
func (i *Issuer) ExpiresIn() string {
	return i.expiresIn
}

// Issue creates a signed access token for s.
func (i *Issuer) Issue(s *staff.Staff) (string, *Claims, error) {
	now := NowTimeFunc()
	claims := &Claims{
		Name: s.Name,
		Role: string(s.Role),
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    IssuerName,
			Subject:   s.ID,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(i.lifetime)),
			ID:        uuid.New().String(),
		},
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign JWT token: %w", err)
	}
	return signed, claims, nil
}

// Validate verifies the signature, issuer and expiry of raw and rejects
// revoked tokens. Every failure wraps ErrInvalidToken.
func (i *Issuer) Validate(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwtlib.ParseWithClaims(raw, claims, func(t *jwtlib.Token) (any, error) {
		return i.secret, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(IssuerName),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(NowTimeFunc),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)
	}
	if i.revoked.IsRevoked(claims.ID) {
		return nil, fmt.Errorf("%w: token revoked", apperrors.ErrInvalidToken)
	}
	return claims, nil
}

// Revoke invalidates a token before its expiry.
func (i *Issuer) Revoke(claims *Claims) error {
	i.revoked.Cleanup()
	exp := NowTimeFunc()
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	return i.revoked.Add(claims.ID, exp)
}
