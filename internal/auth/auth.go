// Package auth implements the static per-region credential check and issues
// short-lived session tokens carrying the authenticated region.
package auth

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/boratech/exportdesk/internal/regions"
)

const issuer = "exportdesk"

// System defines the public contract for authentication operations.
type System interface {
	Handler() *Handler
	Login(cmd LoginCommand) (*Session, error)
	Verify(token string) (*Claims, error)
}

// LoginCommand carries a login attempt.
type LoginCommand struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Region   string `json:"region"`
}

// Session is the result of a successful login.
type Session struct {
	Token     string         `json:"token"`
	Email     string         `json:"email"`
	Region    regions.Region `json:"region"`
	ExpiresAt time.Time      `json:"expiresAt"`
}

// Claims are the token claims carried by a session token.
type Claims struct {
	Region string `json:"region"`
	jwt.RegisteredClaims
}

type system struct {
	cfg    *Config
	logger *slog.Logger
}

// New creates an auth system from the given configuration.
func New(cfg *Config, logger *slog.Logger) System {
	return &system{
		cfg:    cfg,
		logger: logger.With("system", "auth"),
	}
}

func (s *system) Handler() *Handler {
	return NewHandler(s, s.logger)
}

// Login validates the region and its static credential pair, then issues
// an HS256 session token scoped to that region.
func (s *system) Login(cmd LoginCommand) (*Session, error) {
	region, err := regions.Parse(cmd.Region)
	if err != nil {
		return nil, err
	}

	cred, ok := s.cfg.Credentials[region.String()]
	if !ok {
		return nil, ErrInvalidCredentials
	}

	emailOK := subtle.ConstantTimeCompare([]byte(cmd.Email), []byte(cred.Email)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(cmd.Password), []byte(cred.Password)) == 1
	if !emailOK || !passwordOK {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	expiresAt := now.Add(s.cfg.TokenTTLDuration())

	claims := Claims{
		Region: region.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   cmd.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	s.logger.Info("login succeeded", "email", cmd.Email, "region", region)

	return &Session{
		Token:     token,
		Email:     cmd.Email,
		Region:    region,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify parses and validates a session token, returning its claims.
func (s *system) Verify(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(
		token,
		&Claims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(s.cfg.Secret), nil
		},
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	if _, err := regions.Parse(claims.Region); err != nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
