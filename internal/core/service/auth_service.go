package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/geodonnees/admin-console/internal/core/domain"
	"github.com/geodonnees/admin-console/internal/core/ports"
)

// AuthService checks the operator credential and issues the session token the
// console stores client-side. Logout never touches this service: the token is
// simply discarded by the client.
type AuthService struct {
	username     string
	passwordHash string // bcrypt hash of the operator password
	secret       string
	tokenTTL     time.Duration
	logger       zerolog.Logger
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(username, passwordHash, secret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		username:     username,
		passwordHash: passwordHash,
		secret:       secret,
		tokenTTL:     tokenTTL,
		logger:       logger,
	}
}

// Login validates the credential pair and returns a signed HS256 session token.
func (s *AuthService) Login(_ context.Context, username, password string) (string, error) {
	if username == "" || password == "" || username != s.username {
		return "", domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)) != nil {
		s.logger.Warn().Str("username", username).Msg("failed login attempt")
		return "", domain.ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"sub":  username,
		"role": "admin",
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("username", username).Msg("operator logged in")
	return token, nil
}

// Verify parses and checks a session token, returning its subject.
func (s *AuthService) Verify(token string) (string, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil || !parsed.Valid {
		return "", domain.ErrUnauthenticated
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", domain.ErrUnauthenticated
	}
	return sub, nil
}
