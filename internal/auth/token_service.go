package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// defaultTokenLifetime is used when Issue is called with a non-positive
// lifetime.
const defaultTokenLifetime = 15 * time.Minute

// TokenService signs and verifies the compact, expiring tokens the gates
// consume. Issue and Verify are pure computations over the shared secret;
// no store access happens in here.
type TokenService interface {
	Issue(subject string, lifetime time.Duration) (string, error)
	IssueAccess(subject string) (string, error)
	IssueRefresh(subject string) (string, error)
	Verify(tokenString string) (*Claims, error)
}

// TokenConfig is the configuration slice the token service needs.
type TokenConfig interface {
	GetSigningKey() string
	GetSigningMethod() string
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
}

type tokenService struct {
	signingKey []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     Logger
}

// NewTokenService creates a TokenService from configuration. Unknown
// signing method names fall back to HS256.
func NewTokenService(cfg TokenConfig, logger Logger) TokenService {
	if logger == nil {
		logger = defLogger{}
	}

	method := jwt.GetSigningMethod(cfg.GetSigningMethod())
	if method == nil {
		method = jwt.SigningMethodHS256
	}

	return &tokenService{
		signingKey: []byte(cfg.GetSigningKey()),
		method:     method,
		accessTTL:  cfg.GetAccessTokenTTL(),
		refreshTTL: cfg.GetRefreshTokenTTL(),
		logger:     logger,
	}
}

// Issue signs claims for the subject expiring at now + lifetime.
func (ts *tokenService) Issue(subject string, lifetime time.Duration) (string, error) {
	return ts.sign(subject, lifetime, "")
}

// IssueAccess issues a short-lived access token.
func (ts *tokenService) IssueAccess(subject string) (string, error) {
	return ts.sign(subject, ts.accessTTL, "")
}

// IssueRefresh issues a long-lived token marked with type=refresh. It is
// signed and verified exactly like an access token; only the lifetime and
// the type marker differ.
func (ts *tokenService) IssueRefresh(subject string) (string, error) {
	return ts.sign(subject, ts.refreshTTL, TokenTypeRefresh)
}

func (ts *tokenService) sign(subject string, lifetime time.Duration, tokenType string) (string, error) {
	if lifetime <= 0 {
		lifetime = defaultTokenLifetime
	}

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
		TokenType: tokenType,
	}

	ensureTokenID(&claims.RegisteredClaims)

	token := jwt.NewWithClaims(ts.method, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// Verify parses and validates a token string, returning its claims.
// Malformed, tampered and expired tokens all fail with ErrTokenInvalid; a
// valid token without a subject fails with ErrMissingSubject.
func (ts *tokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != ts.method.Alg() {
			ts.logger.Error("token verify encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	})

	if err != nil {
		return nil, ErrTokenInvalid.Clone().WithMetadata(map[string]any{
			"cause": err.Error(),
		})
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		ts.logger.Error("token verify could not decode claims")
		return nil, ErrTokenInvalid
	}

	if claims.Subject() == "" {
		return nil, ErrMissingSubject
	}

	return claims, nil
}
