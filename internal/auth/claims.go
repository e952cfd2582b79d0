package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTypeRefresh marks refresh tokens. Access tokens carry no type
// claim at all; absence implies access.
const TokenTypeRefresh = "refresh"

// Claims is the token payload. The subject carries the username.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"type,omitempty"`
}

// Subject returns the subject claim.
func (c *Claims) Subject() string {
	return c.RegisteredClaims.Subject
}

// IsRefresh reports whether the claims describe a refresh token.
func (c *Claims) IsRefresh() bool {
	return c.TokenType == TokenTypeRefresh
}

// Expires returns the expiration time, zero when unset.
func (c *Claims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// ensureTokenID assigns a jti so individual tokens stay distinguishable
// in logs even for the same subject.
func ensureTokenID(claims *jwt.RegisteredClaims) {
	if claims.ID == "" {
		claims.ID = uuid.NewString()
	}
}
