package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// CredentialSource selects where a guard looks for the token.
type CredentialSource string

const (
	// SourceHeaderThenCookie prefers an Authorization bearer header and
	// falls back to the named cookie.
	SourceHeaderThenCookie CredentialSource = "header_then_cookie"
	// SourceCookieOnly reads the named cookie and nothing else.
	SourceCookieOnly CredentialSource = "cookie_only"
)

// DefaultCookieName is the cookie the login flow writes the access token to.
const DefaultCookieName = "access-token"

// DefaultContextKey is where validated claims are stored on the request.
const DefaultContextKey = "token"

// GuardConfig configures a token verification policy. The per-route gate
// and the sub-application gate are the same Guard with different configs.
type GuardConfig struct {
	Source CredentialSource
	// RecheckSubject makes the guard confirm the token's subject still
	// exists in the store.
	RecheckSubject bool
	CookieName     string
	ContextKey     string
}

// Guard validates request credentials before handlers run.
type Guard struct {
	tokens TokenService
	users  UserSource
	cfg    GuardConfig
	logger Logger
}

// NewGuard returns a Guard for the given policy. users may be nil when
// RecheckSubject is off.
func NewGuard(tokens TokenService, users UserSource, cfg GuardConfig) *Guard {
	if cfg.Source == "" {
		cfg.Source = SourceHeaderThenCookie
	}
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCookieName
	}
	if cfg.ContextKey == "" {
		cfg.ContextKey = DefaultContextKey
	}

	return &Guard{
		tokens: tokens,
		users:  users,
		cfg:    cfg,
		logger: defLogger{},
	}
}

func (g *Guard) WithLogger(logger Logger) *Guard {
	g.logger = logger
	return g
}

// Middleware returns the fiber handler enforcing the policy. Validated
// claims are stored under the configured context key for handlers to read
// through ClaimsFromCtx.
func (g *Guard) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := g.extract(c)
		if err != nil {
			return err
		}

		claims, err := g.tokens.Verify(raw)
		if err != nil {
			g.logger.Info("guard rejected token", "path", c.Path(), "error", err)
			return err
		}

		if g.cfg.RecheckSubject {
			if _, err := g.users.ByUsername(c.UserContext(), claims.Subject()); err != nil {
				if errors.IsNotFound(err) {
					g.logger.Info("guard rejected unknown subject", "subject", claims.Subject())
					return ErrUnauthorized
				}
				return err
			}
		}

		c.Locals(g.cfg.ContextKey, claims)

		return c.Next()
	}
}

// extract pulls the raw token according to the configured source.
func (g *Guard) extract(c *fiber.Ctx) (string, error) {
	if g.cfg.Source == SourceCookieOnly {
		if token := c.Cookies(g.cfg.CookieName); token != "" {
			return token, nil
		}
		return "", ErrUnauthenticated
	}

	if authorization := c.Get(fiber.HeaderAuthorization); authorization != "" {
		scheme, param, found := strings.Cut(authorization, " ")
		if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(param) == "" {
			// A present header with a foreign scheme is not a usable
			// credential; the cookie is not consulted in that case.
			return "", ErrUnauthenticated
		}
		return strings.TrimSpace(param), nil
	}

	if token := c.Cookies(g.cfg.CookieName); token != "" {
		return token, nil
	}

	return "", ErrUnauthenticated
}

// ClaimsFromCtx returns the claims a guard stored on the request, if any.
func ClaimsFromCtx(c *fiber.Ctx, key string) (*Claims, bool) {
	if key == "" {
		key = DefaultContextKey
	}
	claims, ok := c.Locals(key).(*Claims)
	return claims, ok
}
