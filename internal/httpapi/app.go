// Package httpapi wires the fiber application: routes, the two token
// gates, and the central error mapping.
package httpapi

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stoune2024/go-user-api/internal/auth"
	"github.com/stoune2024/go-user-api/internal/external"
	"github.com/stoune2024/go-user-api/internal/user"
)

// UserRepository is the store surface the handlers consume.
type UserRepository interface {
	Create(ctx context.Context, u user.User) error
	ByID(ctx context.Context, id int) (user.User, error)
	ByUsername(ctx context.Context, username string) (user.User, error)
	List(ctx context.Context, start, end *int) ([]user.User, error)
	Update(ctx context.Context, id int, mutate func(*user.User)) (user.User, error)
	Delete(ctx context.Context, id int) error
}

// Config carries everything New needs to assemble the application.
type Config struct {
	Auther     *auth.Authenticator
	Tokens     auth.TokenService
	Users      UserRepository
	Upstream   *external.Client
	CookieName string
	// CookieTTL bounds the access-token cookie; usually the access token
	// lifetime.
	CookieTTL time.Duration
	Logger    auth.Logger
}

// New assembles the fiber application. The /user group sits behind the
// header-then-cookie gate with a store re-check; the mounted
// /protected_user sub-application sits behind the cookie-only gate that
// trusts the token alone.
func New(cfg Config) *fiber.App {
	logger := cfg.Logger
	if logger == nil {
		logger = noopLogger{}
	}

	cookieName := cfg.CookieName
	if cookieName == "" {
		cookieName = auth.DefaultCookieName
	}

	app := fiber.New(fiber.Config{
		AppName:      "go-user-api",
		ErrorHandler: newErrorHandler(logger),
	})

	authCtrl := NewAuthController(cfg.Auther, cookieName, cfg.CookieTTL, logger)
	authGroup := app.Group("/auth")
	authGroup.Post("/token", authCtrl.Token)
	authGroup.Post("/login", authCtrl.Login)
	authGroup.Get("/suc_auth", authCtrl.Success)

	dependencyGate := auth.NewGuard(cfg.Tokens, cfg.Users, auth.GuardConfig{
		Source:         auth.SourceHeaderThenCookie,
		RecheckSubject: true,
		CookieName:     cookieName,
	}).WithLogger(logger).Middleware()

	userCtrl := NewUserController(cfg.Users, logger)
	userGroup := app.Group("/user")
	userGroup.Post("/", userCtrl.Create)
	userGroup.Post("/users/", dependencyGate, userCtrl.CreateBatch)
	userGroup.Get("/users/", dependencyGate, userCtrl.List)
	userGroup.Get("/users/:id", dependencyGate, userCtrl.Read)
	userGroup.Patch("/users/:id", dependencyGate, userCtrl.Update)
	userGroup.Delete("/users/:id", dependencyGate, userCtrl.Delete)

	cookieGate := auth.NewGuard(cfg.Tokens, nil, auth.GuardConfig{
		Source:         auth.SourceCookieOnly,
		RecheckSubject: false,
		CookieName:     cookieName,
	}).WithLogger(logger).Middleware()

	protected := fiber.New(fiber.Config{
		ErrorHandler: newErrorHandler(logger),
	})
	protected.Use(cookieGate)
	protected.Get("/users/:id", userCtrl.Read)
	app.Mount("/protected_user", protected)

	if cfg.Upstream != nil {
		extCtrl := NewExternalController(cfg.Upstream, logger)
		app.Get("/api/json", extCtrl.Fetch)
	}

	return app
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
