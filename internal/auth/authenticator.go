package auth

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/stoune2024/go-user-api/internal/user"
)

// UserSource is the slice of the user store the auth package depends on.
// *store.UserStore satisfies it; a network-backed store could too.
type UserSource interface {
	ByUsername(ctx context.Context, username string) (user.User, error)
}

// TokenPair is the login response body.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// Authenticator orchestrates the login flow: store lookup, password
// verification and token issuance.
type Authenticator struct {
	users  UserSource
	tokens TokenService
	logger Logger
}

// NewAuthenticator returns a new Authenticator.
func NewAuthenticator(users UserSource, tokens TokenService) *Authenticator {
	return &Authenticator{
		users:  users,
		tokens: tokens,
		logger: defLogger{},
	}
}

func (a *Authenticator) WithLogger(logger Logger) *Authenticator {
	a.logger = logger
	return a
}

// TokenService exposes the token service used by this Authenticator.
func (a *Authenticator) TokenService() TokenService {
	return a.tokens
}

// Authenticate verifies the username/password pair against the store.
// Unknown usernames surface the store's not-found error; a present user
// with a wrong password fails with ErrBadCredentials.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (user.User, error) {
	u, err := a.users.ByUsername(ctx, username)
	if err != nil {
		if errors.IsNotFound(err) {
			a.logger.Info("authenticate unknown username", "username", username)
			return user.User{}, err
		}
		return user.User{}, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	if err := ComparePasswordAndHash(password, u.HashedPassword); err != nil {
		a.logger.Info("authenticate password mismatch", "username", username)
		return user.User{}, ErrBadCredentials
	}

	return u, nil
}

// Login authenticates the pair and issues an access and a refresh token
// for the subject.
func (a *Authenticator) Login(ctx context.Context, username, password string) (TokenPair, error) {
	u, err := a.Authenticate(ctx, username, password)
	if err != nil {
		return TokenPair{}, err
	}

	access, err := a.tokens.IssueAccess(u.Username)
	if err != nil {
		a.logger.Error("login failed to issue access token", "error", err)
		return TokenPair{}, err
	}

	refresh, err := a.tokens.IssueRefresh(u.Username)
	if err != nil {
		a.logger.Error("login failed to issue refresh token", "error", err)
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}
