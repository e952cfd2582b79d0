package auth

import (
	"github.com/goliatone/go-errors"
)

// ErrMismatchedHashAndPassword is the comparison failure of the password
// hasher. The login flow maps it to ErrBadCredentials before it reaches
// the transport.
var ErrMismatchedHashAndPassword = errors.New("password does not match", errors.CategoryAuth).
	WithTextCode("BAD_CREDENTIALS").
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString rejects hashing of empty passwords.
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryBadInput).
	WithTextCode("EMPTY_PASSWORD").
	WithCode(errors.CodeBadRequest)

// ErrBadCredentials is returned when the presented password does not
// match the stored hash.
var ErrBadCredentials = errors.New("incorrect username or password", errors.CategoryAuth).
	WithTextCode("BAD_CREDENTIALS").
	WithCode(errors.CodeUnauthorized)

// ErrTokenInvalid covers malformed, tampered and expired tokens.
var ErrTokenInvalid = errors.New("access token is not valid", errors.CategoryAuth).
	WithTextCode("TOKEN_INVALID").
	WithCode(errors.CodeUnauthorized)

// ErrMissingSubject is returned when a token decodes fine but carries no
// subject claim.
var ErrMissingSubject = errors.New("token has no subject", errors.CategoryAuth).
	WithTextCode("TOKEN_MISSING_SUBJECT").
	WithCode(errors.CodeUnauthorized)

// ErrUnauthorized is returned when a structurally valid token names a
// subject the store does not know.
var ErrUnauthorized = errors.New("user is not authorized", errors.CategoryAuth).
	WithTextCode("SUBJECT_UNKNOWN").
	WithCode(errors.CodeUnauthorized)

// ErrUnauthenticated is returned when the request presents no usable
// credential at all.
var ErrUnauthenticated = errors.New("could not find token", errors.CategoryAuth).
	WithTextCode("CREDENTIALS_MISSING").
	WithCode(errors.CodeUnauthorized)
