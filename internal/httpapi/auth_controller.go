package httpapi

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/stoune2024/go-user-api/internal/auth"
)

// AuthController serves the login flow: token issuance, the cookie-setting
// redirect variant, and the landing endpoint it redirects to.
type AuthController struct {
	auther     *auth.Authenticator
	cookieName string
	cookieTTL  time.Duration
	logger     auth.Logger
}

func NewAuthController(auther *auth.Authenticator, cookieName string, cookieTTL time.Duration, logger auth.Logger) *AuthController {
	if cookieTTL <= 0 {
		cookieTTL = 15 * time.Minute
	}
	return &AuthController{
		auther:     auther,
		cookieName: cookieName,
		cookieTTL:  cookieTTL,
		logger:     logger,
	}
}

// LoginPayload is the form body of /auth/token and /auth/login.
type LoginPayload struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Validate will validate the payload
func (p LoginPayload) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&p,
			validation.Field(&p.Username, validation.Required),
			validation.Field(&p.Password, validation.Required),
		)
	}, "Invalid login request payload")
}

// Token handles POST /auth/token: authenticate the pair and return both
// tokens in the body.
func (a *AuthController) Token(c *fiber.Ctx) error {
	payload := new(LoginPayload)
	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Failed to parse login form").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	pair, err := a.auther.Login(c.UserContext(), payload.Username, payload.Password)
	if err != nil {
		return err
	}

	return c.JSON(pair)
}

// Login handles POST /auth/login: same authentication, but the access
// token additionally travels back as an HTTP-only secure cookie and an
// Authorization header on a 303 redirect.
func (a *AuthController) Login(c *fiber.Ctx) error {
	payload := new(LoginPayload)
	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Failed to parse login form").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	pair, err := a.auther.Login(c.UserContext(), payload.Username, payload.Password)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     a.cookieName,
		Value:    pair.AccessToken,
		Expires:  time.Now().Add(a.cookieTTL),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
	c.Set(fiber.HeaderAuthorization, "Bearer "+pair.AccessToken)

	return c.Redirect("/auth/suc_auth", fiber.StatusSeeOther)
}

// Success handles GET /auth/suc_auth, the post-login landing endpoint.
func (a *AuthController) Success(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Authorization successful, access token stored in cookies!",
	})
}
