package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/stoune2024/go-user-api/internal/auth"
)

// newErrorHandler maps rich errors to their real status codes with a
// {detail, code} JSON body. The original implementation swallowed most
// failures into 200 responses; that behavior is intentionally not kept.
func newErrorHandler(logger auth.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"detail": fiberErr.Message})
		}

		var richErr *errors.Error
		if !errors.As(err, &richErr) {
			richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
				WithCode(errors.CodeInternal)
		}

		code := richErr.Code
		if code == 0 {
			// Ozzo validation results carry field details but no status.
			if richErr.Category == errors.CategoryValidation || len(richErr.ValidationMap()) > 0 {
				code = fiber.StatusBadRequest
			} else {
				code = fiber.StatusInternalServerError
			}
		}

		if code == fiber.StatusUnauthorized {
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("request failed",
				"path", c.Path(),
				"status", code,
				"error", richErr.Message,
			)
		} else {
			logger.Info("request rejected",
				"path", c.Path(),
				"status", code,
				"text_code", richErr.TextCode,
			)
		}

		body := fiber.Map{"detail": richErr.Message}
		if richErr.TextCode != "" {
			body["code"] = richErr.TextCode
		}
		if fields := richErr.ValidationMap(); len(fields) > 0 {
			body["fields"] = fields
		}

		return c.Status(code).JSON(body)
	}
}
