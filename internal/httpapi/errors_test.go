package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/stoune2024/go-user-api/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errorApp(handler fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: newErrorHandler(noopLogger{}),
	})
	app.Get("/boom", handler)
	return app
}

func errorResp(t *testing.T, app *fiber.App) (int, map[string]any) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body), "body: %s", raw)
	return resp.StatusCode, body
}

func TestErrorHandler(t *testing.T) {
	t.Run("validation results without a status map to 400", func(t *testing.T) {
		status, body := errorResp(t, errorApp(func(c *fiber.Ctx) error {
			return user.CreatePayload{}.Validate()
		}))

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "Invalid user payload", body["detail"])

		fields, ok := body["fields"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, fields, "username")
		assert.Contains(t, fields, "email")
	})

	t.Run("rich errors keep their explicit status", func(t *testing.T) {
		status, body := errorResp(t, errorApp(func(c *fiber.Ctx) error {
			return errors.New("gone", errors.CategoryNotFound).
				WithTextCode("IDENTITY_NOT_FOUND").
				WithCode(errors.CodeNotFound)
		}))

		assert.Equal(t, fiber.StatusNotFound, status)
		assert.Equal(t, "IDENTITY_NOT_FOUND", body["code"])
	})

	t.Run("uncategorized errors stay internal", func(t *testing.T) {
		status, body := errorResp(t, errorApp(func(c *fiber.Ctx) error {
			return errors.New("broken pipe", errors.CategoryInternal)
		}))

		assert.Equal(t, fiber.StatusInternalServerError, status)
		assert.Equal(t, "broken pipe", body["detail"])
	})

	t.Run("fiber errors pass through untouched", func(t *testing.T) {
		status, body := errorResp(t, errorApp(func(c *fiber.Ctx) error {
			return fiber.ErrMethodNotAllowed
		}))

		assert.Equal(t, fiber.StatusMethodNotAllowed, status)
		assert.Equal(t, "Method Not Allowed", body["detail"])
	})
}
