package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/stoune2024/go-user-api/internal/auth"
	"github.com/stoune2024/go-user-api/internal/external"
)

// ExternalController proxies a remote JSON collection, windowed by
// offset/limit query parameters.
type ExternalController struct {
	client *external.Client
	logger auth.Logger
}

func NewExternalController(client *external.Client, logger auth.Logger) *ExternalController {
	return &ExternalController{
		client: client,
		logger: logger,
	}
}

// Fetch handles GET /api/json?offset=&limit=. Offset is 1-indexed; the
// returned window is result[offset-1 : offset-2+limit], clamped to the
// collection.
func (e *ExternalController) Fetch(c *fiber.Ctx) error {
	offset := c.QueryInt("offset", 1)
	if offset < 1 || offset > 99 {
		return errors.New("offset must be between 1 and 99", errors.CategoryBadInput).
			WithTextCode("INVALID_OFFSET").
			WithCode(errors.CodeBadRequest)
	}

	limit := c.QueryInt("limit", 101)
	if limit < 1 || limit > 101 {
		return errors.New("limit must be between 1 and 101", errors.CategoryBadInput).
			WithTextCode("INVALID_LIMIT").
			WithCode(errors.CodeBadRequest)
	}

	result, err := e.client.Fetch(c.UserContext())
	if err != nil {
		e.logger.Error("upstream fetch failed", "error", err)
		return err
	}

	lo := offset - 1
	hi := offset - 2 + limit
	if hi > len(result) {
		hi = len(result)
	}
	if lo > hi {
		lo = hi
	}

	return c.JSON(result[lo:hi])
}
