package httpapi

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/stoune2024/go-user-api/internal/auth"
	"github.com/stoune2024/go-user-api/internal/user"
)

// maxUserID bounds path and query identifiers.
const maxUserID = 1000

// UserController serves registration and the user CRUD endpoints.
type UserController struct {
	users  UserRepository
	logger auth.Logger
}

func NewUserController(users UserRepository, logger auth.Logger) *UserController {
	return &UserController{
		users:  users,
		logger: logger,
	}
}

// Create handles POST /user/: open registration. The password is hashed
// before the record reaches the store.
func (u *UserController) Create(c *fiber.Ctx) error {
	payload := new(user.CreatePayload)
	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Failed to parse user payload").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	hashed, err := auth.HashPassword(payload.Password)
	if err != nil {
		return err
	}

	record := payload.Record(hashed)
	if err := u.users.Create(c.UserContext(), record); err != nil {
		return err
	}

	u.logger.Info("user registered", "id", record.ID, "username", record.Username)

	return c.JSON(fiber.Map{
		"message": "user is created",
		"user":    record,
	})
}

// CreateBatch handles POST /user/users/: authenticated bulk creation from
// a JSON array.
func (u *UserController) CreateBatch(c *fiber.Ctx) error {
	var payloads []user.CreatePayload
	if err := c.BodyParser(&payloads); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Failed to parse user list").
			WithCode(errors.CodeBadRequest)
	}

	for i := range payloads {
		if err := payloads[i].Validate(); err != nil {
			return err
		}
	}

	created := make([]user.User, 0, len(payloads))
	for i := range payloads {
		hashed, err := auth.HashPassword(payloads[i].Password)
		if err != nil {
			return err
		}

		record := payloads[i].Record(hashed)
		if err := u.users.Create(c.UserContext(), record); err != nil {
			return err
		}
		created = append(created, record)
	}

	u.logger.Info("users registered", "count", len(created))

	return c.JSON(fiber.Map{
		"message": "users are created",
		"users":   created,
	})
}

// List handles GET /user/users/ with optional start_index/end_index query
// bounds: 1-indexed start, exclusive end, mirroring the store contract.
func (u *UserController) List(c *fiber.Ctx) error {
	start, err := optionalIndex(c, "start_index")
	if err != nil {
		return err
	}
	end, err := optionalIndex(c, "end_index")
	if err != nil {
		return err
	}

	records, err := u.users.List(c.UserContext(), start, end)
	if err != nil {
		return err
	}

	out := make([]user.Public, len(records))
	for i := range records {
		out[i] = records[i].AsPublic()
	}

	return c.JSON(out)
}

// Read handles the single-record lookup. It backs both the
// dependency-gated GET /user/users/:id and the cookie-gated
// GET /protected_user/users/:id.
func (u *UserController) Read(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	record, err := u.users.ByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(record.AsPublic())
}

// Update handles PATCH /user/users/:id: unset fields stay untouched; a
// present password is rehashed before it is stored.
func (u *UserController) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	payload := new(user.UpdatePayload)
	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Failed to parse user payload").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	var hashed string
	if payload.Password != nil {
		if hashed, err = auth.HashPassword(*payload.Password); err != nil {
			return err
		}
	}

	record, err := u.users.Update(c.UserContext(), id, func(rec *user.User) {
		payload.Apply(rec)
		if hashed != "" {
			rec.HashedPassword = hashed
		}
	})
	if err != nil {
		return err
	}

	return c.JSON(record.AsPublic())
}

// Delete handles DELETE /user/users/:id. Deleting an absent id still
// acknowledges success, matching the store contract.
func (u *UserController) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := u.users.Delete(c.UserContext(), id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("User with ID: %d has been deleted successfully", id),
	})
}

func pathID(c *fiber.Ctx) (int, error) {
	raw := c.Params("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 || id > maxUserID {
		return 0, errors.New("user id must be an integer between 0 and 1000", errors.CategoryBadInput).
			WithTextCode("INVALID_USER_ID").
			WithCode(errors.CodeBadRequest)
	}
	return id, nil
}

func optionalIndex(c *fiber.Ctx, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 || v > maxUserID {
		return nil, errors.New(name+" must be an integer between 0 and 1000", errors.CategoryBadInput).
			WithTextCode("INVALID_INDEX").
			WithCode(errors.CodeBadRequest)
	}
	return &v, nil
}
