// Package user holds the user record, its public projection, and the
// request payloads with their validation rules.
package user

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/goliatone/go-errors"
)

// phonePattern is the only accepted phone format, e.g. "+7 (000) 000-00-00".
var phonePattern = regexp.MustCompile(`^\+\d{1} \(\d{3}\) \d{3}-\d{2}-\d{2}$`)

// User is the stored record. HashedPassword is a bcrypt digest; the
// plaintext password never reaches this struct.
type User struct {
	ID             int    `json:"id"`
	Username       string `json:"username"`
	Name           string `json:"name"`
	Age            int    `json:"age"`
	IsSupervisor   bool   `json:"is_supervisor"`
	Email          string `json:"email"`
	Phone          string `json:"phone_number"`
	HashedPassword string `json:"-"`
}

// Public is the read projection exposed on user endpoints. It carries no
// credentials and no username.
type Public struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Age          int    `json:"age"`
	IsSupervisor bool   `json:"is_supervisor"`
	Email        string `json:"email"`
	Phone        string `json:"phone_number"`
}

// AsPublic returns the public projection of the record.
func (u User) AsPublic() Public {
	return Public{
		ID:           u.ID,
		Name:         u.Name,
		Age:          u.Age,
		IsSupervisor: u.IsSupervisor,
		Email:        u.Email,
		Phone:        u.Phone,
	}
}

// CreatePayload is the registration payload. IDs are externally assigned.
type CreatePayload struct {
	ID           int    `form:"id" json:"id"`
	Username     string `form:"username" json:"username"`
	Name         string `form:"name" json:"name"`
	Age          int    `form:"age" json:"age"`
	IsSupervisor bool   `form:"is_supervisor" json:"is_supervisor"`
	Email        string `form:"email" json:"email"`
	Phone        string `form:"phone_number" json:"phone_number"`
	Password     string `form:"password" json:"password"`
}

// Validate will validate the payload
func (p CreatePayload) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&p,
			validation.Field(&p.ID, validation.Min(0), validation.Max(1000)),
			validation.Field(&p.Username, validation.Required, validation.Length(1, 100)),
			validation.Field(&p.Name, validation.Required, validation.Length(1, 50)),
			validation.Field(&p.Age, validation.Required, validation.Min(1)),
			validation.Field(&p.Email, validation.Required, is.Email),
			validation.Field(&p.Phone, validation.Required, validation.Match(phonePattern).
				Error("must match the format: +7 (000) 000-00-00")),
			validation.Field(&p.Password, validation.Required, validation.Length(1, 100)),
		)
	}, "Invalid user payload")
}

// Record builds the stored record from the payload and an already
// computed password digest.
func (p CreatePayload) Record(hashedPassword string) User {
	return User{
		ID:             p.ID,
		Username:       p.Username,
		Name:           p.Name,
		Age:            p.Age,
		IsSupervisor:   p.IsSupervisor,
		Email:          p.Email,
		Phone:          p.Phone,
		HashedPassword: hashedPassword,
	}
}

// UpdatePayload is the partial-update payload. Nil fields are left
// untouched; a present Password is rehashed by the handler.
type UpdatePayload struct {
	Username     *string `form:"username" json:"username"`
	Name         *string `form:"name" json:"name"`
	Age          *int    `form:"age" json:"age"`
	IsSupervisor *bool   `form:"is_supervisor" json:"is_supervisor"`
	Email        *string `form:"email" json:"email"`
	Phone        *string `form:"phone_number" json:"phone_number"`
	Password     *string `form:"password" json:"password"`
}

// Validate will validate the payload
func (p UpdatePayload) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&p,
			validation.Field(&p.Username, validation.Length(1, 100)),
			validation.Field(&p.Name, validation.Length(1, 50)),
			validation.Field(&p.Age, validation.Min(1)),
			validation.Field(&p.Email, is.Email),
			validation.Field(&p.Phone, validation.Match(phonePattern).
				Error("must match the format: +7 (000) 000-00-00")),
			validation.Field(&p.Password, validation.Length(1, 100)),
		)
	}, "Invalid user payload")
}

// Apply copies the set fields onto the record. Password is intentionally
// not applied here; rehashing is the caller's concern.
func (p UpdatePayload) Apply(u *User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	if p.IsSupervisor != nil {
		u.IsSupervisor = *p.IsSupervisor
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
}
