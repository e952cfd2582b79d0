package user_test

import (
	"testing"

	"github.com/stoune2024/go-user-api/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreatePayload() user.CreatePayload {
	return user.CreatePayload{
		ID:       1,
		Username: "johndoe",
		Name:     "John",
		Age:      30,
		Email:    "john@example.com",
		Phone:    "+7 (999) 123-45-67",
		Password: "deadpond",
	}
}

func strptr(v string) *string { return &v }
func agep(v int) *int         { return &v }

func TestCreatePayload_Validate(t *testing.T) {
	t.Run("accepts a complete payload", func(t *testing.T) {
		assert.Nil(t, validCreatePayload().Validate())
	})

	tests := []struct {
		name     string
		mutate   func(*user.CreatePayload)
		badField string
	}{
		{
			name:     "rejects a missing username",
			mutate:   func(p *user.CreatePayload) { p.Username = "" },
			badField: "username",
		},
		{
			name:     "rejects a missing name",
			mutate:   func(p *user.CreatePayload) { p.Name = "" },
			badField: "name",
		},
		{
			name:     "rejects an overlong name",
			mutate:   func(p *user.CreatePayload) { p.Name = string(make([]byte, 51)) },
			badField: "name",
		},
		{
			name:     "rejects a zero age",
			mutate:   func(p *user.CreatePayload) { p.Age = 0 },
			badField: "age",
		},
		{
			name:     "rejects an id above the cap",
			mutate:   func(p *user.CreatePayload) { p.ID = 1001 },
			badField: "id",
		},
		{
			name:     "rejects a malformed email",
			mutate:   func(p *user.CreatePayload) { p.Email = "not-an-email" },
			badField: "email",
		},
		{
			name:     "rejects a bare digit phone number",
			mutate:   func(p *user.CreatePayload) { p.Phone = "79991234567" },
			badField: "phone_number",
		},
		{
			name:     "rejects a phone number without the country code",
			mutate:   func(p *user.CreatePayload) { p.Phone = "(999) 123-45-67" },
			badField: "phone_number",
		},
		{
			name:     "rejects a missing password",
			mutate:   func(p *user.CreatePayload) { p.Password = "" },
			badField: "password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validCreatePayload()
			tt.mutate(&p)

			err := p.Validate()
			require.NotNil(t, err)
			assert.Contains(t, err.ValidationMap(), tt.badField)
		})
	}
}

func TestUpdatePayload_Validate(t *testing.T) {
	t.Run("an empty payload is valid", func(t *testing.T) {
		assert.Nil(t, user.UpdatePayload{}.Validate())
	})

	t.Run("set fields are still checked", func(t *testing.T) {
		err := user.UpdatePayload{Email: strptr("nope")}.Validate()
		require.NotNil(t, err)
		assert.Contains(t, err.ValidationMap(), "email")

		err = user.UpdatePayload{Phone: strptr("12345")}.Validate()
		require.NotNil(t, err)
		assert.Contains(t, err.ValidationMap(), "phone_number")
	})

	t.Run("valid partial updates pass", func(t *testing.T) {
		assert.Nil(t, user.UpdatePayload{
			Name:  strptr("Jane"),
			Age:   agep(25),
			Phone: strptr("+1 (555) 000-11-22"),
		}.Validate())
	})
}

func TestUpdatePayload_Apply(t *testing.T) {
	base := user.User{
		ID:             7,
		Username:       "johndoe",
		Name:           "John",
		Age:            30,
		Email:          "john@example.com",
		Phone:          "+7 (999) 123-45-67",
		HashedPassword: "original-hash",
	}

	t.Run("copies only the set fields", func(t *testing.T) {
		u := base
		sup := true
		user.UpdatePayload{
			Name:         strptr("Jane"),
			IsSupervisor: &sup,
		}.Apply(&u)

		assert.Equal(t, "Jane", u.Name)
		assert.True(t, u.IsSupervisor)
		assert.Equal(t, "johndoe", u.Username)
		assert.Equal(t, 30, u.Age)
	})

	t.Run("a set password does not touch the stored hash", func(t *testing.T) {
		u := base
		user.UpdatePayload{Password: strptr("new-password")}.Apply(&u)
		assert.Equal(t, "original-hash", u.HashedPassword)
	})
}

func TestUser_AsPublic(t *testing.T) {
	u := user.User{
		ID:             7,
		Username:       "johndoe",
		Name:           "John",
		Age:            30,
		IsSupervisor:   true,
		Email:          "john@example.com",
		Phone:          "+7 (999) 123-45-67",
		HashedPassword: "hash",
	}

	pub := u.AsPublic()
	assert.Equal(t, 7, pub.ID)
	assert.Equal(t, "John", pub.Name)
	assert.True(t, pub.IsSupervisor)
	assert.Equal(t, "+7 (999) 123-45-67", pub.Phone)
}
