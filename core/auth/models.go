package auth

import (
	"github.com/go-playground/validator/v10"

	"github.com/tutorpad/tutorpad/core"
)

const keyPrefix = "session:"

// Key returns the store key for a session token.
func Key(token string) string {
	return keyPrefix + token
}

// Session is the server-side record behind one issued session token. It is a
// snapshot of the user at login time, not a live view.
type Session struct {
	UserID   string  `json:"userId"`
	Username string  `json:"username"`
	Role     string  `json:"role"`
	Name     string  `json:"name"`
	BatchID  *string `json:"batchId"`
}

// Credentials is the login request payload.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,role"`
}

func (c *Credentials) Validate(validate *validator.Validate) error {
	c.Username = core.CleanString(c.Username)
	c.Role = core.CleanString(c.Role, true /* lower */)
	return validate.Struct(c)
}
