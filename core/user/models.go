package user

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tutorpad/tutorpad/core"
)

// Roles
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

var AllRoles = []string{RoleAdmin, RoleTeacher, RoleStudent}

const keyPrefix = "user:"

// Key returns the store key for a (role, username) pair.
// The document id is the key without the "user:" prefix.
func Key(role, username string) string {
	return keyPrefix + ID(role, username)
}

// ID returns the user document id, "<role>:<username>".
func ID(role, username string) string {
	return role + ":" + username
}

// PrefixFor returns the scan prefix for a role, or the whole namespace when
// role is empty.
func PrefixFor(role string) string {
	if role == "" {
		return keyPrefix
	}
	return keyPrefix + role + ":"
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	// Password holds the obfuscated (NOT hashed, see password.go) value.
	// It must persist in the store but is stripped from every API response.
	Password  string    `json:"password,omitempty"`
	Role      string    `json:"role"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	BatchID   *string   `json:"batchId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) SetPassword(pwd string) {
	u.Password = ObfuscatePassword(pwd)
}

func (u User) CheckPassword(pwd string) bool {
	return CheckPassword(pwd, u.Password)
}

// Sanitized returns a copy safe to hand to API callers: the stored password
// never leaves the service layer.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}

func (u User) IsAdmin() bool   { return u.Role == RoleAdmin }
func (u User) IsTeacher() bool { return u.Role == RoleTeacher }
func (u User) IsStudent() bool { return u.Role == RoleStudent }

// NewUser contains information needed to create a new User.
type NewUser struct {
	Username string  `json:"username" validate:"required"`
	Password string  `json:"password" validate:"required"`
	Role     string  `json:"role" validate:"required,role"`
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"omitempty,email"`
	BatchID  *string `json:"batchId"`
}

func (nu *NewUser) Validate(validate *validator.Validate) error {
	nu.Username = core.CleanString(nu.Username)
	nu.Role = core.CleanString(nu.Role, true /* lower */)
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	return validate.Struct(nu)
}

// UpdateUser defines what information may be provided to modify an existing
// User. Nil / unset fields are left untouched (shallow merge); batchId
// distinguishes an explicit null (detach from batch) from an absent field.
type UpdateUser struct {
	Name     *string             `json:"name"`
	Password *string             `json:"password"`
	Email    *string             `json:"email" validate:"omitempty,email"`
	BatchID  core.OptionalString `json:"batchId"`
}

func (uu *UpdateUser) Validate(validate *validator.Validate) error {
	if uu.Name != nil {
		*uu.Name = core.CleanString(*uu.Name)
	}
	if uu.Email != nil {
		*uu.Email = core.CleanString(*uu.Email, true /* lower */)
	}
	return validate.Struct(uu)
}
