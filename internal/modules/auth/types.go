package auth

import "errors"

var (
	// ErrEmailTaken is returned when a signup or profile change collides
	// with an existing account's email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so responses never reveal which accounts exist.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNotFound is returned when the referenced account does not exist.
	ErrNotFound = errors.New("user not found")
)

type SignupDTO struct {
	FirstName string `json:"firstname" binding:"required"`
	LastName  string `json:"lastname" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileDTO struct {
	FirstName *string `json:"firstname"`
	LastName  *string `json:"lastname"`
	Password  *string `json:"password"`
}

// ProfileUpdate carries the resolved field changes handed to the store.
// Nil fields are left untouched.
type ProfileUpdate struct {
	FirstName    *string
	LastName     *string
	PasswordHash *string
}

func (p *ProfileUpdate) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.PasswordHash == nil
}
