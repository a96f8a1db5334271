package domain

import "errors"

// DefaultRole is assigned when a registration omits the role field.
const DefaultRole = "user"

var ErrUserNotFound = errors.New("user not found")
var ErrEmailExists = errors.New("email already exists")
var ErrMissingFields = errors.New("missing required fields")
var ErrIncorrectPassword = errors.New("incorrect password")

// User models an account record. Password holds the bcrypt digest once
// the record has passed through the service layer; plaintext is never
// persisted or serialized.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
