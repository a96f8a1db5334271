package handler

import "github.com/accountly/user-service/internal/core/domain"

// --- Request types ---

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// --- Response types ---
// The field names and envelopes below are part of the external contract
// and are kept stable; clients match on the status/error strings.

type registerResponse struct {
	Status string       `json:"status"`
	Msg    string       `json:"msg"`
	Token  string       `json:"token"`
	User   *domain.User `json:"user"`
}

// registerFailure is the 400/500 envelope for the register endpoint.
type registerFailure struct {
	Status string `json:"status"`
	Msg    string `json:"msg"`
	Error  string `json:"error,omitempty"`
}

type loginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// loginFailure carries the login error envelope; Message holds the
// underlying cause on 500s only.
type loginFailure struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type updateResponse struct {
	Message     string       `json:"message"`
	UpdatedUser *domain.User `json:"updatedUser"`
}

// messageResponse is the envelope for 404s, delete confirmations, and
// list/get/update/delete 500s.
type messageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
