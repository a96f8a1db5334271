package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/accountly/user-service/internal/api/metrics"
	"github.com/accountly/user-service/internal/core/domain"
	"github.com/accountly/user-service/internal/core/ports"
)

// UserHandler handles HTTP requests for user account operations.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Register creates a new user account and returns a bearer token.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      200   {object}  registerResponse
// @Failure      400   {object}  registerFailure
// @Failure      500   {object}  registerFailure
// @Router       /register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, registerFailure{Status: "notok", Msg: "Please enter all required data"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, registerFailure{Status: "notok", Msg: "Please enter all required data"})
	}

	token, user, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingFields):
			return c.JSON(http.StatusBadRequest, registerFailure{Status: "notok", Msg: "Please enter all required data"})
		case errors.Is(err, domain.ErrEmailExists):
			return c.JSON(http.StatusBadRequest, registerFailure{Status: "notokmail", Msg: "Email already exists"})
		default:
			return c.JSON(http.StatusInternalServerError, registerFailure{Status: "error", Msg: "Internal server error", Error: err.Error()})
		}
	}

	metrics.RegistrationsTotal.Inc()
	return c.JSON(http.StatusOK, registerResponse{
		Status: "ok",
		Msg:    "Successfully registered",
		Token:  token,
		User:   user,
	})
}

// Login authenticates a user and returns a token plus the user's role.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  loginFailure
// @Failure      401   {object}  loginFailure
// @Failure      500   {object}  loginFailure
// @Router       /login-user [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, loginFailure{Error: "Please provide email and password"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, loginFailure{Error: "Please provide email and password"})
	}

	token, role, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingFields):
			return c.JSON(http.StatusBadRequest, loginFailure{Error: "Please provide email and password"})
		case errors.Is(err, domain.ErrUserNotFound):
			metrics.LoginsTotal.WithLabelValues("not_found").Inc()
			return c.JSON(http.StatusUnauthorized, loginFailure{Error: "User not found"})
		case errors.Is(err, domain.ErrIncorrectPassword):
			metrics.LoginsTotal.WithLabelValues("bad_password").Inc()
			return c.JSON(http.StatusUnauthorized, loginFailure{Error: "Incorrect password"})
		default:
			metrics.LoginsTotal.WithLabelValues("error").Inc()
			return c.JSON(http.StatusInternalServerError, loginFailure{Error: "Internal server error", Message: err.Error()})
		}
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: token, Role: role})
}

// List returns every stored user.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Success      200  {array}   domain.User
// @Failure      500  {object}  messageResponse
// @Router       /all [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: "Error retrieving users", Error: err.Error()})
	}
	return c.JSON(http.StatusOK, users)
}

// Get returns a single user by id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, messageResponse{Message: "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: "Error retrieving user", Error: err.Error()})
	}
	return c.JSON(http.StatusOK, user)
}

// Update applies a partial update to a user.
//
// @Summary      Update a user by id
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "User id"
// @Param        body  body      updateRequest  true  "Fields to update (any subset)"
// @Success      200   {object}  updateResponse
// @Failure      404   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid request body"})
	}

	updated, err := h.service.UpdateUser(c.Request().Context(), c.Param("id"), ports.UpdateInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, messageResponse{Message: "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: "Error updating user", Error: err.Error()})
	}

	return c.JSON(http.StatusOK, updateResponse{Message: "User updated successfully", UpdatedUser: updated})
}

// Delete removes a user by id.
//
// @Summary      Delete a user by id
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if _, err := h.service.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, messageResponse{Message: "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: "Error deleting user", Error: err.Error()})
	}
	metrics.DeletionsTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "User deleted successfully"})
}
