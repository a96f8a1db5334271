package ports

import (
	"context"

	"github.com/accountly/user-service/internal/core/domain"
)

// RegisterInput carries the fields accepted at registration.
// Role is optional; the service substitutes domain.DefaultRole.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// UpdateInput carries a partial update. Empty fields are left unchanged;
// a non-empty Password is re-hashed before storage.
type UpdateInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

type UserService interface {
	Register(ctx context.Context, in RegisterInput) (token string, user *domain.User, err error)
	Login(ctx context.Context, email, password string) (token, role string, err error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, in UpdateInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) (*domain.User, error)
}
