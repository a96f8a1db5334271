package ports

import (
	"context"

	"github.com/accountly/user-service/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Lookup methods return domain.ErrUserNotFound when no record matches;
// a malformed id is treated the same as an absent one.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Update persists a full replacement of the record identified by user.ID
	// and returns the post-update state.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	// Delete removes the record and returns it, so callers can distinguish
	// a deletion from a no-op on an absent id.
	Delete(ctx context.Context, id string) (*domain.User, error)
}
