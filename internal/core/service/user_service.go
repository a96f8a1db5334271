package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/accountly/user-service/internal/core/domain"
	"github.com/accountly/user-service/internal/core/ports"
)

// UserService implements account registration, login, and CRUD.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, issuer: issuer, logger: logger}
}

// Register creates an account after checking that the email is unused.
// The uniqueness check is a lookup followed by a separate insert; two
// concurrent registrations for the same email can both pass it (see
// DESIGN.md). The issued token carries only the user id.
func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return "", nil, domain.ErrMissingFields
	}

	_, err := s.repo.FindByEmail(ctx, in.Email)
	if err == nil {
		return "", nil, domain.ErrEmailExists
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, fmt.Errorf("check email: %w", err)
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", nil, err
	}

	role := in.Role
	if role == "" {
		role = domain.DefaultRole
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Username: in.Username,
		Email:    in.Email,
		Password: digest,
		Role:     role,
	})
	if err != nil {
		return "", nil, err
	}

	token, err := s.issuer.Issue(ports.TokenClaims{UserID: created.ID})
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user registered")

	return token, created, nil
}

// Login verifies the credentials and issues a token carrying the user
// id plus the role claim.
func (s *UserService) Login(ctx context.Context, email, password string) (string, string, error) {
	if email == "" || password == "" {
		return "", "", domain.ErrMissingFields
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", "", err
	}

	ok, err := s.hasher.Verify(password, user.Password)
	if err != nil {
		return "", "", err
	}
	if !ok {
		s.logger.Warn().Str("user_id", user.ID).Msg("login rejected: password mismatch")
		return "", "", domain.ErrIncorrectPassword
	}

	token, err := s.issuer.Issue(ports.TokenClaims{UserID: user.ID, Role: user.Role})
	if err != nil {
		return "", "", err
	}

	return token, user.Role, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateUser applies only the fields present in the input. A supplied
// password is re-hashed before storage; id, and any omitted field, stay
// as they were.
func (s *UserService) UpdateUser(ctx context.Context, id string, in ports.UpdateInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Username != "" {
		user.Username = in.Username
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.Password != "" {
		digest, err := s.hasher.Hash(in.Password)
		if err != nil {
			return nil, err
		}
		user.Password = digest
	}
	if in.Role != "" {
		user.Role = in.Role
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", updated.ID).Msg("user updated")
	return updated, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) (*domain.User, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", deleted.ID).Msg("user deleted")
	return deleted, nil
}
