package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/accountly/user-service/internal/core/domain"
	"github.com/accountly/user-service/internal/core/ports"
	"github.com/accountly/user-service/internal/infrastructure/security"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.nextID++
	copy := cloneUser(user)
	copy.ID = strconv.Itoa(r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	delete(r.users, id)
	return cloneUser(u), nil
}

func newTestService(repo ports.UserRepository) *UserService {
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	issuer := security.NewJWTIssuer("secret", time.Hour)
	return NewUserService(repo, hasher, issuer, zerolog.Nop())
}

func TestUserService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo)

	token, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "pass123",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if user.Password == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("pass123")); err != nil {
		t.Fatalf("stored digest does not match password: %v", err)
	}
	if user.Role != domain.DefaultRole {
		t.Fatalf("expected default role, got %q", user.Role)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["id"] != user.ID {
		t.Fatalf("expected id claim %q, got %v", user.ID, claims["id"])
	}
	if _, present := claims["role"]; present {
		t.Fatalf("registration token must not carry a role claim")
	}
}

func TestUserService_Register_MissingFields(t *testing.T) {
	svc := newTestService(newStubUserRepo())

	cases := []ports.RegisterInput{
		{Email: "a@example.com", Password: "p"},
		{Username: "a", Password: "p"},
		{Username: "a", Email: "a@example.com"},
	}
	for _, in := range cases {
		if _, _, err := svc.Register(context.Background(), in); err != domain.ErrMissingFields {
			t.Fatalf("input %+v: expected ErrMissingFields, got %v", in, err)
		}
	}
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	svc := newTestService(newStubUserRepo())

	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "bob", Email: "bob@example.com", Password: "pass",
	}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "bobby", Email: "bob@example.com", Password: "other",
	})
	if err != domain.ErrEmailExists {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestUserService_Register_ExplicitRole(t *testing.T) {
	svc := newTestService(newStubUserRepo())

	_, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "carol", Email: "carol@example.com", Password: "pass", Role: "admin",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != "admin" {
		t.Fatalf("expected explicit role, got %q", user.Role)
	}
}

func TestUserService_Login_Success(t *testing.T) {
	svc := newTestService(newStubUserRepo())

	_, registered, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "dana", Email: "dana@example.com", Password: "s3cret", Role: "admin",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, role, err := svc.Login(context.Background(), "dana@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if role != "admin" {
		t.Fatalf("expected role admin, got %q", role)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["id"] != registered.ID {
		t.Fatalf("expected id claim %q, got %v", registered.ID, claims["id"])
	}
	if claims["role"] != "admin" {
		t.Fatalf("expected role claim, got %v", claims["role"])
	}
}

func TestUserService_Login_UserNotFound(t *testing.T) {
	svc := newTestService(newStubUserRepo())

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Login_IncorrectPassword(t *testing.T) {
	svc := newTestService(newStubUserRepo())

	_, _, _ = svc.Register(context.Background(), ports.RegisterInput{
		Username: "eve", Email: "eve@example.com", Password: "goodpass",
	})
	if _, _, err := svc.Login(context.Background(), "eve@example.com", "badpass"); err != domain.ErrIncorrectPassword {
		t.Fatalf("expected ErrIncorrectPassword, got %v", err)
	}
}

func TestUserService_Login_MissingFields(t *testing.T) {
	svc := newTestService(newStubUserRepo())

	if _, _, err := svc.Login(context.Background(), "", "pass"); err != domain.ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "a@example.com", ""); err != domain.ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestUserService_UpdateUser_PartialFields(t *testing.T) {
	svc := newTestService(newStubUserRepo())

	_, registered, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "frank", Email: "frank@example.com", Password: "pass",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	updated, err := svc.UpdateUser(context.Background(), registered.ID, ports.UpdateInput{Role: "admin"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Role != "admin" {
		t.Fatalf("expected role admin, got %q", updated.Role)
	}
	if updated.Username != "frank" || updated.Email != "frank@example.com" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if updated.Password != registered.Password {
		t.Fatalf("password digest changed without a new password")
	}

	fetched, err := svc.GetUser(context.Background(), registered.ID)
	if err != nil {
		t.Fatalf("get after update failed: %v", err)
	}
	if fetched.Role != "admin" {
		t.Fatalf("update not persisted: %+v", fetched)
	}
}

func TestUserService_UpdateUser_RehashesPassword(t *testing.T) {
	svc := newTestService(newStubUserRepo())

	_, registered, _ := svc.Register(context.Background(), ports.RegisterInput{
		Username: "gina", Email: "gina@example.com", Password: "oldpass",
	})

	updated, err := svc.UpdateUser(context.Background(), registered.ID, ports.UpdateInput{Password: "newpass"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Password == "newpass" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("newpass")); err != nil {
		t.Fatalf("digest does not match new password: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "gina@example.com", "newpass"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "gina@example.com", "oldpass"); err != domain.ErrIncorrectPassword {
		t.Fatalf("expected old password rejected, got %v", err)
	}
}

func TestUserService_UpdateUser_NotFound(t *testing.T) {
	svc := newTestService(newStubUserRepo())

	if _, err := svc.UpdateUser(context.Background(), "missing", ports.UpdateInput{Role: "admin"}); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_DeleteUser(t *testing.T) {
	svc := newTestService(newStubUserRepo())

	_, registered, _ := svc.Register(context.Background(), ports.RegisterInput{
		Username: "hank", Email: "hank@example.com", Password: "pass",
	})

	deleted, err := svc.DeleteUser(context.Background(), registered.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted.ID != registered.ID {
		t.Fatalf("unexpected deleted record: %+v", deleted)
	}

	if _, err := svc.GetUser(context.Background(), registered.ID); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound after delete, got %v", err)
	}
	if _, err := svc.DeleteUser(context.Background(), registered.ID); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}

func TestUserService_ListUsers(t *testing.T) {
	svc := newTestService(newStubUserRepo())

	emails := []string{"u1@example.com", "u2@example.com", "u3@example.com"}
	for i, email := range emails {
		if _, _, err := svc.Register(context.Background(), ports.RegisterInput{
			Username: "user" + strconv.Itoa(i), Email: email, Password: "pass",
		}); err != nil {
			t.Fatalf("register %s failed: %v", email, err)
		}
	}

	users, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != len(emails) {
		t.Fatalf("expected %d users, got %d", len(emails), len(users))
	}

	seen := make(map[string]int)
	for _, u := range users {
		seen[u.Email]++
	}
	for _, email := range emails {
		if seen[email] != 1 {
			t.Fatalf("email %s appears %d times", email, seen[email])
		}
	}
}
