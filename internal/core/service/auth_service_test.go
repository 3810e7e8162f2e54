package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/todo-api/internal/core/domain"
	"github.com/taskhive/todo-api/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int64
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

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = r.nextID
	r.users[copy.Username] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	for name, u := range r.users {
		if u.ID == user.ID {
			if name != user.Username {
				delete(r.users, name)
			}
			r.users[user.Username] = cloneUser(user)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

type stubRevoker struct {
	revoked map[string]time.Duration
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]time.Duration)}
}

func (s *stubRevoker) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	s.revoked[jti] = ttl
	return nil
}

func (s *stubRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := s.revoked[jti]
	return ok, nil
}

func registerInput(username string) ports.RegisterInput {
	return ports.RegisterInput{
		Username:    username,
		Email:       username + "@example.com",
		FirstName:   "Test",
		LastName:    "User",
		Password:    "s3cretpass",
		Role:        domain.RoleUser,
		PhoneNumber: "555-0100",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubRevoker(), "secret", time.Hour, zerolog.Nop())

	user, err := svc.Register(context.Background(), registerInput("alice"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if user.PasswordHash == "s3cretpass" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cretpass")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if !user.IsActive {
		t.Fatalf("expected new user to be active")
	}
}

func TestAuthService_Register_RejectsUnknownRole(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newStubRevoker(), "secret", time.Hour, zerolog.Nop())

	input := registerInput("bob")
	input.Role = "superuser"
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown role, got %v", err)
	}

	input.Role = ""
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty role, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubRevoker(), "secret", time.Hour, zerolog.Nop())

	if _, err := svc.Register(context.Background(), registerInput("bob")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), registerInput("bob")); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_TokenClaims(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubRevoker(), "secret", time.Hour, zerolog.Nop())

	input := registerInput("carol")
	input.Role = domain.RoleAdmin
	registered, err := svc.Register(context.Background(), input)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, err := svc.Login(context.Background(), "carol", "s3cretpass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != "carol" {
		t.Fatalf("expected sub carol, got %v", claims["sub"])
	}
	if int64(claims["id"].(float64)) != registered.ID {
		t.Fatalf("expected id %d, got %v", registered.ID, claims["id"])
	}
	if claims["role"] != domain.RoleAdmin {
		t.Fatalf("expected role %s, got %v", domain.RoleAdmin, claims["role"])
	}
	if jti, _ := claims["jti"].(string); jti == "" {
		t.Fatalf("expected non-empty jti")
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		t.Fatalf("expected exp claim: %v", err)
	}
	if until := time.Until(exp.Time); until <= 0 || until > time.Hour {
		t.Fatalf("unexpected expiry %v", exp.Time)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubRevoker(), "secret", time.Hour, zerolog.Nop())

	if _, err := svc.Register(context.Background(), registerInput("dave")); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), "dave", "wrongpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newStubRevoker(), "secret", time.Hour, zerolog.Nop())

	if _, err := svc.Login(context.Background(), "ghost", "pass"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Logout_RevokesUntilExpiry(t *testing.T) {
	revoker := newStubRevoker()
	svc := NewAuthService(newStubUserRepo(), revoker, "secret", time.Hour, zerolog.Nop())

	expiresAt := time.Now().Add(10 * time.Minute).Unix()
	if err := svc.Logout(context.Background(), "token-1", expiresAt); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	ttl, ok := revoker.revoked["token-1"]
	if !ok {
		t.Fatalf("expected jti to be revoked")
	}
	if ttl <= 0 || ttl > 10*time.Minute {
		t.Fatalf("unexpected revocation ttl %v", ttl)
	}
}

func TestAuthService_Logout_ExpiredTokenIsNoop(t *testing.T) {
	revoker := newStubRevoker()
	svc := NewAuthService(newStubUserRepo(), revoker, "secret", time.Hour, zerolog.Nop())

	if err := svc.Logout(context.Background(), "token-2", time.Now().Add(-time.Minute).Unix()); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if len(revoker.revoked) != 0 {
		t.Fatalf("expected no revocation for an already-expired token")
	}
}
