package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"musafir/internal/domain"
	"musafir/internal/service"
)

func newAuthService(userRepo *MockUserRepository) *service.AuthService {
	return service.NewAuthService(userRepo, "test-secret", time.Hour)
}

func TestAuth_RegisterThenLogin(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	svc := newAuthService(userRepo)

	user, err := svc.Register(context.Background(), service.RegisterRequest{
		Name:     "Ayesha",
		Email:    "Ayesha@Example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Email != "ayesha@example.com" {
		t.Fatalf("email must be normalised, got %q", user.Email)
	}
	if user.Role != domain.RoleMusafir {
		t.Fatalf("new accounts must be travellers, got %s", user.Role)
	}
	if user.PasswordHash == "correct-horse" {
		t.Fatal("password must not be stored in the clear")
	}

	token, logged, err := svc.Login(context.Background(), "ayesha@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token == "" || logged.ID != user.ID {
		t.Fatal("expected a token for the registered user")
	}

	verified, err := svc.VerifyToken(context.Background(), token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if verified.ID != user.ID {
		t.Fatalf("token resolved to wrong user: %s", verified.ID)
	}
}

func TestAuth_DuplicateEmailRejected(t *testing.T) {
	t.Parallel()

	svc := newAuthService(NewMockUserRepository())

	req := service.RegisterRequest{Name: "Bilal", Email: "bilal@example.com", Password: "long-enough"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), req); !errors.Is(err, service.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuth_WrongPasswordRejected(t *testing.T) {
	t.Parallel()

	svc := newAuthService(NewMockUserRepository())

	if _, err := svc.Register(context.Background(), service.RegisterRequest{
		Name: "Sana", Email: "sana@example.com", Password: "right-password",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "sana@example.com", "wrong-password"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuth_GarbageTokenRejected(t *testing.T) {
	t.Parallel()

	svc := newAuthService(NewMockUserRepository())

	if _, err := svc.VerifyToken(context.Background(), "not-a-token"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
