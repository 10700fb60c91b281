package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"aisb_backend/internal/config"
	"aisb_backend/internal/repository"
	"aisb_backend/internal/util"
)

func testAuthService(t *testing.T) *AuthService {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Admin.Username = "admin"
	cfg.Admin.Password = "admin123"

	return NewAuthService(
		repository.NewStudentRepository(testStore(t)),
		NewEmailService(config.EmailConfig{}, nil),
		cfg,
	)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := testAuthService(t)
	ctx := context.Background()

	student, err := svc.Register(ctx, "Alice", "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if student.ID == "" {
		t.Fatal("student id not assigned")
	}
	if student.Password == "password123" {
		t.Fatal("password stored in plain text")
	}

	token, got, err := svc.Login(ctx, "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("no token issued")
	}
	if got.ID != student.ID {
		t.Fatalf("logged in as %q, want %q", got.ID, student.ID)
	}

	claims, err := util.ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.Role != util.RoleStudent || claims.SubjectID != student.ID {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := testAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Alice", "alice@example.com", "password123"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := svc.Register(ctx, "Other Alice", "alice@example.com", "different123")
	if !errors.Is(err, util.ErrEmailRegistered) {
		t.Fatalf("err = %v, want ErrEmailRegistered", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := testAuthService(t)
	ctx := context.Background()

	svc.Register(ctx, "Alice", "alice@example.com", "password123")

	if _, _, err := svc.Login(ctx, "alice@example.com", "wrong"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "password123"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
}

func TestAdminLogin(t *testing.T) {
	svc := testAuthService(t)

	token, err := svc.AdminLogin("admin", "admin123")
	if err != nil {
		t.Fatalf("AdminLogin: %v", err)
	}
	claims, err := util.ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.Role != util.RoleAdmin {
		t.Fatalf("Role = %q, want admin", claims.Role)
	}

	if _, err := svc.AdminLogin("admin", "nope"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("bad admin creds err = %v, want ErrInvalidCredentials", err)
	}
}
