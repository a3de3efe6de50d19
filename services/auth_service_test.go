package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"devclub.community/models"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthServiceDB(newTestDB(t), "test-secret", time.Hour)
}

func TestSignupAndLogin(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	user, token, err := svc.Signup(ctx, "Jane Doe", "Jane@Example.com", "secret123")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if user.Email != "jane@example.com" {
		t.Errorf("email = %q, want normalized jane@example.com", user.Email)
	}
	if user.Role != models.RoleUser {
		t.Errorf("role = %q, want user", user.Role)
	}
	if token == "" {
		t.Fatal("signup returned empty token")
	}

	claims, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != string(models.RoleUser) {
		t.Errorf("claims = %+v, want uid=%d role=user", claims, user.ID)
	}

	// Duplicate email is a business failure, not a storage failure.
	if _, _, err := svc.Signup(ctx, "Other", "JANE@example.com", "secret456"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate signup err = %v, want ErrEmailTaken", err)
	}

	logged, _, err := svc.Login(ctx, "jane@example.com", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if logged.LastLoginAt == nil {
		t.Error("lastLoginAt not stamped on login")
	}

	if _, _, err := svc.Login(ctx, "jane@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
}

func TestParseTokenRejectsTampered(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, token, err := svc.Signup(ctx, "Jane Doe", "jane@example.com", "secret123")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if _, err := svc.ParseToken(token + "x"); err == nil {
		t.Error("tampered token accepted")
	}
	if _, err := svc.ParseToken(""); err == nil {
		t.Error("empty token accepted")
	}
}

func TestUpdateProfile(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	user, _, err := svc.Signup(ctx, "Jane Doe", "jane@example.com", "secret123")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	updated, err := svc.UpdateProfile(ctx, user.ID, ProfileInput{
		Bio:     "Gopher and community organizer",
		GitHub:  "https://github.com/janedoe",
		Website: "https://janedoe.dev",
	})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if updated.Bio != "Gopher and community organizer" {
		t.Errorf("bio = %q", updated.Bio)
	}
	if updated.Name != "Jane Doe" {
		t.Errorf("name changed on partial update: %q", updated.Name)
	}

	if _, err := svc.UpdateProfile(ctx, 9999, ProfileInput{Name: "Ghost"}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("missing user err = %v, want ErrUserNotFound", err)
	}
}
