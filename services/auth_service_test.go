package services

import (
	"errors"
	"testing"
)

func TestAuthRegisterAndLogin(t *testing.T) {
	auth := NewAuthService(newTestDB(t), []byte("secret"))

	user, err := auth.RegisterUser(" Ana@Example.com ", "hunter22", "Ana")
	if err != nil {
		t.Fatalf("RegisterUser() error = %v", err)
	}
	if user.ID == "" || user.Email != "ana@example.com" || user.Password == "hunter22" {
		t.Fatalf("unexpected stored user %+v", user)
	}
	if _, err := auth.RegisterUser("ana@example.com", "other", ""); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	token, err := auth.AuthenticateUser("ana@example.com", "hunter22")
	if err != nil || token == "" {
		t.Fatalf("AuthenticateUser() = %q, %v", token, err)
	}
	if _, err := auth.AuthenticateUser("ana@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := auth.AuthenticateUser("nobody@example.com", "hunter22"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}

	found, err := auth.FindUserByID(user.ID)
	if err != nil || found.Email != user.Email {
		t.Fatalf("FindUserByID() = %+v, %v", found, err)
	}
}
