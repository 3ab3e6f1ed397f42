package user

import (
	"errors"
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestCreateUser(t *testing.T) {
	t.Parallel()

	got, err := CreateUser(CreateUserInput{
		Email:    " Ada@Example.COM ",
		Password: "hunter22",
		FullName: "  Ada Lovelace ",
	}, fixedNow, func() (string, error) { return "user-1", nil })
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if got.ID != "user-1" {
		t.Fatalf("ID = %q, want %q", got.ID, "user-1")
	}
	if got.Email != "ada@example.com" {
		t.Fatalf("Email = %q, want normalized lowercase", got.Email)
	}
	if got.FullName != "Ada Lovelace" {
		t.Fatalf("FullName = %q, want trimmed", got.FullName)
	}
	if got.PasswordHash == "" || got.PasswordHash == "hunter22" {
		t.Fatalf("PasswordHash = %q, want bcrypt hash", got.PasswordHash)
	}
	if !got.CreatedAt.Equal(fixedNow()) || !got.UpdatedAt.Equal(fixedNow()) {
		t.Fatalf("timestamps = %v/%v, want %v", got.CreatedAt, got.UpdatedAt, fixedNow())
	}
	if got.Confirmed() {
		t.Fatal("new user reported confirmed without confirmation timestamp")
	}
}

func TestCreateUserValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   CreateUserInput
		wantErr error
	}{
		{"empty email", CreateUserInput{Password: "longenough"}, ErrEmptyEmail},
		{"invalid email", CreateUserInput{Email: "not-an-email", Password: "longenough"}, ErrInvalidEmail},
		{"short password", CreateUserInput{Email: "a@b.co", Password: "12345"}, ErrPasswordTooShort},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := CreateUser(tc.input, fixedNow, nil)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("CreateUser() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestCheckPassword(t *testing.T) {
	t.Parallel()

	u, err := CreateUser(CreateUserInput{Email: "a@b.co", Password: "correct horse"}, nil, nil)
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if !CheckPassword(u, "correct horse") {
		t.Fatal("CheckPassword() = false for matching password")
	}
	if CheckPassword(u, "wrong horse") {
		t.Fatal("CheckPassword() = true for mismatched password")
	}
}
