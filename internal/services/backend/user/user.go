// Package user provides backend user account management.
package user

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/studydesk/studydesk/internal/platform/id"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

var (
	// ErrEmptyEmail indicates a missing email address.
	ErrEmptyEmail = errors.New("email is required")
	// ErrInvalidEmail indicates an email that does not match the required format.
	ErrInvalidEmail = errors.New("email is invalid")
	// ErrPasswordTooShort indicates a password below the minimum length.
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", MinPasswordLength)

	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// User represents a registered account with an optional display profile.
type User struct {
	ID               string
	Email            string
	FullName         string
	PasswordHash     string
	EmailConfirmedAt *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Confirmed reports whether the account's email has been confirmed.
func (u User) Confirmed() bool {
	return u.EmailConfirmedAt != nil
}

// CreateUserInput describes the metadata needed to create a user.
type CreateUserInput struct {
	Email    string
	Password string
	FullName string
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail enforces the canonical email shape used across the backend.
func ValidateEmail(email string) error {
	if email == "" {
		return ErrEmptyEmail
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePassword enforces the account password policy.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// CreateUser creates a durable user account from validated input.
//
// The service layer treats this as the canonical point where untrusted
// credentials become a stable identity: the password is hashed here and
// never stored in clear text.
func CreateUser(input CreateUserInput, now func() time.Time, idGenerator func() (string, error)) (User, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	email := NormalizeEmail(input.Email)
	if err := ValidateEmail(email); err != nil {
		return User{}, err
	}
	if err := ValidatePassword(input.Password); err != nil {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	userID, err := idGenerator()
	if err != nil {
		return User{}, fmt.Errorf("generate user id: %w", err)
	}

	createdAt := now().UTC()
	return User{
		ID:           userID,
		Email:        email,
		FullName:     strings.TrimSpace(input.FullName),
		PasswordHash: string(hash),
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}, nil
}

// CheckPassword reports whether the candidate password matches the stored hash.
func CheckPassword(u User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
