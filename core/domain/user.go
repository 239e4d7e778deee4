package domain

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is an account that owns task lists and tags and can hold access
// grants on other users' tasks.
type User struct {
	ID        uuid.UUID `db:"user_id" json:"user_id"`
	Email     string    `db:"email" json:"email"`
	Username  string    `db:"username" json:"username"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

const maxUsernameLength = 50

// NewUser builds a user with a normalized email. Email and username
// uniqueness is a store-level constraint.
func NewUser(email, username string, now time.Time) (User, error) {
	email = NormalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return User{}, violation("email", "email is not a valid address")
	}

	username = strings.TrimSpace(username)
	if username == "" {
		return User{}, violation("username", "username is required")
	}
	if len(username) > maxUsernameLength {
		return User{}, violation("username", "username cannot exceed %d characters", maxUsernameLength)
	}

	return User{
		ID:        uuid.New(),
		Email:     email,
		Username:  username,
		CreatedAt: now,
	}, nil
}

// NormalizeEmail trims and lower-cases an address so lookups and stored
// values always compare equal.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
