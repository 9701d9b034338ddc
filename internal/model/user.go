package model

import (
	"context"
	"strings"
	"time"

	"github.com/dtroode/userkeeper-server/internal/apierror"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	Create(ctx context.Context, user User) (User, error)
	SetAvatar(ctx context.Context, id int64, avatar string) error
	DeleteByID(ctx context.Context, id int64) error
}

// User represents a provisioned user.
// Avatar holds the hex SHA-256 digest of the cached avatar blob, not a URL.
type User struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	Avatar    string
	CreatedAt time.Time
}

// HasAvatar reports whether the user references a cached avatar blob.
func (u User) HasAvatar() bool {
	return u.Avatar != ""
}

// CreateUserParams contains caller-supplied fields for a new user.
type CreateUserParams struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
}

// ToUser converts params into a user without an avatar.
func (p CreateUserParams) ToUser() User {
	return User{
		ID:        p.ID,
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
	}
}

// Validate checks that all required fields are present.
func (p CreateUserParams) Validate() error {
	switch {
	case p.ID <= 0:
		return apierror.NewErrInvalidArgument("id must be a positive integer")
	case p.Email == "" || !strings.Contains(p.Email, "@"):
		return apierror.NewErrInvalidArgument("email must be a valid address")
	case strings.TrimSpace(p.FirstName) == "":
		return apierror.NewErrInvalidArgument("first name is required")
	case strings.TrimSpace(p.LastName) == "":
		return apierror.NewErrInvalidArgument("last name is required")
	}
	return nil
}
