// Package user provides read-only access to the user aggregate. Users are
// created by the external authentication flow; this core only checks
// existence before attributing ownership.
package user

import (
	"context"
	"time"
)

// User models an application user resolved from an external identity provider.
type User struct {
	ID        string
	Email     *string
	Name      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository defines storage operations for users.
type Repository interface {
	FindByID(ctx context.Context, id string) (*User, error)
	Exists(ctx context.Context, id string) (bool, error)
}
