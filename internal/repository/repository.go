// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres) inside this directory.
package repository

import (
	"context"
	"errors"

	"jobtracker/internal/model"
)

var (
	// ErrNotFound is returned when no row matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects the write.
	ErrDuplicate = errors.New("record already exists")
)

// ApplicationRepository is the record store: strictly persistence, no business rules.
type ApplicationRepository interface {
	// Create inserts app for owner and returns the store-assigned id.
	Create(ctx context.Context, ownerID string, app *model.Application) (string, error)

	// ListByOwner returns every record of owner, soft-deleted ones included.
	ListByOwner(ctx context.Context, ownerID string) ([]model.Application, error)

	// FindByID returns a single record or ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.Application, error)

	// Update writes the set fields of patch. It returns ErrNotFound when no row has id.
	Update(ctx context.Context, id string, patch model.ApplicationPatch) error
}

// UserRepository stores accounts for the identity collaborator.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
}
