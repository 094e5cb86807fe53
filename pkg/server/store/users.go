package store

import "github.com/fantasy-forge/forge-api/pkg/model"

// UsersStore abstracts user (principal) storage operations
type UsersStore interface {
	// CreateUser inserts a new user. Returns ErrConflict when the email or
	// name is already registered.
	CreateUser(user *model.User) (*model.User, error)

	// GetUser retrieves a user by ID. Returns ErrNotFound if absent.
	GetUser(id uint) (*model.User, error)

	// GetUserByName retrieves a user by its unique identity string.
	// Returns ErrNotFound if absent.
	GetUserByName(name string) (*model.User, error)

	// ListUsers returns a page of users in insertion order.
	ListUsers(skip, limit int) ([]model.User, error)

	// UpdatePassword replaces the stored credential hash for a user.
	UpdatePassword(id uint, hashedPassword []byte) error
}
