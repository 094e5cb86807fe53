package identity

import (
	"context"
	"net"

	"github.com/fantasy-forge/forge-api/pkg/model"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for Identity.
	Key ContextKey = "identity"
)

// Identity represents the authenticated identity for a request.
type Identity struct {
	// Principal claims
	UserID uint
	Name   string
	Role   model.Role

	// Request context
	RemoteIP net.IP
}

// FromUser creates an Identity from a verified user record.
func FromUser(user *model.User) *Identity {
	return &Identity{
		UserID: user.ID,
		Name:   user.Name,
		Role:   user.Role,
	}
}

// WithRemoteIP sets the remote IP address.
func (i *Identity) WithRemoteIP(ip net.IP) *Identity {
	i.RemoteIP = ip
	return i
}

// IsAdmin returns true if the identity holds the admin role.
func (i *Identity) IsAdmin() bool {
	return i.Role == model.RoleAdmin
}

// Get retrieves Identity from context.
func Get(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(Key).(*Identity)
	return id, ok
}

// Set stores Identity in context.
func Set(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, Key, id)
}
