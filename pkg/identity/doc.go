// Package identity provides authenticated identity management for requests.
//
// This package separates the concept of an authenticated identity from the
// credential that proved it. An Identity carries the principal's database ID,
// unique name, and role alongside request-specific context (remote IP).
//
// # Basic Usage
//
//	// Create identity from a verified user record
//	id := identity.FromUser(user)
//
//	// Add request context
//	id.WithRemoteIP(clientIP)
//
//	// Store in request context
//	ctx = identity.Set(ctx, id)
//
//	// Retrieve from context
//	id, ok := identity.Get(ctx)
//
// The middleware package verifies credentials (HTTP Basic or a session token)
// and stores the resulting Identity; handlers and the authz package only ever
// see the Identity, never the credential.
package identity
