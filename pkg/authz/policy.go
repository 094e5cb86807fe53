package authz

import (
	"github.com/fantasy-forge/forge-api/pkg/identity"
	"github.com/fantasy-forge/forge-api/pkg/model"
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Policy names the two access rules used across endpoints. Each endpoint
// declares exactly one at registration.
type Policy int

const (
	// PolicySelfOrAdmin allows admins unconditionally and users acting on
	// their own resource. Used for single identified resources.
	PolicySelfOrAdmin Policy = iota

	// PolicyAdminOnly allows admins only, regardless of ownership. Used for
	// bulk listing operations.
	PolicyAdminOnly
)

func (p Policy) String() string {
	switch p {
	case PolicySelfOrAdmin:
		return "self-or-admin"
	case PolicyAdminOnly:
		return "admin-only"
	}
	return "unknown"
}

// Authorize decides whether the requester may act on the resource owned by
// targetOwner under the given policy. Precedence: admin bypass first, then
// the ownership check (PolicySelfOrAdmin only), then deny. An unrecognized
// role always denies; role validity is enforced separately at creation time.
func Authorize(requester *identity.Identity, targetOwner string, policy Policy) Decision {
	if requester == nil {
		return Deny
	}

	switch requester.Role {
	case model.RoleAdmin:
		return Allow
	case model.RoleUser:
		if policy == PolicySelfOrAdmin && requester.Name == targetOwner {
			return Allow
		}
		return Deny
	}
	return Deny
}
