// Package authz implements the resource-access authorization rule shared by
// every endpoint.
//
// The original backend repeated the same if/elif chain in each handler. Here
// it is a single decision function parameterized by policy:
//
//   - PolicySelfOrAdmin: admins always allowed; users allowed only on
//     resources they own (identity string equality).
//   - PolicyAdminOnly: admins always allowed; everyone else denied, including
//     owners. Used for bulk listing operations.
//
// The function never touches the store: callers resolve the target resource's
// owner identity first and pass it in. Credential verification happens
// earlier, in middleware; by the time Authorize runs the requester is a
// verified principal.
package authz
