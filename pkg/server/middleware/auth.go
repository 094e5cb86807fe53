// Package middleware provides the HTTP authentication layer.
package middleware

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/fantasy-forge/forge-api/pkg/audit"
	"github.com/fantasy-forge/forge-api/pkg/authn"
	"github.com/fantasy-forge/forge-api/pkg/config"
	"github.com/fantasy-forge/forge-api/pkg/identity"
	"github.com/fantasy-forge/forge-api/pkg/server/store"
	"github.com/fantasy-forge/forge-api/pkg/token"
)

// Authenticator is middleware that resolves request credentials to an
// identity. It accepts HTTP Basic credentials checked against the users
// store, or a bearer session token.
type Authenticator struct {
	Users    store.UsersStore
	Verifier *token.Issuer
	Config   *config.ForgeConfig
}

// NewAuthenticator creates a new authenticator middleware
func NewAuthenticator(users store.UsersStore, verifier *token.Issuer, cfg *config.ForgeConfig) *Authenticator {
	return &Authenticator{Users: users, Verifier: verifier, Config: cfg}
}

// Unauthorized sends the single failure response used for every
// authentication and authorization problem. Missing header, unknown user,
// bad password, and denied access are indistinguishable to the client.
func Unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="forge"`)
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte("Unauthorized"))
}

// Middleware returns an HTTP middleware that authenticates requests
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := a.Authenticate(r)
		if err != nil {
			Unauthorized(w)
			return
		}

		r = r.WithContext(identity.Set(r.Context(), id))
		next.ServeHTTP(w, r)
	})
}

var errUnauthorized = errors.New("unauthorized")

// Authenticate resolves the request's credentials to an identity.
func (a *Authenticator) Authenticate(r *http.Request) (*identity.Identity, error) {
	remoteIP := a.remoteIP(r)

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		id, err := a.Verifier.Verify(tokenStr)
		if err != nil {
			audit.Log(audit.AuthenticateEvent{
				UserID:    "unknown",
				Method:    "token",
				RemoteIP:  remoteIP.String(),
				ErrorInfo: err.Error(),
			})
			return nil, errUnauthorized
		}

		return id.WithRemoteIP(remoteIP), nil
	}

	username, password, ok := r.BasicAuth()
	if !ok {
		return nil, errUnauthorized
	}

	user, err := a.Users.GetUserByName(username)
	if err != nil {
		// Burn a bcrypt comparison so unknown names cost the same as
		// wrong passwords.
		authn.CheckPassword(password, nil)
		audit.Log(audit.AuthenticateEvent{
			UserID:   username,
			Method:   "basic",
			RemoteIP: remoteIP.String(),
		})
		return nil, errUnauthorized
	}

	if !user.IsActive || !authn.CheckPassword(password, user.HashedPassword) {
		audit.Log(audit.AuthenticateEvent{
			UserID:   username,
			Method:   "basic",
			RemoteIP: remoteIP.String(),
		})
		return nil, errUnauthorized
	}

	audit.Log(audit.AuthenticateEvent{
		UserID:   username,
		Method:   "basic",
		RemoteIP: remoteIP.String(),
		Success:  true,
	})

	return identity.FromUser(user).WithRemoteIP(remoteIP), nil
}

// remoteIP resolves the client address, honoring X-Forwarded-For only
// when the direct peer is a trusted proxy.
func (a *Authenticator) remoteIP(r *http.Request) net.IP {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	if a.Config != nil && a.Config.IsTrustedProxy(host) {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			first := strings.TrimSpace(strings.Split(fwd, ",")[0])
			if ip := net.ParseIP(first); ip != nil {
				return ip
			}
		}
	}

	return net.ParseIP(host)
}
