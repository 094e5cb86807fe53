package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fantasy-forge/forge-api/pkg/audit"
	"github.com/fantasy-forge/forge-api/pkg/authn"
	"github.com/fantasy-forge/forge-api/pkg/authz"
	"github.com/fantasy-forge/forge-api/pkg/config"
	"github.com/fantasy-forge/forge-api/pkg/identity"
	"github.com/fantasy-forge/forge-api/pkg/model"
	"github.com/fantasy-forge/forge-api/pkg/server"
	"github.com/fantasy-forge/forge-api/pkg/server/middleware"
	"github.com/fantasy-forge/forge-api/pkg/server/store"
)

// CreateUserRequest is the body of POST /users
type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UserResponse is the wire representation of a user. The credential hash
// never leaves the server.
type UserResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// RotatePasswordRequest is the body of PUT /users/{id}/password
type RotatePasswordRequest struct {
	Password string `json:"password"`
}

func newUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Role:     user.Role.String(),
		IsActive: user.IsActive,
	}
}

// RegisterUsersEndpoints registers the /users endpoints. Creation is public;
// everything else requires authentication.
func RegisterUsersEndpoints(s *server.Server, auth *middleware.Authenticator) {
	users := s.UsersStore
	cfg := s.Config

	s.Router.HandleFunc("/users", handleCreateUser(users)).Methods("POST")

	s.Router.Handle("/users", auth.Middleware(handleListUsers(users, cfg))).Methods("GET")
	s.Router.Handle("/users/{id:[0-9]+}", auth.Middleware(handleGetUser(users))).Methods("GET")
	s.Router.Handle("/users/{id:[0-9]+}/password", auth.Middleware(handleRotatePassword(users))).Methods("PUT")
}

func handleCreateUser(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Email == "" || req.Name == "" || req.Password == "" {
			respondWithError(w, http.StatusBadRequest, "email, name and password are required")
			return
		}

		role := model.RoleUser
		if req.Role != "" {
			parsed, err := model.ParseRole(req.Role)
			if err != nil {
				respondWithError(w, http.StatusBadRequest, "role must be one of: user, admin")
				return
			}
			role = parsed
		}

		hash, err := authn.HashPassword(req.Password)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}

		user, err := users.CreateUser(&model.User{
			Email:          req.Email,
			Name:           req.Name,
			HashedPassword: hash,
			Role:           role,
			IsActive:       true,
		})
		if err != nil {
			if errors.Is(err, store.ErrConflict) {
				respondWithError(w, http.StatusConflict, "User already exists")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to create user")
			return
		}

		audit.Log(audit.CreateEvent{Resource: "user/" + user.Name})

		respondWithJSON(w, http.StatusCreated, newUserResponse(user))
	}
}

func handleListUsers(users store.UsersStore, cfg *config.ForgeConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester, _ := identity.Get(r.Context())

		decision := authz.Authorize(requester, "", authz.PolicyAdminOnly)
		audit.Log(audit.AccessEvent{
			UserID:   requester.Name,
			Role:     requester.Role.String(),
			Resource: "users",
			Policy:   authz.PolicyAdminOnly.String(),
			Allowed:  decision == authz.Allow,
		})
		if decision != authz.Allow {
			middleware.Unauthorized(w)
			return
		}

		skip, limit, ok := pagination(r, cfg)
		if !ok {
			respondWithError(w, http.StatusBadRequest, "skip and limit must be non-negative integers")
			return
		}

		page, err := users.ListUsers(skip, limit)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list users")
			return
		}

		response := make([]UserResponse, 0, len(page))
		for i := range page {
			response = append(response, newUserResponse(&page[i]))
		}
		respondWithJSON(w, http.StatusOK, response)
	}
}

// fetchTarget resolves the {id} path variable to a user record, applying the
// anti-enumeration rule: a missing target is 404 for admins but a plain 401
// for everyone else, so non-admins cannot probe which IDs exist.
func fetchTarget(w http.ResponseWriter, r *http.Request, users store.UsersStore, requester *identity.Identity) (*model.User, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user id")
		return nil, false
	}

	target, err := users.GetUser(uint(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			if requester.IsAdmin() {
				respondWithError(w, http.StatusNotFound, "User not found")
			} else {
				middleware.Unauthorized(w)
			}
			return nil, false
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch user")
		return nil, false
	}

	return target, true
}

func handleGetUser(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester, _ := identity.Get(r.Context())

		target, ok := fetchTarget(w, r, users, requester)
		if !ok {
			return
		}

		decision := authz.Authorize(requester, target.Name, authz.PolicySelfOrAdmin)
		audit.Log(audit.AccessEvent{
			UserID:   requester.Name,
			Role:     requester.Role.String(),
			Resource: "user/" + target.Name,
			Policy:   authz.PolicySelfOrAdmin.String(),
			Allowed:  decision == authz.Allow,
		})
		if decision != authz.Allow {
			middleware.Unauthorized(w)
			return
		}

		respondWithJSON(w, http.StatusOK, newUserResponse(target))
	}
}

func handleRotatePassword(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester, _ := identity.Get(r.Context())

		target, ok := fetchTarget(w, r, users, requester)
		if !ok {
			return
		}

		decision := authz.Authorize(requester, target.Name, authz.PolicySelfOrAdmin)
		audit.Log(audit.AccessEvent{
			UserID:   requester.Name,
			Role:     requester.Role.String(),
			Resource: "user/" + target.Name + "/password",
			Policy:   authz.PolicySelfOrAdmin.String(),
			Allowed:  decision == authz.Allow,
		})
		if decision != authz.Allow {
			middleware.Unauthorized(w)
			return
		}

		var req RotatePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password == "" {
			respondWithError(w, http.StatusBadRequest, "password is required")
			return
		}

		hash, err := authn.HashPassword(req.Password)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}

		if err := users.UpdatePassword(target.ID, hash); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "User not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to update password")
			return
		}

		audit.Log(audit.PasswordChangeEvent{UserID: requester.Name, Subject: target.Name})

		w.WriteHeader(http.StatusNoContent)
	}
}
