package endpoints

import (
	"net/http"

	"github.com/fantasy-forge/forge-api/pkg/identity"
	"github.com/fantasy-forge/forge-api/pkg/server"
	"github.com/fantasy-forge/forge-api/pkg/server/middleware"
)

// WhoamiResponse represents the response from the /whoami endpoint
type WhoamiResponse struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	ClientIP string `json:"client_ip,omitempty"`
}

// RegisterWhoamiEndpoint registers the /whoami endpoint
func RegisterWhoamiEndpoint(s *server.Server, auth *middleware.Authenticator) {
	whoamiRouter := s.Router.PathPrefix("/whoami").Subrouter()
	whoamiRouter.Use(auth.Middleware)

	whoamiRouter.HandleFunc("", handleWhoami()).Methods("GET")
}

func handleWhoami() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok {
			middleware.Unauthorized(w)
			return
		}

		response := WhoamiResponse{
			UserID:   id.UserID,
			Username: id.Name,
			Role:     id.Role.String(),
		}
		if id.RemoteIP != nil {
			response.ClientIP = id.RemoteIP.String()
		}

		respondWithJSON(w, http.StatusOK, response)
	}
}
