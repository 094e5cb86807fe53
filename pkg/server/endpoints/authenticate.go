package endpoints

import (
	"net/http"

	"github.com/fantasy-forge/forge-api/pkg/server"
	"github.com/fantasy-forge/forge-api/pkg/server/middleware"
)

// AuthenticateResponse carries a freshly issued session token.
type AuthenticateResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// RegisterAuthenticateEndpoint registers POST /authenticate. It trades Basic
// credentials for a short-lived bearer token so clients stop resending the
// password on every request.
func RegisterAuthenticateEndpoint(s *server.Server, auth *middleware.Authenticator) {
	s.Router.HandleFunc("/authenticate", handleAuthenticate(s, auth)).Methods("POST")
}

func handleAuthenticate(s *server.Server, auth *middleware.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := auth.Authenticate(r)
		if err != nil {
			middleware.Unauthorized(w)
			return
		}

		tok, err := s.TokenIssuer.Issue(id)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to issue token")
			return
		}

		respondWithJSON(w, http.StatusOK, AuthenticateResponse{
			Token:     tok,
			ExpiresIn: int(s.TokenIssuer.TTL().Seconds()),
		})
	}
}
