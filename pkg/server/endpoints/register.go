package endpoints

import (
	"github.com/fantasy-forge/forge-api/pkg/server"
	"github.com/fantasy-forge/forge-api/pkg/server/middleware"
)

// RegisterAll mounts every endpoint on the server's router.
func RegisterAll(s *server.Server) {
	auth := middleware.NewAuthenticator(s.UsersStore, s.TokenIssuer, s.Config)

	RegisterStatusEndpoint(s)
	RegisterAuthenticateEndpoint(s, auth)
	RegisterWhoamiEndpoint(s, auth)
	RegisterUsersEndpoints(s, auth)
	RegisterDevicesEndpoints(s, auth)
	RegisterImagesEndpoints(s, auth)
}
