package endpoints

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fantasy-forge/forge-api/pkg/audit"
	"github.com/fantasy-forge/forge-api/pkg/config"
	"github.com/fantasy-forge/forge-api/pkg/identity"
	"github.com/fantasy-forge/forge-api/pkg/model"
	"github.com/fantasy-forge/forge-api/pkg/server"
	"github.com/fantasy-forge/forge-api/pkg/token"
)

func init() {
	audit.SetEnabled(false)
}

type testServer struct {
	*server.Server
	Users   *MockUsersStore
	Devices *MockDevicesStore
	Images  *MockImagesStore
	Health  *MockHealthStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.ForgeConfig{
		APIResourceListLimitDefault: 100,
		APIResourceListLimitMax:     1000,
	}

	issuer, err := token.NewIssuer([]byte("test-session-key"), time.Hour)
	require.NoError(t, err)

	s := server.NewServer(nil, cfg, issuer, "localhost", "0")

	ts := &testServer{
		Server:  s,
		Users:   NewMockUsersStore(),
		Devices: NewMockDevicesStore(),
		Images:  NewMockImagesStore(),
		Health:  NewMockHealthStore(),
	}
	s.UsersStore = ts.Users
	s.DevicesStore = ts.Devices
	s.ImagesStore = ts.Images
	s.HealthStore = ts.Health

	RegisterAll(s)
	return ts
}

// bearerFor issues a session token so handler tests skip the Basic auth path.
func (ts *testServer) bearerFor(t *testing.T, user *model.User) string {
	t.Helper()
	tok, err := ts.TokenIssuer.Issue(identity.FromUser(user))
	require.NoError(t, err)
	return "Bearer " + tok
}

func (ts *testServer) request(method, path, body, authorization string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "198.51.100.7:4242"
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	rec := httptest.NewRecorder()
	ts.Router.ServeHTTP(rec, req)
	return rec
}

func testAdmin() *model.User {
	return &model.User{ID: 1, Email: "root@example.com", Name: "root", Role: model.RoleAdmin, IsActive: true}
}

func testUser() *model.User {
	return &model.User{ID: 2, Email: "alice@example.com", Name: "alice", Role: model.RoleUser, IsActive: true}
}
