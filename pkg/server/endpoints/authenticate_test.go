package endpoints

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fantasy-forge/forge-api/pkg/authn"
	"github.com/fantasy-forge/forge-api/pkg/model"
	"github.com/fantasy-forge/forge-api/pkg/server/store"
)

func basicAuth(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func TestAuthenticate(t *testing.T) {
	ts := newTestServer(t)

	hash, err := authn.HashPassword("s3cret")
	require.NoError(t, err)

	alice := testUser()
	alice.HashedPassword = hash
	ts.Users.On("GetUserByName", "alice").Return(alice, nil)

	rec := ts.request("POST", "/authenticate", "", basicAuth("alice", "s3cret"))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got AuthenticateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotEmpty(t, got.Token)
	assert.Equal(t, 3600, got.ExpiresIn)

	// The token is accepted as a bearer credential.
	id, err := ts.TokenIssuer.Verify(got.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", id.Name)
	assert.Equal(t, model.RoleUser, id.Role)

	rec = ts.request("GET", "/whoami", "", "Bearer "+got.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticate_BadCredentials(t *testing.T) {
	ts := newTestServer(t)

	hash, err := authn.HashPassword("s3cret")
	require.NoError(t, err)

	alice := testUser()
	alice.HashedPassword = hash
	ts.Users.On("GetUserByName", "alice").Return(alice, nil)
	ts.Users.On("GetUserByName", "nobody").Return(nil, store.ErrNotFound)

	tests := []struct {
		name          string
		authorization string
	}{
		{"wrong password", basicAuth("alice", "wrong")},
		{"unknown user", basicAuth("nobody", "s3cret")},
		{"no credentials", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.request("POST", "/authenticate", "", tt.authorization)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Unauthorized", rec.Body.String())
		})
	}
}
