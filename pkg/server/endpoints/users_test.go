package endpoints

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fantasy-forge/forge-api/pkg/authn"
	"github.com/fantasy-forge/forge-api/pkg/model"
	"github.com/fantasy-forge/forge-api/pkg/server/store"
)

func TestCreateUser(t *testing.T) {
	ts := newTestServer(t)

	ts.Users.On("CreateUser", mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "bob@example.com" &&
			u.Name == "bob" &&
			u.Role == model.RoleUser &&
			u.IsActive &&
			authn.CheckPassword("hunter2", u.HashedPassword)
	})).Return(&model.User{
		ID: 3, Email: "bob@example.com", Name: "bob", Role: model.RoleUser, IsActive: true,
	}, nil)

	rec := ts.request("POST", "/users",
		`{"email": "bob@example.com", "name": "bob", "password": "hunter2"}`, "")

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, uint(3), got.ID)
	assert.Equal(t, "bob", got.Name)
	assert.Equal(t, "user", got.Role)

	assert.NotContains(t, rec.Body.String(), "password")
	ts.Users.AssertExpectations(t)
}

func TestCreateUser_Conflict(t *testing.T) {
	ts := newTestServer(t)

	ts.Users.On("CreateUser", mock.Anything).Return(nil, store.ErrConflict)

	rec := ts.request("POST", "/users",
		`{"email": "alice@example.com", "name": "alice", "password": "pw"}`, "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already exists")
}

func TestCreateUser_BadRequests(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"missing password", `{"email": "a@b.c", "name": "a"}`},
		{"missing name", `{"email": "a@b.c", "password": "pw"}`},
		{"unknown role", `{"email": "a@b.c", "name": "a", "password": "pw", "role": "root"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.request("POST", "/users", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	ts.Users.AssertNotCalled(t, "CreateUser", mock.Anything)
}

func TestListUsers_AdminOnly(t *testing.T) {
	ts := newTestServer(t)

	ts.Users.On("ListUsers", 0, 100).Return([]model.User{
		*testAdmin(), *testUser(),
	}, nil)

	rec := ts.request("GET", "/users", "", ts.bearerFor(t, testAdmin()))

	require.Equal(t, http.StatusOK, rec.Code)

	var got []UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "root", got[0].Name)
	assert.Equal(t, "alice", got[1].Name)
}

func TestListUsers_DeniedForUserRole(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request("GET", "/users", "", ts.bearerFor(t, testUser()))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized", rec.Body.String())
	ts.Users.AssertNotCalled(t, "ListUsers", mock.Anything, mock.Anything)
}

func TestListUsers_Pagination(t *testing.T) {
	ts := newTestServer(t)

	// limit above the configured maximum is capped
	ts.Users.On("ListUsers", 5, 1000).Return([]model.User{}, nil)

	rec := ts.request("GET", "/users?skip=5&limit=9999", "", ts.bearerFor(t, testAdmin()))

	assert.Equal(t, http.StatusOK, rec.Code)
	ts.Users.AssertExpectations(t)
}

func TestListUsers_PaginationRejectsNegatives(t *testing.T) {
	ts := newTestServer(t)

	for _, query := range []string{"?skip=-1", "?limit=-1", "?skip=abc"} {
		rec := ts.request("GET", "/users"+query, "", ts.bearerFor(t, testAdmin()))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "query %s", query)
	}
}

func TestGetUser_Self(t *testing.T) {
	ts := newTestServer(t)

	alice := testUser()
	ts.Users.On("GetUser", uint(2)).Return(alice, nil)

	rec := ts.request("GET", "/users/2", "", ts.bearerFor(t, alice))

	require.Equal(t, http.StatusOK, rec.Code)

	var got UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "alice", got.Name)
}

func TestGetUser_AdminReadsAnyone(t *testing.T) {
	ts := newTestServer(t)

	ts.Users.On("GetUser", uint(2)).Return(testUser(), nil)

	rec := ts.request("GET", "/users/2", "", ts.bearerFor(t, testAdmin()))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetUser_ForeignUserDenied(t *testing.T) {
	ts := newTestServer(t)

	ts.Users.On("GetUser", uint(1)).Return(testAdmin(), nil)

	rec := ts.request("GET", "/users/1", "", ts.bearerFor(t, testUser()))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized", rec.Body.String())
}

func TestGetUser_NotFound(t *testing.T) {
	ts := newTestServer(t)

	ts.Users.On("GetUser", uint(99)).Return(nil, store.ErrNotFound)

	t.Run("admin sees 404", func(t *testing.T) {
		rec := ts.request("GET", "/users/99", "", ts.bearerFor(t, testAdmin()))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("user sees the same 401 as a denial", func(t *testing.T) {
		rec := ts.request("GET", "/users/99", "", ts.bearerFor(t, testUser()))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Unauthorized", rec.Body.String())
	})
}

func TestGetUser_Unauthenticated(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request("GET", "/users/2", "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRotatePassword(t *testing.T) {
	ts := newTestServer(t)

	alice := testUser()
	ts.Users.On("GetUser", uint(2)).Return(alice, nil)
	ts.Users.On("UpdatePassword", uint(2), mock.MatchedBy(func(hash []byte) bool {
		return authn.CheckPassword("new-secret", hash)
	})).Return(nil)

	rec := ts.request("PUT", "/users/2/password", `{"password": "new-secret"}`, ts.bearerFor(t, alice))

	assert.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	ts.Users.AssertExpectations(t)
}

func TestRotatePassword_ForeignUserDenied(t *testing.T) {
	ts := newTestServer(t)

	ts.Users.On("GetUser", uint(1)).Return(testAdmin(), nil)

	rec := ts.request("PUT", "/users/1/password", `{"password": "new"}`, ts.bearerFor(t, testUser()))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	ts.Users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything)
}

func TestRotatePassword_EmptyPassword(t *testing.T) {
	ts := newTestServer(t)

	alice := testUser()
	ts.Users.On("GetUser", uint(2)).Return(alice, nil)

	rec := ts.request("PUT", "/users/2/password", `{"password": ""}`, ts.bearerFor(t, alice))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	ts.Users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything)
}
