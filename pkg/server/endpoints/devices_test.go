package endpoints

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fantasy-forge/forge-api/pkg/model"
	"github.com/fantasy-forge/forge-api/pkg/server/store"
)

func TestCreateDevice_Self(t *testing.T) {
	ts := newTestServer(t)

	alice := testUser()
	ts.Users.On("GetUser", uint(2)).Return(alice, nil)
	ts.Devices.On("CreateDevice", mock.MatchedBy(func(d *model.Device) bool {
		return d.Description == "thermostat" && d.OwnerID == 2
	})).Return(&model.Device{
		ID: 7, Description: "thermostat", APIKey: "generated-key", OwnerID: 2,
	}, nil)

	rec := ts.request("POST", "/users/2/devices", `{"description": "thermostat"}`, ts.bearerFor(t, alice))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got DeviceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, uint(7), got.ID)
	assert.Equal(t, "generated-key", got.APIKey)
	assert.Equal(t, uint(2), got.OwnerID)

	ts.Devices.AssertExpectations(t)
}

func TestCreateDevice_AdminForOtherUser(t *testing.T) {
	ts := newTestServer(t)

	ts.Users.On("GetUser", uint(2)).Return(testUser(), nil)
	ts.Devices.On("CreateDevice", mock.Anything).Return(&model.Device{
		ID: 8, Description: "sensor", APIKey: "k", OwnerID: 2,
	}, nil)

	rec := ts.request("POST", "/users/2/devices", `{"description": "sensor"}`, ts.bearerFor(t, testAdmin()))

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateDevice_ForeignUserDenied(t *testing.T) {
	ts := newTestServer(t)

	ts.Users.On("GetUser", uint(1)).Return(testAdmin(), nil)

	rec := ts.request("POST", "/users/1/devices", `{"description": "spy"}`, ts.bearerFor(t, testUser()))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized", rec.Body.String())
	ts.Devices.AssertNotCalled(t, "CreateDevice", mock.Anything)
}

func TestCreateDevice_MissingDescription(t *testing.T) {
	ts := newTestServer(t)

	alice := testUser()
	ts.Users.On("GetUser", uint(2)).Return(alice, nil)

	rec := ts.request("POST", "/users/2/devices", `{}`, ts.bearerFor(t, alice))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	ts.Devices.AssertNotCalled(t, "CreateDevice", mock.Anything)
}

func TestCreateDevice_OwnerMissing(t *testing.T) {
	ts := newTestServer(t)

	ts.Users.On("GetUser", uint(99)).Return(nil, store.ErrNotFound)

	rec := ts.request("POST", "/users/99/devices", `{"description": "d"}`, ts.bearerFor(t, testAdmin()))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListDevices_AdminOnly(t *testing.T) {
	ts := newTestServer(t)

	ts.Devices.On("ListDevices", 0, 100).Return([]model.Device{
		{ID: 7, Description: "thermostat", APIKey: "k1", OwnerID: 2},
		{ID: 8, Description: "sensor", APIKey: "k2", OwnerID: 2},
	}, nil)

	rec := ts.request("GET", "/devices", "", ts.bearerFor(t, testAdmin()))

	require.Equal(t, http.StatusOK, rec.Code)

	var got []DeviceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "thermostat", got[0].Description)
}

func TestListDevices_DeniedForUserRole(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request("GET", "/devices", "", ts.bearerFor(t, testUser()))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized", rec.Body.String())
	ts.Devices.AssertNotCalled(t, "ListDevices", mock.Anything, mock.Anything)
}
