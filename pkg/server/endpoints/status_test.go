package endpoints

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	ts := newTestServer(t)

	ts.Health.On("Ping").Return(nil)

	rec := ts.request("GET", "/status", "", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var got StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "ok", got.Status)
	assert.Equal(t, "ok", got.Database)
}

func TestStatus_DatabaseDown(t *testing.T) {
	ts := newTestServer(t)

	ts.Health.On("Ping").Return(assert.AnError)

	rec := ts.request("GET", "/status", "", "")

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var got StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "error", got.Status)
	assert.Equal(t, "unreachable", got.Database)
}
