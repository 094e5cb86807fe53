package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/fantasy-forge/forge-api/pkg/audit"
	"github.com/fantasy-forge/forge-api/pkg/authz"
	"github.com/fantasy-forge/forge-api/pkg/config"
	"github.com/fantasy-forge/forge-api/pkg/identity"
	"github.com/fantasy-forge/forge-api/pkg/model"
	"github.com/fantasy-forge/forge-api/pkg/server"
	"github.com/fantasy-forge/forge-api/pkg/server/middleware"
	"github.com/fantasy-forge/forge-api/pkg/server/store"
)

// CreateDeviceRequest is the body of POST /users/{id}/devices
type CreateDeviceRequest struct {
	Description string `json:"description"`
}

// DeviceResponse is the wire representation of a device. The API key is
// included: it is the device's credential and this is where the owner
// learns it.
type DeviceResponse struct {
	ID          uint   `json:"id"`
	Description string `json:"description"`
	APIKey      string `json:"apikey"`
	OwnerID     uint   `json:"owner_id"`
}

func newDeviceResponse(device *model.Device) DeviceResponse {
	return DeviceResponse{
		ID:          device.ID,
		Description: device.Description,
		APIKey:      device.APIKey,
		OwnerID:     device.OwnerID,
	}
}

// RegisterDevicesEndpoints registers the device endpoints.
func RegisterDevicesEndpoints(s *server.Server, auth *middleware.Authenticator) {
	users := s.UsersStore
	devices := s.DevicesStore
	cfg := s.Config

	s.Router.Handle("/users/{id:[0-9]+}/devices", auth.Middleware(handleCreateDevice(users, devices))).Methods("POST")
	s.Router.Handle("/devices", auth.Middleware(handleListDevices(devices, cfg))).Methods("GET")
}

func handleCreateDevice(users store.UsersStore, devices store.DevicesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester, _ := identity.Get(r.Context())

		owner, ok := fetchTarget(w, r, users, requester)
		if !ok {
			return
		}

		decision := authz.Authorize(requester, owner.Name, authz.PolicySelfOrAdmin)
		audit.Log(audit.AccessEvent{
			UserID:   requester.Name,
			Role:     requester.Role.String(),
			Resource: "user/" + owner.Name + "/devices",
			Policy:   authz.PolicySelfOrAdmin.String(),
			Allowed:  decision == authz.Allow,
		})
		if decision != authz.Allow {
			middleware.Unauthorized(w)
			return
		}

		var req CreateDeviceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Description == "" {
			respondWithError(w, http.StatusBadRequest, "description is required")
			return
		}

		device, err := devices.CreateDevice(&model.Device{
			Description: req.Description,
			OwnerID:     owner.ID,
		})
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				// Owner row vanished between the lookup and the insert.
				respondWithError(w, http.StatusNotFound, "User not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to create device")
			return
		}

		audit.Log(audit.CreateEvent{
			UserID:   requester.Name,
			Resource: "device/" + strconv.FormatUint(uint64(device.ID), 10),
		})

		respondWithJSON(w, http.StatusCreated, newDeviceResponse(device))
	}
}

func handleListDevices(devices store.DevicesStore, cfg *config.ForgeConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester, _ := identity.Get(r.Context())

		decision := authz.Authorize(requester, "", authz.PolicyAdminOnly)
		audit.Log(audit.AccessEvent{
			UserID:   requester.Name,
			Role:     requester.Role.String(),
			Resource: "devices",
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

		page, err := devices.ListDevices(skip, limit)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list devices")
			return
		}

		response := make([]DeviceResponse, 0, len(page))
		for i := range page {
			response = append(response, newDeviceResponse(&page[i]))
		}
		respondWithJSON(w, http.StatusOK, response)
	}
}
