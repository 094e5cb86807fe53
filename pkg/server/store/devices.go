package store

import "github.com/fantasy-forge/forge-api/pkg/model"

// DevicesStore abstracts device storage operations
type DevicesStore interface {
	// CreateDevice inserts a new device for its owner. The owner must exist;
	// a missing owner surfaces as ErrNotFound.
	CreateDevice(device *model.Device) (*model.Device, error)

	// ListDevices returns a page of devices in insertion order.
	ListDevices(skip, limit int) ([]model.Device, error)
}
