package gorm

import (
	"gorm.io/gorm"

	"github.com/fantasy-forge/forge-api/pkg/model"
	"github.com/fantasy-forge/forge-api/pkg/server/store"
)

// Ensure DevicesStore implements store.DevicesStore
var _ store.DevicesStore = (*DevicesStore)(nil)

// DevicesStore implements store.DevicesStore using GORM
type DevicesStore struct {
	db *gorm.DB
}

// NewDevicesStore creates a new DevicesStore
func NewDevicesStore(db *gorm.DB) *DevicesStore {
	return &DevicesStore{db: db}
}

// CreateDevice inserts a new device for its owner
func (s *DevicesStore) CreateDevice(device *model.Device) (*model.Device, error) {
	if device.APIKey == "" {
		device.APIKey = model.GenerateAPIKey()
	}
	if err := s.db.Create(device).Error; err != nil {
		if isForeignKeyViolation(err) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return device, nil
}

// ListDevices returns a page of devices in insertion order
func (s *DevicesStore) ListDevices(skip, limit int) ([]model.Device, error) {
	var devices []model.Device
	tx := s.db.Order("id").Offset(skip).Limit(limit).Find(&devices)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return devices, nil
}
