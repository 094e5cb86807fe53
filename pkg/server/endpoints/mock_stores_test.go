package endpoints

import (
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/fantasy-forge/forge-api/pkg/model"
)

// MockUsersStore implements store.UsersStore for testing using testify/mock
type MockUsersStore struct {
	mock.Mock
}

func NewMockUsersStore() *MockUsersStore {
	return &MockUsersStore{}
}

func (m *MockUsersStore) CreateUser(user *model.User) (*model.User, error) {
	args := m.Called(user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUsersStore) GetUser(id uint) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUsersStore) GetUserByName(name string) (*model.User, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUsersStore) ListUsers(skip, limit int) ([]model.User, error) {
	args := m.Called(skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUsersStore) UpdatePassword(id uint, hashedPassword []byte) error {
	args := m.Called(id, hashedPassword)
	return args.Error(0)
}

// MockDevicesStore implements store.DevicesStore for testing using testify/mock
type MockDevicesStore struct {
	mock.Mock
}

func NewMockDevicesStore() *MockDevicesStore {
	return &MockDevicesStore{}
}

func (m *MockDevicesStore) CreateDevice(device *model.Device) (*model.Device, error) {
	args := m.Called(device)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Device), args.Error(1)
}

func (m *MockDevicesStore) ListDevices(skip, limit int) ([]model.Device, error) {
	args := m.Called(skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Device), args.Error(1)
}

// MockImagesStore implements store.ImagesStore for testing using testify/mock
type MockImagesStore struct {
	mock.Mock
}

func NewMockImagesStore() *MockImagesStore {
	return &MockImagesStore{}
}

func (m *MockImagesStore) ListImages() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockImagesStore) OpenImage(filename string) (io.ReadCloser, error) {
	args := m.Called(filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func NewMockHealthStore() *MockHealthStore {
	return &MockHealthStore{}
}

func (m *MockHealthStore) Ping() error {
	args := m.Called()
	return args.Error(0)
}
