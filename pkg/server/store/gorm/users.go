package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/fantasy-forge/forge-api/pkg/model"
	"github.com/fantasy-forge/forge-api/pkg/server/store"
)

// Ensure UsersStore implements store.UsersStore
var _ store.UsersStore = (*UsersStore)(nil)

// UsersStore implements store.UsersStore using GORM
type UsersStore struct {
	db *gorm.DB
}

// NewUsersStore creates a new UsersStore
func NewUsersStore(db *gorm.DB) *UsersStore {
	return &UsersStore{db: db}
}

// CreateUser inserts a new user. Duplicate email or name surfaces as
// store.ErrConflict: the unique indexes are authoritative, the pre-checks
// only give the common case a clean error before hitting the constraint.
func (s *UsersStore) CreateUser(user *model.User) (*model.User, error) {
	var existing model.User
	if err := s.db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return nil, store.ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.db.Where("name = ?", user.Name).First(&existing).Error; err == nil {
		return nil, store.ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrConflict
		}
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user by ID
func (s *UsersStore) GetUser(id uint) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByName retrieves a user by its unique identity string
func (s *UsersStore) GetUserByName(name string) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ListUsers returns a page of users in insertion order
func (s *UsersStore) ListUsers(skip, limit int) ([]model.User, error) {
	var users []model.User
	tx := s.db.Order("id").Offset(skip).Limit(limit).Find(&users)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return users, nil
}

// UpdatePassword replaces the stored credential hash for a user
func (s *UsersStore) UpdatePassword(id uint, hashedPassword []byte) error {
	tx := s.db.Model(&model.User{}).Where("id = ?", id).
		Update("hashed_password", hashedPassword)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
