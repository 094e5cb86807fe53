package model

import "time"

// User represents a principal in the system. Name is the unique identity
// string used for ownership checks; HashedPassword is a bcrypt hash with the
// salt embedded in the output.
type User struct {
	ID             uint      `gorm:"column:id;primaryKey"`
	Email          string    `gorm:"column:email;uniqueIndex;not null"`
	Name           string    `gorm:"column:name;uniqueIndex;not null"`
	HashedPassword []byte    `gorm:"column:hashed_password;not null"`
	Role           Role      `gorm:"column:role;not null;default:user"`
	IsActive       bool      `gorm:"column:is_active;default:true"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
