// Package model holds the GORM persistence models mirroring the database tables.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. The unique index on email is the
// authoritative duplicate-registration guard; the service layer's existence
// check is only a fast path.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	FirstName    string    `gorm:"type:varchar(100)"`
	LastName     string    `gorm:"type:varchar(100)"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
