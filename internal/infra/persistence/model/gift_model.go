package model

import (
	"time"

	"github.com/google/uuid"
)

// GiftModel mirrors the 'gifts' table.
type GiftModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name        string    `gorm:"type:varchar(255);not null;index"`
	Category    string    `gorm:"type:varchar(100);index"`
	Condition   string    `gorm:"type:varchar(50)"`
	Description string    `gorm:"type:text"`
	AgeYears    int
	ImageURL    string `gorm:"type:varchar(512)"`
	DateAdded   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (GiftModel) TableName() string {
	return "gifts"
}
