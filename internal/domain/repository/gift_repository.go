package repository

import (
	"context"
	"errors"

	"giftlink/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrGiftNotFound is returned when a gift lookup matches no row.
var ErrGiftNotFound = errors.New("gift not found")

// GiftFilter describes the optional search criteria. Zero values mean
// "no constraint"; all present filters are AND-combined.
type GiftFilter struct {
	// Name matches as a case-insensitive substring.
	Name string

	// Category and Condition match exactly.
	Category  string
	Condition string

	// MaxAgeYears keeps gifts whose age_years is at most this value.
	MaxAgeYears *int
}

// GiftRepository defines the standard operations for gift persistence.
type GiftRepository interface {
	// FindAll retrieves every gift in the catalog.
	FindAll(ctx context.Context) ([]*entity.Gift, error)

	// FindByID retrieves a single gift by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Gift, error)

	// Search retrieves the gifts matching the given filter.
	Search(ctx context.Context, filter GiftFilter) ([]*entity.Gift, error)

	// Create persists a new gift listing.
	Create(ctx context.Context, gift *entity.Gift) error

	// Update modifies an existing gift listing.
	Update(ctx context.Context, gift *entity.Gift) error

	// Delete removes a gift listing. Returns ErrGiftNotFound when no row
	// was deleted.
	Delete(ctx context.Context, id uuid.UUID) error
}
