// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"io"

	"github.com/google/uuid"

	"giftlink/internal/domain/entity"
)

// --- Input DTOs ---

// ImageUpload carries an uploaded gift photo through the application layer.
type ImageUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// CreateGiftInput defines the data required to publish a new gift listing.
type CreateGiftInput struct {
	Name        string
	Category    string
	Condition   string
	Description string
	AgeYears    int
	Image       *ImageUpload
}

// UpdateGiftInput is a field-wise patch for an existing listing. Empty
// strings and a nil AgeYears keep the stored values; a nil Image keeps the
// current photo.
type UpdateGiftInput struct {
	Name        string
	Category    string
	Condition   string
	Description string
	AgeYears    *int
	Image       *ImageUpload
}

// SearchGiftsInput defines the filter criteria for gift search.
// Empty fields are ignored; populated fields are AND-combined.
type SearchGiftsInput struct {
	Name        string
	Category    string
	Condition   string
	MaxAgeYears *int
}

// GiftUsecase defines the interface for gift catalog business operations.
type GiftUsecase interface {
	ListGifts(ctx context.Context) ([]*entity.Gift, error)
	GetGift(ctx context.Context, id uuid.UUID) (*entity.Gift, error)
	CreateGift(ctx context.Context, input *CreateGiftInput) (*entity.Gift, error)
	UpdateGift(ctx context.Context, id uuid.UUID, input *UpdateGiftInput) (*entity.Gift, error)
	DeleteGift(ctx context.Context, id uuid.UUID) error
	SearchGifts(ctx context.Context, input *SearchGiftsInput) ([]*entity.Gift, error)
	GiftShareQR(ctx context.Context, id uuid.UUID) ([]byte, error)
}
