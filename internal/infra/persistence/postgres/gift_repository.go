package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"giftlink/internal/domain/entity"
	domainerrors "giftlink/internal/domain/errors"
	"giftlink/internal/domain/repository"
	"giftlink/internal/infra/persistence/model"
)

// giftRepository implements the repository.GiftRepository interface using GORM.
type giftRepository struct {
	db *gorm.DB
}

// NewGiftRepository is the constructor for giftRepository.
func NewGiftRepository(db *gorm.DB) repository.GiftRepository {
	return &giftRepository{db: db}
}

// FindAll retrieves every gift, newest first.
func (repo *giftRepository) FindAll(ctx context.Context) ([]*entity.Gift, error) {
	var giftMs []*model.GiftModel
	if err := repo.db.WithContext(ctx).Order("date_added DESC").Find(&giftMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list gifts")
	}

	return toGiftDomainSlice(giftMs), nil
}

// FindByID retrieves a single gift by its unique ID.
func (repo *giftRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Gift, error) {
	var giftM model.GiftModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&giftM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrGiftNotFound
		}

		return nil, errors.Wrap(err, "failed to find gift by id")
	}

	return toGiftDomain(&giftM), nil
}

// Search retrieves the gifts matching the given filter, all criteria AND-combined.
func (repo *giftRepository) Search(ctx context.Context, filter repository.GiftFilter) ([]*entity.Gift, error) {
	query := repo.db.WithContext(ctx).Model(&model.GiftModel{})

	if filter.Name != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Condition != "" {
		query = query.Where("condition = ?", filter.Condition)
	}
	if filter.MaxAgeYears != nil {
		query = query.Where("age_years <= ?", *filter.MaxAgeYears)
	}

	var giftMs []*model.GiftModel
	if err := query.Order("date_added DESC").Find(&giftMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to search gifts")
	}

	return toGiftDomainSlice(giftMs), nil
}

// Create persists a new gift listing.
func (repo *giftRepository) Create(ctx context.Context, gift *entity.Gift) error {
	giftM := fromGiftDomain(gift)

	if err := repo.db.WithContext(ctx).Create(giftM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required gift information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create gift")
	}

	gift.ID = giftM.ID
	gift.CreatedAt = giftM.CreatedAt
	gift.UpdatedAt = giftM.UpdatedAt

	return nil
}

// Update modifies an existing gift listing.
func (repo *giftRepository) Update(ctx context.Context, gift *entity.Gift) error {
	giftM := fromGiftDomain(gift)

	if err := repo.db.WithContext(ctx).Save(giftM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update gift")
	}

	gift.UpdatedAt = giftM.UpdatedAt

	return nil
}

// Delete removes a gift listing.
func (repo *giftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.GiftModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete gift")
	}
	if result.RowsAffected == 0 {
		return repository.ErrGiftNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toGiftDomain(data *model.GiftModel) *entity.Gift {
	if data == nil {
		return nil
	}

	return &entity.Gift{
		ID:          data.ID,
		Name:        data.Name,
		Category:    data.Category,
		Condition:   data.Condition,
		Description: data.Description,
		AgeYears:    data.AgeYears,
		ImageURL:    data.ImageURL,
		DateAdded:   data.DateAdded,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func toGiftDomainSlice(data []*model.GiftModel) []*entity.Gift {
	gifts := make([]*entity.Gift, 0, len(data))
	for _, giftM := range data {
		gifts = append(gifts, toGiftDomain(giftM))
	}

	return gifts
}

func fromGiftDomain(data *entity.Gift) *model.GiftModel {
	if data == nil {
		return nil
	}

	return &model.GiftModel{
		ID:          data.ID,
		Name:        data.Name,
		Category:    data.Category,
		Condition:   data.Condition,
		Description: data.Description,
		AgeYears:    data.AgeYears,
		ImageURL:    data.ImageURL,
		DateAdded:   data.DateAdded,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
