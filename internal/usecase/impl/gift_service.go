package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"giftlink/config"
	deliverycontext "giftlink/internal/delivery/context"
	"giftlink/internal/domain/entity"
	domainerrors "giftlink/internal/domain/errors"
	"giftlink/internal/domain/repository"
	"giftlink/internal/domain/service"
	"giftlink/internal/usecase"
)

// giftService implements the GiftUsecase interface.
type giftService struct {
	txManager  repository.TransactionManager
	giftRepo   repository.GiftRepository
	imageStore service.ImageStore
	qrService  service.QRCodeService
	shareBase  string
	logger     *slog.Logger
}

// GiftServiceParams holds dependencies for giftService, injected by Fx.
type GiftServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	GiftRepo   repository.GiftRepository
	ImageStore service.ImageStore
	QRService  service.QRCodeService
	Config     *config.Config
	Logger     *slog.Logger
}

// NewGiftService is the constructor for giftService.
func NewGiftService(params GiftServiceParams) usecase.GiftUsecase {
	shareBase := ""
	if params.Config != nil && params.Config.QRCode != nil {
		shareBase = strings.TrimRight(params.Config.QRCode.BaseURL, "/")
	}

	return &giftService{
		txManager:  params.TxManager,
		giftRepo:   params.GiftRepo,
		imageStore: params.ImageStore,
		qrService:  params.QRService,
		shareBase:  shareBase,
		logger:     params.Logger,
	}
}

func (srv *giftService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListGifts returns the full catalog, newest first.
func (srv *giftService) ListGifts(ctx context.Context) ([]*entity.Gift, error) {
	gifts, err := srv.giftRepo.FindAll(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list gifts", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list gifts")
	}

	return gifts, nil
}

// GetGift returns a single gift by ID.
func (srv *giftService) GetGift(ctx context.Context, id uuid.UUID) (*entity.Gift, error) {
	gift, err := srv.giftRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGiftNotFound) {
			return nil, domainerrors.ErrGiftNotFound.WrapMessage("gift lookup failed")
		}
		srv.log(ctx).Error("Failed to get gift", slog.Any("giftID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to get gift")
	}

	return gift, nil
}

// CreateGift publishes a new listing, storing the uploaded photo first.
func (srv *giftService) CreateGift(ctx context.Context, input *usecase.CreateGiftInput) (*entity.Gift, error) {
	srv.log(ctx).Info("Creating gift", slog.String("name", input.Name))

	if err := validateGiftFields(input.Name, input.Condition, input.AgeYears); err != nil {
		srv.log(ctx).Warn("Gift validation failed", slog.String("name", input.Name), slog.Any("error", err))

		return nil, err
	}

	imageURL, err := srv.storeImage(ctx, input.Image)
	if err != nil {
		return nil, err
	}

	gift := &entity.Gift{
		Name:        strings.TrimSpace(input.Name),
		Category:    input.Category,
		Condition:   input.Condition,
		Description: input.Description,
		AgeYears:    input.AgeYears,
		ImageURL:    imageURL,
		DateAdded:   time.Now(),
	}

	if err := srv.giftRepo.Create(ctx, gift); err != nil {
		srv.log(ctx).Error("Failed to create gift", slog.String("name", gift.Name), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create gift")
	}

	srv.log(ctx).Debug("Gift created", slog.Any("giftID", gift.ID))

	return gift, nil
}

// UpdateGift applies a field-wise patch to an existing listing: empty patch
// fields keep the stored values. The read and write share one transaction so
// a concurrent delete cannot resurrect the row.
func (srv *giftService) UpdateGift(ctx context.Context, id uuid.UUID, input *usecase.UpdateGiftInput) (*entity.Gift, error) {
	srv.log(ctx).Info("Updating gift", slog.Any("giftID", id))

	if err := validateGiftPatch(input); err != nil {
		srv.log(ctx).Warn("Gift validation failed", slog.Any("giftID", id), slog.Any("error", err))

		return nil, err
	}

	// Store the replacement photo before opening the transaction; blob writes
	// must not run while a database transaction is held open.
	imageURL, err := srv.storeImage(ctx, input.Image)
	if err != nil {
		return nil, err
	}

	var updated *entity.Gift
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		giftRepo := repoFactory.GiftRepo()

		gift, findErr := giftRepo.FindByID(ctx, id)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrGiftNotFound) {
				return domainerrors.ErrGiftNotFound.WrapMessage("gift update rejected")
			}

			return errors.Wrap(findErr, "failed to find gift for update")
		}

		if name := strings.TrimSpace(input.Name); name != "" {
			gift.Name = name
		}
		if input.Category != "" {
			gift.Category = input.Category
		}
		if input.Condition != "" {
			gift.Condition = input.Condition
		}
		if input.Description != "" {
			gift.Description = input.Description
		}
		if input.AgeYears != nil {
			gift.AgeYears = *input.AgeYears
		}
		if imageURL != "" {
			gift.ImageURL = imageURL
		}

		if updateErr := giftRepo.Update(ctx, gift); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update gift")
		}

		updated = gift

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Gift update failed", slog.Any("giftID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute gift update transaction")
	}

	srv.log(ctx).Debug("Gift updated", slog.Any("giftID", id))

	return updated, nil
}

// DeleteGift removes a listing.
func (srv *giftService) DeleteGift(ctx context.Context, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting gift", slog.Any("giftID", id))

	if err := srv.giftRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrGiftNotFound) {
			return domainerrors.ErrGiftNotFound.WrapMessage("gift delete rejected")
		}
		srv.log(ctx).Error("Failed to delete gift", slog.Any("giftID", id), slog.Any("error", err))

		return errors.Wrap(err, "failed to delete gift")
	}

	return nil
}

// SearchGifts returns the gifts matching the given criteria.
func (srv *giftService) SearchGifts(ctx context.Context, input *usecase.SearchGiftsInput) ([]*entity.Gift, error) {
	filter := repository.GiftFilter{
		Name:        strings.TrimSpace(input.Name),
		Category:    input.Category,
		Condition:   input.Condition,
		MaxAgeYears: input.MaxAgeYears,
	}

	gifts, err := srv.giftRepo.Search(ctx, filter)
	if err != nil {
		srv.log(ctx).Error("Failed to search gifts", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to search gifts")
	}

	return gifts, nil
}

// GiftShareQR renders a PNG QR code pointing at the gift's details page.
func (srv *giftService) GiftShareQR(ctx context.Context, id uuid.UUID) ([]byte, error) {
	// Confirm the gift exists so the endpoint 404s instead of encoding a dead link.
	if _, err := srv.GetGift(ctx, id); err != nil {
		return nil, err
	}

	shareURL := srv.shareBase + "/app/product/" + id.String()

	png, err := srv.qrService.GenerateGiftQR(shareURL)
	if err != nil {
		srv.log(ctx).Error("Failed to render share QR", slog.Any("giftID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to render share QR")
	}

	return png, nil
}

// storeImage persists an uploaded photo and returns its public URL.
// A nil upload is not an error; it returns an empty URL.
func (srv *giftService) storeImage(ctx context.Context, image *usecase.ImageUpload) (string, error) {
	if image == nil {
		return "", nil
	}

	imageURL, err := srv.imageStore.Save(ctx, image.Filename, image.ContentType, image.Content)
	if err != nil {
		srv.log(ctx).Warn("Failed to store gift image", slog.String("filename", image.Filename), slog.Any("error", err))

		if errors.Is(err, service.ErrUnsupportedImageType) {
			return "", domainerrors.ErrValidationFailed.WithDetails("unsupported image type: " + image.Filename)
		}

		return "", errors.Wrap(err, "failed to store gift image")
	}

	return imageURL, nil
}

// validateGiftFields rejects listings with a blank name, an unknown condition
// or a negative age.
func validateGiftFields(name, condition string, ageYears int) error {
	var details []string
	if strings.TrimSpace(name) == "" {
		details = append(details, "name is required")
	}
	if condition != "" && !entity.ValidCondition(condition) {
		details = append(details, "condition must be one of: "+strings.Join(entity.Conditions(), ", "))
	}
	if ageYears < 0 {
		details = append(details, "ageYears must not be negative")
	}
	if len(details) > 0 {
		return domainerrors.ErrValidationFailed.WithDetails(strings.Join(details, "; "))
	}

	return nil
}

// validateGiftPatch checks only the fields the patch actually sets.
func validateGiftPatch(input *usecase.UpdateGiftInput) error {
	var details []string
	if input.Condition != "" && !entity.ValidCondition(input.Condition) {
		details = append(details, "condition must be one of: "+strings.Join(entity.Conditions(), ", "))
	}
	if input.AgeYears != nil && *input.AgeYears < 0 {
		details = append(details, "ageYears must not be negative")
	}
	if len(details) > 0 {
		return domainerrors.ErrValidationFailed.WithDetails(strings.Join(details, "; "))
	}

	return nil
}
