package handler

import (
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"giftlink/internal/delivery/http/response"
	"giftlink/internal/domain/entity"
	domainerrors "giftlink/internal/domain/errors"
	"giftlink/internal/usecase"
)

// GiftHandler holds dependencies for the gift catalog endpoints.
type GiftHandler struct {
	uc     usecase.GiftUsecase
	logger *slog.Logger
}

// NewGiftHandler is the constructor for GiftHandler, injected by Fx.
func NewGiftHandler(uc usecase.GiftUsecase, logger *slog.Logger) *GiftHandler {
	return &GiftHandler{
		uc:     uc,
		logger: logger,
	}
}

// giftRequest covers both create and update. Pointer fields distinguish
// "absent" from zero so updates can patch field-wise.
type giftRequest struct {
	Name        string `json:"name" form:"name"`
	Category    string `json:"category" form:"category"`
	Condition   string `json:"condition" form:"condition"`
	Description string `json:"description" form:"description"`
	AgeYears    *int   `json:"ageYears" form:"ageYears"`
}

type giftResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Condition   string    `json:"condition"`
	Description string    `json:"description"`
	AgeYears    int       `json:"ageYears"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	DateAdded   time.Time `json:"dateAdded"`
}

// List returns the whole catalog.
func (h *GiftHandler) List(c echo.Context) error {
	gifts, err := h.uc.ListGifts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, toGiftResponses(gifts))
}

// Get returns a single gift.
func (h *GiftHandler) Get(c echo.Context) error {
	id, err := parseGiftID(c)
	if err != nil {
		return err
	}

	gift, err := h.uc.GetGift(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, toGiftResponse(gift))
}

// Create publishes a new listing from a JSON body or a multipart form with an
// optional `image` part.
func (h *GiftHandler) Create(c echo.Context) error {
	var input giftRequest
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed gift body")
	}

	image, closeImage, err := h.imageFromForm(c)
	if err != nil {
		return err
	}
	defer closeImage()

	ageYears := 0
	if input.AgeYears != nil {
		ageYears = *input.AgeYears
	}

	gift, err := h.uc.CreateGift(c.Request().Context(), &usecase.CreateGiftInput{
		Name:        input.Name,
		Category:    input.Category,
		Condition:   input.Condition,
		Description: input.Description,
		AgeYears:    ageYears,
		Image:       image,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusCreated, toGiftResponse(gift))
}

// Update patches an existing listing.
func (h *GiftHandler) Update(c echo.Context) error {
	id, err := parseGiftID(c)
	if err != nil {
		return err
	}

	var input giftRequest
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed gift body")
	}

	image, closeImage, err := h.imageFromForm(c)
	if err != nil {
		return err
	}
	defer closeImage()

	gift, err := h.uc.UpdateGift(c.Request().Context(), id, &usecase.UpdateGiftInput{
		Name:        input.Name,
		Category:    input.Category,
		Condition:   input.Condition,
		Description: input.Description,
		AgeYears:    input.AgeYears,
		Image:       image,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, toGiftResponse(gift))
}

// Delete removes a listing.
func (h *GiftHandler) Delete(c echo.Context) error {
	id, err := parseGiftID(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteGift(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.Message{Message: "Gift deleted successfully"})
}

// ShareQR serves a PNG QR code linking to the gift's details page.
func (h *GiftHandler) ShareQR(c echo.Context) error {
	id, err := parseGiftID(c)
	if err != nil {
		return err
	}

	png, err := h.uc.GiftShareQR(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// Search filters the catalog by query parameters.
func (h *GiftHandler) Search(c echo.Context) error {
	input := &usecase.SearchGiftsInput{
		Name:      c.QueryParam("name"),
		Category:  c.QueryParam("category"),
		Condition: c.QueryParam("condition"),
	}

	if raw := c.QueryParam("age_years"); raw != "" {
		maxAge, err := strconv.Atoi(raw)
		if err != nil || maxAge < 0 {
			return domainerrors.ErrValidationFailed.WithDetails("age_years must be a non-negative integer")
		}
		input.MaxAgeYears = &maxAge
	}

	gifts, err := h.uc.SearchGifts(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, toGiftResponses(gifts))
}

// imageFromForm extracts the optional `image` multipart part. The returned
// closer is a no-op when no file was uploaded.
func (h *GiftHandler) imageFromForm(c echo.Context) (*usecase.ImageUpload, func(), error) {
	noop := func() {}

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		return nil, noop, nil
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, noop, nil
		}

		return nil, noop, domainerrors.ErrValidationFailed.WithDetails("unreadable image upload")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, noop, errors.Wrap(err, "failed to open image upload")
	}

	upload := &usecase.ImageUpload{
		Filename:    fileHeader.Filename,
		ContentType: detectUploadContentType(fileHeader),
		Content:     file,
	}

	return upload, func() { _ = file.Close() }, nil
}

func detectUploadContentType(fileHeader *multipart.FileHeader) string {
	if ct := fileHeader.Header.Get(echo.HeaderContentType); ct != "" {
		return ct
	}

	return echo.MIMEOctetStream
}

func parseGiftID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrInvalidGiftID.WithDetails("id must be a UUID")
	}

	return id, nil
}

func toGiftResponse(gift *entity.Gift) giftResponse {
	return giftResponse{
		ID:          gift.ID.String(),
		Name:        gift.Name,
		Category:    gift.Category,
		Condition:   gift.Condition,
		Description: gift.Description,
		AgeYears:    gift.AgeYears,
		ImageURL:    gift.ImageURL,
		DateAdded:   gift.DateAdded,
	}
}

func toGiftResponses(gifts []*entity.Gift) []giftResponse {
	out := make([]giftResponse, 0, len(gifts))
	for _, gift := range gifts {
		out = append(out, toGiftResponse(gift))
	}

	return out
}
