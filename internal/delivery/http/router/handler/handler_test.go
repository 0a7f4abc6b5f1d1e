package handler_test

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	appmiddleware "giftlink/internal/delivery/http/middleware"
	"giftlink/internal/delivery/http/router"
	"giftlink/internal/delivery/http/router/handler"
	"giftlink/internal/delivery/http/validator"
	"giftlink/internal/domain/entity"
	"giftlink/internal/domain/service"
	"giftlink/internal/errors"
	"giftlink/internal/usecase"
)

// The handler tests drive a fully wired echo instance: real router, real
// validator, real error handler and auth middleware, with the usecases
// replaced by stubs.

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(userUC usecase.UserUsecase, giftUC usecase.GiftUsecase) *echo.Echo {
	return newTestServerWithTokens(userUC, giftUC, stubTokenService{})
}

func newTestServerWithTokens(userUC usecase.UserUsecase, giftUC usecase.GiftUsecase, tokens service.TokenService) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = appmiddleware.NewErrorMiddleware(newDiscardLogger()).HandleHTTPError

	logger := newDiscardLogger()
	routes := router.NewRouter(router.RouterParams{
		AuthHandler:    handler.NewAuthHandler(userUC, logger),
		GiftHandler:    handler.NewGiftHandler(giftUC, logger),
		AuthMiddleware: appmiddleware.NewAuthMiddleware(tokens),
	})
	routes.RegisterRoutes(e)

	return e
}

// stubTokenService accepts tokens of the form "token-for-<uuid>".
type stubTokenService struct{}

func (stubTokenService) Issue(userID uuid.UUID) (string, error) {
	return "token-for-" + userID.String(), nil
}

func (stubTokenService) Validate(tokenString string) (*service.Claims, error) {
	id, err := uuid.Parse(strings.TrimPrefix(tokenString, "token-for-"))
	if err != nil {
		return nil, errors.New("invalid token")
	}

	return &service.Claims{UserID: id}, nil
}

// stubUserUsecase returns canned outputs or errors per operation.
type stubUserUsecase struct {
	registerOut *usecase.RegisterOutput
	registerErr error

	loginOut *usecase.LoginOutput
	loginErr error

	updateOut *usecase.UpdateProfileOutput
	updateErr error

	profileOut *entity.User
	profileErr error

	lastRegister *usecase.RegisterInput
	lastLogin    *usecase.LoginInput
	lastUpdate   *usecase.UpdateProfileInput
}

func (s *stubUserUsecase) Register(_ context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	s.lastRegister = input

	return s.registerOut, s.registerErr
}

func (s *stubUserUsecase) Login(_ context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	s.lastLogin = input

	return s.loginOut, s.loginErr
}

func (s *stubUserUsecase) UpdateProfile(_ context.Context, input *usecase.UpdateProfileInput) (*usecase.UpdateProfileOutput, error) {
	s.lastUpdate = input

	return s.updateOut, s.updateErr
}

func (s *stubUserUsecase) GetProfile(_ context.Context, _ uuid.UUID) (*entity.User, error) {
	return s.profileOut, s.profileErr
}

// stubGiftUsecase returns canned outputs or errors per operation.
type stubGiftUsecase struct {
	gifts   []*entity.Gift
	gift    *entity.Gift
	png     []byte
	err     error
	deleted []uuid.UUID

	lastCreate *usecase.CreateGiftInput
	lastUpdate *usecase.UpdateGiftInput
	lastSearch *usecase.SearchGiftsInput
}

func (s *stubGiftUsecase) ListGifts(context.Context) ([]*entity.Gift, error) {
	return s.gifts, s.err
}

func (s *stubGiftUsecase) GetGift(_ context.Context, _ uuid.UUID) (*entity.Gift, error) {
	return s.gift, s.err
}

func (s *stubGiftUsecase) CreateGift(_ context.Context, input *usecase.CreateGiftInput) (*entity.Gift, error) {
	s.lastCreate = input

	return s.gift, s.err
}

func (s *stubGiftUsecase) UpdateGift(_ context.Context, _ uuid.UUID, input *usecase.UpdateGiftInput) (*entity.Gift, error) {
	s.lastUpdate = input

	return s.gift, s.err
}

func (s *stubGiftUsecase) DeleteGift(_ context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)

	return s.err
}

func (s *stubGiftUsecase) SearchGifts(_ context.Context, input *usecase.SearchGiftsInput) ([]*entity.Gift, error) {
	s.lastSearch = input

	return s.gifts, s.err
}

func (s *stubGiftUsecase) GiftShareQR(context.Context, uuid.UUID) ([]byte, error) {
	return s.png, s.err
}
