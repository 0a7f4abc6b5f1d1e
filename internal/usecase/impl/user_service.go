// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "giftlink/internal/delivery/context"
	"giftlink/internal/domain/entity"
	domainerrors "giftlink/internal/domain/errors"
	"giftlink/internal/domain/repository"
	"giftlink/internal/domain/service"
	"giftlink/internal/usecase"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete user registration process.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	// Hash outside the transaction: bcrypt is CPU-bound and must not hold a
	// database connection while it runs.
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	newUser := &entity.User{
		Email:        email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hashedPassword,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		// Early duplicate check keeps the common failure cheap. The unique
		// index on email remains the authority: a concurrent insert between
		// this check and Create still surfaces as ErrDuplicateEmail.
		_, findErr := userRepo.FindByEmail(ctx, email)
		if findErr == nil {
			return domainerrors.ErrDuplicateEmail.WrapMessage("registration rejected")
		}
		if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to check for existing email")
		}

		return userRepo.Create(ctx, newUser)
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user registration transaction")
	}

	authToken, err := srv.tokenService.Issue(newUser.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token after registration", slog.Any("userID", newUser.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue token after registration")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return &usecase.RegisterOutput{
		AuthToken: authToken,
		Email:     newUser.Email,
	}, nil
}

// Login orchestrates the user login process.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting user login", slog.String("email", email))

	// Single read, no transaction needed.
	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed: unknown email", slog.String("email", email))

			return nil, domainerrors.ErrUserNotFound.WrapMessage("login failed")
		}
		srv.log(ctx).Error("Login failed", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed: password mismatch", slog.Any("userID", user.ID))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	authToken, err := srv.tokenService.Issue(user.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token during login", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue token during login")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		AuthToken: authToken,
		UserName:  user.FirstName,
		UserEmail: user.Email,
	}, nil
}

// UpdateProfile changes the user's first and last name and issues a fresh token.
func (srv *userService) UpdateProfile(ctx context.Context, input *usecase.UpdateProfileInput) (*usecase.UpdateProfileOutput, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Info("Starting profile update", slog.String("email", email))

	if err := validateProfileNames(input.FirstName, input.LastName); err != nil {
		srv.log(ctx).Warn("Profile update validation failed", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}

	var updatedUser *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, findErr := userRepo.FindByEmail(ctx, email)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WrapMessage("profile update rejected")
			}

			return errors.Wrap(findErr, "failed to find user for profile update")
		}

		user.FirstName = strings.TrimSpace(input.FirstName)
		user.LastName = strings.TrimSpace(input.LastName)

		if updateErr := userRepo.Update(ctx, user); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update user profile")
		}

		updatedUser = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Profile update failed", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute profile update transaction")
	}

	authToken, err := srv.tokenService.Issue(updatedUser.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token after profile update", slog.Any("userID", updatedUser.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue token after profile update")
	}

	srv.log(ctx).Debug("Profile update completed", slog.Any("userID", updatedUser.ID))

	return &usecase.UpdateProfileOutput{AuthToken: authToken}, nil
}

// GetProfile retrieves the account behind a validated token.
func (srv *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("profile lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return user, nil
}

// validateProfileNames rejects blank name fields, naming each offender.
func validateProfileNames(firstName, lastName string) error {
	var missing []string
	if strings.TrimSpace(firstName) == "" {
		missing = append(missing, "firstName")
	}
	if strings.TrimSpace(lastName) == "" {
		missing = append(missing, "lastName")
	}
	if len(missing) > 0 {
		return domainerrors.ErrValidationFailed.WithDetails("required fields: " + strings.Join(missing, ", "))
	}

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
