// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"

	domainerrors "giftlink/internal/domain/errors"
	"giftlink/internal/errors"
)

type echoValidator struct {
	validate *validator.Validate
}

// New builds the validator echo consults for every c.Validate call.
func New() *echoValidator {
	return &echoValidator{validate: validator.New()}
}

// Validate runs struct-tag validation and translates failures into the
// application's validation error so the central error handler can render them.
func (v *echoValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domainerrors.ErrInternal.WrapMessage("validator misuse")
	}

	return domainerrors.ErrValidationFailed.WithDetails(fieldSummary(verrs))
}

func fieldSummary(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fieldErr := range verrs {
		parts = append(parts, fieldErr.Field()+" failed "+fieldErr.Tag()+" validation")
	}

	return strings.Join(parts, "; ")
}
