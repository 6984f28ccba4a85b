package common

import (
	"go-card-bank/card"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("cardnumber", func(fl validator.FieldLevel) bool {
		return card.IsWellFormed(fl.Field().String())
	})
	_ = v.RegisterValidation("pin", func(fl validator.FieldLevel) bool {
		return card.IsWellFormedPin(fl.Field().String())
	})
	return v
}

// Validate checks payload against its validate tags, including the
// cardnumber and pin tags registered here.
func Validate(payload interface{}) error {
	return validate.Struct(payload)
}

// ValidateAndReport validates payload and turns a failure into an AppError
// carrying message.
func ValidateAndReport(payload interface{}, message string) *AppError {
	if err := Validate(payload); err != nil {
		return NewAppError(KindValidation, message, err)
	}
	return nil
}
