package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidators installs custom binding validators on gin's validator
// engine. Must be called once before requests are served; calling it again
// is harmless.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("dgt0", decimalGreaterThanZero); err != nil {
		return err
	}
	return v.RegisterValidation("dgte0", decimalNonNegative)
}

func decimalGreaterThanZero(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return d.GreaterThan(decimal.Zero)
}

func decimalNonNegative(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return d.GreaterThanOrEqual(decimal.Zero)
}
