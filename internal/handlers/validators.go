package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Money amounts arrive as decimal.Decimal, which the validator's numeric
// tags (gt, ne) cannot inspect. These tags fill the gap for binding-time
// checks; the services re-validate regardless.
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("decimal_positive", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && d.IsPositive()
	})

	_ = v.RegisterValidation("decimal_nonzero", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && !d.IsZero()
	})
}
