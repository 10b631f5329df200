package handler

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations installs custom binding validators on gin's validator
// engine. Call once at startup before serving requests.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("dateonly", validateDateOnly)
}

// validateDateOnly accepts dates in 2006-01-02 form
func validateDateOnly(fl validator.FieldLevel) bool {
	_, err := time.Parse(dateOnlyLayout, fl.Field().String())
	return err == nil
}
