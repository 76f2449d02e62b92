package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations installs custom binding rules on gin's validator.
// Call once at startup before routes are served.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("gradyear", validGradYear)
}

// validGradYear accepts a four-digit year between the portal's founding
// class and next year's class.
func validGradYear(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	year, err := strconv.Atoi(value)
	if err != nil {
		return false
	}
	return year >= 1900 && year <= time.Now().Year()+1
}
