package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var currencyCodeRe = regexp.MustCompile(`^[A-Za-z]{3}$`)

// registerBindingValidations installs custom binding tags on gin's validator
// engine. Currency codes are normalized to upper case by the services, so
// lower case is accepted at the boundary.
func registerBindingValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currencycode", func(fl validator.FieldLevel) bool {
			return currencyCodeRe.MatchString(fl.Field().String())
		})
	}
}
