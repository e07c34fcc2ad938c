package usecase

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared by request and model-output validation. Field errors
// report JSON names so they can be shown to callers as-is.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
