package common

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New()
}

// ValidationDetail flattens a validator error into the offending-field form
// the error taxonomy logs. Callers never see this string.
func ValidationDetail(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		return fmt.Sprintf("field %s failed on %s", errs[0].Field(), errs[0].Tag())
	}
	return err.Error()
}
