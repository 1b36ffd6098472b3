package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required":     "{field} is required",
		"notblank":     "{field} must not be blank",
		"cents":        "{field} must have at most 2 decimal places",
		"gte":          "{field} must be greater than or equal to {param}",
		"gt":           "{field} must be greater than {param}",
		"lte":          "{field} must be less than or equal to {param}",
		"oneof":        "{field} must be one of {param}",
		"max":          "{field} must be less than or equal to {param}",
		"min":          "{field} must be greater than or equal to {param}",
		"len":          "{field} must be {param} characters long",
		"email":        "{field} must be a valid email address",
		"emailorblank": "{field} must be a valid email address or empty",
		"hexcolor":     "{field} must be a hex color code",
		"uuid":         "{field} must be a valid UUID",
		"latitude":     "{field} must be a valid latitude",
		"longitude":    "{field} must be a valid longitude",
	}
)

func message(err error) (string, string) {
	var valErrors val.ValidationErrors

	if errors.As(err, &valErrors) {
		for _, valErr := range valErrors {
			errStr := ""
			field := valErr.Field()
			param := valErr.Param()

			errStr = messages[valErr.Tag()]
			if errStr != "" {
				errStr = strings.ReplaceAll(errStr, "{field}", field)
				errStr = strings.ReplaceAll(errStr, "{param}", param)

				return field, errStr
			}
		}

		return valErrors[0].Field(), valErrors.Error()
	}

	return "", err.Error()
}
