package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"bookcatalog/internal/httpx"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidateStruct checks the shape of a request body. Business rules are
// left to the catalog service.
func ValidateStruct(s any) []httpx.ErrorDetail {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []httpx.ErrorDetail{{Message: err.Error()}}
	}

	details := make([]httpx.ErrorDetail, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Field()
		var message string
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "datetime":
			message = fmt.Sprintf("%s must be a date formatted as %s", field, fe.Param())
		case "gt":
			message = fmt.Sprintf("%s must be a positive id", field)
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}
		details = append(details, httpx.ErrorDetail{Field: field, Message: message})
	}
	return details
}
