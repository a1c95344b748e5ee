package usecase

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterTagNameFunc(jsonFieldName)
	validate.RegisterValidation("notblank", validateNotBlank)
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// checkFields runs the struct tag rules of an entity and records one
// RuleField violation per failing field.
func checkFields(vs *Violations, s any) {
	err := validate.Struct(s)
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		vs.Add(RuleField, "", "%v", err)
		return
	}
	for _, fe := range fieldErrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required", "notblank":
			vs.Add(RuleField, field, "%s is required", field)
		case "max":
			vs.Add(RuleField, field, "%s must be at most %s characters", field, fe.Param())
		case "gte":
			vs.Add(RuleField, field, "%s must be at least %s", field, fe.Param())
		case "lte":
			vs.Add(RuleField, field, "%s must be at most %s", field, fe.Param())
		default:
			vs.Add(RuleField, field, "%s is invalid", field)
		}
	}
}
