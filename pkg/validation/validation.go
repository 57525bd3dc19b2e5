// Package validation holds the pieces shared by every entity validator:
// the (field, message) error collection, the configured validator instance,
// and the cross-field rule runner.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"vistos/pkg/locale"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FieldErrors is the result of validating a record. A record is valid iff
// the collection is empty. Order follows declaration order of the violated
// rules, so repeated validation of the same input yields identical output.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	messages := make([]string, 0, len(e))
	for _, fe := range e {
		messages = append(messages, fe.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(e), strings.Join(messages, "; "))
}

// ByField groups messages per field path, preserving per-field order.
func (e FieldErrors) ByField() map[string][]string {
	if len(e) == 0 {
		return nil
	}
	fields := make(map[string][]string, len(e))
	for _, fe := range e {
		fields[fe.Field] = append(fields[fe.Field], fe.Message)
	}
	return fields
}

func (e FieldErrors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

var reCboCode = regexp.MustCompile(`^\d{4}-\d{2}$`)

// New returns a validator instance with the tags shared across entity
// validators registered, reporting fields by their JSON names.
func New() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// Occupation codes follow the CBO four-digit-dash-two-digit shape.
	_ = v.RegisterValidation("cbo_code", func(fl validator.FieldLevel) bool {
		return reCboCode.MatchString(fl.Field().String())
	})

	return v
}

// Translate converts validator tag failures into localized field errors.
func Translate(tr *locale.Translator, errs validator.ValidationErrors) FieldErrors {
	fieldErrors := make(FieldErrors, 0, len(errs))

	for _, err := range errs {
		var message string
		switch err.Tag() {
		case "required":
			message = tr.T("validation.required", err.Field())
		case "min":
			message = tr.T("validation.min", err.Field(), err.Param())
		case "max":
			message = tr.T("validation.max", err.Field(), err.Param())
		case "len":
			message = tr.T("validation.len", err.Field(), err.Param())
		case "email":
			message = tr.T("validation.email", err.Field())
		case "url", "http_url":
			message = tr.T("validation.url", err.Field())
		case "e164":
			message = tr.T("validation.e164", err.Field())
		case "oneof":
			message = tr.T("validation.oneof", err.Field(), strings.Join(strings.Fields(err.Param()), ", "))
		case "mongodb":
			message = tr.T("validation.objectid", err.Field())
		case "datetime":
			message = tr.T("validation.date", err.Field())
		case "iso3166_1_alpha2":
			message = tr.T("validation.alpha2", err.Field())
		case "uppercase":
			message = tr.T("validation.uppercase", err.Field())
		case "cbo_code":
			message = tr.T("validation.cbo_code", err.Field())
		default:
			message = tr.T("validation.invalid", err.Field())
		}

		fieldErrors = append(fieldErrors, FieldError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return fieldErrors
}
