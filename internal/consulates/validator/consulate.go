package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"vistos/pkg/locale"
	"vistos/pkg/model"
	"vistos/pkg/validation"
)

type ConsulateValidator struct {
	validate *validator.Validate
	tr       *locale.Translator
}

func NewConsulateValidator(tr *locale.Translator) *ConsulateValidator {
	return &ConsulateValidator{
		validate: validation.New(),
		tr:       tr,
	}
}

// Validate checks a consulate record. Contact fields are optional but must
// be well-formed when present; an empty cityId means "not yet assigned" and
// passes.
func (v *ConsulateValidator) Validate(consulate *model.Consulate) error {
	if err := v.validate.Struct(consulate); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return validation.Translate(v.tr, validationErrs)
		}
		return err
	}
	return nil
}
