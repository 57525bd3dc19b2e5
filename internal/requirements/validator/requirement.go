package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"vistos/pkg/locale"
	"vistos/pkg/model"
	"vistos/pkg/validation"
)

type RequirementValidator struct {
	validate *validator.Validate
	tr       *locale.Translator
}

func NewRequirementValidator(tr *locale.Translator) *RequirementValidator {
	return &RequirementValidator{
		validate: validation.New(),
		tr:       tr,
	}
}

// Validate checks a legal framework information requirement. Both enums are
// closed sets; anything outside them is rejected with the allowed values in
// the message.
func (v *RequirementValidator) Validate(req *model.LegalFrameworkInfoRequirement) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return validation.Translate(v.tr, validationErrs)
		}
		return err
	}
	return nil
}
