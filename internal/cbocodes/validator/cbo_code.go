package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"vistos/pkg/locale"
	"vistos/pkg/model"
	"vistos/pkg/validation"
)

type CboCodeValidator struct {
	validate *validator.Validate
	tr       *locale.Translator
}

func NewCboCodeValidator(tr *locale.Translator) *CboCodeValidator {
	return &CboCodeValidator{
		validate: validation.New(),
		tr:       tr,
	}
}

// Validate checks an occupation record. An empty code is accepted as a
// record created from a job title alone; a non-empty code must match the
// NNNN-NN classification shape.
func (v *CboCodeValidator) Validate(cbo *model.CboCode) error {
	if err := v.validate.Struct(cbo); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return validation.Translate(v.tr, validationErrs)
		}
		return err
	}
	return nil
}
