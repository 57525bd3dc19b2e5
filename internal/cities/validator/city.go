package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"vistos/pkg/locale"
	"vistos/pkg/model"
	"vistos/pkg/validation"
)

type CityValidator struct {
	validate *validator.Validate
	tr       *locale.Translator
}

func NewCityValidator(tr *locale.Translator) *CityValidator {
	return &CityValidator{
		validate: validation.New(),
		tr:       tr,
	}
}

// Validate checks a city record. It returns nil for acceptable input and
// validation.FieldErrors for rejected input; any other error is a defect in
// the validator definition, not invalid input.
func (v *CityValidator) Validate(city *model.City) error {
	if err := v.validate.Struct(city); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return validation.Translate(v.tr, validationErrs)
		}
		return err
	}
	return nil
}
