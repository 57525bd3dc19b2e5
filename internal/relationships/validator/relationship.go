package validator

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"vistos/pkg/locale"
	"vistos/pkg/model"
	"vistos/pkg/validation"
)

type RelationshipValidator struct {
	validate *validator.Validate
	tr       *locale.Translator
}

func NewRelationshipValidator(tr *locale.Translator) *RelationshipValidator {
	return &RelationshipValidator{
		validate: validation.New(),
		tr:       tr,
	}
}

// Validate checks a person-company relationship. Per-field checks run
// first; the cross-field rules on the date pair only run once both dates
// are individually well-formed, and every rule is evaluated even after one
// fails.
func (v *RelationshipValidator) Validate(rel *model.PersonCompanyRelationship) error {
	if err := v.validate.Struct(rel); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return validation.Translate(v.tr, validationErrs)
		}
		return err
	}

	if fieldErrors := validation.Run(v.tr, v.crossFieldRules(rel)); len(fieldErrors) > 0 {
		return fieldErrors
	}
	return nil
}

func (v *RelationshipValidator) crossFieldRules(rel *model.PersonCompanyRelationship) []validation.Rule {
	return []validation.Rule{
		{
			Field: "endDate",
			Key:   "relationship.current_end_date",
			OK: func() bool {
				return !rel.IsCurrent || rel.EndDate == ""
			},
		},
		{
			Field: "endDate",
			Key:   "relationship.end_before_start",
			OK: func() bool {
				if rel.StartDate == "" || rel.EndDate == "" {
					return true
				}
				start, err := time.Parse(model.DateLayout, rel.StartDate)
				if err != nil {
					return true
				}
				end, err := time.Parse(model.DateLayout, rel.EndDate)
				if err != nil {
					return true
				}
				return end.After(start)
			},
		},
	}
}
