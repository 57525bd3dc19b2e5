package validator

import (
	"errors"
	"testing"

	"vistos/pkg/locale"
	"vistos/pkg/model"
	"vistos/pkg/validation"
)

func validCboCode() model.CboCode {
	return model.CboCode{
		Code:  "2521-05",
		Title: "Administrador",
	}
}

func TestValidateCboCode(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*model.CboCode)
		wantField string
	}{
		{
			name:   "valid record accepted",
			mutate: func(c *model.CboCode) {},
		},
		{
			name:   "empty code accepted as incomplete record",
			mutate: func(c *model.CboCode) { c.Code = "" },
		},
		{
			name:      "code missing check digits",
			mutate:    func(c *model.CboCode) { c.Code = "2521-5" },
			wantField: "code",
		},
		{
			name:      "code with misplaced dash",
			mutate:    func(c *model.CboCode) { c.Code = "25-2105" },
			wantField: "code",
		},
		{
			name:      "code with letters",
			mutate:    func(c *model.CboCode) { c.Code = "abcd-ef" },
			wantField: "code",
		},
		{
			name:      "title required",
			mutate:    func(c *model.CboCode) { c.Title = "" },
			wantField: "title",
		},
		{
			name:      "title too short",
			mutate:    func(c *model.CboCode) { c.Title = "Ad" },
			wantField: "title",
		},
	}

	v := NewCboCodeValidator(locale.NewTranslator(locale.English))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cbo := validCboCode()
			tt.mutate(&cbo)

			err := v.Validate(&cbo)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected acceptance, got %v", err)
				}
				return
			}

			var fieldErrors validation.FieldErrors
			if !errors.As(err, &fieldErrors) {
				t.Fatalf("expected FieldErrors, got %T (%v)", err, err)
			}
			if !fieldErrors.Has(tt.wantField) {
				t.Errorf("expected error on %s, got %v", tt.wantField, fieldErrors)
			}
		})
	}
}
