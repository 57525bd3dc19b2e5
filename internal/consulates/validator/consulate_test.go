package validator

import (
	"errors"
	"testing"

	"vistos/pkg/locale"
	"vistos/pkg/model"
	"vistos/pkg/validation"
)

func validConsulate() model.Consulate {
	return model.Consulate{
		Name:    "Consulado-Geral em Miami",
		Country: "US",
		CityID:  "665f1c2ab1e4a7d3c9f0aa11",
		Email:   "contact@consulate.example.org",
		Phone:   "+13055551234",
		Website: "https://consulate.example.org",
	}
}

func TestValidateConsulate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*model.Consulate)
		wantField string
	}{
		{
			name:   "valid consulate accepted",
			mutate: func(c *model.Consulate) {},
		},
		{
			name: "contact fields are optional",
			mutate: func(c *model.Consulate) {
				c.Email = ""
				c.Phone = ""
				c.Website = ""
			},
		},
		{
			name:   "unassigned city accepted",
			mutate: func(c *model.Consulate) { c.CityID = "" },
		},
		{
			name:      "name required",
			mutate:    func(c *model.Consulate) { c.Name = "" },
			wantField: "name",
		},
		{
			name:      "country required",
			mutate:    func(c *model.Consulate) { c.Country = "" },
			wantField: "country",
		},
		{
			name:      "country must be alpha-2",
			mutate:    func(c *model.Consulate) { c.Country = "USA" },
			wantField: "country",
		},
		{
			name:      "malformed city id rejected",
			mutate:    func(c *model.Consulate) { c.CityID = "miami" },
			wantField: "cityId",
		},
		{
			name:      "malformed email rejected",
			mutate:    func(c *model.Consulate) { c.Email = "not-an-email" },
			wantField: "email",
		},
		{
			name:      "national phone format rejected",
			mutate:    func(c *model.Consulate) { c.Phone = "(305) 555-1234" },
			wantField: "phone",
		},
		{
			name:      "website must be http url",
			mutate:    func(c *model.Consulate) { c.Website = "ftp://consulate.example.org" },
			wantField: "website",
		},
	}

	v := NewConsulateValidator(locale.NewTranslator(locale.English))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			consulate := validConsulate()
			tt.mutate(&consulate)

			err := v.Validate(&consulate)
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

func TestValidateConsulateCollectsAllFailures(t *testing.T) {
	v := NewConsulateValidator(locale.NewTranslator(locale.English))
	consulate := model.Consulate{
		Country: "Portugal",
		Email:   "broken",
	}

	err := v.Validate(&consulate)
	var fieldErrors validation.FieldErrors
	if !errors.As(err, &fieldErrors) {
		t.Fatalf("expected FieldErrors, got %T (%v)", err, err)
	}

	for _, field := range []string{"name", "country", "email"} {
		if !fieldErrors.Has(field) {
			t.Errorf("expected error on %s, got %v", field, fieldErrors)
		}
	}
}
