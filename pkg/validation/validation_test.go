package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"

	"vistos/pkg/locale"
)

type sample struct {
	Name  string `json:"name" validate:"required,min=2"`
	Email string `json:"email" validate:"omitempty,email"`
	Code  string `json:"code" validate:"omitempty,cbo_code"`
	Kind  string `json:"kind" validate:"required,oneof=person company"`
}

func validSample() sample {
	return sample{Name: "Analyst", Email: "a@b.com", Code: "2521-05", Kind: "person"}
}

func translate(t *testing.T, err error) FieldErrors {
	t.Helper()
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validator.ValidationErrors, got %T", err)
	}
	return Translate(locale.NewTranslator(locale.English), verrs)
}

func TestTranslateUsesJSONFieldNames(t *testing.T) {
	v := New()
	s := validSample()
	s.Name = ""

	fieldErrors := translate(t, v.Struct(s))
	if len(fieldErrors) != 1 {
		t.Fatalf("expected one error, got %v", fieldErrors)
	}
	if fieldErrors[0].Field != "name" {
		t.Errorf("expected error on json field name, got %s", fieldErrors[0].Field)
	}
	if fieldErrors[0].Message != "name is required" {
		t.Errorf("unexpected message: %s", fieldErrors[0].Message)
	}
}

func TestCboCodeTag(t *testing.T) {
	tests := []struct {
		code  string
		valid bool
	}{
		{"2521-05", true},
		{"25-2105", false},
		{"2521-5", false},
		{"abcd-ef", false},
		{"", true}, // omitempty: empty means not provided
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			s := validSample()
			s.Code = tt.code
			err := v.Struct(s)
			if tt.valid && err != nil {
				t.Errorf("code %q: expected valid, got %v", tt.code, err)
			}
			if !tt.valid {
				if err == nil {
					t.Fatalf("code %q: expected rejection", tt.code)
				}
				fieldErrors := translate(t, err)
				if !fieldErrors.Has("code") {
					t.Errorf("expected error attached to code, got %v", fieldErrors)
				}
			}
		})
	}
}

func TestTranslateOneof(t *testing.T) {
	v := New()
	s := validSample()
	s.Kind = "passportHolder"

	fieldErrors := translate(t, v.Struct(s))
	if len(fieldErrors) != 1 {
		t.Fatalf("expected one error, got %v", fieldErrors)
	}
	want := "kind must be one of: person, company"
	if fieldErrors[0].Message != want {
		t.Errorf("got %q, want %q", fieldErrors[0].Message, want)
	}
}

func TestRunEvaluatesAllRules(t *testing.T) {
	tr := locale.NewTranslator(locale.English)
	calls := 0
	rules := []Rule{
		{Field: "endDate", Key: "relationship.current_end_date", OK: func() bool { calls++; return false }},
		{Field: "endDate", Key: "relationship.end_before_start", OK: func() bool { calls++; return false }},
		{Field: "startDate", Key: "validation.invalid", OK: func() bool { calls++; return true }},
	}

	fieldErrors := Run(tr, rules)

	if calls != 3 {
		t.Errorf("expected every rule evaluated, got %d calls", calls)
	}
	if len(fieldErrors) != 2 {
		t.Fatalf("expected two merged failures, got %v", fieldErrors)
	}
	if fieldErrors[0].Message != "a current relationship cannot have an end date" {
		t.Errorf("unexpected first message: %s", fieldErrors[0].Message)
	}
	if fieldErrors[1].Message != "end date must be after start date" {
		t.Errorf("unexpected second message: %s", fieldErrors[1].Message)
	}
}

func TestFieldErrorsByField(t *testing.T) {
	fieldErrors := FieldErrors{
		{Field: "endDate", Message: "first"},
		{Field: "endDate", Message: "second"},
		{Field: "name", Message: "third"},
	}

	byField := fieldErrors.ByField()
	if len(byField["endDate"]) != 2 || byField["endDate"][0] != "first" {
		t.Errorf("expected ordered endDate messages, got %v", byField["endDate"])
	}
	if !fieldErrors.Has("name") || fieldErrors.Has("city") {
		t.Error("Has reported wrong membership")
	}
}

func TestEmptyFieldErrors(t *testing.T) {
	var fieldErrors FieldErrors
	if fieldErrors.Error() != "" {
		t.Errorf("empty collection should render empty string")
	}
	if fieldErrors.ByField() != nil {
		t.Errorf("empty collection should group to nil")
	}
}
