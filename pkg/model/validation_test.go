package model

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"vistos/pkg/validation"
)

// Records accepted by the validators must still be accepted after a trip
// through the store's BSON representation.
func TestAcceptedRecordsSurviveBSONRoundTrip(t *testing.T) {
	v := validation.New()

	t.Run("cbo code", func(t *testing.T) {
		original := CboCode{
			Code:  "2521-05",
			Title: "Administrador",
		}
		if err := v.Struct(original); err != nil {
			t.Fatalf("fixture should be valid: %v", err)
		}

		data, err := bson.Marshal(original)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var decoded CboCode
		if err := bson.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}

		if err := v.Struct(decoded); err != nil {
			t.Errorf("round-tripped record rejected: %v", err)
		}
		if decoded.Code != original.Code || decoded.Title != original.Title {
			t.Errorf("round trip changed values: %+v", decoded)
		}
	})

	t.Run("relationship", func(t *testing.T) {
		original := PersonCompanyRelationship{
			PersonID:  "507f1f77bcf86cd799439011",
			CompanyID: "507f1f77bcf86cd799439012",
			Role:      "Engenheiro",
			StartDate: "2023-01-01",
			EndDate:   "2024-01-01",
		}
		if err := v.Struct(original); err != nil {
			t.Fatalf("fixture should be valid: %v", err)
		}

		data, err := bson.Marshal(original)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var decoded PersonCompanyRelationship
		if err := bson.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}

		if err := v.Struct(decoded); err != nil {
			t.Errorf("round-tripped record rejected: %v", err)
		}
		if decoded.StartDate != original.StartDate || decoded.EndDate != original.EndDate {
			t.Errorf("round trip changed dates: %+v", decoded)
		}
	})

	t.Run("empty optional fields stay empty", func(t *testing.T) {
		original := Consulate{
			Name:    "Consulado Geral em Boston",
			Country: "BR",
		}
		if err := v.Struct(original); err != nil {
			t.Fatalf("fixture should be valid: %v", err)
		}

		data, err := bson.Marshal(original)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var decoded Consulate
		if err := bson.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}

		if decoded.CityID != "" || decoded.Email != "" {
			t.Errorf("omitempty fields came back non-empty: %+v", decoded)
		}
		if err := v.Struct(decoded); err != nil {
			t.Errorf("round-tripped record rejected: %v", err)
		}
	})
}
