package model

import "time"

// Entity types an information requirement can apply to.
const (
	EntityPerson            = "person"
	EntityIndividualProcess = "individualProcess"
	EntityPassport          = "passport"
	EntityCompany           = "company"
)

// Parties that can be responsible for supplying a required field.
const (
	PartyClient  = "client"
	PartyAdmin   = "admin"
	PartyCompany = "company"
)

// LegalFrameworkInfoRequirement declares that a legal framework requires a
// given field of a given entity type, and who has to provide it.
type LegalFrameworkInfoRequirement struct {
	ID               string    `bson:"_id,omitempty" json:"id,omitempty" validate:"omitempty,mongodb"`
	LegalFrameworkID string    `bson:"legal_framework_id" json:"legalFrameworkId" validate:"required,mongodb"`
	EntityType       string    `bson:"entity_type" json:"entityType" validate:"required,oneof=person individualProcess passport company"`
	FieldPath        string    `bson:"field_path" json:"fieldPath" validate:"required,min=1,max=200"`
	ResponsibleParty string    `bson:"responsible_party" json:"responsibleParty" validate:"required,oneof=client admin company"`
	Description      string    `bson:"description,omitempty" json:"description,omitempty" validate:"omitempty,max=500"`
	Required         bool      `bson:"required" json:"required"`
	CreatedAt        time.Time `bson:"created_at" json:"createdAt" validate:"omitempty"`
}
