package model

import "time"

const DateLayout = "2006-01-02"

// PersonCompanyRelationship links a person to a company for some period.
// Dates travel as plain YYYY-MM-DD strings; ordering and the
// current-vs-endDate exclusivity are cross-field rules owned by the
// relationship validator, not by these tags.
type PersonCompanyRelationship struct {
	ID        string    `bson:"_id,omitempty" json:"id,omitempty" validate:"omitempty,mongodb"`
	PersonID  string    `bson:"person_id" json:"personId" validate:"required,mongodb"`
	CompanyID string    `bson:"company_id" json:"companyId" validate:"required,mongodb"`
	Role      string    `bson:"role,omitempty" json:"role,omitempty" validate:"omitempty,max=100"`
	IsCurrent bool      `bson:"is_current" json:"isCurrent"`
	StartDate string    `bson:"start_date,omitempty" json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string    `bson:"end_date,omitempty" json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt" validate:"omitempty"`
}
