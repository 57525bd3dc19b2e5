package model

import "time"

// CboCode is an entry in the Brazilian occupation classification (CBO).
// The code itself is optional: records are often created from a job title
// before the exact classification is known.
type CboCode struct {
	ID          string    `bson:"_id,omitempty" json:"id,omitempty" validate:"omitempty,mongodb"`
	Code        string    `bson:"code,omitempty" json:"code,omitempty" validate:"omitempty,cbo_code"`
	Title       string    `bson:"title" json:"title" validate:"required,min=3,max=150"`
	Description string    `bson:"description,omitempty" json:"description,omitempty" validate:"omitempty,max=500"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt" validate:"omitempty"`
}
