package model

import "time"

// Consulate is a consular post records for a country, optionally linked to a
// registered city. An empty cityId is accepted as "not yet assigned"; a
// non-empty one must be a well-formed record identifier.
type Consulate struct {
	ID        string    `bson:"_id,omitempty" json:"id,omitempty" validate:"omitempty,mongodb"`
	Name      string    `bson:"name" json:"name" validate:"required,min=2,max=120"`
	Country   string    `bson:"country" json:"country" validate:"required,iso3166_1_alpha2"`
	CityID    string    `bson:"city_id,omitempty" json:"cityId,omitempty" validate:"omitempty,mongodb"`
	Email     string    `bson:"email,omitempty" json:"email,omitempty" validate:"omitempty,email"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty" validate:"omitempty,e164"`
	Website   string    `bson:"website,omitempty" json:"website,omitempty" validate:"omitempty,http_url"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt" validate:"omitempty"`
}
