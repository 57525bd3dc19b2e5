package model

import "time"

type City struct {
	ID        string    `bson:"_id,omitempty" json:"id,omitempty" validate:"omitempty,mongodb"`
	Name      string    `bson:"name" json:"name" validate:"required,min=2,max=100"`
	State     string    `bson:"state,omitempty" json:"state,omitempty" validate:"omitempty,len=2,uppercase"`
	Country   string    `bson:"country" json:"country" validate:"required,iso3166_1_alpha2"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt" validate:"omitempty"`
}
