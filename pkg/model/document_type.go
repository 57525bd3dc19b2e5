package model

import "time"

// FieldLink ties a document type to one entity field it documents.
type FieldLink struct {
	EntityType string `bson:"entity_type" json:"entityType"`
	FieldPath  string `bson:"field_path" json:"fieldPath"`
}

// DocumentType is an entry in the document registry. The linked fields feed
// the field-linking index consumed by the dashboard.
type DocumentType struct {
	ID           string      `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string      `bson:"name" json:"name"`
	LinkedFields []FieldLink `bson:"linked_fields,omitempty" json:"linkedFields,omitempty"`
	CreatedAt    time.Time   `bson:"created_at" json:"createdAt"`
}
