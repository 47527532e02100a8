package model

import "rental/shared/model"

const (
	TableName  = "properties"
	EntityName = "property"

	FieldID      = "id"
	FieldOwnerID = "owner_id"
	FieldName    = "name"
)

// Property is owned by the listing catalogue. Reservations only read it to
// learn who the owner is.
type Property struct {
	ID      string `db:"id"`
	OwnerID string `db:"owner_id"`
	Name    string `db:"name"`
	model.Metadata
}

func (p Property) IsOwnedBy(userID string) bool {
	return p.OwnerID != "" && p.OwnerID == userID
}
