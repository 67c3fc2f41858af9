package repository

import "context"

// Field data types the catalog understands. Only text-like types are
// offered for searching.
const (
	TypeText          = "text"
	TypeEmail         = "email"
	TypePhone         = "phone"
	TypeURL           = "url"
	TypePicklist      = "picklist"
	TypeMultiPicklist = "multipicklist"
	TypeReference     = "reference"
	TypeNumber        = "number"
	TypeDate          = "date"
	TypeBoolean       = "boolean"
)

// EntityType is one record category in the catalog.
type EntityType struct {
	Name             string
	Label            string
	Icon             string
	Searchable       bool
	DisplayNameField string
}

// EntityField is one field definition on an entity type.
// RefEntity is set for reference fields and names the related entity type.
type EntityField struct {
	EntityType string
	Name       string
	Label      string
	DataType   string
	RefEntity  string
}

// Repository defines catalog storage operations.
type Repository interface {
	ListEntities(ctx context.Context) ([]EntityType, error)
	// GetEntity returns a typed not-found error for unknown names.
	GetEntity(ctx context.Context, name string) (EntityType, error)
	// ListFields returns all field definitions for an entity type,
	// empty (not an error) when the type is unknown.
	ListFields(ctx context.Context, entityType string) ([]EntityField, error)
	// UpsertEntity and UpsertField maintain the catalog (seed loader, admin).
	UpsertEntity(ctx context.Context, entity EntityType) error
	UpsertField(ctx context.Context, field EntityField) error
}
