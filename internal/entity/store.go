// Package entity is the persistence collaborator for extracted records.
// The backend is keyed by entity name and assigns identity on create.
package entity

import "context"

// Entity names understood by the store.
const (
	Audience = "Audience"
	Persona  = "Persona"
	Product  = "Product"
)

// Store is the create/update/list/filter surface the chat core persists
// through. Create returns the created row with its assigned id.
type Store interface {
	Create(ctx context.Context, entityName string, record any) (map[string]any, error)
	Update(ctx context.Context, entityName, id string, patch any) (map[string]any, error)
	List(ctx context.Context, entityName string, out any) error
	Filter(ctx context.Context, entityName, column, value string, out any) error
}
