package collection

import "context"

// Repository is the storage-access contract for Collection records.
//
// Lookups signal a missing row with a nil record and nil error. Reads resolve
// the member list: series identifiers that no longer resolve are absent from
// the result, not an error.
type Repository interface {
	ListCollections(ctx context.Context) ([]*Collection, error)
	GetCollection(ctx context.Context, id int64) (*Collection, error)
	// SaveCollection inserts when the record has no identity yet, and upserts
	// keyed on the identity otherwise. The membership list is replaced
	// wholesale in the same transaction.
	SaveCollection(ctx context.Context, c *Collection) error
	// DeleteCollection is idempotent: deleting a missing identity is not an
	// error.
	DeleteCollection(ctx context.Context, id int64) error
}
