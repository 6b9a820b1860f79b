package volume

import "context"

// Repository is the storage-access contract for Volume records.
//
// Lookups signal a missing row with a nil record and nil error. Reads resolve
// both relations: a stored series identifier that no longer matches a Series
// row yields a nil relation, and chapter identifiers that no longer resolve
// are absent from the chapter list. Neither case is an error.
type Repository interface {
	ListVolumes(ctx context.Context) ([]*Volume, error)
	GetVolume(ctx context.Context, id int64) (*Volume, error)
	// SaveVolume inserts when the record has no identity yet, and upserts
	// keyed on the identity otherwise. The chapter membership list is
	// replaced wholesale in the same transaction.
	SaveVolume(ctx context.Context, v *Volume) error
	// DeleteVolume is idempotent: deleting a missing identity is not an error.
	DeleteVolume(ctx context.Context, id int64) error
}
