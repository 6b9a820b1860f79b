package series

import "context"

// Repository is the storage-access contract for Series records.
//
// Lookups signal a missing row with a nil record and nil error; only genuine
// storage failures produce an error value.
type Repository interface {
	ListSeries(ctx context.Context) ([]*Series, error)
	GetSeries(ctx context.Context, id int64) (*Series, error)
	ListSeriesByIDs(ctx context.Context, ids []int64) ([]*Series, error)
	// SaveSeries inserts when the record has no identity yet, and upserts
	// keyed on the identity otherwise (an update of a missing row silently
	// becomes an insert).
	SaveSeries(ctx context.Context, s *Series) error
	// DeleteSeries is idempotent: deleting a missing identity is not an error.
	DeleteSeries(ctx context.Context, id int64) error
}
