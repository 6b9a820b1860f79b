package chapter

import "context"

// Repository is the storage-access contract for Chapter records.
//
// Lookups signal a missing row with a nil record and nil error. Reads resolve
// the parent Series: a stored identifier that no longer matches a Series row
// yields a nil relation, not an error.
type Repository interface {
	ListChapters(ctx context.Context) ([]*Chapter, error)
	GetChapter(ctx context.Context, id int64) (*Chapter, error)
	// ListChaptersByIDs returns the records whose identifiers exist, in store
	// order; identifiers with no matching record are simply absent from the
	// result.
	ListChaptersByIDs(ctx context.Context, ids []int64) ([]*Chapter, error)
	// SaveChapter inserts when the record has no identity yet, and upserts
	// keyed on the identity otherwise.
	SaveChapter(ctx context.Context, c *Chapter) error
	// DeleteChapter is idempotent: deleting a missing identity is not an error.
	DeleteChapter(ctx context.Context, id int64) error
}
