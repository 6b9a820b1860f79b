package collection

import "github.com/numaochi/medialib/internal/catalog/series"

// Collection is the storage-shaped record for a user-curated grouping of
// series.
type Collection struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`

	// Series holds the resolved member list in identifier order. Stored
	// identifiers that no longer resolve are absent.
	Series []*series.Series `json:"series,omitempty"`
}

// DTO is the wire-shaped counterpart of [Collection]: the member relation is
// reduced to raw identifiers.
type DTO struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	SeriesIDs []int64 `json:"seriesIds,omitempty"`
}
