package chapter

import "github.com/numaochi/medialib/internal/catalog/series"

// Chapter is the storage-shaped record for a single readable file.
type Chapter struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	FilePath string `json:"filePath"`
	FileType string `json:"fileType"` // PDF, EPUB, MOBI, etc. Free-form, not enforced.

	// Series is the resolved parent, nil when unset or when the stored
	// identifier no longer resolves.
	Series *series.Series `json:"series,omitempty"`
}

// DTO is the wire-shaped counterpart of [Chapter]: the parent relation is
// reduced to its raw identifier.
type DTO struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	FilePath string `json:"filePath"`
	FileType string `json:"fileType"`
	SeriesID *int64 `json:"seriesId,omitempty"`
}
