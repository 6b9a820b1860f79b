package volume

import (
	"github.com/numaochi/medialib/internal/catalog/chapter"
	"github.com/numaochi/medialib/internal/catalog/series"
	"github.com/numaochi/medialib/pkg/date"
)

// Volume is the storage-shaped record for a bound collection of chapters,
// typically one physical release of a series.
type Volume struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	PublicationDate *date.Date `json:"publicationDate"`
	Description     string     `json:"description"`
	CoverImage      string     `json:"coverImage"`
	Publisher       string     `json:"publisher"`
	Isbn            string     `json:"isbn"`

	// Series is the resolved parent, nil when unset or when the stored
	// identifier no longer resolves.
	Series *series.Series `json:"series,omitempty"`
	// Chapters holds the resolved chapter list in identifier order. Stored
	// identifiers that no longer resolve are absent.
	Chapters []*chapter.Chapter `json:"chapters,omitempty"`
}

// DTO is the wire-shaped counterpart of [Volume]: relations are reduced to
// their raw identifiers.
type DTO struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	PublicationDate *date.Date `json:"publicationDate"`
	Description     string     `json:"description"`
	CoverImage      string     `json:"coverImage"`
	Publisher       string     `json:"publisher"`
	Isbn            string     `json:"isbn"`
	SeriesID        *int64     `json:"seriesId,omitempty"`
	ChapterIDs      []int64    `json:"chapterIds,omitempty"`
}
