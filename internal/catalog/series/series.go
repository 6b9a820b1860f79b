package series

import "github.com/numaochi/medialib/pkg/date"

// Series is the storage-shaped record for a published series.
//
// It carries no relations of its own; Volumes, Chapters, and Collections
// reference a Series by identifier. The JSON tags double as the document
// shape submitted to the search index.
type Series struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	PublicationDate *date.Date `json:"publicationDate"`
	Description     string     `json:"description"`
	CoverImage      string     `json:"coverImage"`
	Publisher       string     `json:"publisher"`
	Isbn            string     `json:"isbn"`
}

// DTO is the wire-shaped counterpart of [Series].
type DTO struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	PublicationDate *date.Date `json:"publicationDate"`
	Description     string     `json:"description"`
	CoverImage      string     `json:"coverImage"`
	Publisher       string     `json:"publisher"`
	Isbn            string     `json:"isbn"`
}
