package chapter

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/numaochi/medialib/internal/catalog/series"
	"github.com/numaochi/medialib/internal/platform/dberr"
	"github.com/numaochi/medialib/pkg/date"
	"github.com/numaochi/medialib/pkg/pointer"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// chapterQuery resolves the weak series reference at read time: a dangling
// series_id (the Series row was deleted) joins to nothing and the relation
// comes back unset.
const chapterQuery = `
	SELECT c.id, c.title, c.file_path, c.file_type,
	       s.id, s.title, s.author, s.publication_date, s.description, s.cover_image, s.publisher, s.isbn
	FROM chapters c
	LEFT JOIN series s ON s.id = c.series_id
`

func (repository *PostgresRepository) ListChapters(ctx context.Context) ([]*Chapter, error) {
	rows, err := repository.db.Query(ctx, chapterQuery+` ORDER BY c.id`)
	if err != nil {
		return nil, dberr.Wrap(err, "list_chapters")
	}
	defer rows.Close()

	var out []*Chapter
	for rows.Next() {
		c, err := scanChapter(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_chapter")
		}
		out = append(out, c)
	}

	return out, rows.Err()
}

func (repository *PostgresRepository) GetChapter(ctx context.Context, id int64) (*Chapter, error) {
	row := repository.db.QueryRow(ctx, chapterQuery+` WHERE c.id = $1`, id)

	c, err := scanChapter(row)
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, nil
		}
		return nil, dberr.Wrap(err, "get_chapter")
	}

	return c, nil
}

func (repository *PostgresRepository) ListChaptersByIDs(ctx context.Context, ids []int64) ([]*Chapter, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := repository.db.Query(ctx, chapterQuery+` WHERE c.id = ANY($1) ORDER BY c.id`, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "list_chapters_by_ids")
	}
	defer rows.Close()

	var out []*Chapter
	for rows.Next() {
		c, err := scanChapter(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_chapter")
		}
		out = append(out, c)
	}

	return out, rows.Err()
}

func (repository *PostgresRepository) SaveChapter(ctx context.Context, c *Chapter) error {
	var seriesID *int64
	if c.Series != nil {
		seriesID = &c.Series.ID
	}

	if c.ID == 0 {
		err := repository.db.QueryRow(ctx, `
			INSERT INTO chapters (title, file_path, file_type, series_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, c.Title, c.FilePath, c.FileType, seriesID).Scan(&c.ID)
		return dberr.Wrap(err, "create_chapter")
	}

	_, err := repository.db.Exec(ctx, `
		INSERT INTO chapters (id, title, file_path, file_type, series_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			file_path = EXCLUDED.file_path,
			file_type = EXCLUDED.file_type,
			series_id = EXCLUDED.series_id
	`, c.ID, c.Title, c.FilePath, c.FileType, seriesID)
	return dberr.Wrap(err, "save_chapter")
}

func (repository *PostgresRepository) DeleteChapter(ctx context.Context, id int64) error {
	_, err := repository.db.Exec(ctx, `DELETE FROM chapters WHERE id = $1`, id)
	return dberr.Wrap(err, "delete_chapter")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChapter(row rowScanner) (*Chapter, error) {
	c := &Chapter{}

	var (
		seriesID        *int64
		seriesTitle     *string
		seriesAuthor    *string
		seriesPublished *time.Time
		seriesDesc      *string
		seriesCover     *string
		seriesPublisher *string
		seriesIsbn      *string
	)

	err := row.Scan(
		&c.ID, &c.Title, &c.FilePath, &c.FileType,
		&seriesID, &seriesTitle, &seriesAuthor, &seriesPublished, &seriesDesc, &seriesCover, &seriesPublisher, &seriesIsbn,
	)
	if err != nil {
		return nil, err
	}

	if seriesID != nil {
		parent := &series.Series{
			ID:          *seriesID,
			Title:       pointer.Val(seriesTitle),
			Author:      pointer.Val(seriesAuthor),
			Description: pointer.Val(seriesDesc),
			CoverImage:  pointer.Val(seriesCover),
			Publisher:   pointer.Val(seriesPublisher),
			Isbn:        pointer.Val(seriesIsbn),
		}
		if seriesPublished != nil {
			parent.PublicationDate = &date.Date{Time: *seriesPublished}
		}
		c.Series = parent
	}

	return c, nil
}
