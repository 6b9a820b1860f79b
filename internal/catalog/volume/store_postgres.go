package volume

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/numaochi/medialib/internal/catalog/chapter"
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

// volumeQuery resolves the weak series reference at read time: a dangling
// series_id joins to nothing and the relation comes back unset.
const volumeQuery = `
	SELECT v.id, v.title, v.author, v.publication_date, v.description, v.cover_image, v.publisher, v.isbn,
	       s.id, s.title, s.author, s.publication_date, s.description, s.cover_image, s.publisher, s.isbn
	FROM volumes v
	LEFT JOIN series s ON s.id = v.series_id
`

// volumeChapterQuery resolves the chapter membership for a set of volumes.
// The inner join drops membership rows whose chapter was deleted.
const volumeChapterQuery = `
	SELECT vc.volume_id, c.id, c.title, c.file_path, c.file_type
	FROM volume_chapters vc
	JOIN chapters c ON c.id = vc.chapter_id
	WHERE vc.volume_id = ANY($1)
	ORDER BY c.id
`

func (repository *PostgresRepository) ListVolumes(ctx context.Context) ([]*Volume, error) {
	rows, err := repository.db.Query(ctx, volumeQuery+` ORDER BY v.id`)
	if err != nil {
		return nil, dberr.Wrap(err, "list_volumes")
	}
	defer rows.Close()

	var out []*Volume
	for rows.Next() {
		v, err := scanVolume(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_volume")
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_volumes")
	}

	if err := repository.attachChapters(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (repository *PostgresRepository) GetVolume(ctx context.Context, id int64) (*Volume, error) {
	row := repository.db.QueryRow(ctx, volumeQuery+` WHERE v.id = $1`, id)

	v, err := scanVolume(row)
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, nil
		}
		return nil, dberr.Wrap(err, "get_volume")
	}

	if err := repository.attachChapters(ctx, []*Volume{v}); err != nil {
		return nil, err
	}
	return v, nil
}

func (repository *PostgresRepository) SaveVolume(ctx context.Context, v *Volume) error {
	var seriesID *int64
	if v.Series != nil {
		seriesID = &v.Series.ID
	}

	tx, err := repository.db.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "save_volume")
	}
	defer tx.Rollback(ctx)

	if v.ID == 0 {
		err = tx.QueryRow(ctx, `
			INSERT INTO volumes (title, author, publication_date, description, cover_image, publisher, isbn, series_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`, v.Title, v.Author, dateArg(v.PublicationDate), v.Description, v.CoverImage, v.Publisher, v.Isbn, seriesID).Scan(&v.ID)
		if err != nil {
			return dberr.Wrap(err, "create_volume")
		}
	} else {
		_, err = tx.Exec(ctx, `
			INSERT INTO volumes (id, title, author, publication_date, description, cover_image, publisher, isbn, series_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (id) DO UPDATE SET
				title = EXCLUDED.title,
				author = EXCLUDED.author,
				publication_date = EXCLUDED.publication_date,
				description = EXCLUDED.description,
				cover_image = EXCLUDED.cover_image,
				publisher = EXCLUDED.publisher,
				isbn = EXCLUDED.isbn,
				series_id = EXCLUDED.series_id
		`, v.ID, v.Title, v.Author, dateArg(v.PublicationDate), v.Description, v.CoverImage, v.Publisher, v.Isbn, seriesID)
		if err != nil {
			return dberr.Wrap(err, "save_volume")
		}
	}

	// The membership list is replaced wholesale.
	if _, err := tx.Exec(ctx, `DELETE FROM volume_chapters WHERE volume_id = $1`, v.ID); err != nil {
		return dberr.Wrap(err, "save_volume_chapters")
	}
	for _, c := range v.Chapters {
		if _, err := tx.Exec(ctx, `
			INSERT INTO volume_chapters (volume_id, chapter_id) VALUES ($1, $2)
		`, v.ID, c.ID); err != nil {
			return dberr.Wrap(err, "save_volume_chapters")
		}
	}

	return dberr.Wrap(tx.Commit(ctx), "save_volume")
}

func (repository *PostgresRepository) DeleteVolume(ctx context.Context, id int64) error {
	tx, err := repository.db.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "delete_volume")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM volume_chapters WHERE volume_id = $1`, id); err != nil {
		return dberr.Wrap(err, "delete_volume_chapters")
	}
	if _, err := tx.Exec(ctx, `DELETE FROM volumes WHERE id = $1`, id); err != nil {
		return dberr.Wrap(err, "delete_volume")
	}

	return dberr.Wrap(tx.Commit(ctx), "delete_volume")
}

// attachChapters loads the chapter membership for the given volumes in one
// round trip and distributes the rows by owning volume.
func (repository *PostgresRepository) attachChapters(ctx context.Context, volumes []*Volume) error {
	if len(volumes) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(volumes))
	byID := make(map[int64]*Volume, len(volumes))
	for _, v := range volumes {
		ids = append(ids, v.ID)
		byID[v.ID] = v
	}

	rows, err := repository.db.Query(ctx, volumeChapterQuery, ids)
	if err != nil {
		return dberr.Wrap(err, "list_volume_chapters")
	}
	defer rows.Close()

	for rows.Next() {
		var volumeID int64
		c := &chapter.Chapter{}
		if err := rows.Scan(&volumeID, &c.ID, &c.Title, &c.FilePath, &c.FileType); err != nil {
			return dberr.Wrap(err, "scan_volume_chapter")
		}
		if v, ok := byID[volumeID]; ok {
			v.Chapters = append(v.Chapters, c)
		}
	}

	return dberr.Wrap(rows.Err(), "list_volume_chapters")
}

func scanVolume(row pgx.Row) (*Volume, error) {
	v := &Volume{}

	var (
		published       *time.Time
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
		&v.ID, &v.Title, &v.Author, &published, &v.Description, &v.CoverImage, &v.Publisher, &v.Isbn,
		&seriesID, &seriesTitle, &seriesAuthor, &seriesPublished, &seriesDesc, &seriesCover, &seriesPublisher, &seriesIsbn,
	)
	if err != nil {
		return nil, err
	}

	if published != nil {
		v.PublicationDate = &date.Date{Time: *published}
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
		v.Series = parent
	}

	return v, nil
}

// dateArg converts an optional Date into a DATE column argument.
func dateArg(d *date.Date) any {
	if d == nil {
		return nil
	}
	return d.Time
}
