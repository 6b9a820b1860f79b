package series

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/numaochi/medialib/internal/platform/dberr"
	"github.com/numaochi/medialib/pkg/date"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const seriesColumns = `id, title, author, publication_date, description, cover_image, publisher, isbn`

func (repository *PostgresRepository) ListSeries(ctx context.Context) ([]*Series, error) {
	rows, err := repository.db.Query(ctx, `SELECT `+seriesColumns+` FROM series ORDER BY id`)
	if err != nil {
		return nil, dberr.Wrap(err, "list_series")
	}
	defer rows.Close()

	var out []*Series
	for rows.Next() {
		s, err := scanSeries(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_series")
		}
		out = append(out, s)
	}

	return out, rows.Err()
}

func (repository *PostgresRepository) GetSeries(ctx context.Context, id int64) (*Series, error) {
	row := repository.db.QueryRow(ctx, `SELECT `+seriesColumns+` FROM series WHERE id = $1`, id)

	s, err := scanSeries(row)
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, nil
		}
		return nil, dberr.Wrap(err, "get_series")
	}

	return s, nil
}

func (repository *PostgresRepository) ListSeriesByIDs(ctx context.Context, ids []int64) ([]*Series, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := repository.db.Query(ctx, `SELECT `+seriesColumns+` FROM series WHERE id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "list_series_by_ids")
	}
	defer rows.Close()

	var out []*Series
	for rows.Next() {
		s, err := scanSeries(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_series")
		}
		out = append(out, s)
	}

	return out, rows.Err()
}

func (repository *PostgresRepository) SaveSeries(ctx context.Context, s *Series) error {
	if s.ID == 0 {
		err := repository.db.QueryRow(ctx, `
			INSERT INTO series (title, author, publication_date, description, cover_image, publisher, isbn)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`, s.Title, s.Author, dateArg(s.PublicationDate), s.Description, s.CoverImage, s.Publisher, s.Isbn).Scan(&s.ID)
		return dberr.Wrap(err, "create_series")
	}

	// Upsert keyed on the caller-supplied identity.
	_, err := repository.db.Exec(ctx, `
		INSERT INTO series (id, title, author, publication_date, description, cover_image, publisher, isbn)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			author = EXCLUDED.author,
			publication_date = EXCLUDED.publication_date,
			description = EXCLUDED.description,
			cover_image = EXCLUDED.cover_image,
			publisher = EXCLUDED.publisher,
			isbn = EXCLUDED.isbn
	`, s.ID, s.Title, s.Author, dateArg(s.PublicationDate), s.Description, s.CoverImage, s.Publisher, s.Isbn)
	return dberr.Wrap(err, "save_series")
}

func (repository *PostgresRepository) DeleteSeries(ctx context.Context, id int64) error {
	// No RowsAffected check: deletion is idempotent by contract.
	_, err := repository.db.Exec(ctx, `DELETE FROM series WHERE id = $1`, id)
	return dberr.Wrap(err, "delete_series")
}

// rowScanner covers both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSeries(row rowScanner) (*Series, error) {
	s := &Series{}
	var published *time.Time

	if err := row.Scan(&s.ID, &s.Title, &s.Author, &published, &s.Description, &s.CoverImage, &s.Publisher, &s.Isbn); err != nil {
		return nil, err
	}

	if published != nil {
		s.PublicationDate = &date.Date{Time: *published}
	}
	return s, nil
}

// dateArg converts an optional Date into a DATE column argument.
func dateArg(d *date.Date) any {
	if d == nil {
		return nil
	}
	return d.Time
}
