package collection

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/numaochi/medialib/internal/catalog/series"
	"github.com/numaochi/medialib/internal/platform/dberr"
	"github.com/numaochi/medialib/pkg/date"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// collectionSeriesQuery resolves the membership for a set of collections.
// The inner join drops membership rows whose series was deleted.
const collectionSeriesQuery = `
	SELECT cs.collection_id, s.id, s.title, s.author, s.publication_date, s.description, s.cover_image, s.publisher, s.isbn
	FROM collection_series cs
	JOIN series s ON s.id = cs.series_id
	WHERE cs.collection_id = ANY($1)
	ORDER BY s.id
`

func (repository *PostgresRepository) ListCollections(ctx context.Context) ([]*Collection, error) {
	rows, err := repository.db.Query(ctx, `SELECT id, name FROM collections ORDER BY id`)
	if err != nil {
		return nil, dberr.Wrap(err, "list_collections")
	}
	defer rows.Close()

	var out []*Collection
	for rows.Next() {
		c := &Collection{}
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_collection")
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_collections")
	}

	if err := repository.attachSeries(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (repository *PostgresRepository) GetCollection(ctx context.Context, id int64) (*Collection, error) {
	c := &Collection{}
	err := repository.db.QueryRow(ctx, `SELECT id, name FROM collections WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, nil
		}
		return nil, dberr.Wrap(err, "get_collection")
	}

	if err := repository.attachSeries(ctx, []*Collection{c}); err != nil {
		return nil, err
	}
	return c, nil
}

func (repository *PostgresRepository) SaveCollection(ctx context.Context, c *Collection) error {
	tx, err := repository.db.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "save_collection")
	}
	defer tx.Rollback(ctx)

	if c.ID == 0 {
		err = tx.QueryRow(ctx, `
			INSERT INTO collections (name) VALUES ($1) RETURNING id
		`, c.Name).Scan(&c.ID)
		if err != nil {
			return dberr.Wrap(err, "create_collection")
		}
	} else {
		_, err = tx.Exec(ctx, `
			INSERT INTO collections (id, name) VALUES ($1, $2)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
		`, c.ID, c.Name)
		if err != nil {
			return dberr.Wrap(err, "save_collection")
		}
	}

	// The membership list is replaced wholesale.
	if _, err := tx.Exec(ctx, `DELETE FROM collection_series WHERE collection_id = $1`, c.ID); err != nil {
		return dberr.Wrap(err, "save_collection_series")
	}
	for _, s := range c.Series {
		if _, err := tx.Exec(ctx, `
			INSERT INTO collection_series (collection_id, series_id) VALUES ($1, $2)
		`, c.ID, s.ID); err != nil {
			return dberr.Wrap(err, "save_collection_series")
		}
	}

	return dberr.Wrap(tx.Commit(ctx), "save_collection")
}

func (repository *PostgresRepository) DeleteCollection(ctx context.Context, id int64) error {
	tx, err := repository.db.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "delete_collection")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM collection_series WHERE collection_id = $1`, id); err != nil {
		return dberr.Wrap(err, "delete_collection_series")
	}
	if _, err := tx.Exec(ctx, `DELETE FROM collections WHERE id = $1`, id); err != nil {
		return dberr.Wrap(err, "delete_collection")
	}

	return dberr.Wrap(tx.Commit(ctx), "delete_collection")
}

// attachSeries loads the membership for the given collections in one round
// trip and distributes the rows by owning collection.
func (repository *PostgresRepository) attachSeries(ctx context.Context, collections []*Collection) error {
	if len(collections) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(collections))
	byID := make(map[int64]*Collection, len(collections))
	for _, c := range collections {
		ids = append(ids, c.ID)
		byID[c.ID] = c
	}

	rows, err := repository.db.Query(ctx, collectionSeriesQuery, ids)
	if err != nil {
		return dberr.Wrap(err, "list_collection_series")
	}
	defer rows.Close()

	for rows.Next() {
		var collectionID int64
		var published *time.Time
		s := &series.Series{}
		err := rows.Scan(&collectionID, &s.ID, &s.Title, &s.Author, &published, &s.Description, &s.CoverImage, &s.Publisher, &s.Isbn)
		if err != nil {
			return dberr.Wrap(err, "scan_collection_series")
		}
		if published != nil {
			s.PublicationDate = &date.Date{Time: *published}
		}
		if c, ok := byID[collectionID]; ok {
			c.Series = append(c.Series, s)
		}
	}

	return dberr.Wrap(rows.Err(), "list_collection_series")
}
