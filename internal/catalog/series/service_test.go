package series_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numaochi/medialib/internal/catalog/series"
	"github.com/numaochi/medialib/pkg/date"
)

// fakeRepository is an in-memory Repository with sequential identities.
type fakeRepository struct {
	records map[int64]*series.Series
	nextID  int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{records: map[int64]*series.Series{}, nextID: 1}
}

func (f *fakeRepository) ListSeries(ctx context.Context) ([]*series.Series, error) {
	out := make([]*series.Series, 0, len(f.records))
	for id := int64(1); id < f.nextID; id++ {
		if s, ok := f.records[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeRepository) GetSeries(ctx context.Context, id int64) (*series.Series, error) {
	return f.records[id], nil
}

func (f *fakeRepository) ListSeriesByIDs(ctx context.Context, ids []int64) ([]*series.Series, error) {
	var out []*series.Series
	for id := int64(1); id < f.nextID; id++ {
		for _, want := range ids {
			if want == id {
				if s, ok := f.records[id]; ok {
					out = append(out, s)
				}
			}
		}
	}
	return out, nil
}

func (f *fakeRepository) SaveSeries(ctx context.Context, s *series.Series) error {
	if s.ID == 0 {
		s.ID = f.nextID
		f.nextID++
	} else if s.ID >= f.nextID {
		f.nextID = s.ID + 1
	}
	copied := *s
	f.records[s.ID] = &copied
	return nil
}

func (f *fakeRepository) DeleteSeries(ctx context.Context, id int64) error {
	delete(f.records, id)
	return nil
}

// fakeIndex records index traffic and can simulate a full outage.
type fakeIndex struct {
	indexed []int64
	removed []int64
	hits    []*series.Series
	down    bool
}

func (f *fakeIndex) IndexSeries(ctx context.Context, s *series.Series) {
	if f.down {
		return
	}
	f.indexed = append(f.indexed, s.ID)
}

func (f *fakeIndex) RemoveSeries(ctx context.Context, id int64) {
	f.removed = append(f.removed, id)
}

func (f *fakeIndex) SearchSeries(ctx context.Context, query string) []*series.Series {
	if f.down {
		return nil
	}
	return f.hits
}

func newTestService() (*series.Service, *fakeRepository, *fakeIndex) {
	repo := newFakeRepository()
	index := &fakeIndex{}
	return series.NewService(repo, index, slog.Default()), repo, index
}

/*
TestService_CreateAndGet verifies the create/get round trip, including the
store-assigned identity.
*/
func TestService_CreateAndGet(t *testing.T) {
	service, _, index := newTestService()
	ctx := context.Background()

	published, err := date.Parse("2020-05-01")
	require.NoError(t, err)

	created, err := service.CreateSeries(ctx, series.DTO{
		ID:              999, // ignored on create
		Title:           "Hikari",
		Author:          "A. Mori",
		PublicationDate: &published,
		Publisher:       "Numaochi Press",
		Isbn:            "978-4-00-000000-0",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, []int64{1}, index.indexed)

	got, err := service.GetSeries(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Hikari", got.Title)
	assert.Equal(t, "2020-05-01", got.PublicationDate.String())
}

/*
TestService_GetMissing verifies that an unknown identity yields a nil record
and no error.
*/
func TestService_GetMissing(t *testing.T) {
	service, _, _ := newTestService()

	got, err := service.GetSeries(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, got)
}

/*
TestService_UpdateUsesPathIdentity verifies that the path identity wins over
the body identity and that updates re-index the document.
*/
func TestService_UpdateUsesPathIdentity(t *testing.T) {
	service, repo, index := newTestService()
	ctx := context.Background()

	created, err := service.CreateSeries(ctx, series.DTO{Title: "Hikari"})
	require.NoError(t, err)

	updated, err := service.UpdateSeries(ctx, created.ID, series.DTO{ID: 555, Title: "Hikari (2nd ed.)"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Hikari (2nd ed.)", repo.records[created.ID].Title)
	assert.Equal(t, []int64{created.ID, created.ID}, index.indexed)
}

/*
TestService_UpdateMissingInserts verifies the upsert behavior: updating an
identity that does not exist silently inserts it.
*/
func TestService_UpdateMissingInserts(t *testing.T) {
	service, repo, _ := newTestService()

	updated, err := service.UpdateSeries(context.Background(), 7, series.DTO{Title: "Phantom"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), updated.ID)
	assert.Equal(t, "Phantom", repo.records[7].Title)
}

/*
TestService_DeleteIdempotent verifies that deleting an absent record succeeds
and still forwards the removal to the index.
*/
func TestService_DeleteIdempotent(t *testing.T) {
	service, _, index := newTestService()
	ctx := context.Background()

	require.NoError(t, service.DeleteSeries(ctx, 42))
	require.NoError(t, service.DeleteSeries(ctx, 42))

	assert.Equal(t, []int64{42, 42}, index.removed)
}

/*
TestService_IndexOutageDoesNotFailWrites verifies the best-effort contract:
a dead index never surfaces as an error from a store operation.
*/
func TestService_IndexOutageDoesNotFailWrites(t *testing.T) {
	service, repo, index := newTestService()
	index.down = true
	ctx := context.Background()

	created, err := service.CreateSeries(ctx, series.DTO{Title: "Hikari"})
	require.NoError(t, err)
	assert.NotNil(t, repo.records[created.ID])

	_, err = service.UpdateSeries(ctx, created.ID, series.DTO{Title: "Hikari v2"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteSeries(ctx, created.ID))
}

/*
TestService_SearchOutageReturnsEmpty verifies that a search failure comes back
as an empty, non-nil result.
*/
func TestService_SearchOutageReturnsEmpty(t *testing.T) {
	service, _, index := newTestService()
	index.down = true

	out := service.SearchSeries(context.Background(), "hikari")
	require.NotNil(t, out)
	assert.Empty(t, out)
}

/*
TestService_SearchMapsHits verifies that index hits are mapped to wire
records.
*/
func TestService_SearchMapsHits(t *testing.T) {
	service, _, index := newTestService()
	index.hits = []*series.Series{
		{ID: 3, Title: "Hikari", Author: "A. Mori"},
	}

	out := service.SearchSeries(context.Background(), "hikari")
	require.Len(t, out, 1)
	assert.Equal(t, int64(3), out[0].ID)
	assert.Equal(t, "Hikari", out[0].Title)
}

/*
TestService_ListEmptyIsNonNil guards the wire shape of an empty listing: []
rather than null.
*/
func TestService_ListEmptyIsNonNil(t *testing.T) {
	service, _, _ := newTestService()

	out, err := service.ListSeries(context.Background())
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Empty(t, out)
}
