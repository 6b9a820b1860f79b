package collection_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numaochi/medialib/internal/catalog/collection"
	"github.com/numaochi/medialib/internal/catalog/series"
)

// fakeRepository is an in-memory Repository with sequential identities.
type fakeRepository struct {
	records map[int64]*collection.Collection
	nextID  int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{records: map[int64]*collection.Collection{}, nextID: 1}
}

func (f *fakeRepository) ListCollections(ctx context.Context) ([]*collection.Collection, error) {
	var out []*collection.Collection
	for id := int64(1); id < f.nextID; id++ {
		if c, ok := f.records[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeRepository) GetCollection(ctx context.Context, id int64) (*collection.Collection, error) {
	return f.records[id], nil
}

func (f *fakeRepository) SaveCollection(ctx context.Context, c *collection.Collection) error {
	if c.ID == 0 {
		c.ID = f.nextID
		f.nextID++
	} else if c.ID >= f.nextID {
		f.nextID = c.ID + 1
	}
	copied := *c
	f.records[c.ID] = &copied
	return nil
}

func (f *fakeRepository) DeleteCollection(ctx context.Context, id int64) error {
	delete(f.records, id)
	return nil
}

// fakeSeriesResolver batch-resolves from a fixed set, preserving the
// identifier order of its known records.
type fakeSeriesResolver struct {
	known map[int64]*series.Series
}

func (f *fakeSeriesResolver) ListSeriesByIDs(ctx context.Context, ids []int64) ([]*series.Series, error) {
	var out []*series.Series
	for _, id := range ids {
		if s, ok := f.known[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func newTestService() (*collection.Service, *fakeRepository, *fakeSeriesResolver) {
	repo := newFakeRepository()
	resolver := &fakeSeriesResolver{known: map[int64]*series.Series{}}
	return collection.NewService(repo, resolver, slog.Default()), repo, resolver
}

/*
TestService_CreateResolvesMembers verifies that known series identifiers
resolve into the stored membership.
*/
func TestService_CreateResolvesMembers(t *testing.T) {
	service, repo, resolver := newTestService()
	resolver.known[1] = &series.Series{ID: 1, Title: "Hikari"}
	resolver.known[2] = &series.Series{ID: 2, Title: "Kage"}

	created, err := service.CreateCollection(context.Background(), collection.DTO{
		Name:      "Favorites",
		SeriesIDs: []int64{1, 2},
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2}, created.SeriesIDs)
	assert.Len(t, repo.records[created.ID].Series, 2)
}

/*
TestService_CreateDropsUnresolvedMembers verifies the partial-resolution
contract for the membership list.
*/
func TestService_CreateDropsUnresolvedMembers(t *testing.T) {
	service, _, resolver := newTestService()
	resolver.known[1] = &series.Series{ID: 1, Title: "Hikari"}

	created, err := service.CreateCollection(context.Background(), collection.DTO{
		Name:      "Sparse",
		SeriesIDs: []int64{1, 7, 9},
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{1}, created.SeriesIDs)
}

/*
TestService_GetMissing verifies that an unknown identity yields a nil record
and no error.
*/
func TestService_GetMissing(t *testing.T) {
	service, _, _ := newTestService()

	got, err := service.GetCollection(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, got)
}

/*
TestService_UpdateReplacesMembership verifies that the path identity wins and
the stored membership list is replaced rather than merged.
*/
func TestService_UpdateReplacesMembership(t *testing.T) {
	service, repo, resolver := newTestService()
	ctx := context.Background()
	resolver.known[1] = &series.Series{ID: 1, Title: "Hikari"}
	resolver.known[2] = &series.Series{ID: 2, Title: "Kage"}

	created, err := service.CreateCollection(ctx, collection.DTO{Name: "Favorites", SeriesIDs: []int64{1}})
	require.NoError(t, err)

	updated, err := service.UpdateCollection(ctx, created.ID, collection.DTO{
		ID:        666,
		Name:      "Favorites v2",
		SeriesIDs: []int64{2},
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, []int64{2}, updated.SeriesIDs)
	assert.Equal(t, "Favorites v2", repo.records[created.ID].Name)
}

/*
TestService_DeleteIdempotent verifies that deleting an absent record succeeds.
*/
func TestService_DeleteIdempotent(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, service.DeleteCollection(ctx, 42))
	require.NoError(t, service.DeleteCollection(ctx, 42))
}
