package volume_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numaochi/medialib/internal/catalog/chapter"
	"github.com/numaochi/medialib/internal/catalog/series"
	"github.com/numaochi/medialib/internal/catalog/volume"
	"github.com/numaochi/medialib/pkg/pointer"
)

// fakeRepository is an in-memory Repository with sequential identities.
type fakeRepository struct {
	records map[int64]*volume.Volume
	nextID  int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{records: map[int64]*volume.Volume{}, nextID: 1}
}

func (f *fakeRepository) ListVolumes(ctx context.Context) ([]*volume.Volume, error) {
	var out []*volume.Volume
	for id := int64(1); id < f.nextID; id++ {
		if v, ok := f.records[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeRepository) GetVolume(ctx context.Context, id int64) (*volume.Volume, error) {
	return f.records[id], nil
}

func (f *fakeRepository) SaveVolume(ctx context.Context, v *volume.Volume) error {
	if v.ID == 0 {
		v.ID = f.nextID
		f.nextID++
	} else if v.ID >= f.nextID {
		f.nextID = v.ID + 1
	}
	copied := *v
	f.records[v.ID] = &copied
	return nil
}

func (f *fakeRepository) DeleteVolume(ctx context.Context, id int64) error {
	delete(f.records, id)
	return nil
}

// fakeSeriesResolver resolves series identifiers from a fixed set.
type fakeSeriesResolver struct {
	known map[int64]*series.Series
}

func (f *fakeSeriesResolver) GetSeries(ctx context.Context, id int64) (*series.Series, error) {
	return f.known[id], nil
}

// fakeChapterResolver batch-resolves from a fixed set, preserving the
// identifier order of its known records.
type fakeChapterResolver struct {
	known map[int64]*chapter.Chapter
}

func (f *fakeChapterResolver) ListChaptersByIDs(ctx context.Context, ids []int64) ([]*chapter.Chapter, error) {
	var out []*chapter.Chapter
	for _, id := range ids {
		if c, ok := f.known[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func newTestService() (*volume.Service, *fakeRepository, *fakeSeriesResolver, *fakeChapterResolver) {
	repo := newFakeRepository()
	seriesResolver := &fakeSeriesResolver{known: map[int64]*series.Series{}}
	chapterResolver := &fakeChapterResolver{known: map[int64]*chapter.Chapter{}}
	service := volume.NewService(repo, seriesResolver, chapterResolver, slog.Default())
	return service, repo, seriesResolver, chapterResolver
}

/*
TestService_CreateResolvesRelations verifies that both the parent series and
the chapter list resolve into the stored record.
*/
func TestService_CreateResolvesRelations(t *testing.T) {
	service, repo, seriesResolver, chapterResolver := newTestService()
	seriesResolver.known[5] = &series.Series{ID: 5, Title: "Hikari"}
	chapterResolver.known[1] = &chapter.Chapter{ID: 1, Title: "Chapter 1"}
	chapterResolver.known[2] = &chapter.Chapter{ID: 2, Title: "Chapter 2"}

	created, err := service.CreateVolume(context.Background(), volume.DTO{
		Title:      "Hikari Vol. 1",
		SeriesID:   pointer.To(int64(5)),
		ChapterIDs: []int64{1, 2},
	})
	require.NoError(t, err)

	require.NotNil(t, created.SeriesID)
	assert.Equal(t, int64(5), *created.SeriesID)
	assert.Equal(t, []int64{1, 2}, created.ChapterIDs)
	require.NotNil(t, repo.records[created.ID].Series)
	assert.Len(t, repo.records[created.ID].Chapters, 2)
}

/*
TestService_CreateDropsUnresolvedChapters verifies the partial-resolution
contract: chapter identifiers that do not resolve vanish from the list with
no error.
*/
func TestService_CreateDropsUnresolvedChapters(t *testing.T) {
	service, _, _, chapterResolver := newTestService()
	chapterResolver.known[1] = &chapter.Chapter{ID: 1, Title: "Chapter 1"}
	chapterResolver.known[3] = &chapter.Chapter{ID: 3, Title: "Chapter 3"}

	created, err := service.CreateVolume(context.Background(), volume.DTO{
		Title:      "Sparse",
		ChapterIDs: []int64{1, 2, 3},
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 3}, created.ChapterIDs)
}

/*
TestService_CreateDropsUnknownSeries verifies that an unresolvable seriesId
is dropped silently.
*/
func TestService_CreateDropsUnknownSeries(t *testing.T) {
	service, repo, _, _ := newTestService()

	created, err := service.CreateVolume(context.Background(), volume.DTO{
		Title:    "Orphan",
		SeriesID: pointer.To(int64(99)),
	})
	require.NoError(t, err)

	assert.Nil(t, created.SeriesID)
	assert.Nil(t, repo.records[created.ID].Series)
}

/*
TestService_GetMissing verifies that an unknown identity yields a nil record
and no error.
*/
func TestService_GetMissing(t *testing.T) {
	service, _, _, _ := newTestService()

	got, err := service.GetVolume(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, got)
}

/*
TestService_UpdateUsesPathIdentity verifies that the path identity wins and
that the membership list is replaced.
*/
func TestService_UpdateUsesPathIdentity(t *testing.T) {
	service, repo, _, chapterResolver := newTestService()
	ctx := context.Background()
	chapterResolver.known[1] = &chapter.Chapter{ID: 1, Title: "Chapter 1"}
	chapterResolver.known[2] = &chapter.Chapter{ID: 2, Title: "Chapter 2"}

	created, err := service.CreateVolume(ctx, volume.DTO{Title: "Vol. 1", ChapterIDs: []int64{1}})
	require.NoError(t, err)

	updated, err := service.UpdateVolume(ctx, created.ID, volume.DTO{
		ID:         888,
		Title:      "Vol. 1 (reprint)",
		ChapterIDs: []int64{2},
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, []int64{2}, updated.ChapterIDs)
	assert.Equal(t, "Vol. 1 (reprint)", repo.records[created.ID].Title)
}

/*
TestService_DeleteIdempotent verifies that deleting an absent record succeeds.
*/
func TestService_DeleteIdempotent(t *testing.T) {
	service, _, _, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, service.DeleteVolume(ctx, 42))
	require.NoError(t, service.DeleteVolume(ctx, 42))
}
