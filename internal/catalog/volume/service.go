package volume

import (
	"context"
	"log/slog"

	"github.com/numaochi/medialib/internal/catalog/chapter"
	"github.com/numaochi/medialib/internal/catalog/series"
	"github.com/numaochi/medialib/pkg/slice"
)

// SeriesResolver looks up the parent Series while mapping a wire record to
// its storage shape. A missing identifier resolves to (nil, nil).
type SeriesResolver interface {
	GetSeries(ctx context.Context, id int64) (*series.Series, error)
}

// ChapterResolver batch-resolves chapter identifiers. Identifiers with no
// matching record are absent from the result.
type ChapterResolver interface {
	ListChaptersByIDs(ctx context.Context, ids []int64) ([]*chapter.Chapter, error)
}

type Service struct {
	repo        Repository
	seriesRepo  SeriesResolver
	chapterRepo ChapterResolver
	logger      *slog.Logger
}

func NewService(repo Repository, seriesRepo SeriesResolver, chapterRepo ChapterResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		seriesRepo:  seriesRepo,
		chapterRepo: chapterRepo,
		logger:      logger,
	}
}

func (service *Service) ListVolumes(ctx context.Context) ([]DTO, error) {
	entities, err := service.repo.ListVolumes(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]DTO, 0, len(entities))
	for _, entity := range entities {
		out = append(out, toDTO(entity))
	}
	return out, nil
}

func (service *Service) GetVolume(ctx context.Context, id int64) (*DTO, error) {
	entity, err := service.repo.GetVolume(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, nil
	}

	dto := toDTO(entity)
	return &dto, nil
}

func (service *Service) CreateVolume(ctx context.Context, input DTO) (DTO, error) {
	entity, err := service.toEntity(ctx, input)
	if err != nil {
		return DTO{}, err
	}
	entity.ID = 0 // the store assigns the identity

	if err := service.repo.SaveVolume(ctx, entity); err != nil {
		return DTO{}, err
	}

	service.logger.Info("volume_created", slog.Int64("volume_id", entity.ID))
	return toDTO(entity), nil
}

func (service *Service) UpdateVolume(ctx context.Context, id int64, input DTO) (DTO, error) {
	entity, err := service.toEntity(ctx, input)
	if err != nil {
		return DTO{}, err
	}
	entity.ID = id // the path identity wins over any identity in the body

	if err := service.repo.SaveVolume(ctx, entity); err != nil {
		return DTO{}, err
	}

	service.logger.Info("volume_updated", slog.Int64("volume_id", entity.ID))
	return toDTO(entity), nil
}

func (service *Service) DeleteVolume(ctx context.Context, id int64) error {
	if err := service.repo.DeleteVolume(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("volume_deleted", slog.Int64("volume_id", id))
	return nil
}

// toDTO converts a storage record into its wire shape; resolved relations
// collapse to their identifiers.
func toDTO(v *Volume) DTO {
	dto := DTO{
		ID:              v.ID,
		Title:           v.Title,
		Author:          v.Author,
		PublicationDate: v.PublicationDate,
		Description:     v.Description,
		CoverImage:      v.CoverImage,
		Publisher:       v.Publisher,
		Isbn:            v.Isbn,
	}
	if v.Series != nil {
		dto.SeriesID = &v.Series.ID
	}
	dto.ChapterIDs = slice.Map(v.Chapters, func(c *chapter.Chapter) int64 { return c.ID })
	return dto
}

// toEntity converts a wire record into its storage shape, resolving relation
// identifiers against their owning stores. Identifiers that do not resolve
// are silently dropped.
func (service *Service) toEntity(ctx context.Context, d DTO) (*Volume, error) {
	entity := &Volume{
		ID:              d.ID,
		Title:           d.Title,
		Author:          d.Author,
		PublicationDate: d.PublicationDate,
		Description:     d.Description,
		CoverImage:      d.CoverImage,
		Publisher:       d.Publisher,
		Isbn:            d.Isbn,
	}

	if d.SeriesID != nil {
		parent, err := service.seriesRepo.GetSeries(ctx, *d.SeriesID)
		if err != nil {
			return nil, err
		}
		entity.Series = parent
	}

	if len(d.ChapterIDs) > 0 {
		chapters, err := service.chapterRepo.ListChaptersByIDs(ctx, d.ChapterIDs)
		if err != nil {
			return nil, err
		}
		entity.Chapters = chapters
	}

	return entity, nil
}
