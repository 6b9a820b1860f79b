package chapter

import (
	"context"
	"log/slog"

	"github.com/numaochi/medialib/internal/catalog/series"
)

// SeriesResolver looks up the parent Series while mapping a wire record to
// its storage shape. A missing identifier resolves to (nil, nil).
type SeriesResolver interface {
	GetSeries(ctx context.Context, id int64) (*series.Series, error)
}

type Service struct {
	repo       Repository
	seriesRepo SeriesResolver
	logger     *slog.Logger
}

func NewService(repo Repository, seriesRepo SeriesResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		seriesRepo: seriesRepo,
		logger:     logger,
	}
}

func (service *Service) ListChapters(ctx context.Context) ([]DTO, error) {
	entities, err := service.repo.ListChapters(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]DTO, 0, len(entities))
	for _, entity := range entities {
		out = append(out, toDTO(entity))
	}
	return out, nil
}

func (service *Service) GetChapter(ctx context.Context, id int64) (*DTO, error) {
	entity, err := service.repo.GetChapter(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, nil
	}

	dto := toDTO(entity)
	return &dto, nil
}

func (service *Service) CreateChapter(ctx context.Context, input DTO) (DTO, error) {
	entity, err := service.toEntity(ctx, input)
	if err != nil {
		return DTO{}, err
	}
	entity.ID = 0 // the store assigns the identity

	if err := service.repo.SaveChapter(ctx, entity); err != nil {
		return DTO{}, err
	}

	service.logger.Info("chapter_created", slog.Int64("chapter_id", entity.ID))
	return toDTO(entity), nil
}

func (service *Service) UpdateChapter(ctx context.Context, id int64, input DTO) (DTO, error) {
	entity, err := service.toEntity(ctx, input)
	if err != nil {
		return DTO{}, err
	}
	entity.ID = id // the path identity wins over any identity in the body

	if err := service.repo.SaveChapter(ctx, entity); err != nil {
		return DTO{}, err
	}

	service.logger.Info("chapter_updated", slog.Int64("chapter_id", entity.ID))
	return toDTO(entity), nil
}

func (service *Service) DeleteChapter(ctx context.Context, id int64) error {
	if err := service.repo.DeleteChapter(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("chapter_deleted", slog.Int64("chapter_id", id))
	return nil
}

// toDTO converts a storage record into its wire shape; the resolved parent
// collapses to its identifier.
func toDTO(c *Chapter) DTO {
	dto := DTO{
		ID:       c.ID,
		Title:    c.Title,
		FilePath: c.FilePath,
		FileType: c.FileType,
	}
	if c.Series != nil {
		dto.SeriesID = &c.Series.ID
	}
	return dto
}

// toEntity converts a wire record into its storage shape, resolving the
// parent identifier against the store. An identifier that does not resolve
// is silently dropped.
func (service *Service) toEntity(ctx context.Context, d DTO) (*Chapter, error) {
	entity := &Chapter{
		ID:       d.ID,
		Title:    d.Title,
		FilePath: d.FilePath,
		FileType: d.FileType,
	}

	if d.SeriesID != nil {
		parent, err := service.seriesRepo.GetSeries(ctx, *d.SeriesID)
		if err != nil {
			return nil, err
		}
		entity.Series = parent
	}

	return entity, nil
}
