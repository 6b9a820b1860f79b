package collection

import (
	"context"
	"log/slog"

	"github.com/numaochi/medialib/internal/catalog/series"
	"github.com/numaochi/medialib/pkg/slice"
)

// SeriesResolver batch-resolves series identifiers while mapping a wire
// record to its storage shape. Identifiers with no matching record are
// absent from the result.
type SeriesResolver interface {
	ListSeriesByIDs(ctx context.Context, ids []int64) ([]*series.Series, error)
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

func (service *Service) ListCollections(ctx context.Context) ([]DTO, error) {
	entities, err := service.repo.ListCollections(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]DTO, 0, len(entities))
	for _, entity := range entities {
		out = append(out, toDTO(entity))
	}
	return out, nil
}

func (service *Service) GetCollection(ctx context.Context, id int64) (*DTO, error) {
	entity, err := service.repo.GetCollection(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, nil
	}

	dto := toDTO(entity)
	return &dto, nil
}

func (service *Service) CreateCollection(ctx context.Context, input DTO) (DTO, error) {
	entity, err := service.toEntity(ctx, input)
	if err != nil {
		return DTO{}, err
	}
	entity.ID = 0 // the store assigns the identity

	if err := service.repo.SaveCollection(ctx, entity); err != nil {
		return DTO{}, err
	}

	service.logger.Info("collection_created", slog.Int64("collection_id", entity.ID))
	return toDTO(entity), nil
}

func (service *Service) UpdateCollection(ctx context.Context, id int64, input DTO) (DTO, error) {
	entity, err := service.toEntity(ctx, input)
	if err != nil {
		return DTO{}, err
	}
	entity.ID = id // the path identity wins over any identity in the body

	if err := service.repo.SaveCollection(ctx, entity); err != nil {
		return DTO{}, err
	}

	service.logger.Info("collection_updated", slog.Int64("collection_id", entity.ID))
	return toDTO(entity), nil
}

func (service *Service) DeleteCollection(ctx context.Context, id int64) error {
	if err := service.repo.DeleteCollection(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("collection_deleted", slog.Int64("collection_id", id))
	return nil
}

// toDTO converts a storage record into its wire shape; resolved members
// collapse to their identifiers.
func toDTO(c *Collection) DTO {
	return DTO{
		ID:        c.ID,
		Name:      c.Name,
		SeriesIDs: slice.Map(c.Series, func(s *series.Series) int64 { return s.ID }),
	}
}

// toEntity converts a wire record into its storage shape, resolving member
// identifiers against the series store. Identifiers that do not resolve are
// silently dropped.
func (service *Service) toEntity(ctx context.Context, d DTO) (*Collection, error) {
	entity := &Collection{
		ID:   d.ID,
		Name: d.Name,
	}

	if len(d.SeriesIDs) > 0 {
		members, err := service.seriesRepo.ListSeriesByIDs(ctx, d.SeriesIDs)
		if err != nil {
			return nil, err
		}
		entity.Series = members
	}

	return entity, nil
}
