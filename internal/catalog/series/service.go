package series

import (
	"context"
	"log/slog"
)

// Index is the search-index contract consumed by the Series service.
//
// The never-propagate behavior is part of this contract: implementations
// absorb every failure (logging it) instead of returning an error, and
// SearchSeries yields an empty result on any failure, so callers cannot tell
// "no matches" apart from an index outage. The relational store stays the
// source of truth either way.
type Index interface {
	IndexSeries(ctx context.Context, s *Series)
	RemoveSeries(ctx context.Context, id int64)
	SearchSeries(ctx context.Context, query string) []*Series
}

type Service struct {
	repo   Repository
	index  Index
	logger *slog.Logger
}

func NewService(repo Repository, index Index, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		index:  index,
		logger: logger,
	}
}

func (service *Service) ListSeries(ctx context.Context) ([]DTO, error) {
	entities, err := service.repo.ListSeries(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]DTO, 0, len(entities))
	for _, entity := range entities {
		out = append(out, toDTO(entity))
	}
	return out, nil
}

func (service *Service) GetSeries(ctx context.Context, id int64) (*DTO, error) {
	entity, err := service.repo.GetSeries(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, nil
	}

	dto := toDTO(entity)
	return &dto, nil
}

func (service *Service) CreateSeries(ctx context.Context, input DTO) (DTO, error) {
	entity := toEntity(input)
	entity.ID = 0 // the store assigns the identity

	if err := service.repo.SaveSeries(ctx, entity); err != nil {
		return DTO{}, err
	}

	// Best-effort index submission after the store write succeeded.
	service.index.IndexSeries(ctx, entity)

	service.logger.Info("series_created", slog.Int64("series_id", entity.ID))
	return toDTO(entity), nil
}

func (service *Service) UpdateSeries(ctx context.Context, id int64, input DTO) (DTO, error) {
	entity := toEntity(input)
	entity.ID = id // the path identity wins over any identity in the body

	if err := service.repo.SaveSeries(ctx, entity); err != nil {
		return DTO{}, err
	}

	service.index.IndexSeries(ctx, entity)

	service.logger.Info("series_updated", slog.Int64("series_id", entity.ID))
	return toDTO(entity), nil
}

func (service *Service) DeleteSeries(ctx context.Context, id int64) error {
	if err := service.repo.DeleteSeries(ctx, id); err != nil {
		return err
	}

	// Forwarded unconditionally, even when the store delete was a no-op.
	service.index.RemoveSeries(ctx, id)

	service.logger.Warn("series_deleted", slog.Int64("series_id", id))
	return nil
}

// SearchSeries reads from the search index only, never the store.
func (service *Service) SearchSeries(ctx context.Context, query string) []DTO {
	hits := service.index.SearchSeries(ctx, query)

	out := make([]DTO, 0, len(hits))
	for _, hit := range hits {
		out = append(out, toDTO(hit))
	}
	return out
}

// toDTO converts a storage record into its wire shape, field by field.
func toDTO(s *Series) DTO {
	return DTO{
		ID:              s.ID,
		Title:           s.Title,
		Author:          s.Author,
		PublicationDate: s.PublicationDate,
		Description:     s.Description,
		CoverImage:      s.CoverImage,
		Publisher:       s.Publisher,
		Isbn:            s.Isbn,
	}
}

// toEntity converts a wire record into its storage shape. The identity is
// copied verbatim; callers overwrite it for create/update operations.
func toEntity(d DTO) *Series {
	return &Series{
		ID:              d.ID,
		Title:           d.Title,
		Author:          d.Author,
		PublicationDate: d.PublicationDate,
		Description:     d.Description,
		CoverImage:      d.CoverImage,
		Publisher:       d.Publisher,
		Isbn:            d.Isbn,
	}
}
