// Copyright (c) 2026 Medialib. All rights reserved.
// Author: numaochi.dev@gmail.com

// Package search adapts the Meilisearch client to the catalog's index
// contracts.
//
// # Failure policy
//
// The index is a best-effort read model beside the relational store. No
// method here returns an error: every failure is logged and absorbed, writes
// become no-ops and reads come back empty. Callers must never fail a store
// operation because the index is down.
package search

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/meilisearch/meilisearch-go"

	"github.com/numaochi/medialib/internal/catalog/series"
	"github.com/numaochi/medialib/internal/platform/constants"
)

// Gateway pushes Series documents into Meilisearch and serves full-text
// queries from it. It satisfies [series.Index].
type Gateway struct {
	client *meilisearch.Client
	index  *meilisearch.Index
	logger *slog.Logger
}

func NewGateway(host, apiKey string, logger *slog.Logger) *Gateway {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   host,
		APIKey: apiKey,
	})

	return &Gateway{
		client: client,
		index:  client.Index(constants.SearchIndexSeries),
		logger: logger,
	}
}

// IndexSeries submits the document for (re)indexing. Indexing in Meilisearch
// is an upsert keyed on the primary key, so create and update share this path.
func (gateway *Gateway) IndexSeries(ctx context.Context, s *series.Series) {
	if _, err := gateway.index.AddDocuments([]*series.Series{s}, "id"); err != nil {
		gateway.logger.Error("search_index_failed",
			slog.Int64("series_id", s.ID),
			slog.String("error", err.Error()),
		)
	}
}

// RemoveSeries deletes the document by identity. Removing an unknown
// document is accepted by Meilisearch, which keeps the call idempotent.
func (gateway *Gateway) RemoveSeries(ctx context.Context, id int64) {
	if _, err := gateway.index.DeleteDocument(strconv.FormatInt(id, 10)); err != nil {
		gateway.logger.Error("search_remove_failed",
			slog.Int64("series_id", id),
			slog.String("error", err.Error()),
		)
	}
}

// SearchSeries runs a full-text query against the index. Any failure, be it
// an outage or a malformed hit, yields an empty result.
func (gateway *Gateway) SearchSeries(ctx context.Context, query string) []*series.Series {
	response, err := gateway.index.Search(query, &meilisearch.SearchRequest{})
	if err != nil {
		gateway.logger.Error("search_query_failed",
			slog.String("query", query),
			slog.String("error", err.Error()),
		)
		return nil
	}

	// Hits come back as loosely typed documents; round-trip them through
	// JSON to recover the Series shape.
	raw, err := json.Marshal(response.Hits)
	if err != nil {
		gateway.logger.Error("search_decode_failed", slog.String("error", err.Error()))
		return nil
	}

	var hits []*series.Series
	if err := json.Unmarshal(raw, &hits); err != nil {
		gateway.logger.Error("search_decode_failed", slog.String("error", err.Error()))
		return nil
	}

	return hits
}

// Healthy reports whether the Meilisearch instance answers its health probe.
func (gateway *Gateway) Healthy(ctx context.Context) bool {
	return gateway.client.IsHealthy()
}
