package series_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numaochi/medialib/internal/catalog/series"
)

func newTestHandler() (*series.Handler, *fakeRepository, *fakeIndex) {
	repo := newFakeRepository()
	index := &fakeIndex{}
	service := series.NewService(repo, index, slog.Default())
	return series.NewHandler(service), repo, index
}

func doRequest(handler *series.Handler, method, target, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, request)
	return recorder
}

/*
TestHandler_GetMissingReturnsNullBody pins the read contract for absent
records: status 200 with a null data payload, not a 404.
*/
func TestHandler_GetMissingReturnsNullBody(t *testing.T) {
	handler, _, _ := newTestHandler()

	recorder := doRequest(handler, http.MethodGet, "/999", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data": null}`, recorder.Body.String())
}

/*
TestHandler_CreateAndGet verifies the create/get round trip over HTTP,
including the enveloped wire shape.
*/
func TestHandler_CreateAndGet(t *testing.T) {
	handler, _, _ := newTestHandler()

	created := doRequest(handler, http.MethodPost, "/", `{
		"title": "Hikari",
		"author": "A. Mori",
		"publicationDate": "2020-05-01",
		"publisher": "Numaochi Press"
	}`)
	require.Equal(t, http.StatusOK, created.Code)

	var envelope struct {
		Data series.DTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &envelope))
	assert.Equal(t, int64(1), envelope.Data.ID)

	got := doRequest(handler, http.MethodGet, "/1", "")
	require.Equal(t, http.StatusOK, got.Code)

	require.NoError(t, json.Unmarshal(got.Body.Bytes(), &envelope))
	assert.Equal(t, "Hikari", envelope.Data.Title)
	assert.Equal(t, "2020-05-01", envelope.Data.PublicationDate.String())
}

/*
TestHandler_DeleteIsIdempotent verifies that repeated deletes of the same
identity keep returning success.
*/
func TestHandler_DeleteIsIdempotent(t *testing.T) {
	handler, _, index := newTestHandler()

	first := doRequest(handler, http.MethodDelete, "/42", "")
	second := doRequest(handler, http.MethodDelete, "/42", "")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, []int64{42, 42}, index.removed)
}

/*
TestHandler_InvalidID verifies that a non-numeric path identifier is
rejected as a validation failure.
*/
func TestHandler_InvalidID(t *testing.T) {
	handler, _, _ := newTestHandler()

	recorder := doRequest(handler, http.MethodGet, "/abc", "")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

/*
TestHandler_SearchEmptyIsArray pins the wire shape of an empty search
result: [] rather than null.
*/
func TestHandler_SearchEmptyIsArray(t *testing.T) {
	handler, _, index := newTestHandler()
	index.down = true

	recorder := doRequest(handler, http.MethodGet, "/search?query=hikari", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data": []}`, recorder.Body.String())
}

/*
TestHandler_UpdateMissingInserts verifies the upsert behavior through the
HTTP layer.
*/
func TestHandler_UpdateMissingInserts(t *testing.T) {
	handler, repo, _ := newTestHandler()

	recorder := doRequest(handler, http.MethodPut, "/7", `{"title": "Phantom"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	stored, err := repo.GetSeries(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Phantom", stored.Title)
}
