package series

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/numaochi/medialib/internal/platform/request"
	"github.com/numaochi/medialib/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the Series route group.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listSeries)
	router.Post("/", handler.createSeries)
	router.Get("/search", handler.searchSeries)
	router.Get("/{id}", handler.getSeries)
	router.Put("/{id}", handler.updateSeries)
	router.Delete("/{id}", handler.deleteSeries)

	return router
}

func (handler *Handler) listSeries(writer http.ResponseWriter, request *http.Request) {
	out, err := handler.service.ListSeries(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, out)
}

func (handler *Handler) getSeries(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// A missing record yields {"data": null} with status 200.
	out, err := handler.service.GetSeries(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, out)
}

func (handler *Handler) createSeries(writer http.ResponseWriter, request *http.Request) {
	var input DTO
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	out, err := handler.service.CreateSeries(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, out)
}

func (handler *Handler) updateSeries(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input DTO
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	out, err := handler.service.UpdateSeries(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, out)
}

func (handler *Handler) deleteSeries(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteSeries(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, nil)
}

func (handler *Handler) searchSeries(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query().Get("query")
	respond.OK(writer, handler.service.SearchSeries(request.Context(), query))
}
