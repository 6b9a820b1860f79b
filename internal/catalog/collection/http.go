package collection

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

// Routes returns the Collection route group.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listCollections)
	router.Post("/", handler.createCollection)
	router.Get("/{id}", handler.getCollection)
	router.Put("/{id}", handler.updateCollection)
	router.Delete("/{id}", handler.deleteCollection)

	return router
}

func (handler *Handler) listCollections(writer http.ResponseWriter, request *http.Request) {
	out, err := handler.service.ListCollections(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, out)
}

func (handler *Handler) getCollection(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// A missing record yields {"data": null} with status 200.
	out, err := handler.service.GetCollection(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, out)
}

func (handler *Handler) createCollection(writer http.ResponseWriter, request *http.Request) {
	var input DTO
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	out, err := handler.service.CreateCollection(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, out)
}

func (handler *Handler) updateCollection(writer http.ResponseWriter, request *http.Request) {
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

	out, err := handler.service.UpdateCollection(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, out)
}

func (handler *Handler) deleteCollection(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteCollection(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, nil)
}
