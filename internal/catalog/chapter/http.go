package chapter

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

// Routes returns the Chapter route group.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listChapters)
	router.Post("/", handler.createChapter)
	router.Get("/{id}", handler.getChapter)
	router.Put("/{id}", handler.updateChapter)
	router.Delete("/{id}", handler.deleteChapter)

	return router
}

func (handler *Handler) listChapters(writer http.ResponseWriter, request *http.Request) {
	out, err := handler.service.ListChapters(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, out)
}

func (handler *Handler) getChapter(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// A missing record yields {"data": null} with status 200.
	out, err := handler.service.GetChapter(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, out)
}

func (handler *Handler) createChapter(writer http.ResponseWriter, request *http.Request) {
	var input DTO
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	out, err := handler.service.CreateChapter(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, out)
}

func (handler *Handler) updateChapter(writer http.ResponseWriter, request *http.Request) {
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

	out, err := handler.service.UpdateChapter(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, out)
}

func (handler *Handler) deleteChapter(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteChapter(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, nil)
}
