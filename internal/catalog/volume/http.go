package volume

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

// Routes returns the Volume route group.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listVolumes)
	router.Post("/", handler.createVolume)
	router.Get("/{id}", handler.getVolume)
	router.Put("/{id}", handler.updateVolume)
	router.Delete("/{id}", handler.deleteVolume)

	return router
}

func (handler *Handler) listVolumes(writer http.ResponseWriter, request *http.Request) {
	out, err := handler.service.ListVolumes(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, out)
}

func (handler *Handler) getVolume(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// A missing record yields {"data": null} with status 200.
	out, err := handler.service.GetVolume(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, out)
}

func (handler *Handler) createVolume(writer http.ResponseWriter, request *http.Request) {
	var input DTO
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	out, err := handler.service.CreateVolume(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, out)
}

func (handler *Handler) updateVolume(writer http.ResponseWriter, request *http.Request) {
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

	out, err := handler.service.UpdateVolume(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, out)
}

func (handler *Handler) deleteVolume(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteVolume(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, nil)
}
