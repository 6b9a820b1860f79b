// Copyright (c) 2026 Medialib. All rights reserved.
// Author: numaochi.dev@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/numaochi/medialib/internal/platform/apperr"
	"github.com/numaochi/medialib/internal/platform/ctxutil"
	"github.com/numaochi/medialib/internal/platform/middleware"
	requestutil "github.com/numaochi/medialib/internal/platform/request"
	"github.com/numaochi/medialib/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the account route group. Registration and login are public;
// logout requires an authenticated session.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/logout", handler.logout)
	})

	return router
}

func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input Credentials
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Register(request.Context(), input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "User registered successfully!")
}

func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input Credentials
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, session)
}

func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
		return
	}

	if err := handler.service.Logout(request.Context(), claims.ID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Logged out successfully")
}
