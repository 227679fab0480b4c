// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package source

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/ibis/internal/platform/request"
	"github.com/taibuivan/ibis/internal/platform/respond"
	"github.com/taibuivan/ibis/pkg/pagination"
)

// Handler implements the HTTP layer for sources.
type Handler struct {
	service *Service
}

// NewHandler constructs a new source [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with source endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listSources)
	router.Post("/", handler.createSource)
	router.Get("/{id}", handler.getSource)
	router.Put("/{id}", handler.replaceSource)
	router.Patch("/{id}", handler.patchSource)
	router.Delete("/{id}", handler.deleteSource)

	return router
}

/*
GET /api/v1/sources.

Request:
  - q: string (matches name or author)
  - limit, page: int

Response:
  - 200: []Source: Paginated list
*/
func (handler *Handler) listSources(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	filter := Filter{Query: requestutil.Query(request, "q")}

	sources, total, err := handler.service.List(request.Context(), userID, filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, sources, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
POST /api/v1/sources.

Response:
  - 201: Source: Created object
  - 400: Validation: missing name or a fact owned by someone else
*/
func (handler *Handler) createSource(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Source
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Create(request.Context(), userID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, input)
}

// GET /api/v1/sources/{id}.
func (handler *Handler) getSource(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	source, err := handler.service.Get(request.Context(), userID, requestutil.PathID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, source)
}

/*
PUT /api/v1/sources/{id}.

Description: Full update. Omitted optional fields are cleared, an omitted
access time is kept.
*/
func (handler *Handler) replaceSource(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Source
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.ID = requestutil.PathID(request)

	if err := handler.service.Update(request.Context(), userID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, input)
}

// PATCH /api/v1/sources/{id}.
func (handler *Handler) patchSource(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id := requestutil.PathID(request)
	source, err := handler.service.Get(request.Context(), userID, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := requestutil.DecodeJSON(writer, request, source); err != nil {
		respond.Error(writer, request, err)
		return
	}
	source.ID = id

	if err := handler.service.Update(request.Context(), userID, source); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, source)
}

// DELETE /api/v1/sources/{id}.
func (handler *Handler) deleteSource(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), userID, requestutil.PathID(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
