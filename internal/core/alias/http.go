// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package alias

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/ibis/internal/platform/request"
	"github.com/taibuivan/ibis/internal/platform/respond"
	"github.com/taibuivan/ibis/pkg/pagination"
)

// Handler implements the HTTP layer for aliases.
type Handler struct {
	service *Service
}

// NewHandler constructs a new alias [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with alias endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listAliases)
	router.Post("/", handler.createAlias)
	router.Get("/{id}", handler.getAlias)
	router.Put("/{id}", handler.replaceAlias)
	router.Patch("/{id}", handler.patchAlias)
	router.Delete("/{id}", handler.deleteAlias)

	return router
}

/*
GET /api/v1/aliases.

Request:
  - q: string (name search)
  - tag: string (Tag id)
  - limit, page: int

Response:
  - 200: []Alias: Paginated list
*/
func (handler *Handler) listAliases(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	filter := Filter{
		Query: requestutil.Query(request, "q"),
		Tag:   requestutil.Query(request, "tag"),
	}

	aliases, total, err := handler.service.List(request.Context(), userID, filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, aliases, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
POST /api/v1/aliases.

Response:
  - 201: Alias: Created object
  - 400: Validation: bad name, or tag missing or owned by someone else
  - 409: Conflict: name already used
*/
func (handler *Handler) createAlias(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Alias
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

// GET /api/v1/aliases/{id}.
func (handler *Handler) getAlias(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	alias, err := handler.service.Get(request.Context(), userID, requestutil.PathID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, alias)
}

// PUT /api/v1/aliases/{id}.
func (handler *Handler) replaceAlias(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Alias
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

// PATCH /api/v1/aliases/{id}.
func (handler *Handler) patchAlias(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id := requestutil.PathID(request)
	alias, err := handler.service.Get(request.Context(), userID, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := requestutil.DecodeJSON(writer, request, alias); err != nil {
		respond.Error(writer, request, err)
		return
	}
	alias.ID = id

	if err := handler.service.Update(request.Context(), userID, alias); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, alias)
}

// DELETE /api/v1/aliases/{id}.
func (handler *Handler) deleteAlias(writer http.ResponseWriter, request *http.Request) {
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
