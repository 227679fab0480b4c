// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/ibis/internal/platform/request"
	"github.com/taibuivan/ibis/internal/platform/respond"
	"github.com/taibuivan/ibis/pkg/pagination"
)

// Handler implements the HTTP layer for tags.
type Handler struct {
	service *Service
}

// NewHandler constructs a new tag [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with tag endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listTags)
	router.Post("/", handler.createTag)
	router.Get("/by-slug/{slug}", handler.getTagBySlug)
	router.Get("/{id}", handler.getTag)
	router.Put("/{id}", handler.replaceTag)
	router.Patch("/{id}", handler.patchTag)
	router.Delete("/{id}", handler.deleteTag)

	return router
}

/*
GET /api/v1/tags.

Request:
  - q: string (name search)
  - type: string (TagType id)
  - limit, page: int

Response:
  - 200: []Tag: Paginated list
*/
func (handler *Handler) listTags(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	filter := Filter{
		Query: requestutil.Query(request, "q"),
		Type:  requestutil.Query(request, "type"),
	}

	tags, total, err := handler.service.List(request.Context(), userID, filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, tags, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
POST /api/v1/tags.

Response:
  - 201: Tag: Created object with derived slug
  - 400: Validation: bad name, or type/tags owned by someone else
  - 409: Conflict: name already used
*/
func (handler *Handler) createTag(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Tag
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

// GET /api/v1/tags/{id}.
func (handler *Handler) getTag(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tag, err := handler.service.Get(request.Context(), userID, requestutil.PathID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tag)
}

// GET /api/v1/tags/by-slug/{slug}.
func (handler *Handler) getTagBySlug(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tag, err := handler.service.GetBySlug(request.Context(), userID, requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tag)
}

// PUT /api/v1/tags/{id}.
func (handler *Handler) replaceTag(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Tag
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

// PATCH /api/v1/tags/{id}.
func (handler *Handler) patchTag(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id := requestutil.PathID(request)
	tag, err := handler.service.Get(request.Context(), userID, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := requestutil.DecodeJSON(writer, request, tag); err != nil {
		respond.Error(writer, request, err)
		return
	}
	tag.ID = id

	if err := handler.service.Update(request.Context(), userID, tag); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tag)
}

// DELETE /api/v1/tags/{id}.
func (handler *Handler) deleteTag(writer http.ResponseWriter, request *http.Request) {
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
