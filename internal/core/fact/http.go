// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package fact

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/ibis/internal/platform/request"
	"github.com/taibuivan/ibis/internal/platform/respond"
	"github.com/taibuivan/ibis/pkg/pagination"
	"github.com/taibuivan/ibis/pkg/query"
)

// Handler implements the HTTP layer for facts.
type Handler struct {
	service *Service
}

// NewHandler constructs a new fact [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with fact endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listFacts)
	router.Post("/", handler.createFact)
	router.Get("/{id}", handler.getFact)
	router.Put("/{id}", handler.replaceFact)
	router.Patch("/{id}", handler.patchFact)
	router.Delete("/{id}", handler.deleteFact)

	return router
}

/*
GET /api/v1/facts.

Request:
  - tag: string (comma separated Tag ids, any match)
  - context: string (Tag id)
  - period: string (Period id)
  - key: string (exact key)
  - source: string (Source id)
  - limit, page: int

Response:
  - 200: []Fact: Paginated list
*/
func (handler *Handler) listFacts(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	filter := Filter{
		Tags:    query.StringSlice(requestutil.Query(request, "tag")),
		Context: requestutil.Query(request, "context"),
		Period:  requestutil.Query(request, "period"),
		Key:     requestutil.Query(request, "key"),
		Source:  requestutil.Query(request, "source"),
	}

	facts, total, err := handler.service.List(request.Context(), userID, filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, facts, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
POST /api/v1/facts.

Response:
  - 201: Fact: Created object; tags include the context
  - 400: Validation: bad value, or a reference owned by someone else
*/
func (handler *Handler) createFact(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Fact
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

// GET /api/v1/facts/{id}.
func (handler *Handler) getFact(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	fact, err := handler.service.Get(request.Context(), userID, requestutil.PathID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, fact)
}

// PUT /api/v1/facts/{id}.
func (handler *Handler) replaceFact(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Fact
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

// PATCH /api/v1/facts/{id}.
func (handler *Handler) patchFact(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id := requestutil.PathID(request)
	fact, err := handler.service.Get(request.Context(), userID, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := requestutil.DecodeJSON(writer, request, fact); err != nil {
		respond.Error(writer, request, err)
		return
	}
	fact.ID = id

	if err := handler.service.Update(request.Context(), userID, fact); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, fact)
}

// DELETE /api/v1/facts/{id}.
func (handler *Handler) deleteFact(writer http.ResponseWriter, request *http.Request) {
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
