// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package period

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/ibis/internal/platform/request"
	"github.com/taibuivan/ibis/internal/platform/respond"
	"github.com/taibuivan/ibis/pkg/pagination"
)

// Handler implements the HTTP layer for periods.
type Handler struct {
	service *Service
}

// NewHandler constructs a new period [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with period endpoints.
// The router must be mounted behind RequireAuth.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listPeriods)
	router.Post("/", handler.createPeriod)
	router.Get("/{id}", handler.getPeriod)
	router.Put("/{id}", handler.replacePeriod)
	router.Patch("/{id}", handler.patchPeriod)
	router.Delete("/{id}", handler.deletePeriod)

	return router
}

/*
GET /api/v1/periods.

Response:
  - 200: []Period: Paginated list
*/
func (handler *Handler) listPeriods(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	periods, total, err := handler.service.List(request.Context(), userID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, periods, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
POST /api/v1/periods.

Response:
  - 201: Period: Created object
  - 400: Validation: start later than end (non_field_errors)
*/
func (handler *Handler) createPeriod(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Period
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

/*
GET /api/v1/periods/{id}.

Response:
  - 200: Period
  - 404: Not owned or missing
*/
func (handler *Handler) getPeriod(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	period, err := handler.service.Get(request.Context(), userID, requestutil.PathID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, period)
}

/*
PUT /api/v1/periods/{id}.

Description: Full update; an omitted bound becomes open.
*/
func (handler *Handler) replacePeriod(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Period
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

/*
PATCH /api/v1/periods/{id}.

Description: Partial update; only bounds present in the body change.
*/
func (handler *Handler) patchPeriod(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id := requestutil.PathID(request)
	period, err := handler.service.Get(request.Context(), userID, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := requestutil.DecodeJSON(writer, request, period); err != nil {
		respond.Error(writer, request, err)
		return
	}
	period.ID = id

	if err := handler.service.Update(request.Context(), userID, period); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, period)
}

/*
DELETE /api/v1/periods/{id}.

Response:
  - 204: Deleted; facts that used it now have no period
*/
func (handler *Handler) deletePeriod(writer http.ResponseWriter, request *http.Request) {
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
