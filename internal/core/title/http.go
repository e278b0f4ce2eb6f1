// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yamdb/internal/platform/middleware"
	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// ParamTitleID is the URL parameter naming a title.
const ParamTitleID = "title_id"

// Handler implements the HTTP layer for titles.
type Handler struct {
	titleService *Service
}

// NewHandler constructs a new title [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{titleService: service}
}

// Routes returns the router mounted at /titles.
//
// # Endpoints
//   - GET /             : Paginated list (?genre, ?category, ?name, ?year)
//   - POST /            : Admin
//   - GET /{title_id}   : Detail
//   - PATCH /{title_id} : Admin
//   - DELETE /{title_id}: Admin
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.AdminOrReadOnly)

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{title_id}", handler.get)
	router.Patch("/{title_id}", handler.update)
	router.Delete("/{title_id}", handler.delete)

	return router
}

// filterFromRequest parses the list filters. A non-numeric year is a
// validation error rather than an ignored filter.
func filterFromRequest(request *http.Request) (Filter, error) {
	query := request.URL.Query()

	filter := Filter{
		Genre:    query.Get("genre"),
		Category: query.Get("category"),
		Name:     query.Get("name"),
	}

	if raw := query.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return Filter{}, validate.RequiredError(FieldYear, "Enter a whole number")
		}
		filter.Year = year
	}

	return filter, nil
}

/*
GET /api/v1/titles.

Response:
  - 200: {data: []Title, meta}
  - 400: Malformed year filter
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	filter, err := filterFromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)

	titles, total, err := handler.titleService.List(request.Context(), filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, titles, pagination.NewMeta(page, total))
}

// create handles POST /api/v1/titles.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.titleService.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, title)
}

// get handles GET /api/v1/titles/{title_id}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, ParamTitleID, "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.titleService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

// update handles PATCH /api/v1/titles/{title_id}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, ParamTitleID, "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.titleService.Update(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

// delete handles DELETE /api/v1/titles/{title_id}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, ParamTitleID, "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.titleService.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
