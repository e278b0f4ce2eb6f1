// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yamdb/internal/platform/middleware"
	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// URL parameters of the nested review routes.
const (
	ParamTitleID   = "title_id"
	ParamReviewID  = "review_id"
	ParamCommentID = "comment_id"
)

// Handler implements the HTTP layer for reviews and comments.
type Handler struct {
	reviewService *Service
}

// NewHandler constructs a new review [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{reviewService: service}
}

// Routes returns the router mounted at /titles/{title_id}/reviews.
//
// # Endpoints
//   - GET, POST /                                  : Reviews of the title
//   - GET, PATCH, DELETE /{review_id}              : One review
//   - GET, POST /{review_id}/comments              : Comments of the review
//   - GET, PATCH, DELETE /{review_id}/comments/{comment_id}
//
// Reads are public. Writes require a caller; changes to existing objects
// additionally require the author, a moderator or an administrator.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.AuthenticatedOrReadOnly)

	router.Get("/", handler.listReviews)
	router.Post("/", handler.createReview)

	router.Route("/{review_id}", func(router chi.Router) {
		router.Get("/", handler.getReview)
		router.Patch("/", handler.updateReview)
		router.Delete("/", handler.deleteReview)

		router.Get("/comments", handler.listComments)
		router.Post("/comments", handler.createComment)
		router.Get("/comments/{comment_id}", handler.getComment)
		router.Patch("/comments/{comment_id}", handler.updateComment)
		router.Delete("/comments/{comment_id}", handler.deleteComment)
	})

	return router
}

// # Path Helpers

// ids parses the title and review identifiers present on the route.
func ids(request *http.Request, withReview bool) (titleID, reviewID int64, err error) {
	titleID, err = requestutil.Int64Param(request, ParamTitleID, "Title")
	if err != nil || !withReview {
		return titleID, 0, err
	}
	reviewID, err = requestutil.Int64Param(request, ParamReviewID, "Review")
	return titleID, reviewID, err
}

// # Review Handlers

func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	titleID, _, err := ids(request, false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	reviews, total, err := handler.reviewService.ListReviews(request.Context(), titleID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(page, total))
}

/*
POST /api/v1/titles/{title_id}/reviews.

Response:
  - 201: Review
  - 400: Validation failure or DUPLICATE_REVIEW
  - 403: Anonymous caller
  - 404: Unknown title
*/
func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	titleID, _, err := ids(request, false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ReviewInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.reviewService.CreateReview(request.Context(), requestutil.Principal(request), titleID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, review)
}

func (handler *Handler) getReview(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := ids(request, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.reviewService.GetReview(request.Context(), titleID, reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

func (handler *Handler) updateReview(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := ids(request, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ReviewPatch
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.reviewService.UpdateReview(request.Context(), requestutil.Principal(request), titleID, reviewID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := ids(request, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.reviewService.DeleteReview(request.Context(), requestutil.Principal(request), titleID, reviewID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Comment Handlers

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := ids(request, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	comments, total, err := handler.reviewService.ListComments(request.Context(), titleID, reviewID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(page, total))
}

func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := ids(request, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CommentInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.reviewService.CreateComment(request.Context(), requestutil.Principal(request), titleID, reviewID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

func (handler *Handler) getComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := ids(request, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID, err := requestutil.Int64Param(request, ParamCommentID, "Comment")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.reviewService.GetComment(request.Context(), titleID, reviewID, commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := ids(request, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID, err := requestutil.Int64Param(request, ParamCommentID, "Comment")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CommentInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.reviewService.UpdateComment(request.Context(), requestutil.Principal(request), titleID, reviewID, commentID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := ids(request, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID, err := requestutil.Int64Param(request, ParamCommentID, "Comment")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.reviewService.DeleteComment(request.Context(), requestutil.Principal(request), titleID, reviewID, commentID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
