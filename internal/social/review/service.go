// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/yamdb/internal/core/title"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// TitleFinder confirms that the parent title exists.
type TitleFinder interface {
	Get(context context.Context, id int64) (*title.Title, error)
}

// # Service Layer

// Service orchestrates business rules for reviews and comments.
type Service struct {
	repo   Repository
	titles TitleFinder
	bounds validate.ScoreBounds
	logger *slog.Logger
}

// NewService constructs a new review [Service]. bounds is the inclusive
// range accepted for scores.
func NewService(repo Repository, titles TitleFinder, bounds validate.ScoreBounds, logger *slog.Logger) *Service {
	return &Service{repo: repo, titles: titles, bounds: bounds, logger: logger}
}

// # Review Methods

/*
ListReviews returns a page of a title's reviews, newest first.

Returns:
  - error: NotFound when the title does not exist
*/
func (service *Service) ListReviews(context context.Context, titleID int64, page pagination.Params) ([]*Review, int, error) {
	if _, err := service.titles.Get(context, titleID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListReviews(context, titleID, page)
}

// GetReview returns a review of the given title.
func (service *Service) GetReview(context context.Context, titleID, reviewID int64) (*Review, error) {
	return service.repo.FindReview(context, titleID, reviewID)
}

/*
CreateReview stores the caller's review of a title.

Description: A pre-check rejects a second review early; the storage
constraint settles concurrent attempts so at most one commits.

Parameters:
  - context: context.Context
  - principal: *sec.Principal (The author)
  - titleID: int64
  - input: ReviewInput

Returns:
  - *Review: The stored review
  - error: ValidationError, NotFound (title), DuplicateReview
*/
func (service *Service) CreateReview(context context.Context, principal *sec.Principal, titleID int64, input ReviewInput) (*Review, error) {
	if err := sec.RequireAuthenticated(principal); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Struct(input)
	if input.Score != nil {
		validator.Score(FieldScore, *input.Score, service.bounds)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.titles.Get(context, titleID); err != nil {
		return nil, err
	}

	exists, err := service.repo.HasReview(context, titleID, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("review_service_precheck_failed: %w", err)
	}
	if exists {
		return nil, apperr.DuplicateReview()
	}

	review := &Review{
		TitleID: titleID,
		Authored: Authored{
			AuthorID: principal.UserID,
			Author:   principal.Username,
			Text:     input.Text,
		},
		Score: *input.Score,
	}

	if err := service.repo.CreateReview(context, review); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "review_created",
		slog.Int64("review_id", review.ID),
		slog.Int64("title_id", titleID),
		slog.String("user_id", principal.UserID),
	)

	return review, nil
}

/*
UpdateReview applies a partial update to a review.

Returns:
  - error: NotFound, AuthorizationDenied (not author/moderator/admin) or ValidationError
*/
func (service *Service) UpdateReview(context context.Context, principal *sec.Principal, titleID, reviewID int64, input ReviewPatch) (*Review, error) {
	review, err := service.repo.FindReview(context, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if err := sec.AuthorOrStaff(principal, review.AuthorID); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Struct(input)
	if input.Score != nil {
		validator.Score(FieldScore, *input.Score, service.bounds)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.Text != nil {
		review.Text = *input.Text
	}
	if input.Score != nil {
		review.Score = *input.Score
	}

	if err := service.repo.UpdateReview(context, review); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "review_updated", slog.Int64("review_id", review.ID))
	return review, nil
}

// DeleteReview removes a review after the ownership check.
func (service *Service) DeleteReview(context context.Context, principal *sec.Principal, titleID, reviewID int64) error {
	review, err := service.repo.FindReview(context, titleID, reviewID)
	if err != nil {
		return err
	}

	if err := sec.AuthorOrStaff(principal, review.AuthorID); err != nil {
		return err
	}

	if err := service.repo.DeleteReview(context, review.ID); err != nil {
		return err
	}

	service.logger.InfoContext(context, "review_deleted",
		slog.Int64("review_id", review.ID),
		slog.String("actor_id", principal.UserID),
	)
	return nil
}

// # Comment Methods

// ListComments returns a page of comments under a review of the title.
func (service *Service) ListComments(context context.Context, titleID, reviewID int64, page pagination.Params) ([]*Comment, int, error) {
	if _, err := service.repo.FindReview(context, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListComments(context, reviewID, page)
}

// GetComment returns a comment, checking the whole title/review/comment chain.
func (service *Service) GetComment(context context.Context, titleID, reviewID, commentID int64) (*Comment, error) {
	if _, err := service.repo.FindReview(context, titleID, reviewID); err != nil {
		return nil, err
	}
	return service.repo.FindComment(context, reviewID, commentID)
}

// CreateComment stores the caller's comment under a review of the title.
func (service *Service) CreateComment(context context.Context, principal *sec.Principal, titleID, reviewID int64, input CommentInput) (*Comment, error) {
	if err := sec.RequireAuthenticated(principal); err != nil {
		return nil, err
	}

	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	if _, err := service.repo.FindReview(context, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &Comment{
		ReviewID: reviewID,
		Authored: Authored{
			AuthorID: principal.UserID,
			Author:   principal.Username,
			Text:     input.Text,
		},
	}

	if err := service.repo.CreateComment(context, comment); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "comment_created",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("review_id", reviewID),
	)
	return comment, nil
}

// UpdateComment replaces the text of a comment after the ownership check.
func (service *Service) UpdateComment(context context.Context, principal *sec.Principal, titleID, reviewID, commentID int64, input CommentInput) (*Comment, error) {
	comment, err := service.GetComment(context, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if err := sec.AuthorOrStaff(principal, comment.AuthorID); err != nil {
		return nil, err
	}

	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	comment.Text = input.Text
	if err := service.repo.UpdateComment(context, comment); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "comment_updated", slog.Int64("comment_id", comment.ID))
	return comment, nil
}

// DeleteComment removes a comment after the ownership check.
func (service *Service) DeleteComment(context context.Context, principal *sec.Principal, titleID, reviewID, commentID int64) error {
	comment, err := service.GetComment(context, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if err := sec.AuthorOrStaff(principal, comment.AuthorID); err != nil {
		return err
	}

	if err := service.repo.DeleteComment(context, comment.ID); err != nil {
		return err
	}

	service.logger.InfoContext(context, "comment_deleted", slog.Int64("comment_id", comment.ID))
	return nil
}
