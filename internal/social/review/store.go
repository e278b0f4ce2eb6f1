// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"

	"github.com/taibuivan/yamdb/pkg/pagination"
)

// # Review Data Access

// Repository defines the data access contract for reviews and comments.
type Repository interface {

	// ## Reviews

	/*
		ListReviews returns one page of a title's reviews, newest first.

		Returns:
		  - []*Review: The page
		  - int: Total reviews of the title
		  - error: Database retrieval failures
	*/
	ListReviews(context context.Context, titleID int64, page pagination.Params) ([]*Review, int, error)

	/*
		FindReview returns a review only if it belongs to the title.

		Returns:
		  - error: apperr.NotFound when missing or under another title
	*/
	FindReview(context context.Context, titleID, reviewID int64) (*Review, error)

	// HasReview reports whether the author already reviewed the title.
	HasReview(context context.Context, titleID int64, authorID string) (bool, error)

	/*
		CreateReview inserts the review and fills in ID and PubDate.

		Returns:
		  - error: apperr.DuplicateReview when the (author, title) pair exists
	*/
	CreateReview(context context.Context, review *Review) error

	// UpdateReview persists Text and Score.
	UpdateReview(context context.Context, review *Review) error

	// DeleteReview removes the review; its comments cascade.
	DeleteReview(context context.Context, reviewID int64) error

	// ## Comments

	// ListComments returns one page of a review's comments, newest first.
	ListComments(context context.Context, reviewID int64, page pagination.Params) ([]*Comment, int, error)

	/*
		FindComment returns a comment only if it belongs to the review.

		Returns:
		  - error: apperr.NotFound when missing or under another review
	*/
	FindComment(context context.Context, reviewID, commentID int64) (*Comment, error)

	// CreateComment inserts the comment and fills in ID and PubDate.
	CreateComment(context context.Context, comment *Comment) error

	// UpdateComment persists Text.
	UpdateComment(context context.Context, comment *Comment) error

	// DeleteComment removes the comment.
	DeleteComment(context context.Context, commentID int64) error
}
