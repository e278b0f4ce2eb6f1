// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package review manages user reviews of titles and the comment threads under
them.

Each account may review a title once. Reviews and comments are listed newest
first and can be changed or removed by their author, a moderator or an
administrator.
*/
package review

import "time"

// # Domain Entities

// Authored holds the fields shared by every user-written object.
type Authored struct {
	AuthorID string    `json:"-"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	PubDate  time.Time `json:"pub_date"`
}

// Review is one account's scored opinion of a title.
type Review struct {
	ID      int64 `json:"id"`
	TitleID int64 `json:"-"`
	Authored
	Score int `json:"score"`
}

// Comment is a reply under a review.
type Comment struct {
	ID       int64 `json:"id"`
	ReviewID int64 `json:"-"`
	Authored
}

// # Request Payloads

// ReviewInput is the payload of POST .../reviews.
type ReviewInput struct {
	Text  string `json:"text" validate:"required"`
	Score *int   `json:"score" validate:"required"`
}

// ReviewPatch is the payload of PATCH .../reviews/{review_id}.
type ReviewPatch struct {
	Text  *string `json:"text" validate:"omitempty,min=1"`
	Score *int    `json:"score"`
}

// CommentInput is the payload of POST and PATCH on comments.
type CommentInput struct {
	Text string `json:"text" validate:"required"`
}

// # Field Identifiers

const (
	FieldText  = "text"
	FieldScore = "score"
)
