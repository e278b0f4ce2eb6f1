// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// SocialReviewTable represents the 'social.review' table
type SocialReviewTable struct {
	Table                 string
	ID                    string
	TitleID               string
	AuthorID              string
	Text                  string
	Score                 string
	PubDate               string
	AuthorTitleConstraint string
}

// SocialReview is the schema definition for social.review
var SocialReview = SocialReviewTable{
	Table:                 "social.review",
	ID:                    "id",
	TitleID:               "titleid",
	AuthorID:              "authorid",
	Text:                  "text",
	Score:                 "score",
	PubDate:               "pubdate",
	AuthorTitleConstraint: "uq_review_author_title",
}

func (t SocialReviewTable) Columns() []string {
	return []string{t.ID, t.TitleID, t.AuthorID, t.Text, t.Score, t.PubDate}
}
