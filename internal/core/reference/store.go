// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"

	"github.com/taibuivan/yamdb/pkg/pagination"
)

// # Reference Data Access

// Repository defines the data access contract for categories and genres.
type Repository interface {

	// ## Category Data Access

	/*
		ListCategories returns one page of categories ordered by name, and the
		total number of matches.
	*/
	ListCategories(context context.Context, filter Filter, page pagination.Params) ([]*Category, int, error)

	/*
		FindCategory fetches a category by slug.

		Returns:
		  - *Category: The hydrated entity
		  - error: apperr.NotFound if missing
	*/
	FindCategory(context context.Context, slug string) (*Category, error)

	/*
		CreateCategory persists a new category and fills in its ID.

		Returns:
		  - error: a slug ValidationError when the slug is taken
	*/
	CreateCategory(context context.Context, category *Category) error

	/*
		DeleteCategory removes a category by slug. Titles keep existing with
		their category cleared.

		Returns:
		  - error: apperr.NotFound if missing
	*/
	DeleteCategory(context context.Context, slug string) error

	// ## Genre Data Access

	/*
		ListGenres returns one page of genres ordered by name, and the total
		number of matches.
	*/
	ListGenres(context context.Context, filter Filter, page pagination.Params) ([]*Genre, int, error)

	/*
		FindGenres fetches every genre whose slug is in slugs. Unknown slugs
		are simply absent from the result.
	*/
	FindGenres(context context.Context, slugs []string) ([]*Genre, error)

	/*
		CreateGenre persists a new genre and fills in its ID.

		Returns:
		  - error: a slug ValidationError when the slug is taken
	*/
	CreateGenre(context context.Context, genre *Genre) error

	/*
		DeleteGenre removes a genre by slug together with its title links.

		Returns:
		  - error: apperr.NotFound if missing
	*/
	DeleteGenre(context context.Context, slug string) error
}
