// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"

	"github.com/taibuivan/yamdb/pkg/pagination"
)

// # Title Data Access

// Repository defines the data access contract for titles.
type Repository interface {

	/*
		List returns one page of titles matching filter, ordered by name, with
		ratings computed from the current reviews.

		Returns:
		  - []*Title: The page
		  - int: Total matches
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, page pagination.Params) ([]*Title, int, error)

	/*
		FindByID returns a single title with its rating.

		Returns:
		  - *Title: Hydrated read model
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, id int64) (*Title, error)

	/*
		Create inserts the title and its genre links atomically and fills in
		the generated ID.
	*/
	Create(context context.Context, record *Record) error

	/*
		Update overwrites every column and replaces the genre links atomically.

		Returns:
		  - error: apperr.NotFound if missing
	*/
	Update(context context.Context, record *Record) error

	/*
		Delete removes the title. Reviews, their comments and genre links cascade.

		Returns:
		  - error: apperr.NotFound if missing
	*/
	Delete(context context.Context, id int64) error
}
