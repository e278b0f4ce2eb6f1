// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"

	"github.com/taibuivan/yamdb/pkg/pagination"
)

// # User Data Access

// UserFilter narrows account listings.
type UserFilter struct {
	// Search matches usernames containing the value, case-insensitively.
	Search string
}

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByUsername returns the account with the given username (exact match).

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByEmail returns the account with the given email (exact match).

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		List returns one page of accounts ordered by username, and the total
		number of matches.

		Parameters:
		  - context: context.Context
		  - filter: UserFilter
		  - page: pagination.Params

		Returns:
		  - []*User: The page
		  - int: Total matches
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter UserFilter, page pagination.Params) ([]*User, int, error)

	/*
		Create persists a brand-new account. CreatedAt and UpdatedAt are set
		by the repository.

		Returns:
		  - error: apperr.IdentityConflict when the username or email is taken
	*/
	Create(context context.Context, user *User) error

	/*
		Update persists every mutable field and refreshes UpdatedAt, which
		invalidates outstanding confirmation codes.

		Returns:
		  - error: apperr.NotFound, apperr.IdentityConflict or persistence failures
	*/
	Update(context context.Context, user *User) error

	/*
		Delete removes the account. Reviews and comments cascade.

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	Delete(context context.Context, id string) error

	/*
		Transact runs fn against a repository bound to a single transaction.
		The transaction commits when fn returns nil.
	*/
	Transact(context context.Context, fn func(repository UserRepository) error) error
}

// # Volatile Data Access

// RedeemedCodeRepository remembers confirmation codes that were already exchanged.
type RedeemedCodeRepository interface {

	/*
		MarkRedeemed atomically records code as spent for ttl.

		Returns:
		  - bool: true when this call spent the code, false when it was already spent
		  - error: Storage failures
	*/
	MarkRedeemed(context context.Context, code string, ttl time.Duration) (bool, error)
}
