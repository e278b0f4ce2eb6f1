// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
	"github.com/taibuivan/yamdb/internal/platform/postgres"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// # User Repository

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	db       postgres.DBTX
	beginner postgres.TxBeginner
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: pool, beginner: pool}
}

// selectUser is the column list shared by every account read, in [scanUser] order.
var selectUser = strings.Join(schema.UserAccount.Columns(), ", ")

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Bio,
		&user.Role,
		&user.IsStaff,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}

// storageNow truncates to the microsecond precision of TIMESTAMPTZ so that
// the value held in memory equals the value read back.
func storageNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// mapIdentityError turns unique violations on username/email into client errors.
func mapIdentityError(err error) error {
	switch {
	case dberr.IsUniqueViolation(err, schema.UserAccount.UsernameConstraint):
		return apperr.IdentityConflict("A user with that username already exists",
			apperr.FieldError{Field: FieldUsername, Message: "This username is already taken"})
	case dberr.IsUniqueViolation(err, schema.UserAccount.EmailConstraint):
		return apperr.IdentityConflict("A user with that email already exists",
			apperr.FieldError{Field: FieldEmail, Message: "This email is already registered"})
	default:
		return err
	}
}

func (repository *PostgresUserRepository) findOne(context context.Context, column string, value any) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectUser, schema.UserAccount.Table, column)

	user, err := scanUser(repository.db.QueryRow(context, query, value))
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

// FindByID retrieves an account by its UUID.
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	return repository.findOne(context, schema.UserAccount.ID, id)
}

// FindByUsername retrieves an account by its exact username.
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	return repository.findOne(context, schema.UserAccount.Username, username)
}

// FindByEmail retrieves an account by its exact email.
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findOne(context, schema.UserAccount.Email, email)
}

/*
List returns a page of accounts ordered by username.

Description: The search term is matched with ILIKE against the username;
LIKE wildcards in the term are escaped.

Parameters:
  - context: context.Context
  - filter: UserFilter
  - page: pagination.Params

Returns:
  - []*User: The page
  - int: Total matches across all pages
  - error: Query failures
*/
func (repository *PostgresUserRepository) List(context context.Context, filter UserFilter, page pagination.Params) ([]*User, int, error) {
	where := "TRUE"
	args := []any{}
	if filter.Search != "" {
		args = append(args, "%"+postgres.EscapeLike(filter.Search)+"%")
		where = fmt.Sprintf(`%s ILIKE $%d`, schema.UserAccount.Username, len(args))
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, schema.UserAccount.Table, where)
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}

	args = append(args, page.Limit, page.Offset())
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY %s ASC LIMIT $%d OFFSET $%d`,
		selectUser, schema.UserAccount.Table, where, schema.UserAccount.Username, len(args)-1, len(args))

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}
	defer rows.Close()

	users := make([]*User, 0, page.Limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "User")
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}

	return users, total, nil
}

/*
Create persists a new account into the users.account table.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist; timestamps are filled in)

Returns:
  - error: apperr.IdentityConflict on a taken username/email, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		schema.UserAccount.Table, selectUser,
	)

	now := storageNow()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.Role,
		user.IsStaff,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return mapIdentityError(dberr.Wrap(err, "User"))
	}

	return nil
}

/*
Update writes every mutable column of the account and bumps updatedat.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: apperr.NotFound, apperr.IdentityConflict or persistence failures
*/
func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9
		WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.Username, schema.UserAccount.Email, schema.UserAccount.FirstName,
		schema.UserAccount.LastName, schema.UserAccount.Bio, schema.UserAccount.Role,
		schema.UserAccount.IsStaff, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
	)

	updatedAt := storageNow()
	if !updatedAt.After(user.UpdatedAt) {
		updatedAt = user.UpdatedAt.Add(time.Microsecond)
	}

	tag, err := repository.db.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.Role,
		user.IsStaff,
		updatedAt,
	)

	if err != nil {
		return mapIdentityError(dberr.Wrap(err, "User"))
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	user.UpdatedAt = updatedAt
	return nil
}

// Delete removes the account row; authored reviews and comments cascade.
func (repository *PostgresUserRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.UserAccount.Table, schema.UserAccount.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

// Transact runs fn on a copy of the repository bound to one transaction.
// Calls on an already transactional repository reuse the open transaction.
func (repository *PostgresUserRepository) Transact(context context.Context, fn func(repository UserRepository) error) error {
	if repository.beginner == nil {
		return fn(repository)
	}

	return postgres.WithTx(context, repository.beginner, func(tx pgx.Tx) error {
		return fn(&PostgresUserRepository{db: tx})
	})
}
