// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
	"github.com/taibuivan/yamdb/internal/platform/postgres"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// taxonomy names the table backing one kind of [NamedSlug] entry.
type taxonomy struct {
	table          string
	id             string
	name           string
	slug           string
	slugConstraint string
	resource       string
}

var (
	categories = taxonomy{
		table:          schema.CoreCategory.Table,
		id:             schema.CoreCategory.ID,
		name:           schema.CoreCategory.Name,
		slug:           schema.CoreCategory.Slug,
		slugConstraint: schema.CoreCategory.SlugConstraint,
		resource:       "Category",
	}
	genres = taxonomy{
		table:          schema.CoreGenre.Table,
		id:             schema.CoreGenre.ID,
		name:           schema.CoreGenre.Name,
		slug:           schema.CoreGenre.Slug,
		slugConstraint: schema.CoreGenre.SlugConstraint,
		resource:       "Genre",
	}
)

// row is the storage form shared by categories and genres.
type row struct {
	ID int64
	NamedSlug
}

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.DBTX
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: pool}
}

// # Shared Queries

func (repository *PostgresRepository) list(context context.Context, kind taxonomy, filter Filter, page pagination.Params) ([]row, int, error) {
	where := "TRUE"
	args := []any{}
	if filter.Search != "" {
		args = append(args, "%"+postgres.EscapeLike(filter.Search)+"%")
		where = fmt.Sprintf(`%s ILIKE $%d`, kind.name, len(args))
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, kind.table, where)
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, kind.resource)
	}

	args = append(args, page.Limit, page.Offset())
	query := fmt.Sprintf(`
		SELECT %s, %s, %s FROM %s
		WHERE %s
		ORDER BY %s ASC, %s ASC
		LIMIT $%d OFFSET $%d`,
		kind.id, kind.name, kind.slug, kind.table,
		where,
		kind.name, kind.id,
		len(args)-1, len(args),
	)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, kind.resource)
	}
	defer rows.Close()

	out := make([]row, 0, page.Limit)
	for rows.Next() {
		var item row
		if err := rows.Scan(&item.ID, &item.Name, &item.Slug); err != nil {
			return nil, 0, dberr.Wrap(err, kind.resource)
		}
		out = append(out, item)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, kind.resource)
	}

	return out, total, nil
}

func (repository *PostgresRepository) findBySlugs(context context.Context, kind taxonomy, slugs []string) ([]row, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = ANY($1) ORDER BY %s ASC`,
		kind.id, kind.name, kind.slug, kind.table, kind.slug, kind.name)

	rows, err := repository.db.Query(context, query, slugs)
	if err != nil {
		return nil, dberr.Wrap(err, kind.resource)
	}
	defer rows.Close()

	out := make([]row, 0, len(slugs))
	for rows.Next() {
		var item row
		if err := rows.Scan(&item.ID, &item.Name, &item.Slug); err != nil {
			return nil, dberr.Wrap(err, kind.resource)
		}
		out = append(out, item)
	}
	return out, dberr.Wrap(rows.Err(), kind.resource)
}

func (repository *PostgresRepository) create(context context.Context, kind taxonomy, entry NamedSlug) (int64, error) {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s`,
		kind.table, kind.name, kind.slug, kind.id)

	var id int64
	err := repository.db.QueryRow(context, query, entry.Name, entry.Slug).Scan(&id)

	wrapped := dberr.Wrap(err, kind.resource)
	if dberr.IsUniqueViolation(wrapped, kind.slugConstraint) {
		return 0, SlugTaken(kind.resource)
	}
	if wrapped != nil {
		return 0, wrapped
	}
	return id, nil
}

func (repository *PostgresRepository) delete(context context.Context, kind taxonomy, slug string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, kind.table, kind.slug)

	tag, err := repository.db.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, kind.resource)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(kind.resource)
	}
	return nil
}

// # Category Implementation

// ListCategories retrieves a page of categories ordered by name.
func (repository *PostgresRepository) ListCategories(context context.Context, filter Filter, page pagination.Params) ([]*Category, int, error) {
	rows, total, err := repository.list(context, categories, filter, page)
	if err != nil {
		return nil, 0, err
	}

	out := make([]*Category, len(rows))
	for i, item := range rows {
		out[i] = &Category{ID: item.ID, NamedSlug: item.NamedSlug}
	}
	return out, total, nil
}

// FindCategory retrieves a single category by slug.
func (repository *PostgresRepository) FindCategory(context context.Context, slug string) (*Category, error) {
	rows, err := repository.findBySlugs(context, categories, []string{slug})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperr.NotFound(categories.resource)
	}
	return &Category{ID: rows[0].ID, NamedSlug: rows[0].NamedSlug}, nil
}

// CreateCategory inserts a category and records its generated ID.
func (repository *PostgresRepository) CreateCategory(context context.Context, category *Category) error {
	id, err := repository.create(context, categories, category.NamedSlug)
	if err != nil {
		return err
	}
	category.ID = id
	return nil
}

// DeleteCategory removes a category; core.title.categoryid is set to NULL by the FK.
func (repository *PostgresRepository) DeleteCategory(context context.Context, slug string) error {
	return repository.delete(context, categories, slug)
}

// # Genre Implementation

// ListGenres retrieves a page of genres ordered by name.
func (repository *PostgresRepository) ListGenres(context context.Context, filter Filter, page pagination.Params) ([]*Genre, int, error) {
	rows, total, err := repository.list(context, genres, filter, page)
	if err != nil {
		return nil, 0, err
	}

	out := make([]*Genre, len(rows))
	for i, item := range rows {
		out[i] = &Genre{ID: item.ID, NamedSlug: item.NamedSlug}
	}
	return out, total, nil
}

// FindGenres retrieves the genres matching the given slugs.
func (repository *PostgresRepository) FindGenres(context context.Context, slugs []string) ([]*Genre, error) {
	rows, err := repository.findBySlugs(context, genres, slugs)
	if err != nil {
		return nil, err
	}

	out := make([]*Genre, len(rows))
	for i, item := range rows {
		out[i] = &Genre{ID: item.ID, NamedSlug: item.NamedSlug}
	}
	return out, nil
}

// CreateGenre inserts a genre and records its generated ID.
func (repository *PostgresRepository) CreateGenre(context context.Context, genre *Genre) error {
	id, err := repository.create(context, genres, genre.NamedSlug)
	if err != nil {
		return err
	}
	genre.ID = id
	return nil
}

// DeleteGenre removes a genre; its core.genretitle rows cascade.
func (repository *PostgresRepository) DeleteGenre(context context.Context, slug string) error {
	return repository.delete(context, genres, slug)
}
