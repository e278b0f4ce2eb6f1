// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yamdb/internal/core/reference"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
	"github.com/taibuivan/yamdb/internal/platform/postgres"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.Conn
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: pool}
}

// # Read Model

var (
	// selectTitle projects a title, its category and its review aggregate,
	// in [scanTitle] order.
	selectTitle = fmt.Sprintf(`
		SELECT t.%s, t.%s, t.%s, t.%s, c.%s, c.%s,
		       COALESCE(r.total, 0), r.cnt
		FROM %s t
		LEFT JOIN %s c ON c.%s = t.%s
		LEFT JOIN LATERAL (
			SELECT SUM(%s) AS total, COUNT(*) AS cnt FROM %s WHERE %s = t.%s
		) r ON TRUE`,
		schema.CoreTitle.ID, schema.CoreTitle.Name, schema.CoreTitle.Year, schema.CoreTitle.Description,
		schema.CoreCategory.Name, schema.CoreCategory.Slug,
		schema.CoreTitle.Table,
		schema.CoreCategory.Table, schema.CoreCategory.ID, schema.CoreTitle.CategoryID,
		schema.SocialReview.Score, schema.SocialReview.Table, schema.SocialReview.TitleID, schema.CoreTitle.ID,
	)

	// selectGenres loads the genres of a set of titles, ordered by name.
	selectGenres = fmt.Sprintf(`
		SELECT gt.%s, g.%s, g.%s
		FROM %s gt
		JOIN %s g ON g.%s = gt.%s
		WHERE gt.%s = ANY($1)
		ORDER BY g.%s ASC`,
		schema.CoreGenreTitle.TitleID, schema.CoreGenre.Name, schema.CoreGenre.Slug,
		schema.CoreGenreTitle.Table,
		schema.CoreGenre.Table, schema.CoreGenre.ID, schema.CoreGenreTitle.GenreID,
		schema.CoreGenreTitle.TitleID,
		schema.CoreGenre.Name,
	)
)

func scanTitle(row pgx.Row) (*Title, error) {
	var (
		title                      Title
		categoryName, categorySlug *string
		sum, count                 int64
	)

	if err := row.Scan(
		&title.ID,
		&title.Name,
		&title.Year,
		&title.Description,
		&categoryName,
		&categorySlug,
		&sum,
		&count,
	); err != nil {
		return nil, err
	}

	if categorySlug != nil {
		title.Category = &reference.NamedSlug{Name: *categoryName, Slug: *categorySlug}
	}
	title.Rating = Rating(sum, count)
	title.Genres = []reference.NamedSlug{}

	return &title, nil
}

// attachGenres fills Genres on every title with one query.
func (repository *PostgresRepository) attachGenres(context context.Context, db postgres.DBTX, titles []*Title) error {
	if len(titles) == 0 {
		return nil
	}

	byID := make(map[int64]*Title, len(titles))
	ids := make([]int64, 0, len(titles))
	for _, title := range titles {
		byID[title.ID] = title
		ids = append(ids, title.ID)
	}

	rows, err := db.Query(context, selectGenres, ids)
	if err != nil {
		return dberr.Wrap(err, "Genre")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			titleID int64
			genre   reference.NamedSlug
		)
		if err := rows.Scan(&titleID, &genre.Name, &genre.Slug); err != nil {
			return dberr.Wrap(err, "Genre")
		}
		if title, ok := byID[titleID]; ok {
			title.Genres = append(title.Genres, genre)
		}
	}

	return dberr.Wrap(rows.Err(), "Genre")
}

/*
List returns a page of titles.

Description: Every filter adds one predicate. The genre filter matches
titles linked to that genre slug; the name filter is a case-insensitive
substring match with LIKE wildcards escaped.
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, page pagination.Params) ([]*Title, int, error) {
	var (
		predicates []string
		args       []any
	)

	if filter.Genre != "" {
		args = append(args, filter.Genre)
		predicates = append(predicates, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM %s fgt JOIN %s fg ON fg.%s = fgt.%s WHERE fgt.%s = t.%s AND fg.%s = $%d)`,
			schema.CoreGenreTitle.Table, schema.CoreGenre.Table, schema.CoreGenre.ID, schema.CoreGenreTitle.GenreID,
			schema.CoreGenreTitle.TitleID, schema.CoreTitle.ID, schema.CoreGenre.Slug, len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		predicates = append(predicates, fmt.Sprintf(`c.%s = $%d`, schema.CoreCategory.Slug, len(args)))
	}
	if filter.Name != "" {
		args = append(args, "%"+postgres.EscapeLike(filter.Name)+"%")
		predicates = append(predicates, fmt.Sprintf(`t.%s ILIKE $%d`, schema.CoreTitle.Name, len(args)))
	}
	if filter.Year != 0 {
		args = append(args, filter.Year)
		predicates = append(predicates, fmt.Sprintf(`t.%s = $%d`, schema.CoreTitle.Year, len(args)))
	}

	where := "TRUE"
	if len(predicates) > 0 {
		where = strings.Join(predicates, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s t LEFT JOIN %s c ON c.%s = t.%s WHERE %s`,
		schema.CoreTitle.Table, schema.CoreCategory.Table, schema.CoreCategory.ID, schema.CoreTitle.CategoryID, where)
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Title")
	}

	args = append(args, page.Limit, page.Offset())
	query := fmt.Sprintf(`%s WHERE %s ORDER BY t.%s ASC, t.%s ASC LIMIT $%d OFFSET $%d`,
		selectTitle, where, schema.CoreTitle.Name, schema.CoreTitle.ID, len(args)-1, len(args))

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Title")
	}
	defer rows.Close()

	titles := make([]*Title, 0, page.Limit)
	for rows.Next() {
		title, err := scanTitle(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Title")
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Title")
	}
	rows.Close()

	if err := repository.attachGenres(context, repository.db, titles); err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}

// FindByID retrieves a single title with its genres and rating.
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Title, error) {
	query := fmt.Sprintf(`%s WHERE t.%s = $1`, selectTitle, schema.CoreTitle.ID)

	title, err := scanTitle(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Title")
	}

	if err := repository.attachGenres(context, repository.db, []*Title{title}); err != nil {
		return nil, err
	}
	return title, nil
}

// # Write Model

// replaceGenres rewrites the link rows of one title.
func replaceGenres(context context.Context, tx pgx.Tx, titleID int64, genreIDs []int64) error {
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreGenreTitle.Table, schema.CoreGenreTitle.TitleID)
	if _, err := tx.Exec(context, deleteQuery, titleID); err != nil {
		return dberr.Wrap(err, "Title")
	}

	if len(genreIDs) == 0 {
		return nil
	}

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		SELECT $1, UNNEST($2::BIGINT[])
		ON CONFLICT DO NOTHING`,
		schema.CoreGenreTitle.Table, schema.CoreGenreTitle.TitleID, schema.CoreGenreTitle.GenreID)
	if _, err := tx.Exec(context, insertQuery, titleID, genreIDs); err != nil {
		return dberr.Wrap(err, "Genre")
	}
	return nil
}

/*
Create inserts a title and its genre links in one transaction.

Returns:
  - error: ValidationError when a referenced category or genre vanished
    concurrently, or persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, record *Record) error {
	return postgres.WithTx(context, repository.db, func(tx pgx.Tx) error {
		query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4) RETURNING %s`,
			schema.CoreTitle.Table,
			schema.CoreTitle.Name, schema.CoreTitle.Year, schema.CoreTitle.Description, schema.CoreTitle.CategoryID,
			schema.CoreTitle.ID)

		if err := tx.QueryRow(context, query, record.Name, record.Year, record.Description, record.CategoryID).Scan(&record.ID); err != nil {
			return dberr.Wrap(err, "Title")
		}

		return replaceGenres(context, tx, record.ID, record.GenreIDs)
	})
}

// Update overwrites the title row and its genre links in one transaction.
func (repository *PostgresRepository) Update(context context.Context, record *Record) error {
	return postgres.WithTx(context, repository.db, func(tx pgx.Tx) error {
		query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5 WHERE %s = $1`,
			schema.CoreTitle.Table,
			schema.CoreTitle.Name, schema.CoreTitle.Year, schema.CoreTitle.Description, schema.CoreTitle.CategoryID,
			schema.CoreTitle.ID)

		tag, err := tx.Exec(context, query, record.ID, record.Name, record.Year, record.Description, record.CategoryID)
		if err != nil {
			return dberr.Wrap(err, "Title")
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("Title")
		}

		return replaceGenres(context, tx, record.ID, record.GenreIDs)
	})
}

// Delete removes a title; reviews, comments and genre links cascade.
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreTitle.Table, schema.CoreTitle.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Title")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}
	return nil
}
