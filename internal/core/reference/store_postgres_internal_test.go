// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/postgres/postgrestest"
)

/*
TestPostgresRepository_SlugTaken verifies that the unique slug constraint
surfaces as a 400 on the slug field for both taxonomies.
*/
func TestPostgresRepository_SlugTaken(t *testing.T) {
	tests := []struct {
		name   string
		table  string
		create func(repository *PostgresRepository) error
		err    error
	}{
		{
			name:  "category",
			table: schema.CoreCategory.Table,
			create: func(repository *PostgresRepository) error {
				return repository.CreateCategory(context.Background(), &Category{NamedSlug: NamedSlug{Name: "Films", Slug: "films"}})
			},
			err: postgrestest.UniqueViolation(schema.CoreCategory.SlugConstraint),
		},
		{
			name:  "genre",
			table: schema.CoreGenre.Table,
			create: func(repository *PostgresRepository) error {
				return repository.CreateGenre(context.Background(), &Genre{NamedSlug: NamedSlug{Name: "Drama", Slug: "drama"}})
			},
			err: postgrestest.UniqueViolation(schema.CoreGenre.SlugConstraint),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := &postgrestest.Conn{Err: tt.err}

			err := tt.create(&PostgresRepository{db: conn})

			// 1. Rendered as a client error, not an internal one
			appErr := apperr.As(err)
			require.NotNil(t, appErr, "got %T: %v", err, err)
			assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
			assert.Equal(t, apperr.CodeValidation, appErr.Code)
			require.Len(t, appErr.Details, 1)
			assert.Equal(t, FieldSlug, appErr.Details[0].Field)

			// 2. The insert went to the matching table
			require.Len(t, conn.Statements(), 1)
			assert.Contains(t, conn.Statements()[0], tt.table)
		})
	}
}

func TestPostgresRepository_DeleteMissing(t *testing.T) {
	repository := &PostgresRepository{db: &postgrestest.Conn{RowsAffected: 0}}

	assert.True(t, apperr.IsNotFound(repository.DeleteCategory(context.Background(), "films")))
	assert.True(t, apperr.IsNotFound(repository.DeleteGenre(context.Background(), "drama")))
}
