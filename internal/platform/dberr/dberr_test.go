// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
)

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: constraint}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"no rows", pgx.ErrNoRows, http.StatusNotFound},
		{"foreign key", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, http.StatusBadRequest},
		{"check constraint", &pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "ck_review_score"}, http.StatusBadRequest},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := apperr.As(dberr.Wrap(tt.err, "Title"))
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantStatus, appErr.HTTPStatus)
		})
	}

	assert.NoError(t, dberr.Wrap(nil, "Title"))
}

/*
TestIsUniqueViolation verifies constraint matching on both the wrapped
and the raw driver error.
*/
func TestIsUniqueViolation(t *testing.T) {
	raw := uniqueViolation("uq_category_slug")
	wrapped := dberr.Wrap(raw, "Category")

	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{"wrapped, same constraint", wrapped, "uq_category_slug", true},
		{"wrapped, other constraint", wrapped, "uq_genre_slug", false},
		{"wrapped, any constraint", wrapped, "", true},
		{"raw, same constraint", raw, "uq_category_slug", true},
		{"raw inside fmt wrap", fmt.Errorf("insert: %w", raw), "uq_category_slug", true},
		{"raw, other constraint", raw, "uq_genre_slug", false},
		{"other sqlstate", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, "", false},
		{"nil", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dberr.IsUniqueViolation(tt.err, tt.constraint))
		})
	}
}
