// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/core/reference"
	"github.com/taibuivan/yamdb/internal/core/reference/referencetest"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/sec"
)

var (
	admin = &sec.Principal{UserID: "u-admin", Username: "boss", Role: sec.RoleAdmin}
	plain = &sec.Principal{UserID: "u-plain", Username: "reader", Role: sec.RoleUser}
)

func newRouter(store *referencetest.Memory) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := reference.NewHandler(reference.NewService(store, logger))

	router := chi.NewRouter()
	router.Mount("/categories", handler.CategoryRoutes())
	router.Mount("/genres", handler.GenreRoutes())
	return router
}

func do(t *testing.T, router http.Handler, caller *sec.Principal, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	request := httptest.NewRequest(method, path, reader)
	if caller != nil {
		request = request.WithContext(ctxutil.WithPrincipal(context.Background(), caller))
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

type listBody struct {
	Data []reference.NamedSlug `json:"data"`
	Meta struct {
		Count int `json:"count"`
	} `json:"meta"`
}

/*
TestCategories_Lifecycle covers creation, listing and deletion as an admin.
*/
func TestCategories_Lifecycle(t *testing.T) {
	router := newRouter(referencetest.NewMemory())

	// 1. Create with an explicit slug and with a derived one
	recorder := do(t, router, admin, http.MethodPost, "/categories", map[string]string{"name": "Films", "slug": "films"})
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.JSONEq(t, `{"name":"Films","slug":"films"}`, recorder.Body.String())

	recorder = do(t, router, admin, http.MethodPost, "/categories", map[string]string{"name": "Crème Brûlée Books"})
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.JSONEq(t, `{"name":"Crème Brûlée Books","slug":"creme-brulee-books"}`, recorder.Body.String())

	// 2. Taken slugs are a validation error
	recorder = do(t, router, admin, http.MethodPost, "/categories", map[string]string{"name": "Movies", "slug": "films"})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "VALIDATION_ERROR")

	// 3. Anyone may list, ordered by name
	recorder = do(t, router, nil, http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var page listBody
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &page))
	require.Len(t, page.Data, 2)
	assert.Equal(t, "Crème Brûlée Books", page.Data[0].Name)
	assert.Equal(t, 2, page.Meta.Count)

	// 4. Search by name
	recorder = do(t, router, nil, http.MethodGet, "/categories?search=film", nil)
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, "films", page.Data[0].Slug)

	// 5. Delete by slug, then it is gone
	assert.Equal(t, http.StatusNoContent, do(t, router, admin, http.MethodDelete, "/categories/films", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, router, admin, http.MethodDelete, "/categories/films", nil).Code)
}

/*
TestGenres_Permissions checks that writes need administrator capabilities.
*/
func TestGenres_Permissions(t *testing.T) {
	store := referencetest.NewMemory()
	router := newRouter(store)
	require.Equal(t, http.StatusCreated, do(t, router, admin, http.MethodPost, "/genres", map[string]string{"name": "Drama"}).Code)

	tests := []struct {
		name   string
		caller *sec.Principal
		method string
		path   string
		body   any
		want   int
	}{
		{"anonymous list", nil, http.MethodGet, "/genres", nil, http.StatusOK},
		{"anonymous create", nil, http.MethodPost, "/genres", map[string]string{"name": "Comedy"}, http.StatusForbidden},
		{"user create", plain, http.MethodPost, "/genres", map[string]string{"name": "Comedy"}, http.StatusForbidden},
		{"user delete", plain, http.MethodDelete, "/genres/drama", nil, http.StatusForbidden},
		{"anonymous delete", nil, http.MethodDelete, "/genres/drama", nil, http.StatusForbidden},
		{"admin delete", admin, http.MethodDelete, "/genres/drama", nil, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, do(t, router, tt.caller, tt.method, tt.path, tt.body).Code)
		})
	}
}

/*
TestCreate_Validation rejects malformed names and slugs.
*/
func TestCreate_Validation(t *testing.T) {
	router := newRouter(referencetest.NewMemory())

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing name", map[string]string{"slug": "x"}},
		{"bad slug", map[string]string{"name": "X", "slug": "not a slug"}},
		{"underivable slug", map[string]string{"name": "!!!"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := do(t, router, admin, http.MethodPost, "/genres", tt.body)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}

/*
TestGenresBySlugs verifies slug resolution used by title writes.
*/
func TestGenresBySlugs(t *testing.T) {
	store := referencetest.NewMemory()
	service := reference.NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	_, err := service.CreateGenre(ctx, reference.Input{Name: "Drama"})
	require.NoError(t, err)
	_, err = service.CreateGenre(ctx, reference.Input{Name: "Comedy"})
	require.NoError(t, err)

	genres, err := service.GenresBySlugs(ctx, []string{"drama", "comedy", "drama"})
	require.NoError(t, err)
	require.Len(t, genres, 2)
	assert.Equal(t, "Comedy", genres[0].Name)

	_, err = service.GenresBySlugs(ctx, []string{"drama", "horror"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Validation failed")
}
