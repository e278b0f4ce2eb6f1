// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package referencetest provides an in-memory [reference.Repository].
package referencetest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/taibuivan/yamdb/internal/core/reference"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// Memory stores categories and genres in maps keyed by slug.
type Memory struct {
	mu         sync.Mutex
	nextID     int64
	categories map[string]reference.Category
	genres     map[string]reference.Genre

	// OnDeleteCategory and OnDeleteGenre let a test cascade into other fakes.
	OnDeleteCategory func(id int64)
	OnDeleteGenre    func(id int64)
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{
		categories: map[string]reference.Category{},
		genres:     map[string]reference.Genre{},
	}
}

func page[T any](items []T, name func(T) string, filter reference.Filter, params pagination.Params) ([]T, int) {
	matches := make([]T, 0)
	for _, item := range items {
		if strings.Contains(strings.ToLower(name(item)), strings.ToLower(filter.Search)) {
			matches = append(matches, item)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return name(matches[i]) < name(matches[j]) })

	total := len(matches)
	start := min(params.Offset(), total)
	end := min(start+params.Limit, total)
	return matches[start:end], total
}

func (store *Memory) ListCategories(_ context.Context, filter reference.Filter, params pagination.Params) ([]*reference.Category, int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	all := make([]*reference.Category, 0, len(store.categories))
	for _, category := range store.categories {
		found := category
		all = append(all, &found)
	}
	out, total := page(all, func(c *reference.Category) string { return c.Name }, filter, params)
	return out, total, nil
}

func (store *Memory) FindCategory(_ context.Context, slug string) (*reference.Category, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	category, ok := store.categories[slug]
	if !ok {
		return nil, apperr.NotFound("Category")
	}
	return &category, nil
}

func (store *Memory) CreateCategory(_ context.Context, category *reference.Category) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.categories[category.Slug]; ok {
		return reference.SlugTaken("Category")
	}
	store.nextID++
	category.ID = store.nextID
	store.categories[category.Slug] = *category
	return nil
}

func (store *Memory) DeleteCategory(_ context.Context, slug string) error {
	store.mu.Lock()
	category, ok := store.categories[slug]
	delete(store.categories, slug)
	store.mu.Unlock()

	if !ok {
		return apperr.NotFound("Category")
	}
	if store.OnDeleteCategory != nil {
		store.OnDeleteCategory(category.ID)
	}
	return nil
}

// CategoryByID looks a category up by its numeric ID.
func (store *Memory) CategoryByID(id int64) (reference.Category, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, category := range store.categories {
		if category.ID == id {
			return category, true
		}
	}
	return reference.Category{}, false
}

// GenreByID looks a genre up by its numeric ID.
func (store *Memory) GenreByID(id int64) (reference.Genre, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, genre := range store.genres {
		if genre.ID == id {
			return genre, true
		}
	}
	return reference.Genre{}, false
}

func (store *Memory) ListGenres(_ context.Context, filter reference.Filter, params pagination.Params) ([]*reference.Genre, int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	all := make([]*reference.Genre, 0, len(store.genres))
	for _, genre := range store.genres {
		found := genre
		all = append(all, &found)
	}
	out, total := page(all, func(g *reference.Genre) string { return g.Name }, filter, params)
	return out, total, nil
}

func (store *Memory) FindGenres(_ context.Context, slugs []string) ([]*reference.Genre, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	out := make([]*reference.Genre, 0, len(slugs))
	for _, slug := range slugs {
		if genre, ok := store.genres[slug]; ok {
			out = append(out, &genre)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (store *Memory) CreateGenre(_ context.Context, genre *reference.Genre) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.genres[genre.Slug]; ok {
		return reference.SlugTaken("Genre")
	}
	store.nextID++
	genre.ID = store.nextID
	store.genres[genre.Slug] = *genre
	return nil
}

func (store *Memory) DeleteGenre(_ context.Context, slug string) error {
	store.mu.Lock()
	genre, ok := store.genres[slug]
	delete(store.genres, slug)
	store.mu.Unlock()

	if !ok {
		return apperr.NotFound("Genre")
	}
	if store.OnDeleteGenre != nil {
		store.OnDeleteGenre(genre.ID)
	}
	return nil
}
