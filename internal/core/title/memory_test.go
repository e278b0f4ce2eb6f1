// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title_test

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/taibuivan/yamdb/internal/core/reference"
	"github.com/taibuivan/yamdb/internal/core/reference/referencetest"
	"github.com/taibuivan/yamdb/internal/core/title"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// memoryTitles mirrors the relational behavior of core.title: deleting a
// category clears the reference, deleting a genre drops only its links.
type memoryTitles struct {
	mu       sync.Mutex
	nextID   int64
	records  map[int64]title.Record
	scores   map[int64][]int
	taxonomy *referencetest.Memory
}

func newMemoryTitles(taxonomy *referencetest.Memory) *memoryTitles {
	store := &memoryTitles{
		records:  map[int64]title.Record{},
		scores:   map[int64][]int{},
		taxonomy: taxonomy,
	}

	taxonomy.OnDeleteCategory = func(id int64) {
		store.mu.Lock()
		defer store.mu.Unlock()
		for key, record := range store.records {
			if record.CategoryID != nil && *record.CategoryID == id {
				record.CategoryID = nil
				store.records[key] = record
			}
		}
	}
	taxonomy.OnDeleteGenre = func(id int64) {
		store.mu.Lock()
		defer store.mu.Unlock()
		for key, record := range store.records {
			record.GenreIDs = slices.DeleteFunc(slices.Clone(record.GenreIDs), func(g int64) bool { return g == id })
			store.records[key] = record
		}
	}

	return store
}

func (store *memoryTitles) addScore(id int64, score int) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.scores[id] = append(store.scores[id], score)
}

func (store *memoryTitles) read(record title.Record) *title.Title {
	out := &title.Title{
		ID:          record.ID,
		Name:        record.Name,
		Year:        record.Year,
		Description: record.Description,
		Genres:      []reference.NamedSlug{},
	}

	if record.CategoryID != nil {
		if category, ok := store.taxonomy.CategoryByID(*record.CategoryID); ok {
			out.Category = &reference.NamedSlug{Name: category.Name, Slug: category.Slug}
		}
	}
	for _, id := range record.GenreIDs {
		if genre, ok := store.taxonomy.GenreByID(id); ok {
			out.Genres = append(out.Genres, genre.NamedSlug)
		}
	}
	sort.Slice(out.Genres, func(i, j int) bool { return out.Genres[i].Name < out.Genres[j].Name })

	var sum int64
	for _, score := range store.scores[record.ID] {
		sum += int64(score)
	}
	out.Rating = title.Rating(sum, int64(len(store.scores[record.ID])))

	return out
}

func (store *memoryTitles) List(_ context.Context, filter title.Filter, page pagination.Params) ([]*title.Title, int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	matches := make([]*title.Title, 0)
	for _, record := range store.records {
		item := store.read(record)

		if filter.Name != "" && !strings.Contains(strings.ToLower(item.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Year != 0 && item.Year != filter.Year {
			continue
		}
		if filter.Category != "" && (item.Category == nil || item.Category.Slug != filter.Category) {
			continue
		}
		if filter.Genre != "" && !slices.ContainsFunc(item.Genres, func(g reference.NamedSlug) bool { return g.Slug == filter.Genre }) {
			continue
		}
		matches = append(matches, item)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Name < matches[j].Name })

	total := len(matches)
	start := min(page.Offset(), total)
	end := min(start+page.Limit, total)
	return matches[start:end], total, nil
}

func (store *memoryTitles) FindByID(_ context.Context, id int64) (*title.Title, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	record, ok := store.records[id]
	if !ok {
		return nil, apperr.NotFound("Title")
	}
	return store.read(record), nil
}

func (store *memoryTitles) Create(_ context.Context, record *title.Record) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.nextID++
	record.ID = store.nextID
	store.records[record.ID] = *record
	return nil
}

func (store *memoryTitles) Update(_ context.Context, record *title.Record) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.records[record.ID]; !ok {
		return apperr.NotFound("Title")
	}
	store.records[record.ID] = *record
	return nil
}

func (store *memoryTitles) Delete(_ context.Context, id int64) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.records[id]; !ok {
		return apperr.NotFound("Title")
	}
	delete(store.records, id)
	return nil
}
