// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/yamdb/internal/core/title"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/social/review"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// knownTitles is a [review.TitleFinder] over a fixed set of IDs.
type knownTitles map[int64]bool

func (titles knownTitles) Get(_ context.Context, id int64) (*title.Title, error) {
	if !titles[id] {
		return nil, apperr.NotFound("Title")
	}
	return &title.Title{ID: id}, nil
}

// memoryReviews enforces the (author, title) uniqueness inside one critical
// section, the way the database constraint does.
type memoryReviews struct {
	mu       sync.Mutex
	nextID   int64
	clock    time.Time
	reviews  map[int64]review.Review
	comments map[int64]review.Comment
}

func newMemoryReviews() *memoryReviews {
	return &memoryReviews{
		clock:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		reviews:  map[int64]review.Review{},
		comments: map[int64]review.Comment{},
	}
}

func (store *memoryReviews) stamp() (int64, time.Time) {
	store.nextID++
	store.clock = store.clock.Add(time.Minute)
	return store.nextID, store.clock
}

func (store *memoryReviews) ListReviews(_ context.Context, titleID int64, page pagination.Params) ([]*review.Review, int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	out := make([]*review.Review, 0)
	for _, item := range store.reviews {
		if item.TitleID == titleID {
			found := item
			out = append(out, &found)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PubDate.After(out[j].PubDate) })

	total := len(out)
	start := min(page.Offset(), total)
	end := min(start+page.Limit, total)
	return out[start:end], total, nil
}

func (store *memoryReviews) FindReview(_ context.Context, titleID, reviewID int64) (*review.Review, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	item, ok := store.reviews[reviewID]
	if !ok || item.TitleID != titleID {
		return nil, apperr.NotFound("Review")
	}
	return &item, nil
}

func (store *memoryReviews) HasReview(_ context.Context, titleID int64, authorID string) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, item := range store.reviews {
		if item.TitleID == titleID && item.AuthorID == authorID {
			return true, nil
		}
	}
	return false, nil
}

func (store *memoryReviews) CreateReview(_ context.Context, item *review.Review) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, existing := range store.reviews {
		if existing.TitleID == item.TitleID && existing.AuthorID == item.AuthorID {
			return apperr.DuplicateReview()
		}
	}
	item.ID, item.PubDate = store.stamp()
	store.reviews[item.ID] = *item
	return nil
}

func (store *memoryReviews) UpdateReview(_ context.Context, item *review.Review) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.reviews[item.ID]; !ok {
		return apperr.NotFound("Review")
	}
	store.reviews[item.ID] = *item
	return nil
}

func (store *memoryReviews) DeleteReview(_ context.Context, reviewID int64) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.reviews[reviewID]; !ok {
		return apperr.NotFound("Review")
	}
	delete(store.reviews, reviewID)
	for id, comment := range store.comments {
		if comment.ReviewID == reviewID {
			delete(store.comments, id)
		}
	}
	return nil
}

func (store *memoryReviews) ListComments(_ context.Context, reviewID int64, page pagination.Params) ([]*review.Comment, int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	out := make([]*review.Comment, 0)
	for _, item := range store.comments {
		if item.ReviewID == reviewID {
			found := item
			out = append(out, &found)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PubDate.After(out[j].PubDate) })

	total := len(out)
	start := min(page.Offset(), total)
	end := min(start+page.Limit, total)
	return out[start:end], total, nil
}

func (store *memoryReviews) FindComment(_ context.Context, reviewID, commentID int64) (*review.Comment, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	item, ok := store.comments[commentID]
	if !ok || item.ReviewID != reviewID {
		return nil, apperr.NotFound("Comment")
	}
	return &item, nil
}

func (store *memoryReviews) CreateComment(_ context.Context, item *review.Comment) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	item.ID, item.PubDate = store.stamp()
	store.comments[item.ID] = *item
	return nil
}

func (store *memoryReviews) UpdateComment(_ context.Context, item *review.Comment) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.comments[item.ID]; !ok {
		return apperr.NotFound("Comment")
	}
	store.comments[item.ID] = *item
	return nil
}

func (store *memoryReviews) DeleteComment(_ context.Context, commentID int64) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.comments[commentID]; !ok {
		return apperr.NotFound("Comment")
	}
	delete(store.comments, commentID)
	return nil
}
