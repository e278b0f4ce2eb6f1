// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/yamdb/internal/core/reference"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/pagination"
	"github.com/taibuivan/yamdb/pkg/slice"
)

// Taxonomies resolves the slugs carried by title payloads.
type Taxonomies interface {
	CategoryBySlug(context context.Context, slug string) (*reference.Category, error)
	GenresBySlugs(context context.Context, slugs []string) ([]*reference.Genre, error)
}

// # Service Layer

// Service orchestrates business rules for titles.
type Service struct {
	repo       Repository
	taxonomies Taxonomies
	now        func() time.Time
	logger     *slog.Logger
}

// NewService constructs a new title [Service].
func NewService(repo Repository, taxonomies Taxonomies, logger *slog.Logger) *Service {
	return &Service{repo: repo, taxonomies: taxonomies, now: time.Now, logger: logger}
}

// WithClock returns a copy of the service that validates years against now.
func (service *Service) WithClock(now func() time.Time) *Service {
	clone := *service
	clone.now = now
	return &clone
}

// # Read Methods

// List returns a page of titles matching filter.
func (service *Service) List(context context.Context, filter Filter, page pagination.Params) ([]*Title, int, error) {
	titles, total, err := service.repo.List(context, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("title_service_list_failed: %w", err)
	}
	return titles, total, nil
}

// Get returns the title with the given ID.
func (service *Service) Get(context context.Context, id int64) (*Title, error) {
	return service.repo.FindByID(context, id)
}

// # Write Methods

/*
Create validates the payload, resolves its slugs and persists a new title.

Returns:
  - *Title: The stored title as it will be read back
  - error: ValidationError (including unknown slugs and future years)
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Title, error) {
	input.Name = strings.TrimSpace(input.Name)

	validator := &validate.Validator{}
	validator.Struct(input)
	if input.Year != nil {
		validator.YearNotFuture(FieldYear, *input.Year, service.now())
	}
	for _, genreSlug := range input.Genre {
		validator.Slug(FieldGenre, genreSlug)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	record := &Record{
		Name:        input.Name,
		Year:        *input.Year,
		Description: input.Description,
	}

	if err := service.resolve(context, record, input.Category, input.Genre); err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, record); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "title_created", slog.Int64("title_id", record.ID))
	return service.repo.FindByID(context, record.ID)
}

/*
Update applies a partial update.

Description: Fields missing from the payload keep their stored value. The
stored genres and category are re-resolved from their slugs so the write
always replaces the full state.

Returns:
  - *Title: The updated title
  - error: NotFound or ValidationError
*/
func (service *Service) Update(context context.Context, id int64, input UpdateInput) (*Title, error) {
	current, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Struct(input)
	if input.Name != nil {
		validator.Required(FieldName, strings.TrimSpace(*input.Name))
	}
	if input.Year != nil {
		validator.YearNotFuture(FieldYear, *input.Year, service.now())
	}
	if input.Genre != nil {
		for _, genreSlug := range *input.Genre {
			validator.Slug(FieldGenre, genreSlug)
		}
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	record := &Record{
		ID:          current.ID,
		Name:        current.Name,
		Year:        current.Year,
		Description: current.Description,
	}
	if input.Name != nil {
		record.Name = strings.TrimSpace(*input.Name)
	}
	if input.Year != nil {
		record.Year = *input.Year
	}
	if input.Description != nil {
		record.Description = input.Description
	}

	category := input.Category.Value
	if !input.Category.Set && current.Category != nil {
		category = &current.Category.Slug
	}

	genres := slice.Map(current.Genres, func(genre reference.NamedSlug) string { return genre.Slug })
	if input.Genre != nil {
		genres = *input.Genre
	}

	if err := service.resolve(context, record, category, genres); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, record); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "title_updated", slog.Int64("title_id", record.ID))
	return service.repo.FindByID(context, record.ID)
}

// Delete removes the title with the given ID.
func (service *Service) Delete(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.InfoContext(context, "title_deleted", slog.Int64("title_id", id))
	return nil
}

// resolve turns the category and genre slugs into IDs on record.
func (service *Service) resolve(context context.Context, record *Record, categorySlug *string, genreSlugs []string) error {
	if categorySlug != nil && *categorySlug != "" {
		category, err := service.taxonomies.CategoryBySlug(context, *categorySlug)
		if err != nil {
			if apperr.IsNotFound(err) {
				return validate.RequiredError(FieldCategory, fmt.Sprintf("Unknown category slug %q", *categorySlug))
			}
			return err
		}
		record.CategoryID = &category.ID
	}

	genres, err := service.taxonomies.GenresBySlugs(context, genreSlugs)
	if err != nil {
		return err
	}
	record.GenreIDs = slice.Map(genres, func(genre *reference.Genre) int64 { return genre.ID })

	return nil
}
