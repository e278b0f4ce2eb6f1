// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/pagination"
	"github.com/taibuivan/yamdb/pkg/slice"
	"github.com/taibuivan/yamdb/pkg/slug"
)

// # Service Layer

// Service orchestrates business rules for categories and genres.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new reference [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// SlugTaken reports a create whose slug already exists for the resource.
func SlugTaken(resource string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   FieldSlug,
		Message: fmt.Sprintf("%s with this slug already exists", resource),
	})
}

// normalize validates input and derives the slug from the name when absent.
func normalize(input Input) (NamedSlug, error) {
	input.Name = strings.TrimSpace(input.Name)

	if err := validate.Struct(input); err != nil {
		return NamedSlug{}, err
	}

	if input.Slug == "" {
		input.Slug = slug.From(input.Name)
		if input.Slug == "" {
			return NamedSlug{}, validate.RequiredError(FieldSlug, "A slug could not be derived from the name; provide one")
		}
	}

	return NamedSlug{Name: input.Name, Slug: input.Slug}, nil
}

// # Category Methods

/*
ListCategories returns a page of categories ordered by name.

Parameters:
  - context: context.Context
  - filter: Filter
  - page: pagination.Params

Returns:
  - []*Category: The page
  - int: Total matches
  - error: Retrieval failures
*/
func (service *Service) ListCategories(context context.Context, filter Filter, page pagination.Params) ([]*Category, int, error) {
	return service.repo.ListCategories(context, filter, page)
}

// CategoryBySlug returns the category with the given slug.
func (service *Service) CategoryBySlug(context context.Context, slug string) (*Category, error) {
	return service.repo.FindCategory(context, slug)
}

/*
CreateCategory validates and persists a new category.

Returns:
  - *Category: The persisted category
  - error: ValidationError (including a taken slug)
*/
func (service *Service) CreateCategory(context context.Context, input Input) (*Category, error) {
	entry, err := normalize(input)
	if err != nil {
		return nil, err
	}

	category := &Category{NamedSlug: entry}
	if err := service.repo.CreateCategory(context, category); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "category_created", slog.String("slug", category.Slug))
	return category, nil
}

// DeleteCategory removes the category with the given slug.
func (service *Service) DeleteCategory(context context.Context, slug string) error {
	if err := service.repo.DeleteCategory(context, slug); err != nil {
		return err
	}

	service.logger.InfoContext(context, "category_deleted", slog.String("slug", slug))
	return nil
}

// # Genre Methods

// ListGenres returns a page of genres ordered by name.
func (service *Service) ListGenres(context context.Context, filter Filter, page pagination.Params) ([]*Genre, int, error) {
	return service.repo.ListGenres(context, filter, page)
}

/*
GenresBySlugs resolves every slug to a genre.

Description: Duplicates are collapsed. A slug without a genre fails the
whole lookup with a validation error naming it, under the "genre" field.

Returns:
  - []*Genre: The genres, ordered by name
  - error: ValidationError for unknown slugs
*/
func (service *Service) GenresBySlugs(context context.Context, slugs []string) ([]*Genre, error) {
	slugs = slice.Dedupe(slugs)
	if len(slugs) == 0 {
		return []*Genre{}, nil
	}

	genres, err := service.repo.FindGenres(context, slugs)
	if err != nil {
		return nil, err
	}

	found := make(map[string]bool, len(genres))
	for _, genre := range genres {
		found[genre.Slug] = true
	}

	validator := &validate.Validator{}
	for _, s := range slugs {
		validator.Custom("genre", !found[s], fmt.Sprintf("Unknown genre slug %q", s))
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return genres, nil
}

/*
CreateGenre validates and persists a new genre.

Returns:
  - *Genre: The persisted genre
  - error: ValidationError (including a taken slug)
*/
func (service *Service) CreateGenre(context context.Context, input Input) (*Genre, error) {
	entry, err := normalize(input)
	if err != nil {
		return nil, err
	}

	genre := &Genre{NamedSlug: entry}
	if err := service.repo.CreateGenre(context, genre); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "genre_created", slog.String("slug", genre.Slug))
	return genre, nil
}

// DeleteGenre removes the genre with the given slug.
func (service *Service) DeleteGenre(context context.Context, slug string) error {
	if err := service.repo.DeleteGenre(context, slug); err != nil {
		return err
	}

	service.logger.InfoContext(context, "genre_deleted", slog.String("slug", slug))
	return nil
}
