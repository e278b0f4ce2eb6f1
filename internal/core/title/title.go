// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package title manages the catalogue of creative works.

A title carries a name, a release year, an optional description, an optional
[reference.Category] and any number of [reference.Genre] entries. Its rating
is the mean of its review scores and is computed on every read; it is never
stored.

# Serialization

Reads embed the category and genres as {name, slug} objects. Writes name them
by slug only.
*/
package title

import (
	"github.com/taibuivan/yamdb/internal/core/reference"
)

// # Domain Entities

// Title is the read representation of a catalogued work.
type Title struct {
	ID          int64                 `json:"id"`
	Name        string                `json:"name"`
	Year        int                   `json:"year"`
	Rating      *float64              `json:"rating"`
	Description *string               `json:"description"`
	Genres      []reference.NamedSlug `json:"genre"`
	Category    *reference.NamedSlug  `json:"category"`
}

// Record is the write representation: taxonomies are already resolved to IDs.
type Record struct {
	ID          int64
	Name        string
	Year        int
	Description *string
	CategoryID  *int64
	GenreIDs    []int64
}

// Rating returns the mean score, or nil when there are no reviews.
func Rating(sum, count int64) *float64 {
	if count == 0 {
		return nil
	}
	mean := float64(sum) / float64(count)
	return &mean
}

// # Search Params

// Filter holds the optional title list filters. Zero values disable a filter.
type Filter struct {
	Genre    string // genre slug
	Category string // category slug
	Name     string // case-insensitive substring
	Year     int
}

// # Request Payloads

// CreateInput is the payload of POST /titles.
type CreateInput struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Year        *int     `json:"year" validate:"required"`
	Description *string  `json:"description"`
	Genre       []string `json:"genre"`
	Category    *string  `json:"category"`
}

// UpdateInput is the payload of PATCH /titles/{title_id}. Absent fields keep
// their stored value; an explicit null category clears it.
type UpdateInput struct {
	Name        *string   `json:"name" validate:"omitempty,max=256"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Genre       *[]string `json:"genre"`
	Category    Optional  `json:"category"`
}

// # Field Identifiers

const (
	FieldName     = "name"
	FieldYear     = "year"
	FieldGenre    = "genre"
	FieldCategory = "category"
)
