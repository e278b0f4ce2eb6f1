// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reference manages the taxonomies that classify titles: categories
and genres.

Both are a name plus a unique slug. The slug is the external key used in
URLs and in title payloads; the numeric identifier never leaves the server.

# Access Control

  - Public: listing and search.
  - Admin: creation and deletion.

Deleting a category clears the reference on its titles. Deleting a genre
removes only the links to it.
*/
package reference

// # Taxonomy Domain

// NamedSlug is the shared shape of every taxonomy entry.
type NamedSlug struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Category is the single broad class of a title (book, film, music...).
type Category struct {
	ID int64 `json:"-"`
	NamedSlug
}

// Genre is one of the many tags a title can carry.
type Genre struct {
	ID int64 `json:"-"`
	NamedSlug
}

// # Search Params

// Filter narrows a taxonomy listing.
type Filter struct {
	// Search matches names containing the value, case-insensitively.
	Search string
}

// # Request Payloads

// Input is the payload of POST /categories and POST /genres. An empty slug
// is derived from the name.
type Input struct {
	Name string `json:"name" validate:"required,max=256"`
	Slug string `json:"slug" validate:"omitempty,max=50,slug"`
}

// # Field Identifiers

const (
	FieldName = "name"
	FieldSlug = "slug"
)
