// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema holds the table and column names of the relational schema,
// so that queries are assembled from one source of truth.
package schema

// CoreCategoryTable represents the 'core.category' table
type CoreCategoryTable struct {
	Table          string
	ID             string
	Name           string
	Slug           string
	SlugConstraint string
}

// CoreCategory is the schema definition for core.category
var CoreCategory = CoreCategoryTable{
	Table:          "core.category",
	ID:             "id",
	Name:           "name",
	Slug:           "slug",
	SlugConstraint: "uq_category_slug",
}

func (t CoreCategoryTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug}
}
