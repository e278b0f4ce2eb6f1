// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreGenreTitleTable represents the 'core.genretitle' link table
type CoreGenreTitleTable struct {
	Table   string
	TitleID string
	GenreID string
}

// CoreGenreTitle is the schema definition for core.genretitle
var CoreGenreTitle = CoreGenreTitleTable{
	Table:   "core.genretitle",
	TitleID: "titleid",
	GenreID: "genreid",
}
