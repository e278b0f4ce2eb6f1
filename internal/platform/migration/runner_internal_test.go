// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertToPgx5DSN(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@db:5432/yamdb":  "pgx5://u:p@db:5432/yamdb",
		"postgresql://u:p@db/yamdb?x=1": "pgx5://u:p@db/yamdb?x=1",
		"pgx5://u:p@db/yamdb":           "pgx5://u:p@db/yamdb",
		"host=db user=u dbname=yamdb":   "host=db user=u dbname=yamdb",
	}

	for in, want := range tests {
		assert.Equal(t, want, convertToPgx5DSN(in), in)
	}
}
