// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yamdb/internal/platform/postgres"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "drama", postgres.EscapeLike("drama"))
	assert.Equal(t, `100\%`, postgres.EscapeLike("100%"))
	assert.Equal(t, `a\_b`, postgres.EscapeLike("a_b"))
	assert.Equal(t, `c:\\tmp`, postgres.EscapeLike(`c:\tmp`))
}
