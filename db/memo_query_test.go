package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoQueryNormalize(t *testing.T) {
	cases := []struct {
		name     string
		page     int
		size     int
		wantPage int
		wantSize int
	}{
		{"defaults", 0, 0, 1, 10},
		{"negative values", -3, -1, 1, 10},
		{"zero limit from a bad query param", 1, 0, 1, 10},
		{"oversized limit", 2, 500, 2, 10},
		{"in range untouched", 3, 25, 3, 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := MemoQuery{Page: tc.page, Size: tc.size}
			q.Normalize()
			assert.Equal(t, tc.wantPage, q.Page)
			assert.Equal(t, tc.wantSize, q.Size)
			assert.NotZero(t, q.Size, "size is a pagination divisor and must never be zero")
		})
	}
}

func TestMemoQueryOrderClause(t *testing.T) {
	cases := []struct {
		name      string
		sortBy    string
		sortOrder string
		want      string
	}{
		{"defaults to newest updates first", "", "", "updated_at DESC"},
		{"title ascending", "title", "asc", "title ASC"},
		{"created descending", "createdAt", "desc", "created_at DESC"},
		{"unknown column falls back", "password", "asc", "updated_at ASC"},
		{"unknown direction falls back", "title", "sideways", "title DESC"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := MemoQuery{SortBy: tc.sortBy, SortOrder: tc.sortOrder}
			assert.Equal(t, tc.want, q.orderClause())
		})
	}
}
