package pagination

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamsNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   int
		want int
	}{
		{"zero defaults", 0, DefaultLimit},
		{"negative defaults", -5, DefaultLimit},
		{"in range kept", 7, 7},
		{"max kept", MaxLimit, MaxLimit},
		{"over max clamped", MaxLimit + 1, MaxLimit},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Params{Limit: tc.in}
			p.Normalize()
			assert.Equal(t, tc.want, p.Limit)
		})
	}
}

func TestCut(t *testing.T) {
	rows := func(n int) []string {
		items := make([]string, n)
		for i := range items {
			items[i] = fmt.Sprintf("row-%d", i)
		}
		return items
	}
	ident := func(s string) string { return s }

	t.Run("short page has no cursor", func(t *testing.T) {
		page := Cut(rows(3), 5, ident)
		assert.Len(t, page.Items, 3)
		assert.Empty(t, page.NextCursor)
	})

	t.Run("exact page has no cursor", func(t *testing.T) {
		page := Cut(rows(5), 5, ident)
		assert.Len(t, page.Items, 5)
		assert.Empty(t, page.NextCursor)
	})

	t.Run("overfull page trims and points at last returned row", func(t *testing.T) {
		page := Cut(rows(6), 5, ident)
		assert.Len(t, page.Items, 5)
		assert.Equal(t, "row-4", page.NextCursor)
	})

	t.Run("empty input", func(t *testing.T) {
		page := Cut(rows(0), 5, ident)
		assert.Empty(t, page.Items)
		assert.Empty(t, page.NextCursor)
	})
}
