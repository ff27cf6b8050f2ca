package levenshtein

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	t.Parallel()

	var ctx Context

	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"lodash", "lodahs", 2},
		{"requests", "request", 1},
		{"flaw", "lawn", 2},
		{"日本語", "日本", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ctx.Distance(tt.a, tt.b), "%s -> %s", tt.a, tt.b)
		assert.Equal(t, tt.want, ctx.Distance(tt.b, tt.a), "%s -> %s", tt.b, tt.a)
	}
}

func TestClosest(t *testing.T) {
	t.Parallel()

	var ctx Context

	names := map[string]struct{}{"express": {}, "react": {}, "react-dom": {}, "lodash": {}}

	got, ok := ctx.Closest("expres", maps.Keys(names), 2)
	assert.True(t, ok)
	assert.Equal(t, "express", got)

	_, ok = ctx.Closest("react", maps.Keys(names), 2)
	assert.False(t, ok, "exact matches are not suggestions")

	_, ok = ctx.Closest("axios", maps.Keys(names), 2)
	assert.False(t, ok)
}

func TestClosest_TieBreaksLexically(t *testing.T) {
	t.Parallel()

	var ctx Context

	got, ok := ctx.Closest("cat", slices.Values([]string{"hat", "bat", "rat"}), 1)
	assert.True(t, ok)
	assert.Equal(t, "bat", got)
}

func TestClosest_CountsRunes(t *testing.T) {
	t.Parallel()

	var ctx Context

	got, ok := ctx.Closest("日本", slices.Values([]string{"日本語"}), 1)
	assert.True(t, ok)
	assert.Equal(t, "日本語", got)
}

func TestThreshold(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Threshold("pg"))
	assert.Equal(t, 1, Threshold("rails"))
	assert.Equal(t, 2, Threshold("requests"))
	assert.Equal(t, 2, Threshold("very-long-package-name"))
}
