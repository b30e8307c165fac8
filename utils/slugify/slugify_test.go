package slugify_test

import (
	"testing"

	"uptown/utils/slugify"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"Sector 48", "sector-48"},
		{"  Golf Course Road  ", "golf-course-road"},
		{"Bed & Breakfast", "bed-and-breakfast"},
		{"UPPER case", "upper-case"},
		{"already-a-slug", "already-a-slug"},
		{"multi   space", "multi-space"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, slugify.Make(tc.input))
		})
	}
}

func TestMakeIsIdempotent(t *testing.T) {
	t.Parallel()

	once := slugify.Make("Whitefield Phase 2")
	assert.Equal(t, once, slugify.Make(once))
}

func TestIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, slugify.IsValid("gurgaon"))
	assert.True(t, slugify.IsValid("sector-48"))
	assert.False(t, slugify.IsValid(""))
	assert.False(t, slugify.IsValid("Has Space"))
	assert.False(t, slugify.IsValid("UPPER"))
}
