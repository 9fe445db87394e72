package curriculum

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"Simple", "Linear Algebra", "linear-algebra"},
		{"AlreadySlug", "linear-algebra", "linear-algebra"},
		{"PunctuationRuns", "Go: Concurrency & Channels!", "go-concurrency-channels"},
		{"LeadingTrailing", "  Data Structures  ", "data-structures"},
		{"Digits", "Calculus 101", "calculus-101"},
		{"Empty", "", ""},
		{"OnlySymbols", "!!!", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in))
		})
	}
}

func TestUniqueSlug(t *testing.T) {
	t.Run("FreeBaseIsKept", func(t *testing.T) {
		slug, err := UniqueSlug("calculus", func(s string) (bool, error) {
			return false, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "calculus", slug)
	})

	t.Run("AppendsSuffixUntilFree", func(t *testing.T) {
		taken := map[string]bool{"calculus": true, "calculus-2": true}
		slug, err := UniqueSlug("calculus", func(s string) (bool, error) {
			return taken[s], nil
		})
		require.NoError(t, err)
		assert.Equal(t, "calculus-3", slug)
	})

	t.Run("PropagatesLookupError", func(t *testing.T) {
		boom := errors.New("db down")
		_, err := UniqueSlug("calculus", func(s string) (bool, error) {
			return false, boom
		})
		assert.ErrorIs(t, err, boom)
	})
}

func TestResolveOrder(t *testing.T) {
	t.Run("ExplicitWins", func(t *testing.T) {
		assert.Equal(t, 7, ResolveOrder(7, 3))
	})

	t.Run("UnsetGoesAfterLastSibling", func(t *testing.T) {
		assert.Equal(t, 4, ResolveOrder(0, 3))
	})

	t.Run("UnsetOnEmptyParentIsFirst", func(t *testing.T) {
		assert.Equal(t, 1, ResolveOrder(0, 0))
	})

	t.Run("NegativeTreatedAsUnset", func(t *testing.T) {
		assert.Equal(t, 3, ResolveOrder(-1, 2))
	})
}
