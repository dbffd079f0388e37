package httpapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePagination(t *testing.T) {
	cases := []struct {
		name      string
		page      int
		limit     int
		wantSkip  int
		wantLimit int
	}{
		{"defaults", 1, 10, 0, 10},
		{"second page", 2, 10, 10, 10},
		{"page floored at one", 0, 10, 0, 10},
		{"negative page", -5, 25, 0, 25},
		{"limit floored at one", 3, 0, 2, 1},
		{"limit clamped to hundred", 2, 500, 100, 100},
		{"large page", 40, 100, 3900, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			skip, limit := CalculatePagination(tc.page, tc.limit)
			assert.Equal(t, tc.wantSkip, skip)
			assert.Equal(t, tc.wantLimit, limit)
		})
	}
}

func TestCalculatePaginationBounds(t *testing.T) {
	for page := -3; page <= 5; page++ {
		for _, limit := range []int{-1, 0, 1, 10, 100, 101, 1000} {
			skip, clamped := CalculatePagination(page, limit)
			assert.GreaterOrEqual(t, clamped, 1)
			assert.LessOrEqual(t, clamped, 100)

			effectivePage := page
			if effectivePage < 1 {
				effectivePage = 1
			}
			assert.Equal(t, (effectivePage-1)*clamped, skip)
		}
	}
}
