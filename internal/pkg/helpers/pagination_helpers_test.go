package helpers

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int
		wantPage    int
		wantLimit   int
	}{
		{"defaults", 0, 0, 1, DefaultPageSize},
		{"negative page", -3, 5, 1, 5},
		{"capped limit", 2, MaxPageSize + 50, 2, MaxPageSize},
		{"in range", 4, 25, 4, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := NormalizePage(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestCalculateOffsetLimit(t *testing.T) {
	offset, size := CalculateOffsetLimit(3, 20)
	assert.Equal(t, uint64(40), offset)
	assert.Equal(t, uint64(20), size)
}

func TestCalculateOffsetLimitSaturatesHugePages(t *testing.T) {
	offset, size := CalculateOffsetLimit(math.MaxInt, 100)
	assert.Equal(t, uint64(math.MaxInt64), offset)
	assert.Equal(t, uint64(100), size)

	offset, _ = CalculateOffsetLimit(math.MaxInt/100+1, 100)
	assert.Equal(t, uint64(math.MaxInt/100)*100, offset)
}

func TestCalculateSliceIndices(t *testing.T) {
	start, end := CalculateSliceIndices(2, 10, 15)
	assert.Equal(t, 10, start)
	assert.Equal(t, 15, end)

	start, end = CalculateSliceIndices(5, 10, 15)
	assert.Equal(t, 15, start)
	assert.Equal(t, 15, end)

	start, end = CalculateSliceIndices(math.MaxInt, 100, 15)
	assert.Equal(t, 15, start)
	assert.Equal(t, 15, end)

	start, end = CalculateSliceIndices(1, 10, 0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestConfigurePageSizesIgnoresInvalid(t *testing.T) {
	prevDefault, prevMax := DefaultPageSize, MaxPageSize
	t.Cleanup(func() { DefaultPageSize, MaxPageSize = prevDefault, prevMax })

	ConfigurePageSizes(50, 10)
	assert.Equal(t, prevDefault, DefaultPageSize)
	assert.Equal(t, prevMax, MaxPageSize)

	ConfigurePageSizes(20, 200)
	assert.Equal(t, 20, DefaultPageSize)
	assert.Equal(t, 200, MaxPageSize)
}
