package helpers

import "math"

const (
	DefaultPage = 1
)

var (
	// DefaultPageSize and MaxPageSize are overridden from config at startup
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ConfigurePageSizes sets the package page size bounds. Non-positive or
// inconsistent values are ignored.
func ConfigurePageSizes(defaultSize, maxSize int) {
	if defaultSize < 1 || maxSize < defaultSize {
		return
	}
	DefaultPageSize = defaultSize
	MaxPageSize = maxSize
}

// NormalizePage clamps a 1-based page number and page size to valid values.
// Missing values (zero) fall back to the defaults; sizes above the maximum
// are capped.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	switch {
	case limit <= 0:
		limit = DefaultPageSize
	case limit > MaxPageSize:
		limit = MaxPageSize
	}
	return page, limit
}

// CalculateOffsetLimit calculates the offset and limit for SQL queries based on 1-based page index.
// Offsets past the bigint range saturate at math.MaxInt64, which selects no rows.
func CalculateOffsetLimit(page, limit int) (offset uint64, size uint64) {
	page, limit = NormalizePage(page, limit)
	skipped := uint64(page - 1)
	size = uint64(limit)
	if skipped > math.MaxInt64/size {
		return math.MaxInt64, size
	}
	return skipped * size, size
}

// CalculateSliceIndices calculates the start and end indices for slicing an
// in-memory result for the given page.
func CalculateSliceIndices(page, limit, totalItems int) (start, end int) {
	page, limit = NormalizePage(page, limit)

	if totalItems <= 0 || page-1 >= (totalItems+limit-1)/limit {
		return totalItems, totalItems
	}
	start = (page - 1) * limit
	end = start + limit
	if end > totalItems {
		end = totalItems
	}
	return start, end
}
