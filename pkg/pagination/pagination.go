package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 9
	// MaxLimit caps how many rows any page can request.
	MaxLimit = 100
)

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// PageCount returns ceil(total/size). An empty list has zero pages.
func PageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// ClampPage keeps a 1-based page number inside [1, max(1, pages)].
func ClampPage(page, pages int) int {
	if page < 1 {
		return 1
	}
	if pages < 1 {
		return 1
	}
	if page > pages {
		return pages
	}
	return page
}

// Slice returns items[(page-1)*size : page*size], clamped to the bounds of items.
// Pages outside the list yield an empty slice.
func Slice[T any](items []T, page, size int) []T {
	if page < 1 || size <= 0 {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
