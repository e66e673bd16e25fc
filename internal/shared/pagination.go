package shared

import "math"

// TotalPages returns how many pages of size perPage are needed for total items.
func TotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// Offset returns the zero-based row offset of a zero-indexed page. Offsets
// that would overflow saturate at math.MaxInt, which is past any real table.
func Offset(page, perPage int) int {
	if page <= 0 || perPage <= 0 {
		return 0
	}
	if page > math.MaxInt/perPage {
		return math.MaxInt
	}
	return page * perPage
}
