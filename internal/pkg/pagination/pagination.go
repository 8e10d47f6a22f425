package pagination

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Normalize clamps a 1-based page and a page size to the values listings
// actually use.
func Normalize(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}
	return page, limit
}

// Offset is the row offset for an already normalized page.
func Offset(page, limit int) int {
	return (page - 1) * limit
}
