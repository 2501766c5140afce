package domain

// NormalizePage clamps listing parameters: page starts at 1, pageSize
// defaults to DefaultPageSize and never exceeds MaxPageSize.
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// PageOffset returns the number of rows to skip for page
func PageOffset(page, pageSize int) int {
	return (page - 1) * pageSize
}
