package pagination

// CalculateOffset converts a 1-based page number into the OFFSET value used
// by the repository queries: (page-1)*limit.
func CalculateOffset(page, limit int) int {
	return (page - 1) * limit
}

// CalculateTotalPages returns ceil(total/limit). An empty result set still
// counts as one page so that clients always have a valid page to request.
func CalculateTotalPages(total int64, limit int) int {
	if total == 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
