package engine

const (
	DefaultPageSize = 10
	maxPageSize     = 200
)

// Page is one table slice plus the clamped pagination state.
type Page struct {
	Rows       []Row `json:"rows"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
	TotalRows  int   `json:"total_rows"`
}

// Paginate slices the sorted/filtered rows. totalPages is at least 1
// even for an empty set, and the requested page is clamped into
// [1, totalPages] so a shrinking filtered set never leaves the page
// pointing past the end.
func Paginate(rows []Row, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	totalRows := len(rows)
	totalPages := (totalRows + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > totalRows {
		start = totalRows
	}
	if end > totalRows {
		end = totalRows
	}

	return Page{
		Rows:       rows[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalRows:  totalRows,
	}
}
