// Package pagination slices ordered result sets into fixed-size pages.
package pagination

// PageSize is the fixed number of items per feed page. It is deliberately
// not configurable per request.
const PageSize = 10

// Page describes one page of an ordered result set.
type Page struct {
	Number     int   `json:"number"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`

	// Offset and Limit are the LIMIT/OFFSET window for the storage query.
	Offset int `json:"-"`
	Limit  int `json:"-"`
}

// Paginate resolves the requested page number against a total item count.
//
// A missing or invalid page number defaults to 1 and out-of-range numbers
// clamp to the nearest valid page rather than erroring; this mirrors the
// paginator semantics callers depend on. An empty result set still yields
// page 1 of 1.
func Paginate(requested int, totalItems int64) Page {
	if requested < 1 {
		requested = 1
	}

	totalPages := int((totalItems + PageSize - 1) / PageSize)
	if totalPages < 1 {
		totalPages = 1
	}
	if requested > totalPages {
		requested = totalPages
	}

	return Page{
		Number:     requested,
		TotalItems: totalItems,
		TotalPages: totalPages,
		HasPrev:    requested > 1,
		HasNext:    requested < totalPages,
		Offset:     (requested - 1) * PageSize,
		Limit:      PageSize,
	}
}
