package domain

import "math"

// SortOrder names the field results are ordered by. The zero value orders
// by id ascending.
type SortOrder struct {
	Field string
	Desc  bool
}

// PageRequest selects a window of results. Page is zero-based.
type PageRequest struct {
	Page     int
	PageSize int
	Sort     SortOrder
}

// Unreachable reports whether the window starts past the largest
// addressable offset. Such a window is always empty.
func (r PageRequest) Unreachable() bool {
	return r.PageSize > 0 && r.Page > math.MaxInt/r.PageSize
}

// Offset returns the number of matching records skipped before the window.
// It saturates at math.MaxInt instead of overflowing.
func (r PageRequest) Offset() int {
	if r.Unreachable() {
		return math.MaxInt
	}
	return r.Page * r.PageSize
}
