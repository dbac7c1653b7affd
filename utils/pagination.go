package utils

import (
	"math"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageRequest is an offset based page selection.
type PageRequest struct {
	Page  int
	Limit int
}

// ParsePageRequest reads page and limit query values. Missing, malformed or
// non-positive values fall back to the defaults.
func ParsePageRequest(pageStr, limitStr string) PageRequest {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = DefaultPage
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Pagination struct {
	CurrentPage int
	TotalPages  int
	Total       int64
	HasNext     bool
	HasPrev     bool
}

func NewPagination(req PageRequest, total int64) Pagination {
	totalPages := int(math.Ceil(float64(total) / float64(req.Limit)))
	return Pagination{
		CurrentPage: req.Page,
		TotalPages:  totalPages,
		Total:       total,
		HasNext:     req.Page < totalPages,
		HasPrev:     req.Page > 1,
	}
}

// JSON renders the metadata block; totalKey names the record count, e.g.
// "total_orders" or "total_products".
func (p Pagination) JSON(totalKey string) map[string]any {
	return map[string]any{
		"current_page": p.CurrentPage,
		"total_pages":  p.TotalPages,
		totalKey:       p.Total,
		"has_next":     p.HasNext,
		"has_prev":     p.HasPrev,
	}
}
