package helpers

import (
	"net/http"
	"strconv"
	"strings"

	"eventdesk/internal/domain"
)

// Pagination query parameter defaults and limits.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParsePagination reads page, page_size, sort_by, and sort_dir from the
// request query string, clamps them to valid ranges, and returns
// domain.PaginationParams. Invalid or missing values fall back to defaults;
// unknown sort fields are passed through and resolved against the
// repository's whitelist.
func ParsePagination(r *http.Request) domain.PaginationParams {
	page := DefaultPage
	if s := r.URL.Query().Get("page"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			page = v
		}
	}
	pageSize := DefaultPageSize
	if s := r.URL.Query().Get("page_size"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			pageSize = v
			if pageSize > MaxPageSize {
				pageSize = MaxPageSize
			}
		}
	}
	sortDir := domain.SortAsc
	if strings.EqualFold(r.URL.Query().Get("sort_dir"), "desc") {
		sortDir = domain.SortDesc
	}
	return domain.PaginationParams{
		Page:     page,
		PageSize: pageSize,
		SortBy:   strings.TrimSpace(r.URL.Query().Get("sort_by")),
		SortDir:  sortDir,
	}
}

// PaginationMeta is the pagination metadata included in paginated list responses.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPaginationMeta builds PaginationMeta from the current page, page size, and total count.
// TotalPages is computed as ceiling(total / pageSize); if pageSize is 0, TotalPages is 0.
func NewPaginationMeta(p domain.PaginationParams, total int) PaginationMeta {
	totalPages := 0
	if p.PageSize > 0 {
		totalPages = (total + p.PageSize - 1) / p.PageSize
	}
	return PaginationMeta{
		Page:       p.Page,
		PageSize:   p.PageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
