package dto

import (
	"math"
	"net/http"
	"rentdesk/shared/constant"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest reads page, limit, sort_by and sort_dir from the query string.
// Malformed or non-positive numbers are ignored. With paged set, a missing
// page or limit falls back to the defaults; without it the listing stays
// unpaged unless the caller asked for a limit.
func (q *QueryParams) FromRequest(r *http.Request, paged bool) {
	query := r.URL.Query()

	q.Page = min(positiveInt(query.Get(constant.RequestParamPage), q.Page), constant.MaxValuePage)
	q.Limit = min(positiveInt(query.Get(constant.RequestParamLimit), q.Limit), constant.MaxValueLimit)

	if sortBy := strings.TrimSpace(query.Get(constant.RequestParamSortBy)); sortBy != "" {
		q.SortBy = sortBy
	}

	switch dir := strings.ToUpper(query.Get(constant.RequestParamSortDir)); dir {
	case SortDirAsc, SortDirDesc:
		q.SortDir = dir
	}

	if !paged {
		return
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}
}

// Offset is the number of rows skipped before the current page. It saturates
// at math.MaxInt instead of overflowing.
func (q QueryParams) Offset() int {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}

	if q.Page-1 > math.MaxInt/q.Limit {
		return math.MaxInt
	}

	return (q.Page - 1) * q.Limit
}

// Sanitize replaces SortBy with the column mapped to it in allowed, falling back
// to the defaults when the requested key is unknown. SortBy ends up in ORDER BY
// verbatim, so it must never reach the repository unmapped.
func (q *QueryParams) Sanitize(allowed map[string]string, defaultSortBy, defaultSortDir string) {
	column, ok := allowed[strings.ToLower(q.SortBy)]
	if !ok {
		column = defaultSortBy
	}

	q.SortBy = column

	if q.SortDir == "" {
		q.SortDir = defaultSortDir
	}
}

func positiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}

	return value
}
