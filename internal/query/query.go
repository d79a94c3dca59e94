// Package query implements the generic filter/sort/paginate contract shared
// by list endpoints.
package query

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	defaultOrder = "created_at DESC"
)

type Params struct {
	Page     int
	PageSize int
	Sort     string
	Q        string
}

// ParseParams reads page/page_size/sort/q, clamping pagination to page >= 1
// and page_size within [1,100].
func ParseParams(ctx *gin.Context) Params {
	params := Params{
		Page:     parseInt(ctx.Query("page"), 1),
		PageSize: parseInt(ctx.Query("page_size"), DefaultPageSize),
		Sort:     ctx.Query("sort"),
		Q:        strings.TrimSpace(ctx.Query("q")),
	}

	if params.Page < 1 {
		params.Page = 1
	}

	if params.PageSize < 1 {
		params.PageSize = DefaultPageSize
	}

	if params.PageSize > MaxPageSize {
		params.PageSize = MaxPageSize
	}

	return params
}

// OrderClause translates a "field:direction" sort spec into an ORDER BY
// clause using the collection's column whitelist. Unknown fields or malformed
// specs fall back silently to newest-first by creation time.
func OrderClause(sort string, allowed map[string]string) string {
	if sort == "" {
		return defaultOrder
	}

	parts := strings.SplitN(sort, ":", 2)

	if len(parts) != 2 {
		return defaultOrder
	}

	column, ok := allowed[parts[0]]

	if !ok {
		return defaultOrder
	}

	if strings.EqualFold(parts[1], "desc") {
		return column + " DESC"
	}

	return column + " ASC"
}

// Search applies case-insensitive substring matching over the designated text
// columns of the collection.
func Search(tx *gorm.DB, q string, columns ...string) *gorm.DB {
	if q == "" || len(columns) == 0 {
		return tx
	}

	pattern := "%" + strings.ToLower(q) + "%"

	// Parenthesized so the OR chain stays isolated from preceding filters.
	clause := "(LOWER(" + columns[0] + ") LIKE ?"
	args := []interface{}{pattern}

	for _, column := range columns[1:] {
		clause += " OR LOWER(" + column + ") LIKE ?"
		args = append(args, pattern)
	}

	return tx.Where(clause+")", args...)
}

// Paginate counts the full match set, then fetches the requested page into
// dest with the given ordering. The total lets callers compute has_next.
func Paginate(tx *gorm.DB, order string, params Params, dest interface{}) (int64, error) {
	var total int64

	// Count runs on its own session so it does not taint the statement the
	// page fetch reuses.
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, err
	}

	offset := (params.Page - 1) * params.PageSize

	if err := tx.Order(order).Limit(params.PageSize).Offset(offset).Find(dest).Error; err != nil {
		return 0, err
	}

	return total, nil
}

func parseInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(raw)

	if err != nil {
		return fallback
	}

	return parsed
}
