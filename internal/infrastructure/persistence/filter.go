package persistence

import (
	"strings"

	"github.com/partsflow/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applyPagination applies page/page size bounds to a query
func applyPagination(db *gorm.DB, filter shared.Filter) *gorm.DB {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}
	return db.Offset((page - 1) * pageSize).Limit(pageSize)
}

// applyOrdering applies sort options against a whitelist of column names.
// Unknown columns fall back to created_at to keep user input out of SQL.
func applyOrdering(db *gorm.DB, filter shared.Filter, allowed map[string]bool) *gorm.DB {
	column := strings.ToLower(filter.OrderBy)
	if column == "" || !allowed[column] {
		column = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(filter.OrderDir, "asc") {
		dir = "ASC"
	}
	return db.Order(column + " " + dir)
}

// normalizePage returns the effective page and page size used by applyPagination
func normalizePage(filter shared.Filter) (page, pageSize int) {
	page = filter.Page
	if page < 1 {
		page = 1
	}
	pageSize = filter.PageSize
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}
	return page, pageSize
}
