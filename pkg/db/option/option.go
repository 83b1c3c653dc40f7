package option

import (
	"strings"

	"github.com/enervue/enervue/pkg/db/pagination"
	"gorm.io/gorm"
)

// Option mutates a gorm statement before execution.
type Option interface {
	Apply(stmt *gorm.DB) *gorm.DB
}

type optionFunc func(stmt *gorm.DB) *gorm.DB

func (f optionFunc) Apply(stmt *gorm.DB) *gorm.DB { return f(stmt) }

const (
	defaultPageSize = 50
	maxPageSize     = 250
)

// ApplyPagination applies cursor pagination. One extra row is fetched so the
// caller can detect whether more pages remain.
func ApplyPagination(page pagination.Pagination) Option {
	return optionFunc(func(stmt *gorm.DB) *gorm.DB {
		size := page.PageSize
		if size <= 0 {
			size = defaultPageSize
		}
		if size > maxPageSize {
			size = maxPageSize
		}

		if token := strings.TrimSpace(page.PageToken); token != "" {
			cursor, err := pagination.DecodeCursor(token)
			if err == nil && cursor.CreatedAt != "" {
				stmt = stmt.Where("created_at < ?", cursor.CreatedAt)
			}
		}

		return stmt.Limit(size + 1)
	})
}
