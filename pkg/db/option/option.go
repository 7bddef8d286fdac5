package option

import (
	"strings"

	"gorm.io/gorm"
)

// QueryOption mutates a query before it executes.
type QueryOption interface {
	Apply(db *gorm.DB) *gorm.DB
}

type queryFunc func(db *gorm.DB) *gorm.DB

func (f queryFunc) Apply(db *gorm.DB) *gorm.DB { return f(db) }

// OrderBy sorts on a column. Column names come from code, never from requests.
func OrderBy(column string, desc bool) QueryOption {
	return queryFunc(func(db *gorm.DB) *gorm.DB {
		column = strings.TrimSpace(column)
		if column == "" {
			return db
		}
		if desc {
			return db.Order(column + " DESC")
		}
		return db.Order(column + " ASC")
	})
}

func Limit(n int) QueryOption {
	return queryFunc(func(db *gorm.DB) *gorm.DB {
		if n <= 0 {
			return db
		}
		return db.Limit(n)
	})
}

// Where adds an extra condition on top of the struct filter.
func Where(query string, args ...any) QueryOption {
	return queryFunc(func(db *gorm.DB) *gorm.DB {
		return db.Where(query, args...)
	})
}
