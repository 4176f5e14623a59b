package postgres

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fleettrack/fleettrack/domain/query"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Column names come from a query.Schema whitelist, never from request input.
func whereScope(plan query.Plan) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, c := range plan.Conditions {
			switch c.Kind {
			case query.FilterExact, query.FilterBool:
				db = db.Where(fmt.Sprintf("%s = ?", c.Columns[0]), c.Value)
			case query.FilterContains, query.FilterSearch:
				pattern := "%" + likeEscaper.Replace(fmt.Sprint(c.Value)) + "%"
				parts := make([]string, 0, len(c.Columns))
				args := make([]interface{}, 0, len(c.Columns))
				for _, col := range c.Columns {
					parts = append(parts, fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, col))
					args = append(args, pattern)
				}
				db = db.Where("("+strings.Join(parts, " OR ")+")", args...)
			case query.FilterFrom:
				db = db.Where(fmt.Sprintf("%s >= ?", c.Columns[0]), c.Value)
			case query.FilterTo:
				db = db.Where(fmt.Sprintf("%s <= ?", c.Columns[0]), c.Value)
			}
		}
		return db
	}
}

func orderScope(plan query.Plan) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, term := range plan.OrderBy {
			db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: term.Column}, Desc: term.Desc})
		}
		return db
	}
}

func pageScope(plan query.Plan) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(plan.Offset()).Limit(plan.Limit)
	}
}

// list runs the count and page queries for plan against model's table.
func list[T any](db *gorm.DB, model interface{}, plan query.Plan) ([]T, int64, error) {
	var total int64
	if err := db.Model(model).Scopes(whereScope(plan)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := []T{}
	if total == 0 || int64(plan.Offset()) >= total {
		return items, total, nil
	}
	if err := db.Model(model).Scopes(whereScope(plan), orderScope(plan), pageScope(plan)).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
