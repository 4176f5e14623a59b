package query

import (
	"sort"
	"strconv"
	"strings"
	"time"

	domainerr "github.com/fleettrack/fleettrack/domain/error"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// FilterKind decides how a filter value turns into a predicate.
type FilterKind int

const (
	// FilterExact is column = value.
	FilterExact FilterKind = iota
	// FilterContains is a case-insensitive substring match on one column.
	FilterContains
	// FilterSearch is a case-insensitive substring match OR-ed across columns.
	FilterSearch
	// FilterFrom is an inclusive lower time bound.
	FilterFrom
	// FilterTo is an inclusive upper time bound. A date-only value covers the whole day.
	FilterTo
	// FilterBool is column = true|false.
	FilterBool
)

// FilterSpec describes one accepted filter key.
type FilterSpec struct {
	Kind    FilterKind
	Columns []string
	// Normalize rewrites a raw value before use, returning false when it is not acceptable.
	Normalize func(string) (string, bool)
}

// Schema is the per-entity list contract: which fields sort, which keys filter, and the defaults.
type Schema struct {
	Entity       string
	PrimaryKey   string
	SortFields   map[string]string
	Filters      map[string]FilterSpec
	DefaultSort  Sort
	DefaultLimit int
	MaxLimit     int
}

// Condition is a compiled filter. Value is a string, bool or time.Time depending on Kind;
// for Contains and Search it is already lower-cased.
type Condition struct {
	Kind    FilterKind
	Columns []string
	Value   any
}

// OrderTerm is one ORDER BY column.
type OrderTerm struct {
	Column string
	Desc   bool
}

// Plan is a validated, store-agnostic list query.
type Plan struct {
	Conditions []Condition
	OrderBy    []OrderTerm
	Page       int
	Limit      int
}

// Offset is the number of matching rows before the requested page.
func (p Plan) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Compile validates req against the schema and resolves defaults.
func (s Schema) Compile(req PageRequest) (Plan, error) {
	page, limit, err := s.pagination(req.Pagination)
	if err != nil {
		return Plan{}, err
	}

	orderBy, err := s.orderBy(req.Sort)
	if err != nil {
		return Plan{}, err
	}

	conditions, err := s.conditions(req.Filters)
	if err != nil {
		return Plan{}, err
	}

	return Plan{
		Conditions: conditions,
		OrderBy:    orderBy,
		Page:       page,
		Limit:      limit,
	}, nil
}

func (s Schema) pagination(p Pagination) (int, int, error) {
	page := p.Page
	if page < 0 {
		return 0, 0, domainerr.ErrInvalidPagination("page", page)
	}
	if page == 0 {
		page = DefaultPage
	}

	limit := p.Limit
	if limit < 0 {
		return 0, 0, domainerr.ErrInvalidPagination("limit", limit)
	}
	if limit == 0 {
		limit = s.DefaultLimit
		if limit <= 0 {
			limit = DefaultLimit
		}
	}

	maxLimit := s.MaxLimit
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit, nil
}

func (s Schema) orderBy(requested *Sort) ([]OrderTerm, error) {
	effective := s.DefaultSort
	if requested != nil {
		if requested.Field != "" {
			effective.Field = requested.Field
			effective.Order = requested.Order
		} else if requested.Order != "" {
			effective.Order = requested.Order
		}
	}

	var desc bool
	switch Order(strings.ToLower(string(effective.Order))) {
	case "", OrderAsc:
	case OrderDesc:
		desc = true
	default:
		return nil, domainerr.ErrInvalidField("order", "must be asc or desc")
	}

	column, ok := s.SortFields[effective.Field]
	if !ok {
		return nil, domainerr.ErrInvalidSortField(s.Entity, effective.Field)
	}

	terms := []OrderTerm{{Column: column, Desc: desc}}
	if s.PrimaryKey != "" && column != s.PrimaryKey {
		terms = append(terms, OrderTerm{Column: s.PrimaryKey})
	}
	return terms, nil
}

type timeRange struct {
	from, to *time.Time
}

func (s Schema) conditions(filters Filters) ([]Condition, error) {
	keys := make([]string, 0, len(filters))
	for key := range filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var conditions []Condition
	ranges := map[string]*timeRange{}

	for _, key := range keys {
		spec, ok := s.Filters[key]
		if !ok || len(spec.Columns) == 0 {
			continue
		}
		raw := strings.TrimSpace(filters[key])
		if raw == "" {
			continue
		}
		if spec.Normalize != nil {
			normalized, ok := spec.Normalize(raw)
			if !ok {
				return nil, domainerr.ErrInvalidFilter(key, raw)
			}
			raw = normalized
		}

		cond := Condition{Kind: spec.Kind, Columns: spec.Columns}
		switch spec.Kind {
		case FilterExact:
			cond.Value = raw
		case FilterContains, FilterSearch:
			cond.Value = strings.ToLower(raw)
		case FilterBool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return nil, domainerr.ErrInvalidFilter(key, raw)
			}
			cond.Value = b
		case FilterFrom, FilterTo:
			bound, err := ParseTimeBound(raw, spec.Kind == FilterTo)
			if err != nil {
				return nil, domainerr.ErrInvalidFilter(key, raw)
			}
			cond.Value = bound

			column := spec.Columns[0]
			r := ranges[column]
			if r == nil {
				r = &timeRange{}
				ranges[column] = r
			}
			if spec.Kind == FilterFrom {
				r.from = &bound
			} else {
				r.to = &bound
			}
		default:
			continue
		}
		conditions = append(conditions, cond)
	}

	for column, r := range ranges {
		if r.from != nil && r.to != nil && r.from.After(*r.to) {
			return nil, domainerr.ErrInvalidField(column, "start of range is after its end")
		}
	}
	return conditions, nil
}

// ParseTimeBound accepts RFC 3339 timestamps or YYYY-MM-DD dates. A date used as an
// upper bound is extended to the last instant of that day. Results are UTC.
func ParseTimeBound(value string, upper bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), nil
	}
	day, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, err
	}
	if upper {
		return day.Add(24*time.Hour - time.Nanosecond).UTC(), nil
	}
	return day.UTC(), nil
}
