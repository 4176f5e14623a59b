package audit

import (
	"github.com/fleettrack/fleettrack/domain"
	"github.com/fleettrack/fleettrack/domain/query"
)

const defaultAuditLimit = 50

// Schema is the list contract for audit entries.
var Schema = query.Schema{
	Entity:     "AuditLog",
	PrimaryKey: "id",
	SortFields: map[string]string{
		"timestamp":  "timestamp",
		"entityType": "entity_type",
		"action":     "action",
		"actorId":    "actor_id",
	},
	Filters: map[string]query.FilterSpec{
		"entityType": {Kind: query.FilterExact, Columns: []string{"entity_type"}, Normalize: normalizeEntityType},
		"entityId":   {Kind: query.FilterExact, Columns: []string{"entity_id"}},
		"actorId":    {Kind: query.FilterExact, Columns: []string{"actor_id"}},
		"action":     {Kind: query.FilterExact, Columns: []string{"action"}, Normalize: normalizeAction},
		"startDate":  {Kind: query.FilterFrom, Columns: []string{"timestamp"}},
		"endDate":    {Kind: query.FilterTo, Columns: []string{"timestamp"}},
		"search":     {Kind: query.FilterSearch, Columns: []string{"entity_type", "action", "actor_id"}},
	},
	DefaultSort:  query.Sort{Field: "timestamp", Order: query.OrderDesc},
	DefaultLimit: defaultAuditLimit,
}

func normalizeEntityType(v string) (string, bool) {
	t, ok := domain.ParseEntityType(v)
	return string(t), ok
}

func normalizeAction(v string) (string, bool) {
	a, ok := domain.ParseAuditAction(v)
	return string(a), ok
}
