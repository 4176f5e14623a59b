package domain

import (
	"encoding/json"
	"reflect"
	"sort"
	"strings"
	"time"
)

// EntityType names an audited entity.
type EntityType string

const (
	EntityVehicle  EntityType = "Vehicle"
	EntityOwner    EntityType = "Owner"
	EntityLocation EntityType = "Location"
	EntityUser     EntityType = "User"
	EntitySource   EntityType = "Source"
)

var entityTypes = []EntityType{EntityVehicle, EntityOwner, EntityLocation, EntityUser, EntitySource}

// ParseEntityType accepts the canonical name in any case, and the plural resource name.
func ParseEntityType(s string) (EntityType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range entityTypes {
		name := strings.ToLower(string(t))
		if s == name || s == name+"s" {
			return t, true
		}
	}
	return "", false
}

func (t EntityType) Valid() bool {
	for _, known := range entityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// AuditAction is the kind of mutation an entry records.
type AuditAction string

const (
	ActionCreate AuditAction = "CREATE"
	ActionUpdate AuditAction = "UPDATE"
	ActionDelete AuditAction = "DELETE"
)

func ParseAuditAction(s string) (AuditAction, bool) {
	switch a := AuditAction(strings.ToUpper(strings.TrimSpace(s))); a {
	case ActionCreate, ActionUpdate, ActionDelete:
		return a, true
	}
	return "", false
}

// FieldChange holds one field's value before and after a mutation.
type FieldChange struct {
	Before any `json:"before,omitempty"`
	After  any `json:"after,omitempty"`
}

// AuditEntry is an immutable record of one mutation.
type AuditEntry struct {
	ID         string                 `json:"id"`
	EntityType EntityType             `json:"entityType"`
	EntityID   string                 `json:"entityId"`
	Action     AuditAction            `json:"action"`
	ActorID    *string                `json:"actorId"`
	Changes    map[string]FieldChange `json:"changes"`
	Timestamp  time.Time              `json:"timestamp"`
}

// BuildChanges computes the changes map for action.
// CREATE keeps every after field, DELETE every before field, UPDATE only fields that differ.
func BuildChanges(action AuditAction, before, after map[string]any) map[string]FieldChange {
	switch action {
	case ActionCreate:
		changes := make(map[string]FieldChange, len(after))
		for k, v := range normalizeState(after) {
			changes[k] = FieldChange{After: v}
		}
		return changes
	case ActionDelete:
		changes := make(map[string]FieldChange, len(before))
		for k, v := range normalizeState(before) {
			changes[k] = FieldChange{Before: v}
		}
		return changes
	default:
		return DiffStates(before, after)
	}
}

// DiffStates returns the fields whose JSON-normalised values differ. A key present on
// only one side counts as changed.
func DiffStates(before, after map[string]any) map[string]FieldChange {
	b := normalizeState(before)
	a := normalizeState(after)

	changes := make(map[string]FieldChange)
	for _, k := range unionKeys(b, a) {
		bv, inBefore := b[k]
		av, inAfter := a[k]
		if inBefore && inAfter && reflect.DeepEqual(bv, av) {
			continue
		}
		changes[k] = FieldChange{Before: bv, After: av}
	}
	return changes
}

// ChangedFields lists the keys of changes in sorted order.
func ChangedFields(changes map[string]FieldChange) []string {
	keys := make([]string, 0, len(changes))
	for k := range changes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// normalizeState round-trips a state through JSON so that equal values compare equal
// regardless of their Go type (int vs float64, time.Time vs string, typed strings).
func normalizeState(state map[string]any) map[string]any {
	if state == nil {
		return map[string]any{}
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return state
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return state
	}
	return out
}

func unionKeys(maps ...map[string]any) []string {
	seen := map[string]struct{}{}
	var keys []string
	for _, m := range maps {
		for k := range m {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
