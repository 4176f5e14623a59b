package domain

import (
	"testing"
	"time"
)

func TestDiffStatesOnlyChangedFields(t *testing.T) {
	before := map[string]any{"status": "InTransit", "year": 2020, "color": "red"}
	after := map[string]any{"status": "Delivered", "year": 2020, "color": "red"}

	changes := DiffStates(before, after)

	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d: %v", len(changes), changes)
	}
	c, ok := changes["status"]
	if !ok {
		t.Fatalf("expected status change")
	}
	if c.Before != "InTransit" || c.After != "Delivered" {
		t.Errorf("unexpected change %+v", c)
	}
}

func TestDiffStatesKeyIffDifferent(t *testing.T) {
	type plate string
	before := map[string]any{
		"a": 1,
		"b": plate("X1"),
		"c": []string{"x"},
		"d": nil,
		"e": "gone",
	}
	after := map[string]any{
		"a": float64(1),
		"b": "X1",
		"c": []string{"x", "y"},
		"d": "set",
		"f": "new",
	}

	changes := DiffStates(before, after)

	for _, same := range []string{"a", "b"} {
		if _, ok := changes[same]; ok {
			t.Errorf("%s should be treated as unchanged", same)
		}
	}
	for _, diff := range []string{"c", "d", "e", "f"} {
		if _, ok := changes[diff]; !ok {
			t.Errorf("%s should be recorded as changed", diff)
		}
	}
}

func TestDiffStatesNormalizesTimes(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	changes := DiffStates(
		map[string]any{"deliveredAt": at},
		map[string]any{"deliveredAt": at.Format(time.RFC3339)},
	)
	if len(changes) != 0 {
		t.Errorf("expected no changes, got %v", changes)
	}
}

func TestBuildChangesCreateRecordsFullAfterState(t *testing.T) {
	after := map[string]any{"name": "Acme", "status": "Active"}

	changes := BuildChanges(ActionCreate, nil, after)

	if len(changes) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(changes))
	}
	for k, v := range after {
		if changes[k].After != v || changes[k].Before != nil {
			t.Errorf("field %s: unexpected change %+v", k, changes[k])
		}
	}
}

func TestBuildChangesDeleteRecordsBeforeState(t *testing.T) {
	before := map[string]any{"name": "Acme"}

	changes := BuildChanges(ActionDelete, before, nil)

	if changes["name"].Before != "Acme" || changes["name"].After != nil {
		t.Errorf("unexpected change %+v", changes["name"])
	}
}

func TestParseEntityType(t *testing.T) {
	cases := map[string]EntityType{
		"Vehicle":  EntityVehicle,
		"vehicles": EntityVehicle,
		"OWNER":    EntityOwner,
		" user ":   EntityUser,
	}
	for in, want := range cases {
		got, ok := ParseEntityType(in)
		if !ok || got != want {
			t.Errorf("ParseEntityType(%q) = %q, %v", in, got, ok)
		}
	}
	if _, ok := ParseEntityType("ticket"); ok {
		t.Errorf("ticket is not an audited entity")
	}
	if EntityType("vehicles").Valid() {
		t.Errorf("only canonical names are valid")
	}
}

func TestParseAuditAction(t *testing.T) {
	if a, ok := ParseAuditAction("update"); !ok || a != ActionUpdate {
		t.Errorf("expected UPDATE, got %q", a)
	}
	if _, ok := ParseAuditAction("PATCH"); ok {
		t.Errorf("PATCH is not an audit action")
	}
}

func TestChangedFieldsSorted(t *testing.T) {
	got := ChangedFields(map[string]FieldChange{"status": {}, "color": {}})
	if len(got) != 2 || got[0] != "color" || got[1] != "status" {
		t.Errorf("unexpected order %v", got)
	}
}
