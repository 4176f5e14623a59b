package fleet

import (
	"context"
	"strings"

	"github.com/fleettrack/fleettrack/application/port/outbound"
	domainerr "github.com/fleettrack/fleettrack/domain/error"
)

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func setEnum[E ~string](dst *E, src *string) {
	if src != nil {
		*dst = E(strings.TrimSpace(*src))
	}
}

// optionalRef maps a missing or blank id to nil.
func optionalRef(id *string) *string {
	if id == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*id)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func orDefault[E ~string](value string, def E) E {
	if v := strings.TrimSpace(value); v != "" {
		return E(v)
	}
	return def
}

type reference struct {
	field   string
	id      *string
	checker outbound.ReferenceChecker
}

func checkReferences(ctx context.Context, refs ...reference) error {
	for _, ref := range refs {
		if ref.id == nil || ref.checker == nil {
			continue
		}
		ok, err := ref.checker.Exists(ctx, *ref.id)
		if err != nil {
			return err
		}
		if !ok {
			return domainerr.ErrInvalidReference(ref.field, *ref.id)
		}
	}
	return nil
}
