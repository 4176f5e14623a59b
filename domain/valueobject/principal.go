package valueobject

import (
	domainerr "github.com/fleettrack/fleettrack/domain/error"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleOperator Role = "operator"
	RoleViewer   Role = "viewer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleOperator, RoleViewer:
		return true
	}
	return false
}

// Resources gated by capabilities.
const (
	ResourceVehicles  = "vehicles"
	ResourceOwners    = "owners"
	ResourceLocations = "locations"
	ResourceUsers     = "users"
	ResourceSources   = "sources"
	ResourceAudit     = "audit"
)

type Verb string

const (
	VerbRead   Verb = "read"
	VerbWrite  Verb = "write"
	VerbDelete Verb = "delete"
)

// Capability is "<resource>:<verb>".
type Capability string

func Can(resource string, verb Verb) Capability {
	return Capability(resource + ":" + string(verb))
}

var fleetResources = []string{ResourceVehicles, ResourceOwners, ResourceLocations, ResourceSources}

func roleCapabilities(role Role) map[Capability]struct{} {
	caps := map[Capability]struct{}{}
	grant := func(resource string, verbs ...Verb) {
		for _, v := range verbs {
			caps[Can(resource, v)] = struct{}{}
		}
	}

	switch role {
	case RoleAdmin:
		for _, r := range append(fleetResources, ResourceUsers) {
			grant(r, VerbRead, VerbWrite, VerbDelete)
		}
		grant(ResourceAudit, VerbRead)
	case RoleManager:
		for _, r := range fleetResources {
			grant(r, VerbRead, VerbWrite, VerbDelete)
		}
		grant(ResourceUsers, VerbRead)
		grant(ResourceAudit, VerbRead)
	case RoleOperator:
		for _, r := range fleetResources {
			grant(r, VerbRead)
		}
		grant(ResourceVehicles, VerbWrite)
		grant(ResourceOwners, VerbWrite)
	case RoleViewer:
		for _, r := range fleetResources {
			grant(r, VerbRead)
		}
	}
	return caps
}

// Principal is the authenticated caller every service operation requires.
// An empty UserID marks a system caller (seed jobs); its audit entries carry no actor.
type Principal struct {
	UserID       string
	Email        string
	Role         Role
	capabilities map[Capability]struct{}
}

func NewPrincipal(userID, email string, role Role) *Principal {
	return &Principal{
		UserID:       userID,
		Email:        email,
		Role:         role,
		capabilities: roleCapabilities(role),
	}
}

// SystemPrincipal has admin capabilities and no actor id.
func SystemPrincipal() *Principal {
	return NewPrincipal("", "", RoleAdmin)
}

func (p *Principal) Has(c Capability) bool {
	if p == nil {
		return false
	}
	_, ok := p.capabilities[c]
	return ok
}

// ActorID is the id recorded on audit entries, nil for system callers.
func (p *Principal) ActorID() *string {
	if p == nil || p.UserID == "" {
		return nil
	}
	id := p.UserID
	return &id
}

// Authorize returns Unauthorized for a nil principal and Forbidden when c is missing.
func Authorize(p *Principal, c Capability) error {
	if p == nil {
		return domainerr.ErrUnauthenticated("no principal")
	}
	if !p.Has(c) {
		return domainerr.ErrMissingCapability(string(c))
	}
	return nil
}
