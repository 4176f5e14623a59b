package fleet

import (
	"context"
	"strings"

	"github.com/fleettrack/fleettrack/application/port/inbound"
	"github.com/fleettrack/fleettrack/application/port/outbound"
	"github.com/fleettrack/fleettrack/domain"
	domainerr "github.com/fleettrack/fleettrack/domain/error"
	"github.com/fleettrack/fleettrack/domain/entity"
	"github.com/fleettrack/fleettrack/domain/query"
	"github.com/fleettrack/fleettrack/domain/valueobject"
)

var UserSchema = query.Schema{
	Entity:     "User",
	PrimaryKey: "id",
	SortFields: map[string]string{
		"name":      "name",
		"email":     "email",
		"role":      "role",
		"createdAt": "created_at",
	},
	Filters: map[string]query.FilterSpec{
		"role":       {Kind: query.FilterExact, Columns: []string{"role"}},
		"locationId": {Kind: query.FilterExact, Columns: []string{"location_id"}},
		"isActive":   {Kind: query.FilterBool, Columns: []string{"is_active"}},
		"search":     {Kind: query.FilterSearch, Columns: []string{"name", "email"}},
	},
	DefaultSort:  query.Sort{Field: "name", Order: query.OrderAsc},
	DefaultLimit: 10,
}

type UserUseCase = EntityUseCaseImpl[entity.User, *entity.User, inbound.CreateUserRequest, inbound.UpdateUserRequest]

type userMapper struct {
	passwords outbound.PasswordService
	locations outbound.ReferenceChecker
}

func (m userMapper) FromCreate(id string, req inbound.CreateUserRequest) (*entity.User, error) {
	u := entity.NewUser(id, req.Email, strings.TrimSpace(req.Name), valueobject.Role(strings.ToLower(strings.TrimSpace(req.Role))))
	u.LocationID = optionalRef(req.LocationID)
	if req.Password != "" {
		if err := m.setPassword(u, req.Password); err != nil {
			return nil, err
		}
	}
	return u, nil
}

func (m userMapper) ApplyUpdate(u *entity.User, req inbound.UpdateUserRequest) error {
	if req.Email != nil {
		u.Email = valueobject.NormalizeEmail(*req.Email)
	}
	setString(&u.Name, req.Name)
	if req.Role != nil {
		u.Role = valueobject.Role(strings.ToLower(strings.TrimSpace(*req.Role)))
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if req.LocationID != nil {
		u.LocationID = optionalRef(req.LocationID)
	}
	if req.Password != nil {
		return m.setPassword(u, *req.Password)
	}
	return nil
}

func (m userMapper) setPassword(u *entity.User, password string) error {
	if err := valueobject.ValidatePassword(password); err != nil {
		return err
	}
	hash, err := m.passwords.Hash(password)
	if err != nil {
		return domainerr.ErrInternalServerError("hash password", err)
	}
	u.PasswordHash = hash
	return nil
}

func (m userMapper) CheckReferences(ctx context.Context, u *entity.User) error {
	return checkReferences(ctx, reference{field: "locationId", id: u.LocationID, checker: m.locations})
}

// NewUserUseCase wires the user resource. Deleting a user deactivates it.
func NewUserUseCase(repo outbound.Repository[entity.User], locations outbound.ReferenceChecker, passwords outbound.PasswordService, deps Deps) *UserUseCase {
	return NewEntityUseCase[entity.User, *entity.User](Resource[entity.User, inbound.CreateUserRequest, inbound.UpdateUserRequest]{
		Name:       valueobject.ResourceUsers,
		EntityType: domain.EntityUser,
		Schema:     UserSchema,
		Mapper:     userMapper{passwords: passwords, locations: locations},
		SoftDelete: func(u *entity.User) { u.Deactivate() },
	}, repo, deps)
}

var _ inbound.EntityUseCase[entity.User, inbound.CreateUserRequest, inbound.UpdateUserRequest] = (*UserUseCase)(nil)
