package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/fleettrack/fleettrack/application/port/outbound"
	domainerr "github.com/fleettrack/fleettrack/domain/error"
	"github.com/fleettrack/fleettrack/domain/entity"
	"github.com/fleettrack/fleettrack/domain/query"
)

// EntityRepository is the GORM store for any entity model keyed by a string "id".
type EntityRepository[T any] struct {
	db   *gorm.DB
	name string
}

func NewEntityRepository[T any](db *gorm.DB, name string) *EntityRepository[T] {
	return &EntityRepository[T]{db: db, name: name}
}

func NewOwnerRepository(db *gorm.DB) *EntityRepository[entity.Owner] {
	return NewEntityRepository[entity.Owner](db, "Owner")
}

func NewLocationRepository(db *gorm.DB) *EntityRepository[entity.Location] {
	return NewEntityRepository[entity.Location](db, "Location")
}

func NewSourceRepository(db *gorm.DB) *EntityRepository[entity.Source] {
	return NewEntityRepository[entity.Source](db, "Source")
}

func NewVehicleRepository(db *gorm.DB) *EntityRepository[entity.Vehicle] {
	return NewEntityRepository[entity.Vehicle](db, "Vehicle")
}

func NewUserRepository(db *gorm.DB) *EntityRepository[entity.User] {
	return NewEntityRepository[entity.User](db, "User")
}

func (r *EntityRepository[T]) Create(ctx context.Context, e *T) error {
	if err := conn(ctx, r.db).Create(e).Error; err != nil {
		return writeError(r.name, "create "+r.name, err)
	}
	return nil
}

// Update writes every column of e, zero values included.
func (r *EntityRepository[T]) Update(ctx context.Context, e *T) error {
	res := conn(ctx, r.db).Model(e).Select("*").Updates(e)
	if res.Error != nil {
		return writeError(r.name, "update "+r.name, res.Error)
	}
	if res.RowsAffected == 0 {
		return domainerr.ErrEntityNotFound(r.name, idOf(e))
	}
	return nil
}

func (r *EntityRepository[T]) Delete(ctx context.Context, id string) error {
	res := conn(ctx, r.db).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		if isForeignKeyViolation(res.Error) {
			return domainerr.ErrInUse(r.name, res.Error)
		}
		return storeError("delete "+r.name, res.Error)
	}
	if res.RowsAffected == 0 {
		return domainerr.ErrEntityNotFound(r.name, id)
	}
	return nil
}

func (r *EntityRepository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	var e T
	if err := conn(ctx, r.db).Where("id = ?", id).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerr.ErrEntityNotFound(r.name, id)
		}
		return nil, storeError("find "+r.name, err)
	}
	return &e, nil
}

func (r *EntityRepository[T]) Exists(ctx context.Context, id string) (bool, error) {
	var n int64
	if err := conn(ctx, r.db).Model(new(T)).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, storeError("exists "+r.name, err)
	}
	return n > 0, nil
}

func (r *EntityRepository[T]) List(ctx context.Context, plan query.Plan) ([]T, int64, error) {
	items, total, err := list[T](conn(ctx, r.db), new(T), plan)
	if err != nil {
		return nil, 0, storeError("list "+r.name, err)
	}
	return items, total, nil
}

func idOf(e interface{}) string {
	if ent, ok := e.(entity.Entity); ok {
		return ent.GetID()
	}
	return ""
}

var (
	_ outbound.Repository[entity.Owner]    = (*EntityRepository[entity.Owner])(nil)
	_ outbound.Repository[entity.Location] = (*EntityRepository[entity.Location])(nil)
	_ outbound.Repository[entity.Source]   = (*EntityRepository[entity.Source])(nil)
	_ outbound.Repository[entity.Vehicle]  = (*EntityRepository[entity.Vehicle])(nil)
	_ outbound.Repository[entity.User]     = (*EntityRepository[entity.User])(nil)
)
