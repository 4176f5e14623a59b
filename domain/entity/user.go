package entity

import (
	"time"

	"github.com/fleettrack/fleettrack/domain/valueobject"
)

// User is an admin-console account. Users are deactivated rather than deleted.
type User struct {
	ID           string           `gorm:"primaryKey;size:36" json:"id"`
	Email        string           `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Name         string           `gorm:"size:255;not null;index" json:"name"`
	Role         valueobject.Role `gorm:"size:16;not null;index" json:"role"`
	IsActive     bool             `gorm:"not null;index" json:"isActive"`
	LocationID   *string          `gorm:"size:36;index" json:"locationId"`
	PasswordHash string           `gorm:"size:255" json:"-"`
	CreatedAt    time.Time        `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

func NewUser(id, email, name string, role valueobject.Role) *User {
	return &User{
		ID:       id,
		Email:    valueobject.NormalizeEmail(email),
		Name:     name,
		Role:     role,
		IsActive: true,
	}
}

func (User) TableName() string { return "users" }

func (u *User) GetID() string { return u.ID }

// AuditSnapshot never includes the password hash.
func (u *User) AuditSnapshot() map[string]any {
	return map[string]any{
		"email":      u.Email,
		"name":       u.Name,
		"role":       string(u.Role),
		"isActive":   u.IsActive,
		"locationId": derefString(u.LocationID),
	}
}

func (u *User) Validate() error {
	if err := valueobject.ValidateEmail("email", u.Email); err != nil {
		return err
	}
	if err := required("name", u.Name); err != nil {
		return err
	}
	if !u.Role.Valid() {
		return invalidRole(string(u.Role))
	}
	return nil
}

// Deactivate is the soft delete for users.
func (u *User) Deactivate() {
	u.IsActive = false
}
