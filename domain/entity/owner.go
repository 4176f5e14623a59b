package entity

import (
	"time"

	"github.com/fleettrack/fleettrack/domain/valueobject"
)

type OwnerStatus string

const (
	OwnerActive   OwnerStatus = "Active"
	OwnerInactive OwnerStatus = "Inactive"
)

type Owner struct {
	ID        string      `gorm:"primaryKey;size:36" json:"id"`
	Name      string      `gorm:"size:255;not null;index" json:"name"`
	Email     string      `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Phone     string      `gorm:"size:64" json:"phone"`
	Company   string      `gorm:"size:255" json:"company"`
	Address   string      `gorm:"type:text" json:"address"`
	Status    OwnerStatus `gorm:"size:16;not null;index" json:"status"`
	CreatedAt time.Time   `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func (Owner) TableName() string { return "owners" }

func (o *Owner) GetID() string { return o.ID }

func (o *Owner) AuditSnapshot() map[string]any {
	return map[string]any{
		"name":    o.Name,
		"email":   o.Email,
		"phone":   o.Phone,
		"company": o.Company,
		"address": o.Address,
		"status":  string(o.Status),
	}
}

func (o *Owner) Validate() error {
	if err := required("name", o.Name); err != nil {
		return err
	}
	if err := valueobject.ValidateEmail("email", o.Email); err != nil {
		return err
	}
	return oneOf("status", o.Status, OwnerActive, OwnerInactive)
}
