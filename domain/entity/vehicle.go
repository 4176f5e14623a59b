package entity

import (
	"strings"
	"time"

	domainerr "github.com/fleettrack/fleettrack/domain/error"
)

type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "Available"
	VehicleInTransit   VehicleStatus = "InTransit"
	VehicleDelivered   VehicleStatus = "Delivered"
	VehicleMaintenance VehicleStatus = "Maintenance"
	VehicleRetired     VehicleStatus = "Retired"
)

const (
	vinLength    = 17
	minModelYear = 1886
)

type Vehicle struct {
	ID          string        `gorm:"primaryKey;size:36" json:"id"`
	VIN         string        `gorm:"column:vin;size:17;not null;uniqueIndex" json:"vin"`
	PlateNumber string        `gorm:"size:32;not null;uniqueIndex" json:"plateNumber"`
	Make        string        `gorm:"size:64;not null;index" json:"make"`
	Model       string        `gorm:"size:64;not null" json:"model"`
	Year        int           `gorm:"not null" json:"year"`
	Color       string        `gorm:"size:32" json:"color"`
	Status      VehicleStatus `gorm:"size:16;not null;index" json:"status"`
	OwnerID     *string       `gorm:"size:36;index" json:"ownerId"`
	LocationID  *string       `gorm:"size:36;index" json:"locationId"`
	SourceID    *string       `gorm:"size:36;index" json:"sourceId"`
	CreatedAt   time.Time     `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

func (Vehicle) TableName() string { return "vehicles" }

func (v *Vehicle) GetID() string { return v.ID }

func (v *Vehicle) AuditSnapshot() map[string]any {
	return map[string]any{
		"vin":         v.VIN,
		"plateNumber": v.PlateNumber,
		"make":        v.Make,
		"model":       v.Model,
		"year":        v.Year,
		"color":       v.Color,
		"status":      string(v.Status),
		"ownerId":     derefString(v.OwnerID),
		"locationId":  derefString(v.LocationID),
		"sourceId":    derefString(v.SourceID),
	}
}

// NormalizeVIN upper-cases and trims a VIN.
func NormalizeVIN(vin string) string {
	return strings.ToUpper(strings.TrimSpace(vin))
}

func (v *Vehicle) Validate() error {
	if err := required("vin", v.VIN); err != nil {
		return err
	}
	if len(v.VIN) != vinLength {
		return domainerr.ErrInvalidField("vin", "must be 17 characters")
	}
	if err := required("plateNumber", v.PlateNumber); err != nil {
		return err
	}
	if err := required("make", v.Make); err != nil {
		return err
	}
	if err := required("model", v.Model); err != nil {
		return err
	}
	if v.Year < minModelYear || v.Year > time.Now().Year()+1 {
		return domainerr.ErrInvalidField("year", "out of range")
	}
	return oneOf("status", v.Status, VehicleAvailable, VehicleInTransit, VehicleDelivered, VehicleMaintenance, VehicleRetired)
}
