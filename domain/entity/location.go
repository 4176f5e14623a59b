package entity

import "time"

type LocationType string

const (
	LocationWarehouse  LocationType = "Warehouse"
	LocationDepot      LocationType = "Depot"
	LocationPort       LocationType = "Port"
	LocationDealership LocationType = "Dealership"
	LocationOther      LocationType = "Other"
)

type Location struct {
	ID        string       `gorm:"primaryKey;size:36" json:"id"`
	Name      string       `gorm:"size:255;not null;index" json:"name"`
	Address   string       `gorm:"type:text" json:"address"`
	City      string       `gorm:"size:128;index" json:"city"`
	Country   string       `gorm:"size:128;index" json:"country"`
	Type      LocationType `gorm:"size:32;not null" json:"type"`
	Latitude  *float64     `json:"latitude"`
	Longitude *float64     `json:"longitude"`
	CreatedAt time.Time    `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

func (Location) TableName() string { return "locations" }

func (l *Location) GetID() string { return l.ID }

func (l *Location) AuditSnapshot() map[string]any {
	return map[string]any{
		"name":      l.Name,
		"address":   l.Address,
		"city":      l.City,
		"country":   l.Country,
		"type":      string(l.Type),
		"latitude":  derefFloat(l.Latitude),
		"longitude": derefFloat(l.Longitude),
	}
}

func (l *Location) Validate() error {
	if err := required("name", l.Name); err != nil {
		return err
	}
	if err := oneOf("type", l.Type, LocationWarehouse, LocationDepot, LocationPort, LocationDealership, LocationOther); err != nil {
		return err
	}
	if l.Latitude != nil && (*l.Latitude < -90 || *l.Latitude > 90) {
		return invalidCoordinate("latitude")
	}
	if l.Longitude != nil && (*l.Longitude < -180 || *l.Longitude > 180) {
		return invalidCoordinate("longitude")
	}
	return nil
}
