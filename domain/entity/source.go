package entity

import (
	"time"

	"github.com/fleettrack/fleettrack/domain/valueobject"
)

type SourceType string

const (
	SourceAuction SourceType = "Auction"
	SourceDealer  SourceType = "Dealer"
	SourceImport  SourceType = "Import"
	SourcePrivate SourceType = "Private"
	SourceOther   SourceType = "Other"
)

type SourceStatus string

const (
	SourceActive   SourceStatus = "Active"
	SourceInactive SourceStatus = "Inactive"
)

// Source is where a vehicle was acquired from.
type Source struct {
	ID           string       `gorm:"primaryKey;size:36" json:"id"`
	Name         string       `gorm:"size:255;not null;index" json:"name"`
	Type         SourceType   `gorm:"size:32;not null" json:"type"`
	ContactEmail string       `gorm:"size:255" json:"contactEmail"`
	Status       SourceStatus `gorm:"size:16;not null" json:"status"`
	CreatedAt    time.Time    `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

func (Source) TableName() string { return "sources" }

func (s *Source) GetID() string { return s.ID }

func (s *Source) AuditSnapshot() map[string]any {
	return map[string]any{
		"name":         s.Name,
		"type":         string(s.Type),
		"contactEmail": s.ContactEmail,
		"status":       string(s.Status),
	}
}

func (s *Source) Validate() error {
	if err := required("name", s.Name); err != nil {
		return err
	}
	if err := oneOf("type", s.Type, SourceAuction, SourceDealer, SourceImport, SourcePrivate, SourceOther); err != nil {
		return err
	}
	if s.ContactEmail != "" {
		if err := valueobject.ValidateEmail("contactEmail", s.ContactEmail); err != nil {
			return err
		}
	}
	return oneOf("status", s.Status, SourceActive, SourceInactive)
}
