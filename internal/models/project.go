package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PricingHourly  = "hourly"
	PricingMonthly = "monthly"
	PricingFixed   = "fixed"
)

const (
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
	ProjectStatusOnHold    = "on-hold"
	ProjectStatusCancelled = "cancelled"
)

// Project belongs to exactly one Client. Exactly one of Rate, MonthlyRate,
// FixedRate is meaningful, selected by PricingType.
type Project struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string    `gorm:"type:uuid;not null;index" json:"user_id"`
	ClientID    string    `gorm:"type:uuid;not null;index" json:"client_id"`
	Client      Client    `gorm:"foreignKey:ClientID" json:"client"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	PricingType string    `gorm:"not null;default:'hourly'" json:"pricing_type"`
	Rate        float64   `json:"rate"` // hourly rate
	MonthlyRate float64   `json:"monthly_rate"`
	FixedRate   float64   `json:"fixed_rate"`
	Status      string    `gorm:"not null;default:'active'" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.PricingType == "" {
		p.PricingType = PricingHourly
	}
	if p.Status == "" {
		p.Status = ProjectStatusActive
	}
	return nil
}

// HourlyRate returns the project's hourly rate, or 0 when the project is not
// billed by the hour. Fixed and monthly projects never contribute to
// duration-based billing.
func (p *Project) HourlyRate() float64 {
	if p.PricingType != PricingHourly {
		return 0
	}
	return p.Rate
}

// FlatRate returns the flat amount for monthly and fixed projects.
func (p *Project) FlatRate() float64 {
	switch p.PricingType {
	case PricingMonthly:
		return p.MonthlyRate
	case PricingFixed:
		return p.FixedRate
	}
	return 0
}

func ValidPricingType(s string) bool {
	switch s {
	case PricingHourly, PricingMonthly, PricingFixed:
		return true
	}
	return false
}

func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectStatusActive, ProjectStatusCompleted, ProjectStatusOnHold, ProjectStatusCancelled:
		return true
	}
	return false
}
