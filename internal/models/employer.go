package models

import "time"

// Employer профиль работодателя.
type Employer struct {
	ID            string     `json:"id" yaml:"id"`
	CompanyName   string     `json:"company_name" yaml:"company_name"`
	ContactName   string     `json:"contact_name" yaml:"contact_name"`
	Phone         string     `json:"phone" yaml:"phone"`
	Email         string     `json:"email" yaml:"email"`
	Logo          string     `json:"logo" yaml:"logo"`
	Industry      string     `json:"industry" yaml:"industry"`
	Location      string     `json:"location" yaml:"location"`
	AverageRating float64    `json:"average_rating" yaml:"average_rating"`
	ReviewCount   int        `json:"review_count" yaml:"review_count"`
	IsPremium     bool       `json:"is_premium" yaml:"is_premium"`
	PremiumUntil  *time.Time `json:"premium_until,omitempty" yaml:"premium_until,omitempty"`
	CreatedAt     time.Time  `json:"created_at" yaml:"created_at"`
}
