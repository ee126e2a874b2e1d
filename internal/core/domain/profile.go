package domain

import (
	"errors"
	"time"
)

var ErrProfileNotFound = errors.New("profile not found")

// Business types selectable during onboarding.
const (
	BusinessFreelancer = "freelancer"
	BusinessAgency     = "agency"
	BusinessConsultant = "consultant"
	BusinessOther      = "other"
)

// FreelancerProfile holds the account owner's business identity. One profile
// per user, created during onboarding and read when rendering invoices.
type FreelancerProfile struct {
	UserID string `json:"user_id" bson:"user_id"`

	FullName string `json:"full_name" bson:"full_name"`
	Email    string `json:"email" bson:"email"`
	LogoURL  string `json:"logo_url,omitempty" bson:"logo_url,omitempty"`
	Phone    string `json:"phone,omitempty" bson:"phone,omitempty"`

	BusinessName string `json:"business_name" bson:"business_name"`
	BusinessType string `json:"business_type" bson:"business_type"`
	Website      string `json:"website,omitempty" bson:"website,omitempty"`

	Address string `json:"address" bson:"address"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	ZipCode string `json:"zip_code" bson:"zip_code"`
	Country string `json:"country" bson:"country"`

	Profession        string  `json:"profession" bson:"profession"`
	DefaultHourlyRate float64 `json:"default_hourly_rate" bson:"default_hourly_rate"`
	Currency          string  `json:"currency" bson:"currency"`

	TimeZone              string `json:"time_zone" bson:"time_zone"`
	PreferredPaymentTerms string `json:"preferred_payment_terms" bson:"preferred_payment_terms"`

	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
