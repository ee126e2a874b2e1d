package ports

import (
	"context"

	"github.com/freelancebill/invoicing-system/internal/core/domain"
)

// UpsertProfileInput carries a full profile replacement; zero values are
// written as-is.
type UpsertProfileInput struct {
	UserID   string
	FullName string
	Email    string
	LogoURL  string
	Phone    string

	BusinessName string
	BusinessType string
	Website      string

	Address string
	City    string
	State   string
	ZipCode string
	Country string

	Profession        string
	DefaultHourlyRate float64
	Currency          string

	TimeZone              string
	PreferredPaymentTerms string
}

// ProfileService defines use-case operations for the freelancer profile.
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*domain.FreelancerProfile, error)
	UpsertProfile(ctx context.Context, in UpsertProfileInput) (*domain.FreelancerProfile, error)
}
