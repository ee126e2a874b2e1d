package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/freelancebill/invoicing-system/internal/core/domain"
	"github.com/freelancebill/invoicing-system/internal/core/ports"
)

// ProfileServiceImpl implements the freelancer profile use cases. The profile
// is a whole-document replace: every upsert writes the full field set.
type ProfileServiceImpl struct {
	profiles ports.ProfileRepository
	logger   zerolog.Logger
}

func NewProfileService(profiles ports.ProfileRepository, logger zerolog.Logger) *ProfileServiceImpl {
	return &ProfileServiceImpl{profiles: profiles, logger: logger}
}

func (s *ProfileServiceImpl) GetProfile(ctx context.Context, userID string) (*domain.FreelancerProfile, error) {
	return s.profiles.FindByUser(ctx, userID)
}

func (s *ProfileServiceImpl) UpsertProfile(ctx context.Context, in ports.UpsertProfileInput) (*domain.FreelancerProfile, error) {
	profile := &domain.FreelancerProfile{
		UserID:   in.UserID,
		FullName: in.FullName,
		Email:    in.Email,
		LogoURL:  in.LogoURL,
		Phone:    in.Phone,

		BusinessName: in.BusinessName,
		BusinessType: in.BusinessType,
		Website:      in.Website,

		Address: in.Address,
		City:    in.City,
		State:   in.State,
		ZipCode: in.ZipCode,
		Country: in.Country,

		Profession:        in.Profession,
		DefaultHourlyRate: in.DefaultHourlyRate,
		Currency:          in.Currency,

		TimeZone:              in.TimeZone,
		PreferredPaymentTerms: in.PreferredPaymentTerms,

		UpdatedAt: time.Now().UTC(),
	}

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		s.logger.Error().Err(err).Str("user_id", in.UserID).Msg("failed to upsert profile")
		return nil, err
	}
	return profile, nil
}
