package ports

import (
	"context"

	"github.com/freelancebill/invoicing-system/internal/core/domain"
)

// ProfileRepository persists the one-per-user freelancer profile.
type ProfileRepository interface {
	// Upsert creates the profile on first write and replaces it afterwards.
	Upsert(ctx context.Context, p *domain.FreelancerProfile) error
	FindByUser(ctx context.Context, userID string) (*domain.FreelancerProfile, error)
}

// TimerStore persists per-user elapsed-time tracker state.
type TimerStore interface {
	Save(ctx context.Context, t *domain.TimerState) error
	Load(ctx context.Context, userID string) (*domain.TimerState, error)
	Clear(ctx context.Context, userID string) error
}
