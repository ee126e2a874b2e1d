package ports

import (
	"context"

	"github.com/freelancebill/invoicing-system/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password, name, role string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
