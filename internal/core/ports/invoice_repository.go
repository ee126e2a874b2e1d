package ports

import (
	"context"

	"github.com/freelancebill/invoicing-system/internal/core/domain"
)

// InvoiceRepository defines persistence operations for invoices.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	FindByID(ctx context.Context, id string) (*domain.Invoice, error)
	// FindByIDForUser scopes the lookup to the owning user.
	FindByIDForUser(ctx context.Context, id, userID string) (*domain.Invoice, error)
	List(ctx context.Context, userID string) ([]*domain.Invoice, error)
	ListAll(ctx context.Context) ([]*domain.Invoice, error)
	// UpdateIfStatus replaces the invoice document only when the stored
	// status still equals expect. Returns domain.ErrInvalidTransition when
	// another writer moved the invoice first.
	UpdateIfStatus(ctx context.Context, inv *domain.Invoice, expect domain.InvoiceStatus) error
	Delete(ctx context.Context, id, userID string) error
}

// BilledIndex is the incremental taskId -> invoiceId index used to decide
// which time logs are still unbilled without rescanning every invoice.
type BilledIndex interface {
	MarkBilled(ctx context.Context, userID, invoiceID string, taskIDs []string) error
	// Billed returns the taskId -> invoiceId mapping for one user.
	Billed(ctx context.Context, userID string) (map[string]string, error)
	// Rebuild replaces the index for one user from the full invoice set.
	Rebuild(ctx context.Context, userID string, invoices []*domain.Invoice) error
}
