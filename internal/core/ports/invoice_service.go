package ports

import (
	"context"

	"github.com/freelancebill/invoicing-system/internal/core/domain"
)

// BillingResult is the calculator output for a task selection: snapshot
// totals plus the unbilled logs that produced them.
type BillingResult struct {
	TotalHours   float64
	TotalAmount  float64
	IncludedLogs []*domain.TimeLog
}

// CreateInvoiceInput carries all data needed to create a draft invoice.
type CreateInvoiceInput struct {
	UserID      string
	TaskIDs     []string
	ClientName  string
	ClientEmail string
	Description string
	Notes       string
}

// UpdateInvoiceInput carries the editable invoice details. Totals and task
// set stay calculator-owned and are not updatable here.
type UpdateInvoiceInput struct {
	InvoiceID   string
	UserID      string
	ClientName  string
	ClientEmail string
	Description string
	Notes       string
}

// SetupPaymentInput configures how an approved invoice should be paid.
type SetupPaymentInput struct {
	InvoiceID    string
	UserID       string
	Method       string
	Instructions string
}

// SendForApprovalResult returns the generated link so the caller can copy it
// in addition to the email that was dispatched.
type SendForApprovalResult struct {
	Invoice      *domain.Invoice
	ApprovalLink string
}

// InvoiceService defines use-case operations for the invoice lifecycle.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, in CreateInvoiceInput) (*domain.Invoice, error)
	// Preview runs the billing calculator without creating anything.
	Preview(ctx context.Context, userID string, taskIDs []string) (*BillingResult, error)
	GetInvoice(ctx context.Context, id, userID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, userID string) ([]*domain.Invoice, error)
	// UpdateInvoice edits the descriptive fields of an undecided invoice.
	UpdateInvoice(ctx context.Context, in UpdateInvoiceInput) (*domain.Invoice, error)
	// DeleteInvoice removes the invoice and releases its task set back to
	// unbilled.
	DeleteInvoice(ctx context.Context, id, userID string) error

	Send(ctx context.Context, id, userID string) (*domain.Invoice, error)
	SendForApproval(ctx context.Context, id, userID string) (*SendForApprovalResult, error)
	SetupPayment(ctx context.Context, in SetupPaymentInput) (*domain.Invoice, error)
	MarkPaid(ctx context.Context, id, userID string) (*domain.Invoice, error)
	// EmailInvoice sends the invoice summary to the client, falling back to a
	// mailto handoff when no mail provider is configured.
	EmailInvoice(ctx context.Context, id, userID, subject, body string) (string, error)
}
