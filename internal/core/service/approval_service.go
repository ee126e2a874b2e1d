package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/freelancebill/invoicing-system/internal/core/domain"
	"github.com/freelancebill/invoicing-system/internal/core/ports"
)

// ApprovalService is the client-facing approval session. It reads one
// invoice snapshot through the shareable link and applies at most one
// terminal decision via the lifecycle engine.
type ApprovalService struct {
	invoices  ports.InvoiceRepository
	tasks     ports.TaskRepository
	profiles  ports.ProfileRepository
	lifecycle *InvoiceService
	logger    zerolog.Logger
}

func NewApprovalService(
	invoices ports.InvoiceRepository,
	tasks ports.TaskRepository,
	profiles ports.ProfileRepository,
	lifecycle *InvoiceService,
	logger zerolog.Logger,
) *ApprovalService {
	return &ApprovalService{
		invoices:  invoices,
		tasks:     tasks,
		profiles:  profiles,
		lifecycle: lifecycle,
		logger:    logger,
	}
}

// Resolve loads the invoice behind an approval link id and builds the
// client-facing snapshot. The hours column is an even split of the invoice
// total across its tasks, matching what the owner's approval email promised,
// not per-task logged hours.
func (s *ApprovalService) Resolve(ctx context.Context, linkID string) (*ports.ApprovalSnapshot, error) {
	inv, err := s.resolveInvoice(ctx, linkID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.FindByUser(ctx, inv.UserID)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, err
	}

	breakdown := make([]ports.TaskBreakdownItem, 0, len(inv.TaskIDs))
	hoursPerTask := inv.TotalHours / float64(len(inv.TaskIDs))
	for _, taskID := range inv.TaskIDs {
		item := ports.TaskBreakdownItem{
			TaskID:   taskID,
			TaskName: taskID,
			Hours:    hoursPerTask,
		}
		if task, err := s.tasks.FindByID(ctx, taskID, inv.UserID); err == nil {
			item.TaskName = task.Name
			item.Rate = task.Rate
			item.Amount = hoursPerTask * task.Rate
		}
		breakdown = append(breakdown, item)
	}

	return &ports.ApprovalSnapshot{
		Invoice:   inv,
		Profile:   profile,
		Breakdown: breakdown,
	}, nil
}

// Decide applies exactly one of approve or reject. An invoice whose decision
// sub-flow already finished is returned unchanged with ErrAlreadyDecided so
// the caller can render the existing terminal state.
func (s *ApprovalService) Decide(ctx context.Context, linkID string, in ports.DecisionInput) (*domain.Invoice, error) {
	inv, err := s.resolveInvoice(ctx, linkID)
	if err != nil {
		return nil, err
	}

	switch {
	case in.Approve != nil && in.Reject == nil:
		return s.lifecycle.ClientApprove(ctx, inv.ID, in.Approve.Signature, in.Approve.Comments)
	case in.Reject != nil && in.Approve == nil:
		return s.lifecycle.ClientReject(ctx, inv.ID, in.Reject.Reason)
	default:
		return nil, domain.ErrInvalidDecision
	}
}

// resolveInvoice maps "{invoiceID}_{token}" back to its invoice and verifies
// the token against the stored link.
func (s *ApprovalService) resolveInvoice(ctx context.Context, linkID string) (*domain.Invoice, error) {
	invoiceID, _, ok := strings.Cut(linkID, "_")
	if !ok || invoiceID == "" {
		return nil, domain.ErrApprovalLinkNotFound
	}

	inv, err := s.invoices.FindByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			return nil, domain.ErrApprovalLinkNotFound
		}
		return nil, err
	}

	if inv.ApprovalLink == "" || !strings.HasSuffix(inv.ApprovalLink, "/approve/"+linkID) {
		return nil, domain.ErrApprovalLinkNotFound
	}
	return inv, nil
}
