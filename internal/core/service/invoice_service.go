package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/freelancebill/invoicing-system/internal/api/metrics"
	"github.com/freelancebill/invoicing-system/internal/core/domain"
	"github.com/freelancebill/invoicing-system/internal/core/ports"
)

// invoiceLocks serializes lifecycle mutations per invoice id so that
// transition guards always observe a consistent prior state.
type invoiceLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newInvoiceLocks() *invoiceLocks {
	return &invoiceLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *invoiceLocks) lock(id string) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// InvoiceService implements the invoice lifecycle engine.
type InvoiceService struct {
	invoices   ports.InvoiceRepository
	tasks      ports.TaskRepository
	timeLogs   ports.TimeLogRepository
	billed     ports.BilledIndex
	dispatcher ports.NotificationDispatcher
	mailer     ports.Mailer
	origin     string
	locks      *invoiceLocks
	logger     zerolog.Logger
}

func NewInvoiceService(
	invoices ports.InvoiceRepository,
	tasks ports.TaskRepository,
	timeLogs ports.TimeLogRepository,
	billed ports.BilledIndex,
	dispatcher ports.NotificationDispatcher,
	mailer ports.Mailer,
	origin string,
	logger zerolog.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoices:   invoices,
		tasks:      tasks,
		timeLogs:   timeLogs,
		billed:     billed,
		dispatcher: dispatcher,
		mailer:     mailer,
		origin:     origin,
		locks:      newInvoiceLocks(),
		logger:     logger,
	}
}

// Preview runs the billing calculator for a selection without persisting.
func (s *InvoiceService) Preview(ctx context.Context, userID string, taskIDs []string) (*ports.BillingResult, error) {
	if len(taskIDs) == 0 {
		return nil, domain.ErrEmptyTaskSet
	}
	result, err := s.calculate(ctx, userID, taskIDs)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *InvoiceService) calculate(ctx context.Context, userID string, taskIDs []string) (*ports.BillingResult, error) {
	tasks, err := s.tasks.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	owned := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		owned[t.ID] = struct{}{}
	}
	for _, id := range taskIDs {
		if _, ok := owned[id]; !ok {
			return nil, domain.ErrTaskNotFound
		}
	}

	logs, err := s.timeLogs.ListByTasks(ctx, userID, taskIDs)
	if err != nil {
		return nil, fmt.Errorf("load time logs: %w", err)
	}

	billed, err := s.billed.Billed(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load billed index: %w", err)
	}

	result := CalculateBilling(taskIDs, tasks, logs, billed)
	return &result, nil
}

// CreateInvoice snapshots totals from the selection's unbilled time logs and
// stores a draft. The billed index is updated incrementally so the selected
// tasks never appear unbilled again.
func (s *InvoiceService) CreateInvoice(ctx context.Context, in ports.CreateInvoiceInput) (*domain.Invoice, error) {
	if len(in.TaskIDs) == 0 {
		return nil, domain.ErrEmptyTaskSet
	}

	result, err := s.calculate(ctx, in.UserID, in.TaskIDs)
	if err != nil {
		return nil, err
	}

	inv := &domain.Invoice{
		ID:          uuid.NewString(),
		UserID:      in.UserID,
		TaskIDs:     in.TaskIDs,
		TotalHours:  result.TotalHours,
		TotalAmount: result.TotalAmount,
		Status:      domain.StatusDraft,
		CreatedAt:   time.Now().UTC(),
		ClientName:  in.ClientName,
		ClientEmail: in.ClientEmail,
		Description: in.Description,
		Notes:       in.Notes,
	}

	if err := s.invoices.Create(ctx, inv); err != nil {
		s.logger.Error().Err(err).Msg("failed to create invoice")
		return nil, err
	}

	if err := s.billed.MarkBilled(ctx, in.UserID, inv.ID, in.TaskIDs); err != nil {
		// The index is rebuilt from invoices at startup, so a miss here only
		// lasts until the next restart.
		s.logger.Warn().Err(err).Str("invoice_id", inv.ID).Msg("failed to update billed index")
	}

	metrics.InvoicesCreatedTotal.Inc()
	s.logger.Info().
		Str("invoice_id", inv.ID).
		Float64("total_amount", inv.TotalAmount).
		Int("tasks", len(inv.TaskIDs)).
		Msg("invoice created")

	return inv, nil
}

func (s *InvoiceService) GetInvoice(ctx context.Context, id, userID string) (*domain.Invoice, error) {
	return s.invoices.FindByIDForUser(ctx, id, userID)
}

func (s *InvoiceService) ListInvoices(ctx context.Context, userID string) ([]*domain.Invoice, error) {
	return s.invoices.List(ctx, userID)
}

// UpdateInvoice edits the descriptive fields of an invoice whose client
// decision has not happened yet. Totals and the task set stay frozen; this is
// how a draft created without a client email acquires one before approval.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, in ports.UpdateInvoiceInput) (*domain.Invoice, error) {
	unlock := s.locks.lock(in.InvoiceID)
	defer unlock()

	inv, err := s.invoices.FindByIDForUser(ctx, in.InvoiceID, in.UserID)
	if err != nil {
		return nil, err
	}
	if inv.Status.Decided() {
		return nil, domain.ErrAlreadyDecided
	}

	inv.ClientName = in.ClientName
	inv.ClientEmail = in.ClientEmail
	inv.Description = in.Description
	inv.Notes = in.Notes

	if err := s.invoices.UpdateIfStatus(ctx, inv, inv.Status); err != nil {
		return nil, err
	}

	s.logger.Info().Str("invoice_id", inv.ID).Msg("invoice details updated")
	return inv, nil
}

// DeleteInvoice removes the invoice and rebuilds the billed index from the
// remaining invoices, so the deleted invoice's tasks become unbilled again.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id, userID string) error {
	unlock := s.locks.lock(id)
	defer unlock()

	if err := s.invoices.Delete(ctx, id, userID); err != nil {
		return err
	}

	remaining, err := s.invoices.List(ctx, userID)
	if err != nil {
		return fmt.Errorf("list invoices after delete: %w", err)
	}
	if err := s.billed.Rebuild(ctx, userID, remaining); err != nil {
		s.logger.Warn().Err(err).Str("invoice_id", id).Msg("failed to rebuild billed index")
	}

	s.logger.Info().Str("invoice_id", id).Msg("invoice deleted")
	return nil
}

// Send marks a draft invoice as sent.
func (s *InvoiceService) Send(ctx context.Context, id, userID string) (*domain.Invoice, error) {
	return s.transition(ctx, id, userID, domain.StatusSent, nil)
}

// SendForApproval generates the approval link, moves the invoice to
// pending_approval, and dispatches the approval-request email.
func (s *InvoiceService) SendForApproval(ctx context.Context, id, userID string) (*ports.SendForApprovalResult, error) {
	inv, err := s.transition(ctx, id, userID, domain.StatusPendingApproval, func(inv *domain.Invoice) error {
		if inv.ClientEmail == "" {
			return domain.ErrMissingClientEmail
		}
		inv.ApprovalLink = s.buildApprovalLink(inv.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dispatcher.Enqueue(ports.EmailMessage{
		InvoiceID: inv.ID,
		To:        inv.ClientEmail,
		Subject:   fmt.Sprintf("Invoice approval requested: $%.2f", inv.TotalAmount),
		Body: fmt.Sprintf(
			"Hi %s,\n\nPlease review and approve the invoice for %.1f hours ($%.2f):\n%s\n",
			inv.ClientName, inv.TotalHours, inv.TotalAmount, inv.ApprovalLink,
		),
	})

	return &ports.SendForApprovalResult{Invoice: inv, ApprovalLink: inv.ApprovalLink}, nil
}

// SetupPayment records how an approved invoice should be paid. It does not
// change status; a second call overwrites the previous method.
func (s *InvoiceService) SetupPayment(ctx context.Context, in ports.SetupPaymentInput) (*domain.Invoice, error) {
	if !domain.ValidPaymentMethod(in.Method) {
		return nil, domain.ErrInvalidPaymentMethod
	}

	unlock := s.locks.lock(in.InvoiceID)
	defer unlock()

	inv, err := s.invoices.FindByIDForUser(ctx, in.InvoiceID, in.UserID)
	if err != nil {
		return nil, err
	}
	if inv.Status != domain.StatusApproved {
		return nil, domain.ErrPaymentNotAllowed
	}

	inv.PaymentMethod = in.Method
	inv.PaymentInstructions = in.Instructions

	if err := s.invoices.UpdateIfStatus(ctx, inv, domain.StatusApproved); err != nil {
		return nil, err
	}

	s.logger.Info().Str("invoice_id", inv.ID).Str("method", in.Method).Msg("payment setup stored")
	return inv, nil
}

// MarkPaid finishes the lifecycle: approved -> paid.
func (s *InvoiceService) MarkPaid(ctx context.Context, id, userID string) (*domain.Invoice, error) {
	return s.transition(ctx, id, userID, domain.StatusPaid, nil)
}

// ClientApprove applies the client's approval. Only legal from
// pending_approval; decision fields are write-once.
func (s *InvoiceService) ClientApprove(ctx context.Context, invoiceID, signature, comments string) (*domain.Invoice, error) {
	if signature == "" {
		return nil, domain.ErrMissingSignature
	}

	now := time.Now().UTC()
	inv, err := s.decide(ctx, invoiceID, domain.StatusApproved, func(inv *domain.Invoice) {
		inv.ApprovedAt = &now
		inv.ClientSignature = signature
		inv.ClientComments = comments
	})
	if err != nil {
		// The recorded outcome travels with ErrAlreadyDecided so the
		// client page can render what was decided.
		if errors.Is(err, domain.ErrAlreadyDecided) {
			return inv, err
		}
		return nil, err
	}

	metrics.ApprovalDecisionsTotal.WithLabelValues("approved").Inc()
	return inv, nil
}

// ClientReject applies the client's rejection, storing the reason in
// client_comments.
func (s *InvoiceService) ClientReject(ctx context.Context, invoiceID, reason string) (*domain.Invoice, error) {
	if reason == "" {
		return nil, domain.ErrMissingRejectReason
	}

	inv, err := s.decide(ctx, invoiceID, domain.StatusRejected, func(inv *domain.Invoice) {
		inv.ClientComments = reason
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyDecided) {
			return inv, err
		}
		return nil, err
	}

	metrics.ApprovalDecisionsTotal.WithLabelValues("rejected").Inc()
	return inv, nil
}

// decide applies one terminal client decision under the per-invoice lock.
// An already-decided invoice returns ErrAlreadyDecided without mutating.
func (s *InvoiceService) decide(ctx context.Context, invoiceID string, target domain.InvoiceStatus, apply func(*domain.Invoice)) (*domain.Invoice, error) {
	unlock := s.locks.lock(invoiceID)
	defer unlock()

	inv, err := s.invoices.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if inv.Status.Decided() {
		return inv, domain.ErrAlreadyDecided
	}
	if !inv.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, inv.Status, target)
	}

	prior := inv.Status
	inv.Status = target
	apply(inv)

	if err := s.invoices.UpdateIfStatus(ctx, inv, prior); err != nil {
		return nil, err
	}

	metrics.TransitionsTotal.WithLabelValues(string(prior), string(target)).Inc()
	s.logger.Info().
		Str("invoice_id", inv.ID).
		Str("from", string(prior)).
		Str("to", string(target)).
		Msg("client decision applied")

	return inv, nil
}

// transition applies an owner-side status change under the per-invoice lock,
// running mutate (if any) after the guard passes and before persisting.
func (s *InvoiceService) transition(ctx context.Context, id, userID string, target domain.InvoiceStatus, mutate func(*domain.Invoice) error) (*domain.Invoice, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	inv, err := s.invoices.FindByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if !inv.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, inv.Status, target)
	}

	prior := inv.Status
	if mutate != nil {
		if err := mutate(inv); err != nil {
			return nil, err
		}
	}
	inv.Status = target

	if err := s.invoices.UpdateIfStatus(ctx, inv, prior); err != nil {
		return nil, err
	}

	metrics.TransitionsTotal.WithLabelValues(string(prior), string(target)).Inc()
	s.logger.Info().
		Str("invoice_id", inv.ID).
		Str("from", string(prior)).
		Str("to", string(target)).
		Msg("invoice transitioned")

	return inv, nil
}

// EmailInvoice sends the invoice summary to its client. When no provider is
// configured it returns a mailto URL for the caller to hand off locally.
func (s *InvoiceService) EmailInvoice(ctx context.Context, id, userID, subject, body string) (string, error) {
	inv, err := s.invoices.FindByIDForUser(ctx, id, userID)
	if err != nil {
		return "", err
	}
	if inv.ClientEmail == "" {
		return "", domain.ErrMissingClientEmail
	}

	if subject == "" {
		subject = fmt.Sprintf("Invoice: $%.2f", inv.TotalAmount)
	}
	if body == "" {
		body = fmt.Sprintf("Hi %s,\n\nPlease find your invoice for %.1f hours totalling $%.2f.\n\n%s",
			inv.ClientName, inv.TotalHours, inv.TotalAmount, inv.Notes)
	}

	if !s.mailer.Configured() {
		handoff := fmt.Sprintf("mailto:%s?subject=%s&body=%s",
			inv.ClientEmail, url.QueryEscape(subject), url.QueryEscape(body))
		return handoff, nil
	}

	s.dispatcher.Enqueue(ports.EmailMessage{
		InvoiceID: inv.ID,
		To:        inv.ClientEmail,
		Subject:   subject,
		Body:      body,
	})
	return "", nil
}

func (s *InvoiceService) buildApprovalLink(invoiceID string) string {
	return fmt.Sprintf("%s/approve/%s_%s", s.origin, invoiceID, approvalToken())
}

// approvalToken returns a cryptographically random suffix for approval links.
func approvalToken() string {
	b := make([]byte, 9)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("approval token: %v", err))
	}
	return fmt.Sprintf("%x", b)
}
