package ports

import (
	"context"

	"github.com/freelancebill/invoicing-system/internal/core/domain"
)

// TaskBreakdownItem is one row in the client-facing invoice breakdown. Hours
// are an even split of the invoice total across its tasks, not per-task
// logged hours.
type TaskBreakdownItem struct {
	TaskID   string
	TaskName string
	Rate     float64
	Hours    float64
	Amount   float64
}

// ApprovalSnapshot is the read-only view rendered to the client.
type ApprovalSnapshot struct {
	Invoice   *domain.Invoice
	Profile   *domain.FreelancerProfile
	Breakdown []TaskBreakdownItem
}

// ApproveDecision carries the client's approval.
type ApproveDecision struct {
	Signature string
	Comments  string
}

// RejectDecision carries the client's rejection.
type RejectDecision struct {
	Reason string
}

// DecisionInput is exactly one of Approve or Reject.
type DecisionInput struct {
	Approve *ApproveDecision
	Reject  *RejectDecision
}

// ApprovalService is the client-facing approval session. The link id from
// the approval URL is the only credential.
type ApprovalService interface {
	Resolve(ctx context.Context, linkID string) (*ApprovalSnapshot, error)
	Decide(ctx context.Context, linkID string, in DecisionInput) (*domain.Invoice, error)
}
