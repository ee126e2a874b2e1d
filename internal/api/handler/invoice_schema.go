package handler

import "github.com/freelancebill/invoicing-system/internal/core/domain"

// --- Invoice request types ---

type createInvoiceRequest struct {
	TaskIDs     []string `json:"task_ids"     validate:"required,min=1"`
	ClientName  string   `json:"client_name"  validate:"required"`
	ClientEmail string   `json:"client_email" validate:"omitempty,email"`
	Description string   `json:"description"`
	Notes       string   `json:"notes"`
}

type updateInvoiceRequest struct {
	ClientName  string `json:"client_name"  validate:"required"`
	ClientEmail string `json:"client_email" validate:"omitempty,email"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
}

type previewInvoiceRequest struct {
	TaskIDs []string `json:"task_ids" validate:"required,min=1"`
}

type setupPaymentRequest struct {
	Method       string `json:"method"       validate:"required,oneof=bank_transfer paypal stripe check"`
	Instructions string `json:"instructions"`
}

type emailInvoiceRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// --- Invoice response types ---

type previewInvoiceResponse struct {
	TotalHours  float64 `json:"total_hours"`
	TotalAmount float64 `json:"total_amount"`
	LogCount    int     `json:"log_count"`
}

type sendApprovalResponse struct {
	Invoice      *domain.Invoice `json:"invoice"`
	ApprovalLink string          `json:"approval_link"`
}

// emailInvoiceResponse reports how the email went out. Mailto carries the
// prebuilt link when no mail provider is configured.
type emailInvoiceResponse struct {
	Delivery string `json:"delivery"`
	Mailto   string `json:"mailto,omitempty"`
}

// --- Approval session request types ---

type approvalDecisionRequest struct {
	Decision  string `json:"decision"  validate:"required,oneof=approve reject"`
	Signature string `json:"signature"`
	Comments  string `json:"comments"`
	Reason    string `json:"reason"`
}

// --- Approval session response types ---

type taskBreakdownResponse struct {
	TaskID   string  `json:"task_id"`
	TaskName string  `json:"task_name"`
	Rate     float64 `json:"rate"`
	Hours    float64 `json:"hours"`
	Amount   float64 `json:"amount"`
}

type approvalSnapshotResponse struct {
	Invoice    *domain.Invoice           `json:"invoice"`
	Freelancer *domain.FreelancerProfile `json:"freelancer,omitempty"`
	Breakdown  []taskBreakdownResponse   `json:"breakdown"`
}
