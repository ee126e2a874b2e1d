package domain

import (
	"errors"
	"time"
)

// InvoiceStatus represents the lifecycle state of an invoice.
type InvoiceStatus string

const (
	StatusDraft           InvoiceStatus = "draft"
	StatusSent            InvoiceStatus = "sent"
	StatusPendingApproval InvoiceStatus = "pending_approval"
	StatusApproved        InvoiceStatus = "approved"
	StatusRejected        InvoiceStatus = "rejected"
	StatusPaid            InvoiceStatus = "paid"
)

// validTransitions defines the allowed state machine transitions.
// `paid` is terminal; `rejected` requires a new invoice (caller policy).
var validTransitions = map[InvoiceStatus][]InvoiceStatus{
	StatusDraft:           {StatusSent, StatusPendingApproval},
	StatusSent:            {StatusPendingApproval},
	StatusPendingApproval: {StatusApproved, StatusRejected},
	StatusApproved:        {StatusPaid},
}

// Payment methods accepted on an approved invoice.
const (
	PaymentBankTransfer = "bank_transfer"
	PaymentPaypal       = "paypal"
	PaymentStripe       = "stripe"
	PaymentCheck        = "check"
)

var (
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrApprovalLinkNotFound = errors.New("approval link not found")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrAlreadyDecided       = errors.New("invoice already decided")
	ErrMissingClientEmail   = errors.New("missing client email")
	ErrMissingSignature     = errors.New("missing client signature")
	ErrMissingRejectReason  = errors.New("missing rejection reason")
	ErrInvalidDecision      = errors.New("decision must be exactly one of approve or reject")
	ErrEmptyTaskSet         = errors.New("invoice requires at least one task")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrPaymentNotAllowed    = errors.New("payment setup requires an approved invoice")
)

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Decided reports whether the client-decision sub-flow has finished. Decision
// fields are write-once after this point.
func (s InvoiceStatus) Decided() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusPaid
}

// ValidPaymentMethod reports whether m is one of the accepted payment methods.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentBankTransfer, PaymentPaypal, PaymentStripe, PaymentCheck:
		return true
	}
	return false
}

// Invoice is the core aggregate root. TotalHours and TotalAmount are
// snapshots computed from unbilled time logs at creation time; they never
// recompute when the underlying logs or rates change afterwards.
type Invoice struct {
	ID                  string        `json:"id" bson:"_id,omitempty"`
	UserID              string        `json:"user_id" bson:"user_id"`
	TaskIDs             []string      `json:"task_ids" bson:"task_ids"`
	TotalHours          float64       `json:"total_hours" bson:"total_hours"`
	TotalAmount         float64       `json:"total_amount" bson:"total_amount"`
	Status              InvoiceStatus `json:"status" bson:"status"`
	CreatedAt           time.Time     `json:"created_at" bson:"created_at"`
	ClientName          string        `json:"client_name,omitempty" bson:"client_name,omitempty"`
	ClientEmail         string        `json:"client_email,omitempty" bson:"client_email,omitempty"`
	Description         string        `json:"description,omitempty" bson:"description,omitempty"`
	Notes               string        `json:"notes,omitempty" bson:"notes,omitempty"`
	ApprovalLink        string        `json:"approval_link,omitempty" bson:"approval_link,omitempty"`
	ApprovedAt          *time.Time    `json:"approved_at,omitempty" bson:"approved_at,omitempty"`
	ClientSignature     string        `json:"client_signature,omitempty" bson:"client_signature,omitempty"`
	ClientComments      string        `json:"client_comments,omitempty" bson:"client_comments,omitempty"`
	PaymentMethod       string        `json:"payment_method,omitempty" bson:"payment_method,omitempty"`
	PaymentInstructions string        `json:"payment_instructions,omitempty" bson:"payment_instructions,omitempty"`
}
