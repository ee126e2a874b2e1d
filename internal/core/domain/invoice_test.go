package domain

import "testing"

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to InvoiceStatus
		want     bool
	}{
		{StatusDraft, StatusSent, true},
		{StatusDraft, StatusPendingApproval, true},
		{StatusDraft, StatusApproved, false},
		{StatusDraft, StatusPaid, false},
		{StatusSent, StatusPendingApproval, true},
		{StatusSent, StatusDraft, false},
		{StatusPendingApproval, StatusApproved, true},
		{StatusPendingApproval, StatusRejected, true},
		{StatusPendingApproval, StatusPaid, false},
		{StatusApproved, StatusPaid, true},
		{StatusApproved, StatusRejected, false},
		{StatusRejected, StatusApproved, false},
		{StatusRejected, StatusPendingApproval, false},
		{StatusPaid, StatusDraft, false},
		{StatusPaid, StatusApproved, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestDecided(t *testing.T) {
	decided := []InvoiceStatus{StatusApproved, StatusRejected, StatusPaid}
	for _, s := range decided {
		if !s.Decided() {
			t.Errorf("%s should be decided", s)
		}
	}
	open := []InvoiceStatus{StatusDraft, StatusSent, StatusPendingApproval}
	for _, s := range open {
		if s.Decided() {
			t.Errorf("%s should not be decided", s)
		}
	}
}

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range []string{PaymentBankTransfer, PaymentPaypal, PaymentStripe, PaymentCheck} {
		if !ValidPaymentMethod(m) {
			t.Errorf("%s should be valid", m)
		}
	}
	for _, m := range []string{"", "cash", "BANK_TRANSFER"} {
		if ValidPaymentMethod(m) {
			t.Errorf("%q should be invalid", m)
		}
	}
}
