package service

import (
	"context"
	"errors"
	"testing"

	"github.com/freelancebill/invoicing-system/internal/core/domain"
	"github.com/freelancebill/invoicing-system/internal/core/ports"
)

type approvalFixture struct {
	*invoiceFixture
	profiles *stubProfileRepo
	svc      *ApprovalService
}

func newApprovalFixture() *approvalFixture {
	inner := newInvoiceFixture()
	profiles := newStubProfileRepo()
	return &approvalFixture{
		invoiceFixture: inner,
		profiles:       profiles,
		svc:            NewApprovalService(inner.invoices, inner.tasks, profiles, inner.svc, discardLogger),
	}
}

func TestApprovalService_Resolve_EvenSplitBreakdown(t *testing.T) {
	f := newApprovalFixture()
	// 2h on a fast task, 6h on a slow one; the breakdown still splits the
	// invoice total evenly across the two tasks.
	f.seedTask("a", 100, 2)
	f.seedTask("b", 50, 6)
	inv := f.create(t, []string{"a", "b"}, "client@acme.com")
	result, err := f.invoiceFixture.svc.SendForApproval(context.Background(), inv.ID, "u1")
	if err != nil {
		t.Fatalf("send for approval: %v", err)
	}

	snap, err := f.svc.Resolve(context.Background(), linkSuffix(result.Invoice.ApprovalLink))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if snap.Invoice.ID != inv.ID {
		t.Fatalf("resolved wrong invoice: %s", snap.Invoice.ID)
	}
	if len(snap.Breakdown) != 2 {
		t.Fatalf("breakdown rows: want 2, got %d", len(snap.Breakdown))
	}
	wantHours := inv.TotalHours / 2
	for _, item := range snap.Breakdown {
		if item.Hours != wantHours {
			t.Errorf("row %s hours: want %v, got %v", item.TaskID, wantHours, item.Hours)
		}
	}
	if snap.Breakdown[0].TaskName != "Task a" {
		t.Errorf("task name not resolved: %q", snap.Breakdown[0].TaskName)
	}
	if snap.Breakdown[0].Amount != wantHours*100 {
		t.Errorf("row amount: want %v, got %v", wantHours*100, snap.Breakdown[0].Amount)
	}
}

func TestApprovalService_Resolve_IncludesProfile(t *testing.T) {
	f := newApprovalFixture()
	f.profiles.profiles["u1"] = &domain.FreelancerProfile{UserID: "u1", BusinessName: "Jane Freelance LLC"}
	inv := f.pendingInvoice(t)

	snap, err := f.svc.Resolve(context.Background(), linkSuffix(inv.ApprovalLink))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if snap.Profile == nil || snap.Profile.BusinessName != "Jane Freelance LLC" {
		t.Errorf("expected profile in snapshot, got %+v", snap.Profile)
	}
}

func TestApprovalService_Resolve_ToleratesMissingProfile(t *testing.T) {
	f := newApprovalFixture()
	inv := f.pendingInvoice(t)

	snap, err := f.svc.Resolve(context.Background(), linkSuffix(inv.ApprovalLink))
	if err != nil {
		t.Fatalf("resolve without profile must succeed: %v", err)
	}
	if snap.Profile != nil {
		t.Errorf("expected nil profile, got %+v", snap.Profile)
	}
}

func TestApprovalService_Resolve_RejectsBadLinks(t *testing.T) {
	f := newApprovalFixture()
	inv := f.pendingInvoice(t)

	cases := map[string]string{
		"no separator":     "justaninvoiceid",
		"empty invoice id": "_sometoken",
		"unknown invoice":  "missing_deadbeef",
		"wrong token":      inv.ID + "_000000000000000000",
	}
	for name, linkID := range cases {
		if _, err := f.svc.Resolve(context.Background(), linkID); !errors.Is(err, domain.ErrApprovalLinkNotFound) {
			t.Errorf("%s: want ErrApprovalLinkNotFound, got %v", name, err)
		}
	}
}

func TestApprovalService_Resolve_RejectsInvoiceWithoutLink(t *testing.T) {
	f := newApprovalFixture()
	f.seedTask("a", 50, 1)
	inv := f.create(t, []string{"a"}, "client@acme.com")

	// Draft invoices were never sent; guessing "{id}_{token}" must not work.
	if _, err := f.svc.Resolve(context.Background(), inv.ID+"_guess"); !errors.Is(err, domain.ErrApprovalLinkNotFound) {
		t.Errorf("want ErrApprovalLinkNotFound, got %v", err)
	}
}

func TestApprovalService_Decide_Approve(t *testing.T) {
	f := newApprovalFixture()
	inv := f.pendingInvoice(t)

	got, err := f.svc.Decide(context.Background(), linkSuffix(inv.ApprovalLink), ports.DecisionInput{
		Approve: &ports.ApproveDecision{Signature: "Jane Client", Comments: "ship it"},
	})
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if got.Status != domain.StatusApproved {
		t.Errorf("status: want approved, got %s", got.Status)
	}
	if got.ClientSignature != "Jane Client" {
		t.Errorf("signature not recorded: %q", got.ClientSignature)
	}
}

func TestApprovalService_Decide_Reject(t *testing.T) {
	f := newApprovalFixture()
	inv := f.pendingInvoice(t)

	got, err := f.svc.Decide(context.Background(), linkSuffix(inv.ApprovalLink), ports.DecisionInput{
		Reject: &ports.RejectDecision{Reason: "rate mismatch"},
	})
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if got.Status != domain.StatusRejected {
		t.Errorf("status: want rejected, got %s", got.Status)
	}
	if got.ClientComments != "rate mismatch" {
		t.Errorf("reason not recorded: %q", got.ClientComments)
	}
}

func TestApprovalService_Decide_InvalidShape(t *testing.T) {
	f := newApprovalFixture()
	inv := f.pendingInvoice(t)
	linkID := linkSuffix(inv.ApprovalLink)

	if _, err := f.svc.Decide(context.Background(), linkID, ports.DecisionInput{}); !errors.Is(err, domain.ErrInvalidDecision) {
		t.Errorf("neither branch: want ErrInvalidDecision, got %v", err)
	}

	both := ports.DecisionInput{
		Approve: &ports.ApproveDecision{Signature: "x"},
		Reject:  &ports.RejectDecision{Reason: "y"},
	}
	if _, err := f.svc.Decide(context.Background(), linkID, both); !errors.Is(err, domain.ErrInvalidDecision) {
		t.Errorf("both branches: want ErrInvalidDecision, got %v", err)
	}
}

func TestApprovalService_Decide_SecondDecisionReturnsTerminalState(t *testing.T) {
	f := newApprovalFixture()
	inv := f.pendingInvoice(t)
	linkID := linkSuffix(inv.ApprovalLink)

	first, err := f.svc.Decide(context.Background(), linkID, ports.DecisionInput{
		Reject: &ports.RejectDecision{Reason: "too high"},
	})
	if err != nil {
		t.Fatalf("first decision: %v", err)
	}

	second, err := f.svc.Decide(context.Background(), linkID, ports.DecisionInput{
		Approve: &ports.ApproveDecision{Signature: "Jane Client"},
	})
	if !errors.Is(err, domain.ErrAlreadyDecided) {
		t.Fatalf("want ErrAlreadyDecided, got %v", err)
	}
	if second == nil || second.Status != first.Status {
		t.Errorf("second decision must surface the recorded outcome, got %+v", second)
	}
}
