package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/freelancebill/invoicing-system/internal/core/domain"
	"github.com/freelancebill/invoicing-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type stubTimeLogRepo struct {
	logs map[string]*domain.TimeLog
}

func newStubTimeLogRepo() *stubTimeLogRepo {
	return &stubTimeLogRepo{logs: make(map[string]*domain.TimeLog)}
}

func (r *stubTimeLogRepo) Create(_ context.Context, l *domain.TimeLog) error {
	clone := *l
	r.logs[l.ID] = &clone
	return nil
}

func (r *stubTimeLogRepo) FindByID(_ context.Context, id, userID string) (*domain.TimeLog, error) {
	l, ok := r.logs[id]
	if !ok || l.UserID != userID {
		return nil, domain.ErrTimeLogNotFound
	}
	clone := *l
	return &clone, nil
}

func (r *stubTimeLogRepo) Update(_ context.Context, l *domain.TimeLog) error {
	if _, ok := r.logs[l.ID]; !ok {
		return domain.ErrTimeLogNotFound
	}
	clone := *l
	r.logs[l.ID] = &clone
	return nil
}

func (r *stubTimeLogRepo) Delete(_ context.Context, id, userID string) error {
	l, ok := r.logs[id]
	if !ok || l.UserID != userID {
		return domain.ErrTimeLogNotFound
	}
	delete(r.logs, id)
	return nil
}

func (r *stubTimeLogRepo) List(_ context.Context, userID string) ([]*domain.TimeLog, error) {
	var out []*domain.TimeLog
	for _, l := range r.logs {
		if l.UserID == userID {
			clone := *l
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubTimeLogRepo) ListByTasks(_ context.Context, userID string, taskIDs []string) ([]*domain.TimeLog, error) {
	wanted := make(map[string]struct{}, len(taskIDs))
	for _, id := range taskIDs {
		wanted[id] = struct{}{}
	}
	var out []*domain.TimeLog
	for _, l := range r.logs {
		if l.UserID != userID {
			continue
		}
		if _, ok := wanted[l.TaskID]; ok {
			clone := *l
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubTaskRepo struct {
	tasks map[string]*domain.Task
	// cascade target; nil-safe
	logs *stubTimeLogRepo
}

func newStubTaskRepo(logs *stubTimeLogRepo) *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task), logs: logs}
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) error {
	clone := *t
	r.tasks[t.ID] = &clone
	return nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id, userID string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) Update(_ context.Context, t *domain.Task) error {
	if _, ok := r.tasks[t.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	clone := *t
	r.tasks[t.ID] = &clone
	return nil
}

func (r *stubTaskRepo) DeleteCascade(_ context.Context, id, userID string) error {
	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	if r.logs != nil {
		for logID, l := range r.logs.logs {
			if l.TaskID == id {
				delete(r.logs.logs, logID)
			}
		}
	}
	return nil
}

func (r *stubTaskRepo) List(_ context.Context, userID string) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.tasks {
		if t.UserID == userID {
			clone := *t
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubInvoiceRepo struct {
	invoices map[string]*domain.Invoice
}

func newStubInvoiceRepo() *stubInvoiceRepo {
	return &stubInvoiceRepo{invoices: make(map[string]*domain.Invoice)}
}

func cloneInvoice(inv *domain.Invoice) *domain.Invoice {
	clone := *inv
	clone.TaskIDs = append([]string(nil), inv.TaskIDs...)
	if inv.ApprovedAt != nil {
		at := *inv.ApprovedAt
		clone.ApprovedAt = &at
	}
	return &clone
}

func (r *stubInvoiceRepo) Create(_ context.Context, inv *domain.Invoice) error {
	r.invoices[inv.ID] = cloneInvoice(inv)
	return nil
}

func (r *stubInvoiceRepo) FindByID(_ context.Context, id string) (*domain.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, domain.ErrInvoiceNotFound
	}
	return cloneInvoice(inv), nil
}

func (r *stubInvoiceRepo) FindByIDForUser(_ context.Context, id, userID string) (*domain.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok || inv.UserID != userID {
		return nil, domain.ErrInvoiceNotFound
	}
	return cloneInvoice(inv), nil
}

func (r *stubInvoiceRepo) List(_ context.Context, userID string) ([]*domain.Invoice, error) {
	var out []*domain.Invoice
	for _, inv := range r.invoices {
		if inv.UserID == userID {
			out = append(out, cloneInvoice(inv))
		}
	}
	return out, nil
}

func (r *stubInvoiceRepo) ListAll(_ context.Context) ([]*domain.Invoice, error) {
	var out []*domain.Invoice
	for _, inv := range r.invoices {
		out = append(out, cloneInvoice(inv))
	}
	return out, nil
}

func (r *stubInvoiceRepo) UpdateIfStatus(_ context.Context, inv *domain.Invoice, expect domain.InvoiceStatus) error {
	stored, ok := r.invoices[inv.ID]
	if !ok {
		return domain.ErrInvoiceNotFound
	}
	if stored.Status != expect {
		return domain.ErrInvalidTransition
	}
	r.invoices[inv.ID] = cloneInvoice(inv)
	return nil
}

func (r *stubInvoiceRepo) Delete(_ context.Context, id, userID string) error {
	inv, ok := r.invoices[id]
	if !ok || inv.UserID != userID {
		return domain.ErrInvoiceNotFound
	}
	delete(r.invoices, id)
	return nil
}

type stubBilledIndex struct {
	byUser map[string]map[string]string
}

func newStubBilledIndex() *stubBilledIndex {
	return &stubBilledIndex{byUser: make(map[string]map[string]string)}
}

func (i *stubBilledIndex) MarkBilled(_ context.Context, userID, invoiceID string, taskIDs []string) error {
	m, ok := i.byUser[userID]
	if !ok {
		m = make(map[string]string)
		i.byUser[userID] = m
	}
	for _, taskID := range taskIDs {
		m[taskID] = invoiceID
	}
	return nil
}

func (i *stubBilledIndex) Billed(_ context.Context, userID string) (map[string]string, error) {
	out := make(map[string]string, len(i.byUser[userID]))
	for k, v := range i.byUser[userID] {
		out[k] = v
	}
	return out, nil
}

func (i *stubBilledIndex) Rebuild(_ context.Context, userID string, invoices []*domain.Invoice) error {
	m := make(map[string]string)
	for _, inv := range invoices {
		for _, taskID := range inv.TaskIDs {
			m[taskID] = inv.ID
		}
	}
	i.byUser[userID] = m
	return nil
}

type stubProfileRepo struct {
	profiles map[string]*domain.FreelancerProfile
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: make(map[string]*domain.FreelancerProfile)}
}

func (r *stubProfileRepo) Upsert(_ context.Context, p *domain.FreelancerProfile) error {
	clone := *p
	r.profiles[p.UserID] = &clone
	return nil
}

func (r *stubProfileRepo) FindByUser(_ context.Context, userID string) (*domain.FreelancerProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

type stubDispatcher struct {
	sent []ports.EmailMessage
}

func (d *stubDispatcher) Enqueue(msg ports.EmailMessage) {
	d.sent = append(d.sent, msg)
}

type stubMailer struct {
	configured bool
	sent       []ports.EmailMessage
}

func (m *stubMailer) Send(_ context.Context, msg ports.EmailMessage) error {
	m.sent = append(m.sent, msg)
	return nil
}

func (m *stubMailer) Configured() bool { return m.configured }

type stubTimerStore struct {
	states map[string]*domain.TimerState
}

func newStubTimerStore() *stubTimerStore {
	return &stubTimerStore{states: make(map[string]*domain.TimerState)}
}

func (s *stubTimerStore) Save(_ context.Context, t *domain.TimerState) error {
	clone := *t
	s.states[t.UserID] = &clone
	return nil
}

func (s *stubTimerStore) Load(_ context.Context, userID string) (*domain.TimerState, error) {
	t, ok := s.states[userID]
	if !ok {
		return nil, domain.ErrTimerNotRunning
	}
	clone := *t
	return &clone, nil
}

func (s *stubTimerStore) Clear(_ context.Context, userID string) error {
	delete(s.states, userID)
	return nil
}

// linkSuffix extracts the "{invoiceID}_{token}" part of an approval link.
func linkSuffix(link string) string {
	idx := strings.LastIndex(link, "/approve/")
	if idx < 0 {
		return ""
	}
	return link[idx+len("/approve/"):]
}
