package service

import (
	"errors"
	"sync"
	"time"

	"github.com/cashflow/payment-records/internal/core"
	"github.com/cashflow/payment-records/internal/port/output"
	"github.com/google/uuid"
)

// fakeRepository is an in-memory PaymentRepository. It stores copies so
// tests can assert that rejected operations left the record untouched.
type fakeRepository struct {
	mu       sync.Mutex
	payments map[uuid.UUID]core.Payment
	order    []uuid.UUID
	saves    []core.PaymentStatus
	failSave error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{payments: make(map[uuid.UUID]core.Payment)}
}

func (r *fakeRepository) Save(p *core.Payment) (*core.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSave != nil {
		return nil, r.failSave
	}
	if _, ok := r.payments[p.ID]; !ok {
		r.order = append(r.order, p.ID)
	}
	r.payments[p.ID] = *p
	r.saves = append(r.saves, p.Status)
	saved := *p
	return &saved, nil
}

func (r *fakeRepository) FindByID(id uuid.UUID) (*core.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakeRepository) FindAll(q output.PageQuery) ([]*core.Payment, int64, error) {
	return r.page(func(core.Payment) bool { return true }, q)
}

func (r *fakeRepository) FindByMerchant(merchantID string, q output.PageQuery) ([]*core.Payment, int64, error) {
	return r.page(func(p core.Payment) bool { return p.MerchantID == merchantID }, q)
}

func (r *fakeRepository) FindByCustomer(customerID string, q output.PageQuery) ([]*core.Payment, int64, error) {
	return r.page(func(p core.Payment) bool { return p.CustomerID == customerID }, q)
}

func (r *fakeRepository) FindByStatus(status core.PaymentStatus) ([]*core.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*core.Payment
	for _, id := range r.order {
		if p := r.payments[id]; p.Status == status {
			cp := p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRepository) page(match func(core.Payment) bool, q output.PageQuery) ([]*core.Payment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*core.Payment
	for _, id := range r.order {
		if p := r.payments[id]; match(p) {
			cp := p
			all = append(all, &cp)
		}
	}
	total := int64(len(all))
	start := q.Page * q.Size
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + q.Size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

// stored returns the persisted copy of a payment
func (r *fakeRepository) stored(id uuid.UUID) core.Payment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.payments[id]
}

// fakeEvents records published lifecycle events
type fakeEvents struct {
	mu          sync.Mutex
	published   []output.PaymentEvent
	failPublish error
}

func (e *fakeEvents) PublishPaymentEvent(event output.PaymentEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.failPublish != nil {
		return e.failPublish
	}
	e.published = append(e.published, event)
	return nil
}

func (e *fakeEvents) Close() error { return nil }

func (e *fakeEvents) statuses() []core.PaymentStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]core.PaymentStatus, 0, len(e.published))
	for _, ev := range e.published {
		out = append(out, ev.Status)
	}
	return out
}

// fakeMetrics records counter increments and timer observations
type fakeMetrics struct {
	mu        sync.Mutex
	created   int
	succeeded int
	failed    int
	durations []time.Duration
}

func (m *fakeMetrics) PaymentCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created++
}

func (m *fakeMetrics) PaymentProcessed(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if success {
		m.succeeded++
	} else {
		m.failed++
	}
}

func (m *fakeMetrics) ProcessingDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations = append(m.durations, d)
}

// fakeClock hands out a fixed instant, advanced explicitly
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

var errSettlementDeclined = errors.New("settlement declined by simulator")

// failingSettler always declines
func failingSettler() Settler {
	return SettlerFunc(func(*core.Payment) error {
		return errSettlementDeclined
	})
}
