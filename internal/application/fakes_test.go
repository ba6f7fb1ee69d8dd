package application

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/turfmanager/service-booking/internal/domain"
	bookingDomain "github.com/turfmanager/service-booking/internal/domain/booking"
	"github.com/turfmanager/service-booking/internal/events"
)

// fakeBookingRepo is an insertion-ordered in-memory booking repository.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []*bookingDomain.Booking
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ID() == id {
			return b, nil
		}
	}
	return nil, domain.NewNotFoundError("booking", id.String())
}

func (r *fakeBookingRepo) FindByDate(_ context.Context, date bookingDomain.Date) ([]*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*bookingDomain.Booking
	for _, b := range r.bookings {
		if b.Date() == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListAll(_ context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := int64(len(r.bookings))

	// Newest first.
	reversed := make([]*bookingDomain.Booking, 0, len(r.bookings))
	for i := len(r.bookings) - 1; i >= 0; i-- {
		reversed = append(reversed, r.bookings[i])
	}

	start := (page - 1) * limit
	if start >= len(reversed) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(reversed) {
		end = len(reversed)
	}
	return reversed[start:end], total, nil
}

func (r *fakeBookingRepo) CountByRateType(_ context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	for _, b := range r.bookings {
		counts[b.RateType().String()]++
	}
	return counts, nil
}

func (r *fakeBookingRepo) SaveIfFree(_ context.Context, b *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if bookingDomain.HasConflict(b.Date(), b.StartTime(), b.EndTime(), r.bookings) {
		return domain.NewConflictError("slot is already booked")
	}
	r.bookings = append(r.bookings, b)
	return nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, b := range r.bookings {
		if b.ID() == id {
			r.bookings = append(r.bookings[:i], r.bookings[i+1:]...)
			return nil
		}
	}
	return domain.NewNotFoundError("booking", id.String())
}

// fakeRatesRepo stores the rate policy in memory.
type fakeRatesRepo struct {
	mu    sync.Mutex
	rates *bookingDomain.RatesConfig
}

func (r *fakeRatesRepo) Load(context.Context) (bookingDomain.RatesConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rates == nil {
		return bookingDomain.DefaultRatesConfig(), nil
	}
	return *r.rates, nil
}

func (r *fakeRatesRepo) Save(_ context.Context, rates bookingDomain.RatesConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rates = &rates
	return nil
}

// recordingDispatcher captures dispatched notifications.
type recordingDispatcher struct {
	mu        sync.Mutex
	bookings  []*bookingDomain.Booking
	endpoints []string
}

func (d *recordingDispatcher) Dispatch(b *bookingDomain.Booking, endpoint string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bookings = append(d.bookings, b)
	d.endpoints = append(d.endpoints, endpoint)
}

func (d *recordingDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.bookings)
}

// recordingPublisher captures published events; failErr makes every publish fail.
type recordingPublisher struct {
	mu      sync.Mutex
	events  []events.CloudEvent
	failErr error
}

func (p *recordingPublisher) PublishEvent(_ context.Context, _, _ string, event events.CloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failErr != nil {
		return p.failErr
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}
