package booking

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for booking aggregates.
type Repository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByDate retrieves all bookings on a calendar date, ordered by start hour.
	FindByDate(ctx context.Context, date Date) ([]*Booking, error)

	// ListAll retrieves all bookings with pagination, newest first.
	ListAll(ctx context.Context, page, limit int) ([]*Booking, int64, error)

	// CountByRateType returns booking counts grouped by pricing tier.
	CountByRateType(ctx context.Context) (map[string]int64, error)

	// SaveIfFree persists a new booking if and only if its slot does not
	// overlap any committed booking on the same date. The conflict re-check
	// and the insert run in one transaction so concurrent writers cannot
	// both pass the check.
	SaveIfFree(ctx context.Context, b *Booking) error

	// Delete removes a booking by its identifier.
	Delete(ctx context.Context, id uuid.UUID) error
}

// RatesRepository defines the persistence contract for the rate policy.
type RatesRepository interface {
	// Load retrieves the current rate policy, falling back to
	// DefaultRatesConfig when none has been saved yet.
	Load(ctx context.Context) (RatesConfig, error)

	// Save overwrites the rate policy in full.
	Save(ctx context.Context, rates RatesConfig) error
}
