package booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/turfmanager/service-booking/internal/domain"
)

// Booking is the aggregate root for a confirmed turf reservation. The
// amount, rate type and discount are frozen at creation time so historical
// records stay stable when the rate policy changes later.
type Booking struct {
	id              uuid.UUID
	date            Date
	customerName    string
	phone           string
	startTime       int
	endTime         int
	totalHours      int
	amount          float64
	rateType        RateType
	discountApplied float64
	createdAt       time.Time
}

// NewBooking creates a new Booking from a priced quote.
func NewBooking(
	date Date,
	customerName string,
	phone string,
	startTime int,
	endTime int,
	quote Quote,
	discountPercent float64,
) (*Booking, error) {
	if date.IsZero() {
		return nil, domain.NewValidationError("booking date is required")
	}
	if customerName == "" {
		return nil, domain.NewValidationError("customer name is required")
	}
	if startTime < 0 || endTime > 24 || startTime >= endTime {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid slot %d-%d", startTime, endTime))
	}
	if quote.Amount < 0 {
		return nil, domain.NewValidationError("amount must be non-negative")
	}
	if !quote.RateType.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid rate type: %s", quote.RateType))
	}

	return &Booking{
		id:              uuid.New(),
		date:            date,
		customerName:    customerName,
		phone:           phone,
		startTime:       startTime,
		endTime:         endTime,
		totalHours:      quote.TotalHours,
		amount:          quote.Amount,
		rateType:        quote.RateType,
		discountApplied: discountPercent,
		createdAt:       time.Now().UTC(),
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id uuid.UUID,
	date Date,
	customerName string,
	phone string,
	startTime int,
	endTime int,
	totalHours int,
	amount float64,
	rateType RateType,
	discountApplied float64,
	createdAt time.Time,
) *Booking {
	return &Booking{
		id:              id,
		date:            date,
		customerName:    customerName,
		phone:           phone,
		startTime:       startTime,
		endTime:         endTime,
		totalHours:      totalHours,
		amount:          amount,
		rateType:        rateType,
		discountApplied: discountApplied,
		createdAt:       createdAt,
	}
}

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// Date returns the calendar date of the reservation.
func (b *Booking) Date() Date { return b.date }

// CustomerName returns the customer's display name.
func (b *Booking) CustomerName() string { return b.customerName }

// Phone returns the optional contact number.
func (b *Booking) Phone() string { return b.phone }

// StartTime returns the slot start hour (24h clock).
func (b *Booking) StartTime() int { return b.startTime }

// EndTime returns the slot end hour (24h clock, exclusive).
func (b *Booking) EndTime() int { return b.endTime }

// TotalHours returns the booked duration in whole hours.
func (b *Booking) TotalHours() int { return b.totalHours }

// Amount returns the final price frozen at creation time.
func (b *Booking) Amount() float64 { return b.amount }

// RateType returns the pricing tier active when the booking was made.
func (b *Booking) RateType() RateType { return b.rateType }

// DiscountApplied returns the discount percentage applied at creation.
func (b *Booking) DiscountApplied() float64 { return b.discountApplied }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// OccupiesHour reports whether the booking covers the given hour slot.
func (b *Booking) OccupiesHour(hour int) bool {
	return hour >= b.startTime && hour < b.endTime
}
