package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicBookingEvents carries all booking lifecycle events.
const TopicBookingEvents = "turf.booking.events"

// Event types published by this service.
const (
	BookingCreated = "turf.booking.created"
	BookingDeleted = "turf.booking.deleted"
	RatesUpdated   = "turf.rates.updated"
)

// BookingCreatedEvent is published after a booking is committed locally.
type BookingCreatedEvent struct {
	BookingID    uuid.UUID `json:"booking_id"`
	Date         string    `json:"date"`
	CustomerName string    `json:"customer_name"`
	StartTime    int       `json:"start_time"`
	EndTime      int       `json:"end_time"`
	TotalHours   int       `json:"total_hours"`
	Amount       float64   `json:"amount"`
	RateType     string    `json:"rate_type"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// BookingDeletedEvent is published after a booking is removed.
type BookingDeletedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	Date       string    `json:"date"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RatesUpdatedEvent is published after an administrator saves a new rate policy.
type RatesUpdatedEvent struct {
	BaseRate    int64     `json:"base_rate"`
	WeekendRate int64     `json:"weekend_rate"`
	HolidayRate int64     `json:"holiday_rate"`
	Holidays    int       `json:"holidays"`
	OccurredAt  time.Time `json:"occurred_at"`
}
