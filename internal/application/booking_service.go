package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/turfmanager/service-booking/internal/domain"
	bookingDomain "github.com/turfmanager/service-booking/internal/domain/booking"
	"github.com/turfmanager/service-booking/internal/events"
	"github.com/turfmanager/service-booking/internal/notifier"
	"go.uber.org/zap"
)

// EventPublisher is the outbound event stream contract. Publishing is
// best-effort: failures are logged and never surfaced to the caller.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event events.CloudEvent) error
}

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	Date            string  `json:"date" binding:"required"`
	CustomerName    string  `json:"customer_name" binding:"required"`
	Phone           string  `json:"phone"`
	StartTime       int     `json:"start_time"`
	EndTime         int     `json:"end_time"`
	DiscountPercent float64 `json:"discount_percent"`
}

// QuoteRequest holds the inputs for a live pricing preview.
type QuoteRequest struct {
	Date            string  `json:"date" binding:"required"`
	StartTime       int     `json:"start_time"`
	EndTime         int     `json:"end_time"`
	DiscountPercent float64 `json:"discount_percent"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID              uuid.UUID `json:"id"`
	Date            string    `json:"date"`
	DisplayDate     string    `json:"display_date"`
	CustomerName    string    `json:"customer_name"`
	Phone           string    `json:"phone,omitempty"`
	StartTime       int       `json:"start_time"`
	EndTime         int       `json:"end_time"`
	Slot            string    `json:"slot"`
	TotalHours      int       `json:"total_hours"`
	Amount          float64   `json:"amount"`
	AmountDisplay   string    `json:"amount_display"`
	RateType        string    `json:"rate_type"`
	DiscountApplied float64   `json:"discount_applied"`
	CreatedAt       time.Time `json:"created_at"`
}

// QuoteDTO is the response representation of a pricing preview.
type QuoteDTO struct {
	Amount        float64 `json:"amount"`
	AmountDisplay string  `json:"amount_display"`
	RateType      string  `json:"rate_type"`
	TotalHours    int     `json:"total_hours"`
	HourlyRate    int64   `json:"hourly_rate"`
}

// SlotDTO describes one hour of the operating window on a given day.
type SlotDTO struct {
	Hour         int    `json:"hour"`
	Label        string `json:"label"`
	Booked       bool   `json:"booked"`
	BookingID    string `json:"booking_id,omitempty"`
	CustomerName string `json:"customer_name,omitempty"`
}

// DayStatsDTO aggregates a day's bookings for the dashboard.
type DayStatsDTO struct {
	Revenue        float64 `json:"revenue"`
	RevenueDisplay string  `json:"revenue_display"`
	Hours          int     `json:"hours"`
	Count          int     `json:"count"`
}

// BookingStatsDTO summarizes the booking ledger by pricing tier.
type BookingStatsDTO struct {
	Total      int64            `json:"total"`
	ByRateType map[string]int64 `json:"by_rate_type"`
}

// DayScheduleDTO is the dashboard view of a single day.
type DayScheduleDTO struct {
	Date       string      `json:"date"`
	RateType   string      `json:"rate_type"`
	HourlyRate int64       `json:"hourly_rate"`
	Slots      []SlotDTO   `json:"slots"`
	Stats      DayStatsDTO `json:"stats"`
}

// BookingService orchestrates the booking use cases: quote, conflict gate,
// commit, then best-effort forwarding.
type BookingService struct {
	repo       bookingDomain.Repository
	ratesRepo  bookingDomain.RatesRepository
	pricer     bookingDomain.Pricer
	dispatcher notifier.Dispatcher
	publisher  EventPublisher
	logger     *zap.Logger
}

// NewBookingService creates a new BookingService. The publisher may be nil
// when no event stream is configured.
func NewBookingService(
	repo bookingDomain.Repository,
	ratesRepo bookingDomain.RatesRepository,
	pricer bookingDomain.Pricer,
	dispatcher notifier.Dispatcher,
	publisher EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		repo:       repo,
		ratesRepo:  ratesRepo,
		pricer:     pricer,
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     logger,
	}
}

// validateWindow enforces the facility's operating hours at the boundary.
// The pricing core deliberately accepts the full 0-24 range.
func validateWindow(start, end int) error {
	if start < bookingDomain.OpenHour || end > bookingDomain.CloseHour {
		return domain.NewValidationError(fmt.Sprintf(
			"slots are available from %s to %s only",
			bookingDomain.FormatHour(bookingDomain.OpenHour),
			bookingDomain.FormatHour(bookingDomain.CloseHour),
		))
	}
	return nil
}

// CreateBooking prices, conflict-checks and commits a new booking, then
// forwards it asynchronously. A notification or event failure never rolls
// back the committed booking.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingDTO, error) {
	date, err := bookingDomain.ParseDate(req.Date)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}
	if err := validateWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	rates, err := s.ratesRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rates: %w", err)
	}

	quote, err := s.pricer.Quote(bookingDomain.QuoteParams{
		Date:            date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Rates:           rates,
		DiscountPercent: req.DiscountPercent,
	})
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings for %s: %w", date, err)
	}
	if clash := bookingDomain.FindConflict(date, req.StartTime, req.EndTime, existing); clash != nil {
		return nil, domain.NewConflictError(fmt.Sprintf(
			"slot %s on %s is already booked",
			bookingDomain.FormatSlot(clash.StartTime(), clash.EndTime()),
			date.DisplayString(),
		))
	}

	b, err := bookingDomain.NewBooking(
		date,
		req.CustomerName,
		req.Phone,
		req.StartTime,
		req.EndTime,
		quote,
		req.DiscountPercent,
	)
	if err != nil {
		return nil, err
	}

	// The repository re-checks the slot inside the insert transaction, so
	// two concurrent writers cannot both pass the check above.
	if err := s.repo.SaveIfFree(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.String("booking_id", b.ID().String()),
		zap.String("date", b.Date().String()),
		zap.Int("start", b.StartTime()),
		zap.Int("end", b.EndTime()),
		zap.String("rate_type", b.RateType().String()),
	)

	// Committed: everything past this point is fire-and-forget.
	s.dispatcher.Dispatch(b, rates.NotificationEndpoint)
	s.publishBookingCreated(ctx, b)

	result := toBookingDTO(b)
	return &result, nil
}

// PreviewQuote prices a prospective slot without committing anything.
func (s *BookingService) PreviewQuote(ctx context.Context, req QuoteRequest) (*QuoteDTO, error) {
	date, err := bookingDomain.ParseDate(req.Date)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}
	if err := validateWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	rates, err := s.ratesRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rates: %w", err)
	}

	quote, err := s.pricer.Quote(bookingDomain.QuoteParams{
		Date:            date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Rates:           rates,
		DiscountPercent: req.DiscountPercent,
	})
	if err != nil {
		return nil, err
	}

	return &QuoteDTO{
		Amount:        quote.Amount,
		AmountDisplay: bookingDomain.FormatAmount(quote.Amount),
		RateType:      quote.RateType.String(),
		TotalHours:    quote.TotalHours,
		HourlyRate:    quote.HourlyRate,
	}, nil
}

// GetBooking retrieves a single booking by ID.
func (s *BookingService) GetBooking(ctx context.Context, id uuid.UUID) (*BookingDTO, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(b)
	return &result, nil
}

// ListBookings retrieves the booking history, newest first.
func (s *BookingService) ListBookings(ctx context.Context, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.repo.ListAll(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, b := range bookings {
		dtos[i] = toBookingDTO(b)
	}

	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// DeleteBooking removes exactly the booking with the given identifier.
func (s *BookingService) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("booking deleted",
		zap.String("booking_id", id.String()),
		zap.String("date", b.Date().String()),
	)

	s.publishEvent(ctx, events.BookingDeleted, id.String(), events.BookingDeletedEvent{
		BookingID:  id,
		Date:       b.Date().String(),
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// GetBookingStats aggregates booking counts per pricing tier across the
// whole ledger.
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.repo.CountByRateType(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings by rate type: %w", err)
	}

	stats := &BookingStatsDTO{ByRateType: counts}
	for _, n := range counts {
		stats.Total += n
	}
	return stats, nil
}

// GetDaySchedule builds the per-slot occupancy and daily stats for a date.
func (s *BookingService) GetDaySchedule(ctx context.Context, dateStr string) (*DayScheduleDTO, error) {
	date, err := bookingDomain.ParseDate(dateStr)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	rates, err := s.ratesRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rates: %w", err)
	}

	bookings, err := s.repo.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings for %s: %w", date, err)
	}

	rateType := bookingDomain.ClassifyDate(date, rates)

	slots := make([]SlotDTO, 0, bookingDomain.CloseHour-bookingDomain.OpenHour)
	for hour := bookingDomain.OpenHour; hour < bookingDomain.CloseHour; hour++ {
		slot := SlotDTO{Hour: hour, Label: bookingDomain.FormatHour(hour)}
		for _, b := range bookings {
			if b.OccupiesHour(hour) {
				slot.Booked = true
				slot.BookingID = b.ID().String()
				slot.CustomerName = b.CustomerName()
				break
			}
		}
		slots = append(slots, slot)
	}

	var stats DayStatsDTO
	for _, b := range bookings {
		stats.Revenue += b.Amount()
		stats.Hours += b.TotalHours()
		stats.Count++
	}
	stats.RevenueDisplay = bookingDomain.FormatAmount(stats.Revenue)

	return &DayScheduleDTO{
		Date:       date.String(),
		RateType:   rateType.String(),
		HourlyRate: rates.HourlyRate(rateType),
		Slots:      slots,
		Stats:      stats,
	}, nil
}

// --- Helpers ---

func toBookingDTO(b *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:              b.ID(),
		Date:            b.Date().String(),
		DisplayDate:     b.Date().DisplayString(),
		CustomerName:    b.CustomerName(),
		Phone:           b.Phone(),
		StartTime:       b.StartTime(),
		EndTime:         b.EndTime(),
		Slot:            bookingDomain.FormatSlot(b.StartTime(), b.EndTime()),
		TotalHours:      b.TotalHours(),
		Amount:          b.Amount(),
		AmountDisplay:   bookingDomain.FormatAmount(b.Amount()),
		RateType:        b.RateType().String(),
		DiscountApplied: b.DiscountApplied(),
		CreatedAt:       b.CreatedAt(),
	}
}

func (s *BookingService) publishBookingCreated(ctx context.Context, b *bookingDomain.Booking) {
	s.publishEvent(ctx, events.BookingCreated, b.ID().String(), events.BookingCreatedEvent{
		BookingID:    b.ID(),
		Date:         b.Date().String(),
		CustomerName: b.CustomerName(),
		StartTime:    b.StartTime(),
		EndTime:      b.EndTime(),
		TotalHours:   b.TotalHours(),
		Amount:       b.Amount(),
		RateType:     b.RateType().String(),
		OccurredAt:   time.Now().UTC(),
	})
}

func (s *BookingService) publishEvent(ctx context.Context, eventType, key string, data interface{}) {
	if s.publisher == nil {
		return
	}

	cloudEvent, err := events.NewCloudEvent("service-turf-booking", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.publisher.PublishEvent(ctx, events.TopicBookingEvents, key, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
