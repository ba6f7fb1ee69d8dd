package application

import (
	"context"
	"fmt"
	"time"

	bookingDomain "github.com/turfmanager/service-booking/internal/domain/booking"
	"github.com/turfmanager/service-booking/internal/events"
	"go.uber.org/zap"
)

// RatesDTO is the request and response representation of the rate policy.
type RatesDTO struct {
	BaseRate             int64    `json:"base_rate"`
	WeekendRate          int64    `json:"weekend_rate"`
	HolidayRate          int64    `json:"holiday_rate"`
	HolidayDates         []string `json:"holiday_dates"`
	NotificationEndpoint string   `json:"notification_endpoint"`
}

// RatesService handles the administrative rate policy use cases.
type RatesService struct {
	ratesRepo bookingDomain.RatesRepository
	publisher EventPublisher
	logger    *zap.Logger
}

// NewRatesService creates a new RatesService. The publisher may be nil.
func NewRatesService(ratesRepo bookingDomain.RatesRepository, publisher EventPublisher, logger *zap.Logger) *RatesService {
	return &RatesService{ratesRepo: ratesRepo, publisher: publisher, logger: logger}
}

// GetRates returns the active rate policy.
func (s *RatesService) GetRates(ctx context.Context) (*RatesDTO, error) {
	rates, err := s.ratesRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rates: %w", err)
	}
	dto := toRatesDTO(rates)
	return &dto, nil
}

// UpdateRates validates and persists a new rate policy in full. Bookings
// made under the previous policy keep their frozen amount and rate type.
func (s *RatesService) UpdateRates(ctx context.Context, req RatesDTO) (*RatesDTO, error) {
	rates := bookingDomain.RatesConfig{
		BaseRate:             req.BaseRate,
		WeekendRate:          req.WeekendRate,
		HolidayRate:          req.HolidayRate,
		HolidayDates:         dedupe(req.HolidayDates),
		NotificationEndpoint: req.NotificationEndpoint,
	}
	if err := rates.Validate(); err != nil {
		return nil, err
	}

	if err := s.ratesRepo.Save(ctx, rates); err != nil {
		return nil, fmt.Errorf("failed to save rates: %w", err)
	}

	s.logger.Info("rates updated",
		zap.Int64("base", rates.BaseRate),
		zap.Int64("weekend", rates.WeekendRate),
		zap.Int64("holiday", rates.HolidayRate),
		zap.Int("holidays", len(rates.HolidayDates)),
	)

	s.publishRatesUpdated(ctx, rates)

	dto := toRatesDTO(rates)
	return &dto, nil
}

func toRatesDTO(rates bookingDomain.RatesConfig) RatesDTO {
	return RatesDTO{
		BaseRate:             rates.BaseRate,
		WeekendRate:          rates.WeekendRate,
		HolidayRate:          rates.HolidayRate,
		HolidayDates:         rates.HolidayDates,
		NotificationEndpoint: rates.NotificationEndpoint,
	}
}

// dedupe drops duplicate holiday dates while preserving order.
func dedupe(dates []string) []string {
	seen := make(map[string]struct{}, len(dates))
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}

func (s *RatesService) publishRatesUpdated(ctx context.Context, rates bookingDomain.RatesConfig) {
	if s.publisher == nil {
		return
	}

	cloudEvent, err := events.NewCloudEvent("service-turf-booking", events.RatesUpdated, events.RatesUpdatedEvent{
		BaseRate:    rates.BaseRate,
		WeekendRate: rates.WeekendRate,
		HolidayRate: rates.HolidayRate,
		Holidays:    len(rates.HolidayDates),
		OccurredAt:  time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("failed to create cloud event", zap.Error(err))
		return
	}

	if err := s.publisher.PublishEvent(ctx, events.TopicBookingEvents, events.RatesUpdated, cloudEvent); err != nil {
		s.logger.Error("failed to publish rates update", zap.Error(err))
	}
}
