package booking

import (
	"fmt"

	"github.com/turfmanager/service-booking/internal/domain"
)

// Default hourly rates in rupees, used until an administrator saves a policy.
const (
	DefaultBaseRate    int64 = 600
	DefaultWeekendRate int64 = 900
	DefaultHolidayRate int64 = 1200
)

// Operating window for the turf. Slots open at 06:00 and the latest bookable
// end is 24:00 (midnight). The window is enforced at the service boundary;
// the pricing core accepts the full 0-24 range.
const (
	OpenHour  = 6
	CloseHour = 24
)

// RatesConfig is the facility-wide pricing policy: the hourly rate per tier,
// the list of holiday dates overriding weekday classification, and the
// optional spreadsheet webhook endpoint for booking forwarding.
type RatesConfig struct {
	BaseRate             int64    `json:"base_rate"`
	WeekendRate          int64    `json:"weekend_rate"`
	HolidayRate          int64    `json:"holiday_rate"`
	HolidayDates         []string `json:"holiday_dates"`
	NotificationEndpoint string   `json:"notification_endpoint"`
}

// DefaultRatesConfig returns the documented fallback policy: 600/900/1200
// per hour, no holidays, forwarding disabled.
func DefaultRatesConfig() RatesConfig {
	return RatesConfig{
		BaseRate:     DefaultBaseRate,
		WeekendRate:  DefaultWeekendRate,
		HolidayRate:  DefaultHolidayRate,
		HolidayDates: []string{},
	}
}

// Validate checks that all rates are non-negative and every holiday date parses.
func (rc RatesConfig) Validate() error {
	if rc.BaseRate < 0 || rc.WeekendRate < 0 || rc.HolidayRate < 0 {
		return domain.NewValidationError("hourly rates must be non-negative")
	}
	for _, hd := range rc.HolidayDates {
		if _, err := ParseDate(hd); err != nil {
			return domain.NewValidationError(fmt.Sprintf("invalid holiday date: %s", hd))
		}
	}
	return nil
}

// IsHoliday reports whether the given date is listed as a holiday.
func (rc RatesConfig) IsHoliday(d Date) bool {
	key := d.String()
	for _, hd := range rc.HolidayDates {
		if hd == key {
			return true
		}
	}
	return false
}

// HourlyRate returns the per-hour rate for the given tier.
func (rc RatesConfig) HourlyRate(rt RateType) int64 {
	switch rt {
	case RateHoliday:
		return rc.HolidayRate
	case RateWeekend:
		return rc.WeekendRate
	default:
		return rc.BaseRate
	}
}

// ClassifyDate determines the pricing tier for a date. A holiday listing
// takes precedence over the weekday check, so a Saturday marked as a holiday
// is still Holiday.
func ClassifyDate(d Date, rates RatesConfig) RateType {
	if rates.IsHoliday(d) {
		return RateHoliday
	}
	if d.IsWeekend() {
		return RateWeekend
	}
	return RateBase
}
