package booking

import (
	"fmt"

	"github.com/turfmanager/service-booking/internal/domain"
)

// Pricer defines the interface for computing the price of a slot booking.
type Pricer interface {
	// Quote returns the price breakdown for the given parameters.
	Quote(params QuoteParams) (Quote, error)
}

// QuoteParams holds the inputs for a price computation.
type QuoteParams struct {
	Date            Date
	StartTime       int
	EndTime         int
	Rates           RatesConfig
	DiscountPercent float64
}

// Quote is the result of a price computation. Amount keeps full precision;
// rounding to whole rupees happens only at the presentation boundary.
type Quote struct {
	Amount     float64  `json:"amount"`
	RateType   RateType `json:"rate_type"`
	TotalHours int      `json:"total_hours"`
	HourlyRate int64    `json:"hourly_rate"`
}

// StandardPricer implements the turf's pricing policy: classify the day,
// select the tier rate, multiply by whole hours, then apply the discount.
type StandardPricer struct{}

// NewStandardPricer creates a new StandardPricer.
func NewStandardPricer() *StandardPricer {
	return &StandardPricer{}
}

// Quote computes the price for a slot. It fails fast on out-of-contract
// input rather than clamping, so upstream form bugs surface immediately.
func (p *StandardPricer) Quote(params QuoteParams) (Quote, error) {
	if params.StartTime < 0 || params.EndTime > 24 {
		return Quote{}, domain.NewValidationError(fmt.Sprintf("hours must be within 0-24, got %d-%d", params.StartTime, params.EndTime))
	}
	if params.StartTime >= params.EndTime {
		return Quote{}, domain.NewValidationError(fmt.Sprintf("start hour %d must be before end hour %d", params.StartTime, params.EndTime))
	}
	if params.DiscountPercent < 0 || params.DiscountPercent > 100 {
		return Quote{}, domain.NewValidationError(fmt.Sprintf("discount must be within 0-100, got %g", params.DiscountPercent))
	}

	rateType := ClassifyDate(params.Date, params.Rates)
	hourlyRate := params.Rates.HourlyRate(rateType)
	totalHours := params.EndTime - params.StartTime

	baseTotal := float64(totalHours) * float64(hourlyRate)
	amount := baseTotal - baseTotal*params.DiscountPercent/100

	return Quote{
		Amount:     amount,
		RateType:   rateType,
		TotalHours: totalHours,
		HourlyRate: hourlyRate,
	}, nil
}
