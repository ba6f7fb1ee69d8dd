package booking

import "fmt"

// RateType is the pricing tier applicable to a booking date.
type RateType string

const (
	RateBase    RateType = "Base"
	RateWeekend RateType = "Weekend"
	RateHoliday RateType = "Holiday"
)

// IsValid returns true if the rate type is a recognized pricing tier.
func (r RateType) IsValid() bool {
	switch r {
	case RateBase, RateWeekend, RateHoliday:
		return true
	}
	return false
}

// String returns the string representation of the rate type.
func (r RateType) String() string {
	return string(r)
}

// ParseRateType converts a string to a RateType, returning an error if invalid.
func ParseRateType(s string) (RateType, error) {
	rt := RateType(s)
	if !rt.IsValid() {
		return "", fmt.Errorf("invalid rate type: %s", s)
	}
	return rt, nil
}
