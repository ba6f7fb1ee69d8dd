package booking

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRates() RatesConfig {
	return RatesConfig{
		BaseRate:     600,
		WeekendRate:  900,
		HolidayRate:  1200,
		HolidayDates: []string{"2024-08-15", "2024-10-02"},
	}
}

func TestClassifyDate_HolidayPrecedence(t *testing.T) {
	// 2024-08-15 is a Thursday listed as a holiday.
	d, err := ParseDate("2024-08-15")
	require.NoError(t, err)
	assert.Equal(t, RateHoliday, ClassifyDate(d, testRates()))

	// A Saturday listed as a holiday is still Holiday, not Weekend.
	rates := testRates()
	rates.HolidayDates = append(rates.HolidayDates, "2024-06-15")
	sat, _ := ParseDate("2024-06-15")
	assert.Equal(t, RateHoliday, ClassifyDate(sat, rates))
}

func TestClassifyDate_Weekend(t *testing.T) {
	sat, _ := ParseDate("2024-06-15")
	sun, _ := ParseDate("2024-06-16")
	assert.Equal(t, RateWeekend, ClassifyDate(sat, testRates()))
	assert.Equal(t, RateWeekend, ClassifyDate(sun, testRates()))
}

func TestClassifyDate_Weekdays(t *testing.T) {
	// Monday 2024-06-10 through Friday 2024-06-14, none are holidays.
	for day := 10; day <= 14; day++ {
		d, err := ParseDate(fmt.Sprintf("2024-06-%02d", day))
		require.NoError(t, err)
		assert.Equal(t, RateBase, ClassifyDate(d, testRates()), "day %d", day)
	}
}

func TestClassifyDate_Pure(t *testing.T) {
	rates := testRates()
	d, _ := ParseDate("2024-08-15")

	first := ClassifyDate(d, rates)
	second := ClassifyDate(d, rates)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"2024-08-15", "2024-10-02"}, rates.HolidayDates)
}

func TestRatesConfig_HourlyRate(t *testing.T) {
	rates := testRates()
	assert.Equal(t, int64(600), rates.HourlyRate(RateBase))
	assert.Equal(t, int64(900), rates.HourlyRate(RateWeekend))
	assert.Equal(t, int64(1200), rates.HourlyRate(RateHoliday))
}

func TestDefaultRatesConfig(t *testing.T) {
	rates := DefaultRatesConfig()
	assert.Equal(t, int64(600), rates.BaseRate)
	assert.Equal(t, int64(900), rates.WeekendRate)
	assert.Equal(t, int64(1200), rates.HolidayRate)
	assert.Empty(t, rates.HolidayDates)
	assert.Empty(t, rates.NotificationEndpoint)
}

func TestRatesConfig_Validate(t *testing.T) {
	valid := testRates()
	assert.NoError(t, valid.Validate())

	negative := testRates()
	negative.WeekendRate = -1
	assert.Error(t, negative.Validate())

	badDate := testRates()
	badDate.HolidayDates = []string{"15-08-2024"}
	assert.Error(t, badDate.Validate())
}

func TestParseRateType(t *testing.T) {
	rt, err := ParseRateType("Weekend")
	require.NoError(t, err)
	assert.Equal(t, RateWeekend, rt)

	_, err = ParseRateType("Premium")
	assert.Error(t, err)
}
