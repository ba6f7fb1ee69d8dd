package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBooking(t *testing.T, dateStr string, start, end int) *Booking {
	t.Helper()
	d, err := ParseDate(dateStr)
	require.NoError(t, err)

	q, err := NewStandardPricer().Quote(QuoteParams{
		Date:      d,
		StartTime: start,
		EndTime:   end,
		Rates:     testRates(),
	})
	require.NoError(t, err)

	b, err := NewBooking(d, "Bhargav", "+91 00000 00000", start, end, q, 0)
	require.NoError(t, err)
	return b
}

func TestOverlaps_HalfOpen(t *testing.T) {
	cases := []struct {
		name           string
		s1, e1, s2, e2 int
		want           bool
	}{
		{"touching end to start", 18, 19, 19, 20, false},
		{"touching start to end", 18, 20, 15, 18, false},
		{"partial overlap", 18, 20, 19, 21, true},
		{"contained", 18, 22, 19, 20, true},
		{"containing", 19, 20, 18, 22, true},
		{"identical", 18, 20, 18, 20, true},
		{"disjoint", 6, 8, 10, 12, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.s1, tc.e1, tc.s2, tc.e2))
			assert.Equal(t, tc.want, Overlaps(tc.s2, tc.e2, tc.s1, tc.e1), "overlap must be symmetric")
		})
	}
}

func TestHasConflict_SameDate(t *testing.T) {
	existing := []*Booking{
		mustBooking(t, "2024-06-15", 18, 20),
	}
	d, _ := ParseDate("2024-06-15")

	assert.False(t, HasConflict(d, 19, 20, nil), "no bookings, no conflict")
	assert.True(t, HasConflict(d, 19, 21, existing))
	assert.False(t, HasConflict(d, 20, 22, existing))
	assert.False(t, HasConflict(d, 15, 18, existing))
}

func TestHasConflict_CrossDateIsolation(t *testing.T) {
	existing := []*Booking{
		mustBooking(t, "2024-06-15", 18, 20),
	}
	other, _ := ParseDate("2024-06-16")
	assert.False(t, HasConflict(other, 18, 20, existing))
}

func TestFindConflict_ReturnsClashingBooking(t *testing.T) {
	first := mustBooking(t, "2024-06-15", 6, 8)
	second := mustBooking(t, "2024-06-15", 18, 20)
	d, _ := ParseDate("2024-06-15")

	got := FindConflict(d, 19, 21, []*Booking{first, second})
	require.NotNil(t, got)
	assert.Equal(t, second.ID(), got.ID())

	assert.Nil(t, FindConflict(d, 9, 11, []*Booking{first, second}))
}
