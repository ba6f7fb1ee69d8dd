package booking

import (
	"fmt"
	"math"
	"strconv"
)

// FormatHour renders an hour-of-day on the 12-hour clock, e.g. 18 -> "6 PM".
// Hour 24 renders as "12 AM" (midnight close).
func FormatHour(hour int) string {
	h := hour % 24
	ampm := "AM"
	if h >= 12 {
		ampm = "PM"
	}
	display := h % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d %s", display, ampm)
}

// FormatSlot renders a slot range, e.g. "6 PM - 8 PM".
func FormatSlot(start, end int) string {
	return FormatHour(start) + " - " + FormatHour(end)
}

// FormatAmount renders a price in rupees, rounded to whole units with
// Indian digit grouping, e.g. 125000 -> "₹1,25,000". This is the only place
// the full-precision amount gets rounded.
func FormatAmount(amount float64) string {
	rounded := int64(math.Round(amount))
	neg := rounded < 0
	if neg {
		rounded = -rounded
	}
	s := strconv.FormatInt(rounded, 10)

	// Indian grouping: rightmost group of three, then groups of two.
	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		grouped := ""
		for len(head) > 2 {
			grouped = "," + head[len(head)-2:] + grouped
			head = head[:len(head)-2]
		}
		s = head + grouped + "," + tail
	}

	if neg {
		return "-₹" + s
	}
	return "₹" + s
}
