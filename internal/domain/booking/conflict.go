package booking

// Overlaps reports whether the half-open hour ranges [s1,e1) and [s2,e2)
// intersect. Touching endpoints (one booking ending at 18, another starting
// at 18) do not overlap.
func Overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}

// FindConflict returns the first existing booking on the same date whose
// slot overlaps [start,end), or nil if the slot is free. Bookings on other
// dates never conflict.
func FindConflict(date Date, start, end int, existing []*Booking) *Booking {
	for _, b := range existing {
		if b.Date() != date {
			continue
		}
		if Overlaps(start, end, b.StartTime(), b.EndTime()) {
			return b
		}
	}
	return nil
}

// HasConflict reports whether the proposed slot overlaps any existing
// booking on the same date.
func HasConflict(date Date, start, end int, existing []*Booking) bool {
	return FindConflict(date, start, end, existing) != nil
}
