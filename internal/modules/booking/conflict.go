package booking

import (
	"time"

	"tutorhub/internal/domain"
)

// hasOverlap reports whether the candidate range [start, end) collides with
// any non-cancelled booking in the list. Both inequalities are strict, so a
// booking ending exactly when another starts is not a conflict.
//
// The candidate set is every booking sharing the tutor or the student, so a
// tutor is protected across all of their students and a student across all
// tutors they booked with.
func hasOverlap(existing []domain.Booking, start, end time.Time) bool {
	for _, b := range existing {
		if b.Status == domain.BookingCancelled {
			continue
		}
		if b.StartTime.Before(end) && b.EndTime.After(start) {
			return true
		}
	}
	return false
}
