package booking

import (
	"testing"
	"time"

	"tutorhub/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestHasOverlap(t *testing.T) {
	base := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)

	booked := func(status domain.BookingStatus, startOffset, endOffset time.Duration) []domain.Booking {
		return []domain.Booking{{
			Status:    status,
			StartTime: base.Add(startOffset),
			EndTime:   base.Add(endOffset),
		}}
	}

	// candidate is always [10:00, 11:00)
	start, end := base, base.Add(time.Hour)

	tests := []struct {
		name     string
		existing []domain.Booking
		want     bool
	}{
		{"no bookings", nil, false},
		{"identical range", booked(domain.BookingPending, 0, time.Hour), true},
		{"contained inside", booked(domain.BookingConfirmed, 15*time.Minute, 45*time.Minute), true},
		{"overlaps start", booked(domain.BookingPending, -30*time.Minute, 30*time.Minute), true},
		{"overlaps end", booked(domain.BookingPending, 30*time.Minute, 90*time.Minute), true},
		{"covers candidate", booked(domain.BookingConfirmed, -time.Hour, 2*time.Hour), true},
		{"ends exactly at start", booked(domain.BookingPending, -time.Hour, 0), false},
		{"starts exactly at end", booked(domain.BookingPending, time.Hour, 2*time.Hour), false},
		{"earlier same day", booked(domain.BookingPending, -3*time.Hour, -2*time.Hour), false},
		{"cancelled overlap ignored", booked(domain.BookingCancelled, 0, time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hasOverlap(tt.existing, start, end))
		})
	}
}

func TestHasOverlap_FirstMatchWins(t *testing.T) {
	base := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)

	existing := []domain.Booking{
		{Status: domain.BookingCancelled, StartTime: base, EndTime: base.Add(time.Hour)},
		{Status: domain.BookingPending, StartTime: base.Add(-2 * time.Hour), EndTime: base.Add(-time.Hour)},
		{Status: domain.BookingConfirmed, StartTime: base.Add(30 * time.Minute), EndTime: base.Add(90 * time.Minute)},
	}

	assert.True(t, hasOverlap(existing, base, base.Add(time.Hour)))
}
