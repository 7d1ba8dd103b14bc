package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := [][2]BookingStatus{
		{BookingPending, BookingConfirmed},
		{BookingPending, BookingCancelled},
		{BookingConfirmed, BookingCompleted},
		{BookingConfirmed, BookingCancelled},
		// identity transitions are accepted no-ops
		{BookingPending, BookingPending},
		{BookingConfirmed, BookingConfirmed},
		{BookingCancelled, BookingCancelled},
		{BookingCompleted, BookingCompleted},
	}
	for _, tr := range allowed {
		assert.True(t, CanTransition(tr[0], tr[1]), "%s -> %s should be allowed", tr[0], tr[1])
	}

	all := []BookingStatus{BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted}
	isAllowed := func(from, to BookingStatus) bool {
		for _, tr := range allowed {
			if tr[0] == from && tr[1] == to {
				return true
			}
		}
		return false
	}
	for _, from := range all {
		for _, to := range all {
			if !isAllowed(from, to) {
				assert.False(t, CanTransition(from, to), "%s -> %s should be rejected", from, to)
			}
		}
	}
}

func TestBookingParticipants(t *testing.T) {
	b := &Booking{TutorID: 1, StudentID: 2}

	assert.True(t, b.IsParticipant(1))
	assert.True(t, b.IsParticipant(2))
	assert.False(t, b.IsParticipant(3))

	assert.Equal(t, int64(2), b.Counterpart(1))
	assert.Equal(t, int64(1), b.Counterpart(2))
}
