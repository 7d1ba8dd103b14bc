package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// bookingTransitions is the full set of allowed status edges. Identity
// transitions are accepted as no-ops, including on the terminal states.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingPending, BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingConfirmed, BookingCompleted, BookingCancelled},
	BookingCancelled: {BookingCancelled},
	BookingCompleted: {BookingCompleted},
}

// CanTransition reports whether the status edge from -> to is allowed.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidBookingStatus reports whether s is part of the closed status vocabulary.
func ValidBookingStatus(s BookingStatus) bool {
	_, ok := bookingTransitions[s]
	return ok
}

type Booking struct {
	ID          int64         `json:"id"`
	TutorID     int64         `json:"tutor_id" validate:"required"`
	StudentID   int64         `json:"student_id" validate:"required"`
	SubjectID   int64         `json:"subject_id" validate:"required"`
	StartTime   time.Time     `json:"start_time" validate:"required"`
	EndTime     time.Time     `json:"end_time" validate:"required"`
	Description string        `json:"description,omitempty" gorm:"type:text"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// DurationHours is the booked length in fractional hours. Price is derived
// from it at read time and never stored on the booking.
func (b *Booking) DurationHours() float64 {
	return b.EndTime.Sub(b.StartTime).Hours()
}

// IsParticipant reports whether userID is one of the two booking parties.
func (b *Booking) IsParticipant(userID int64) bool {
	return b.TutorID == userID || b.StudentID == userID
}

// Counterpart returns the other party of the booking relative to userID.
func (b *Booking) Counterpart(userID int64) int64 {
	if b.TutorID == userID {
		return b.StudentID
	}
	return b.TutorID
}
