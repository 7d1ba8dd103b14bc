package booking

import (
	"context"

	"tutorhub/internal/domain"
	"tutorhub/internal/repository"
)

// BookingRepository defines the persistence operations the service needs.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	FindActiveForParticipants(ctx context.Context, tutorID, studentID int64) ([]domain.Booking, error)
	GetUserBookingsWithDetails(ctx context.Context, userID int64, limit, offset int) ([]repository.UserBookingDetails, error)
	UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error
}

// UserDirectory is the eligibility and display-name lookup for participants.
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// SubjectCatalog resolves subjects and a tutor's hourly rate for one.
type SubjectCatalog interface {
	GetByID(ctx context.Context, id int64) (*domain.Subject, error)
	GetHourlyRate(ctx context.Context, tutorID, subjectID int64) (float64, error)
}

// NotificationSender fans a booking event out to both participants. Failures
// here never fail the booking operation that triggered them.
type NotificationSender interface {
	NotifyBookingEvent(ctx context.Context, b *domain.Booking, t domain.NotificationType) error
}
