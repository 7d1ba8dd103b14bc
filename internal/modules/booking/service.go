package booking

import (
	"context"
	"errors"
	"log"
	"math"

	"tutorhub/internal/domain"
	"tutorhub/internal/pkg/clock"
	"tutorhub/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service struct {
	bookings BookingRepository
	users    UserDirectory
	subjects SubjectCatalog
	notifs   NotificationSender
	clock    clock.Clock
}

func NewService(
	bookings BookingRepository,
	users UserDirectory,
	subjects SubjectCatalog,
	notifs NotificationSender,
	clk clock.Clock,
) *Service {
	return &Service{
		bookings: bookings,
		users:    users,
		subjects: subjects,
		notifs:   notifs,
		clock:    clk,
	}
}

// CreateBooking validates the request, rejects overlapping time slots and
// persists a new pending booking for the requesting student.
func (s *Service) CreateBooking(ctx context.Context, studentID int64, req CreateBookingRequest) (*BookingDetails, error) {
	start := req.StartTime.UTC()
	end := req.EndTime.UTC()

	if !end.After(start) {
		return nil, ErrValidation
	}
	if start.Before(s.clock.Now().UTC()) {
		return nil, ErrValidation
	}

	tutor, err := s.users.GetByID(ctx, req.TutorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTutorNotFound
		}
		return nil, err
	}
	if !tutor.CanBeBooked() {
		return nil, ErrTutorNotEligible
	}

	student, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	if !student.CanBook() {
		return nil, ErrStudentNotEligible
	}

	subject, err := s.subjects.GetByID(ctx, req.SubjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}

	rate, err := s.subjects.GetHourlyRate(ctx, req.TutorID, req.SubjectID)
	if err != nil {
		if errors.Is(err, repository.ErrRateNotFound) {
			return nil, ErrSubjectNotTaught
		}
		return nil, err
	}

	existing, err := s.bookings.FindActiveForParticipants(ctx, req.TutorID, studentID)
	if err != nil {
		return nil, err
	}
	if hasOverlap(existing, start, end) {
		return nil, ErrConflict
	}

	b := &domain.Booking{
		TutorID:     req.TutorID,
		StudentID:   studentID,
		SubjectID:   req.SubjectID,
		StartTime:   start,
		EndTime:     end,
		Description: req.Description,
		Status:      domain.BookingPending,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		// postgres no-overlap index backstop for the check-then-create race
		if pgErr, ok := err.(*pgconn.PgError); ok {
			if pgErr.Code == "23505" && pgErr.ConstraintName == "idx_no_overlapping_booking" {
				return nil, ErrConflict
			}
		}
		return nil, err
	}

	if s.notifs != nil {
		if err := s.notifs.NotifyBookingEvent(ctx, b, domain.NotifBookingCreated); err != nil {
			log.Printf("booking_notify_failed booking_id=%d type=%s error=%q", b.ID, domain.NotifBookingCreated, err)
		}
	}

	return s.hydrate(b, tutor, student, subject, rate), nil
}

// GetBooking enforces the participant-only visibility rule.
func (s *Service) GetBooking(ctx context.Context, bookingID, requestingUserID int64) (*BookingDetails, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !b.IsParticipant(requestingUserID) {
		return nil, ErrForbidden
	}

	return s.hydrateByLookup(ctx, b)
}

// GetBookingsForUser returns all bookings where the user is either party.
func (s *Service) GetBookingsForUser(ctx context.Context, userID int64, limit, offset int) ([]BookingDetails, error) {
	rows, err := s.bookings.GetUserBookingsWithDetails(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	out := make([]BookingDetails, 0, len(rows))
	for _, r := range rows {
		var desc string
		if r.Description != nil {
			desc = *r.Description
		}
		out = append(out, BookingDetails{
			ID:              r.ID,
			Status:          r.Status,
			TutorID:         r.TutorID,
			TutorName:       r.TutorName,
			TutorPhotoURL:   r.TutorPhotoURL,
			StudentID:       r.StudentID,
			StudentName:     r.StudentName,
			StudentPhotoURL: r.StudentPhotoURL,
			SubjectID:       r.SubjectID,
			SubjectName:     r.SubjectName,
			StartTime:       r.StartTime,
			EndTime:         r.EndTime,
			Description:     desc,
			Price:           roundPrice(r.HourlyRate * r.EndTime.Sub(r.StartTime).Hours()),
			CreatedAt:       r.CreatedAt,
			UpdatedAt:       r.UpdatedAt,
		})
	}
	return out, nil
}

// UpdateStatus moves a booking along the status table. Only a participant may
// transition it and only the tutor may confirm. The status-changed fan-out is
// a side effect: its failure is logged and swallowed, never rolled back.
func (s *Service) UpdateStatus(ctx context.Context, bookingID, requestingUserID int64, newStatus domain.BookingStatus) (*BookingDetails, error) {
	if !domain.ValidBookingStatus(newStatus) {
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !b.IsParticipant(requestingUserID) {
		return nil, ErrForbidden
	}
	if !domain.CanTransition(b.Status, newStatus) {
		return nil, ErrInvalidStatusTransition
	}
	if newStatus == domain.BookingConfirmed && requestingUserID != b.TutorID {
		// a student cannot confirm their own booking
		return nil, ErrForbidden
	}

	// identity transition: accepted no-op, nothing persisted, nobody notified
	if newStatus == b.Status {
		return s.hydrateByLookup(ctx, b)
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		return nil, err
	}
	b.Status = newStatus
	b.UpdatedAt = s.clock.Now().UTC()

	if s.notifs != nil {
		if err := s.notifs.NotifyBookingEvent(ctx, b, domain.NotifBookingStatusChanged); err != nil {
			log.Printf("booking_notify_failed booking_id=%d type=%s error=%q", b.ID, domain.NotifBookingStatusChanged, err)
		}
	}

	return s.hydrateByLookup(ctx, b)
}

func (s *Service) hydrateByLookup(ctx context.Context, b *domain.Booking) (*BookingDetails, error) {
	tutor, err := s.users.GetByID(ctx, b.TutorID)
	if err != nil {
		return nil, err
	}
	student, err := s.users.GetByID(ctx, b.StudentID)
	if err != nil {
		return nil, err
	}
	subject, err := s.subjects.GetByID(ctx, b.SubjectID)
	if err != nil {
		return nil, err
	}
	rate, err := s.subjects.GetHourlyRate(ctx, b.TutorID, b.SubjectID)
	if err != nil && !errors.Is(err, repository.ErrRateNotFound) {
		return nil, err
	}
	return s.hydrate(b, tutor, student, subject, rate), nil
}

func (s *Service) hydrate(b *domain.Booking, tutor, student *domain.User, subject *domain.Subject, rate float64) *BookingDetails {
	return &BookingDetails{
		ID:              b.ID,
		Status:          string(b.Status),
		TutorID:         b.TutorID,
		TutorName:       tutor.Name,
		TutorPhotoURL:   tutor.PhotoURL,
		StudentID:       b.StudentID,
		StudentName:     student.Name,
		StudentPhotoURL: student.PhotoURL,
		SubjectID:       b.SubjectID,
		SubjectName:     subject.Name,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		Description:     b.Description,
		Price:           roundPrice(rate * b.DurationHours()),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func roundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}
