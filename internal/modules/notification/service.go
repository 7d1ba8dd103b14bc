package notification

import (
	"context"
	"errors"
	"log"
	"time"

	"tutorhub/internal/domain"
)

// Repository is the notification persistence contract.
type Repository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ExistsForBooking(ctx context.Context, bookingID int64, t domain.NotificationType, recipientID int64) (bool, error)
	GetByRecipient(ctx context.Context, userID int64, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkAsRead(ctx context.Context, id, userID int64) error
	MarkAllAsRead(ctx context.Context, userID int64) error
}

// UserDirectory resolves counterpart display names for payload snapshots.
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// SubjectLookup resolves the subject name for payload snapshots.
type SubjectLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Subject, error)
}

type Service struct {
	repo     Repository
	users    UserDirectory
	subjects SubjectLookup
	hub      *Hub
}

func NewService(repo Repository, users UserDirectory, subjects SubjectLookup, hub *Hub) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		subjects: subjects,
		hub:      hub,
	}
}

// NotifyBookingEvent emits one notification per participant with reciprocal
// actor/recipient assignment. Each notification carries a snapshot of the
// booking at emission time, so later changes never rewrite what was sent.
//
// Emission is not deduplicated here: every status change is a distinct fact.
// Reminder-class callers guard with Exists first.
func (s *Service) NotifyBookingEvent(ctx context.Context, b *domain.Booking, t domain.NotificationType) error {
	if !domain.ValidNotificationType(t) {
		return errors.New("unknown notification type")
	}

	tutorName, studentName := s.participantNames(ctx, b)
	subjectName := s.subjectName(ctx, b.SubjectID)

	var firstErr error
	pairs := []struct {
		recipient, actor int64
		counterpart      string
	}{
		{recipient: b.StudentID, actor: b.TutorID, counterpart: tutorName},
		{recipient: b.TutorID, actor: b.StudentID, counterpart: studentName},
	}

	for _, p := range pairs {
		n := &domain.Notification{
			RecipientID: p.recipient,
			ActorID:     p.actor,
			BookingID:   b.ID,
			Type:        t,
			CreatedAt:   time.Now().UTC(),
		}
		_ = n.SetPayload(&domain.BookingSnapshot{
			BookingID:       b.ID,
			SubjectName:     subjectName,
			StartTime:       b.StartTime.UTC().Format(time.RFC3339),
			EndTime:         b.EndTime.UTC().Format(time.RFC3339),
			CounterpartName: p.counterpart,
			Status:          string(b.Status),
		})

		if err := s.repo.Create(ctx, n); err != nil {
			log.Printf("notification_create_failed booking_id=%d recipient_id=%d type=%s error=%q",
				b.ID, p.recipient, t, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		if s.hub != nil {
			s.hub.SendToUser(p.recipient, toResponse(*n))
		}
	}

	return firstErr
}

// Exists is the idempotency predicate used before reminder-class emission.
func (s *Service) Exists(ctx context.Context, bookingID int64, t domain.NotificationType, recipientID int64) (bool, error) {
	return s.repo.ExistsForBooking(ctx, bookingID, t, recipientID)
}

func (s *Service) GetUserNotifications(ctx context.Context, userID int64, limit int) ([]domain.Notification, int64, error) {
	list, err := s.repo.GetByRecipient(ctx, userID, limit)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		unread = 0
	}

	return list, unread, nil
}

func (s *Service) MarkAsRead(ctx context.Context, notificationID, userID int64) error {
	return s.repo.MarkAsRead(ctx, notificationID, userID)
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// participantNames resolves display names best-effort: a failed lookup leaves
// the name empty rather than blocking emission.
func (s *Service) participantNames(ctx context.Context, b *domain.Booking) (tutorName, studentName string) {
	if tutor, err := s.users.GetByID(ctx, b.TutorID); err == nil {
		tutorName = tutor.Name
	}
	if student, err := s.users.GetByID(ctx, b.StudentID); err == nil {
		studentName = student.Name
	}
	return tutorName, studentName
}

func (s *Service) subjectName(ctx context.Context, subjectID int64) string {
	subj, err := s.subjects.GetByID(ctx, subjectID)
	if err != nil {
		return ""
	}
	return subj.Name
}
