package repository

import (
	"context"
	"time"

	"tutorhub/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	TutorID     int64     `gorm:"column:tutor_id"`
	StudentID   int64     `gorm:"column:student_id"`
	SubjectID   int64     `gorm:"column:subject_id"`
	StartTime   time.Time `gorm:"column:start_time"`
	EndTime     time.Time `gorm:"column:end_time"`
	Description *string   `gorm:"column:description"`
	Status      string    `gorm:"column:status"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var desc string
	if m.Description != nil {
		desc = *m.Description
	}

	return &domain.Booking{
		ID:          m.ID,
		TutorID:     m.TutorID,
		StudentID:   m.StudentID,
		SubjectID:   m.SubjectID,
		StartTime:   m.StartTime,
		EndTime:     m.EndTime,
		Description: desc,
		Status:      domain.BookingStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var desc *string
	if b.Description != "" {
		v := b.Description
		desc = &v
	}

	return bookingModel{
		ID:          b.ID,
		TutorID:     b.TutorID,
		StudentID:   b.StudentID,
		SubjectID:   b.SubjectID,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Description: desc,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// FindActiveForParticipants returns every non-cancelled booking where the
// tutor matches or the student matches. The overlap test itself runs in the
// service layer; this only narrows the candidate set.
func (r *BookingRepository) FindActiveForParticipants(ctx context.Context, tutorID, studentID int64) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).
		Where("(tutor_id = ? OR student_id = ?) AND status <> ?", tutorID, studentID, string(domain.BookingCancelled)).
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// FindConfirmedStartingBetween returns confirmed bookings whose start time
// falls inside [from, to]; this is the reminder sweep query.
func (r *BookingRepository) FindConfirmedStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).
		Where("status = ? AND start_time >= ? AND start_time <= ?", string(domain.BookingConfirmed), from, to).
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// UserBookingDetails is a read-model row for booking listings: the booking
// plus display fields resolved at query time, never persisted on the booking.
type UserBookingDetails struct {
	ID          int64     `gorm:"column:id"`
	TutorID     int64     `gorm:"column:tutor_id"`
	StudentID   int64     `gorm:"column:student_id"`
	SubjectID   int64     `gorm:"column:subject_id"`
	StartTime   time.Time `gorm:"column:start_time"`
	EndTime     time.Time `gorm:"column:end_time"`
	Status      string    `gorm:"column:status"`
	Description *string   `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`

	TutorName       string  `gorm:"column:tutor_name"`
	TutorPhotoURL   string  `gorm:"column:tutor_photo_url"`
	StudentName     string  `gorm:"column:student_name"`
	StudentPhotoURL string  `gorm:"column:student_photo_url"`
	SubjectName     string  `gorm:"column:subject_name"`
	HourlyRate      float64 `gorm:"column:hourly_rate"`
}

func (r *BookingRepository) GetUserBookingsWithDetails(ctx context.Context, userID int64, limit, offset int) ([]UserBookingDetails, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	q := `
SELECT b.id, b.tutor_id, b.student_id, b.subject_id,
       b.start_time, b.end_time, b.status, b.description,
       b.created_at, b.updated_at,
       t.name AS tutor_name, COALESCE(t.photo_url, '') AS tutor_photo_url,
       st.name AS student_name, COALESCE(st.photo_url, '') AS student_photo_url,
       s.name AS subject_name,
       COALESCE(ts.hourly_rate, 0) AS hourly_rate
FROM bookings b
JOIN users t  ON t.id = b.tutor_id
JOIN users st ON st.id = b.student_id
JOIN subjects s ON s.id = b.subject_id
LEFT JOIN tutor_subjects ts ON ts.tutor_id = b.tutor_id AND ts.subject_id = b.subject_id
WHERE b.tutor_id = ? OR b.student_id = ?
ORDER BY b.start_time DESC
LIMIT ? OFFSET ?
`
	var rows []UserBookingDetails
	tx := r.db.WithContext(ctx).Raw(q, userID, userID, limit, offset).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error {
	res := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", bookingID).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
