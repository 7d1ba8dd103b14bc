package booking

import "time"

type CreateBookingRequest struct {
	TutorID     int64     `json:"tutor_id" binding:"required"`
	SubjectID   int64     `json:"subject_id" binding:"required"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	Description string    `json:"description"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// BookingDetails is the hydrated read view: participant display fields and
// the derived price are resolved at read time, never stored.
type BookingDetails struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`

	TutorID       int64  `json:"tutor_id"`
	TutorName     string `json:"tutor_name"`
	TutorPhotoURL string `json:"tutor_photo_url,omitempty"`

	StudentID       int64  `json:"student_id"`
	StudentName     string `json:"student_name"`
	StudentPhotoURL string `json:"student_photo_url,omitempty"`

	SubjectID   int64  `json:"subject_id"`
	SubjectName string `json:"subject_name"`

	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
