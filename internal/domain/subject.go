package domain

import "time"

type Subject struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
}

// TutorSubject links a tutor to a subject they teach, with their hourly rate.
type TutorSubject struct {
	ID         int64     `json:"id"`
	TutorID    int64     `json:"tutor_id"`
	SubjectID  int64     `json:"subject_id"`
	HourlyRate float64   `json:"hourly_rate" validate:"gte=0"`
	CreatedAt  time.Time `json:"created_at"`
}
