package domain

import "time"

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTutor   UserRole = "tutor"
	RoleAdmin   UserRole = "admin"
)

type TutorStatus string

const (
	TutorPending  TutorStatus = "pending"
	TutorVerified TutorStatus = "verified"
	TutorRejected TutorStatus = "rejected"
	TutorBlocked  TutorStatus = "blocked"
)

type User struct {
	ID           int64       `json:"id"`
	Email        string      `json:"email" validate:"required,email"`
	PasswordHash string      `json:"-"`
	Role         UserRole    `json:"role"`
	Name         string      `json:"name"`
	Phone        string      `json:"phone,omitempty"`
	PhotoURL     string      `json:"photo_url,omitempty"`
	// ProfileComplete gates a student's ability to create bookings.
	ProfileComplete bool `json:"profile_complete"`
	// TutorStatus is only meaningful for RoleTutor; a tutor accepts bookings
	// once verified.
	TutorStatus TutorStatus `json:"tutor_status,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// CanBeBooked reports whether the user is a verified tutor.
func (u *User) CanBeBooked() bool {
	return u.Role == RoleTutor && u.TutorStatus == TutorVerified
}

// CanBook reports whether the user may create bookings as a student.
func (u *User) CanBook() bool {
	return u.Role == RoleStudent && u.ProfileComplete
}
