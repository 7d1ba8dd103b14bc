package booking

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrNotFound                = errors.New("booking not found")
	ErrTutorNotFound           = errors.New("tutor not found")
	ErrStudentNotFound         = errors.New("student not found")
	ErrSubjectNotFound         = errors.New("subject not found")
	ErrTutorNotEligible        = errors.New("tutor is not verified")
	ErrStudentNotEligible      = errors.New("student profile is incomplete")
	ErrSubjectNotTaught        = errors.New("tutor does not teach this subject")
	ErrConflict                = errors.New("time slot overlaps with existing booking")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrForbidden               = errors.New("forbidden")
)
