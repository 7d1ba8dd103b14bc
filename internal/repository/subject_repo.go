package repository

import (
	"context"
	"errors"

	"tutorhub/internal/domain"

	"gorm.io/gorm"
)

// ErrRateNotFound means the tutor does not teach the requested subject.
var ErrRateNotFound = errors.New("no rate for tutor/subject pair")

type SubjectRepository struct {
	db *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*domain.Subject, error) {
	var s domain.Subject
	tx := r.db.WithContext(ctx).First(&s, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &s, nil
}

// GetHourlyRate returns the tutor's price for one hour of the given subject.
func (r *SubjectRepository) GetHourlyRate(ctx context.Context, tutorID, subjectID int64) (float64, error) {
	var ts domain.TutorSubject
	tx := r.db.WithContext(ctx).
		Where("tutor_id = ? AND subject_id = ?", tutorID, subjectID).
		First(&ts)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return 0, ErrRateNotFound
		}
		return 0, tx.Error
	}
	return ts.HourlyRate, nil
}
