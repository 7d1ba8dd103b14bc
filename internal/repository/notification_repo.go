package repository

import (
	"context"
	"time"

	"tutorhub/internal/domain"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

type notificationModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	RecipientID int64     `gorm:"column:recipient_id"`
	ActorID     int64     `gorm:"column:actor_id"`
	BookingID   int64     `gorm:"column:booking_id"`
	Type        string    `gorm:"column:type"`
	Payload     []byte    `gorm:"column:payload"`
	IsRead      bool      `gorm:"column:is_read"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (notificationModel) TableName() string { return "notifications" }

func toDomainNotification(m notificationModel) domain.Notification {
	return domain.Notification{
		ID:          m.ID,
		RecipientID: m.RecipientID,
		ActorID:     m.ActorID,
		BookingID:   m.BookingID,
		Type:        domain.NotificationType(m.Type),
		Payload:     m.Payload,
		IsRead:      m.IsRead,
		CreatedAt:   m.CreatedAt,
	}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	m := notificationModel{
		RecipientID: n.RecipientID,
		ActorID:     n.ActorID,
		BookingID:   n.BookingID,
		Type:        string(n.Type),
		Payload:     n.Payload,
		IsRead:      n.IsRead,
		CreatedAt:   n.CreatedAt,
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}

	n.ID = m.ID
	n.CreatedAt = m.CreatedAt
	return nil
}

// ExistsForBooking answers the idempotency predicate: has a notification of
// this type already been emitted to this recipient for this booking?
func (r *NotificationRepository) ExistsForBooking(ctx context.Context, bookingID int64, t domain.NotificationType, recipientID int64) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("booking_id = ? AND type = ? AND recipient_id = ?", bookingID, string(t), recipientID).
		Count(&count)
	if tx.Error != nil {
		return false, tx.Error
	}
	return count > 0, nil
}

func (r *NotificationRepository) GetByRecipient(ctx context.Context, userID int64, limit int) ([]domain.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var ms []notificationModel
	tx := r.db.WithContext(ctx).
		Where("recipient_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Notification, 0, len(ms))
	for _, m := range ms {
		out = append(out, toDomainNotification(m))
	}
	return out, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, id, userID int64) error {
	res := r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("id = ? AND recipient_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}
