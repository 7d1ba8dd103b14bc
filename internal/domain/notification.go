package domain

import (
	"encoding/json"
	"time"
)

// NotificationType is the closed vocabulary of booking events that produce
// notifications. Consumers must treat these tags as a stable contract.
type NotificationType string

const (
	NotifBookingCreated       NotificationType = "booking_created"
	NotifBookingStatusChanged NotificationType = "booking_status_changed"
	NotifBookingReminder      NotificationType = "booking_reminder"
)

// ValidNotificationType reports whether t is a known event tag.
func ValidNotificationType(t NotificationType) bool {
	switch t {
	case NotifBookingCreated, NotifBookingStatusChanged, NotifBookingReminder:
		return true
	}
	return false
}

// Notification is a fact delivered to exactly one recipient about a booking
// event. The payload is a snapshot taken at emission time; a later change to
// the booking does not alter an already-emitted notification.
type Notification struct {
	ID          int64            `json:"id"`
	RecipientID int64            `json:"recipient_id"`
	// ActorID is the counterpart that triggered the event; zero means the
	// system itself (reminder sweeps).
	ActorID   int64            `json:"actor_id,omitempty"`
	BookingID int64            `json:"booking_id"`
	Type      NotificationType `json:"type"`
	Payload   json.RawMessage  `json:"payload,omitempty" gorm:"type:text"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

// BookingSnapshot is the payload shape shared by all booking event types.
type BookingSnapshot struct {
	BookingID       int64  `json:"booking_id"`
	SubjectName     string `json:"subject_name,omitempty"`
	StartTime       string `json:"start_time"` // RFC 3339, UTC
	EndTime         string `json:"end_time"`
	CounterpartName string `json:"counterpart_name,omitempty"`
	Status          string `json:"status"`
}

// SetPayload encodes the snapshot onto the notification.
func (n *Notification) SetPayload(s *BookingSnapshot) error {
	if s == nil {
		return nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	n.Payload = b
	return nil
}

// GetPayload decodes the snapshot; missing or malformed payloads decode to an
// empty snapshot.
func (n *Notification) GetPayload() *BookingSnapshot {
	var s BookingSnapshot
	if len(n.Payload) > 0 {
		_ = json.Unmarshal(n.Payload, &s)
	}
	return &s
}
