package notification

import (
	"time"

	"tutorhub/internal/domain"
)

type NotificationResponse struct {
	ID        int64                   `json:"id"`
	ActorID   int64                   `json:"actor_id,omitempty"`
	BookingID int64                   `json:"booking_id"`
	Type      domain.NotificationType `json:"type"`
	Payload   *domain.BookingSnapshot `json:"payload,omitempty"`
	IsRead    bool                    `json:"is_read"`
	CreatedAt time.Time               `json:"created_at"`
}

func toResponse(n domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		ActorID:   n.ActorID,
		BookingID: n.BookingID,
		Type:      n.Type,
		Payload:   n.GetPayload(),
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func toResponseList(list []domain.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, toResponse(n))
	}
	return out
}
