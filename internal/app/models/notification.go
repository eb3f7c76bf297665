package models

import "time"

// NotificationKind classifies notifications for client rendering
type NotificationKind string

const (
	NotificationAddedToTeam     NotificationKind = "ADDED_TO_TEAM"
	NotificationApplicationSeen NotificationKind = "APPLICATION_REVIEWED"
	NotificationRequestSeen     NotificationKind = "REQUEST_REVIEWED"
)

// Notification is a persisted user notification. Delivery beyond the row
// itself (redis fan-out) is best-effort.
type Notification struct {
	ID        int64            `json:"id" db:"id"`
	UserID    int64            `json:"userId" db:"user_id"`
	Kind      NotificationKind `json:"kind" db:"kind"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	Link      string           `json:"link,omitempty" db:"link"`
	DedupKey  string           `json:"-" db:"dedup_key"`
	IsRead    bool             `json:"isRead" db:"is_read"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
}
