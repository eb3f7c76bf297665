package dto

// DecisionResponse is the result of a leader's accept/reject decision.
// Warnings carry best-effort side-effect failures; HasPendingSameSection is
// the advisory hint that another pending candidate shares the accepted
// candidate's section and year.
type DecisionResponse struct {
	Status                string    `json:"status"`
	TeamID                int64     `json:"teamId"`
	UserID                int64     `json:"userId"`
	MemberCount           int       `json:"memberCount"`
	IsFull                bool      `json:"isFull"`
	HasPendingSameSection bool      `json:"hasPendingSameSection,omitempty"`
	Warnings              []Warning `json:"warnings,omitempty"`
}

// NotificationResponse describes one notification row
type NotificationResponse struct {
	ID        int64  `json:"id"`
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Link      string `json:"link,omitempty"`
	IsRead    bool   `json:"isRead"`
	CreatedAt string `json:"createdAt"`
}
