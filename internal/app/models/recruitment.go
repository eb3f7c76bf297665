package models

import "time"

// RecruitmentPostStatus lifecycle of a recruitment post
type RecruitmentPostStatus string

const (
	PostStatusOpen     RecruitmentPostStatus = "OPEN"
	PostStatusClosed   RecruitmentPostStatus = "CLOSED"
	PostStatusArchived RecruitmentPostStatus = "ARCHIVED"
)

// RecruitmentPost advertises open positions for a team
type RecruitmentPost struct {
	ID                 int64                 `json:"id" db:"id"`
	TeamID             int64                 `json:"teamId" db:"team_id"`
	Title              string                `json:"title" db:"title"`
	Description        string                `json:"description" db:"description"`
	PositionsAvailable int                   `json:"positionsAvailable" db:"positions_available"`
	Status             RecruitmentPostStatus `json:"status" db:"status"`
	ExpiresAt          *time.Time            `json:"expiresAt,omitempty" db:"expires_at"`
	CreatedAt          time.Time             `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time             `json:"updatedAt" db:"updated_at"`

	// Related entities
	Team *Team `json:"team,omitempty"`
}

// IsExpired reports whether the post passed its deadline
func (p *RecruitmentPost) IsExpired(now time.Time) bool {
	return p.ExpiresAt != nil && now.After(*p.ExpiresAt)
}

// DecisionStatus is the shared lifecycle of applications and join requests
type DecisionStatus string

const (
	DecisionPending  DecisionStatus = "PENDING"
	DecisionAccepted DecisionStatus = "ACCEPTED"
	DecisionRejected DecisionStatus = "REJECTED"
)

// Application is one applicant's single-shot application to a recruitment post
type Application struct {
	ID          int64          `json:"id" db:"id"`
	PostID      int64          `json:"postId" db:"post_id"`
	ApplicantID int64          `json:"applicantId" db:"applicant_id"`
	Status      DecisionStatus `json:"status" db:"status"`
	Message     string         `json:"message,omitempty" db:"message"`
	AppliedAt   time.Time      `json:"appliedAt" db:"applied_at"`
	ReviewedAt  *time.Time     `json:"reviewedAt,omitempty" db:"reviewed_at"`

	// Related entities
	Post      *RecruitmentPost `json:"post,omitempty"`
	Applicant *ProfileSnapshot `json:"applicant,omitempty"`
}

// JoinRequest is a direct request to join a team. Unlike applications, a
// rejected join request may be resubmitted and transitions back to pending.
type JoinRequest struct {
	ID          int64          `json:"id" db:"id"`
	TeamID      int64          `json:"teamId" db:"team_id"`
	RequesterID int64          `json:"requesterId" db:"requester_id"`
	Status      DecisionStatus `json:"status" db:"status"`
	Message     string         `json:"message,omitempty" db:"message"`
	RequestedAt time.Time      `json:"requestedAt" db:"requested_at"`
	ReviewedAt  *time.Time     `json:"reviewedAt,omitempty" db:"reviewed_at"`

	// Related entities
	Requester *ProfileSnapshot `json:"requester,omitempty"`
}
