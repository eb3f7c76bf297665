package models

import "time"

// TeamPurpose classifies why a team exists
type TeamPurpose string

const (
	TeamPurposeHackathon    TeamPurpose = "HACKATHON"
	TeamPurposeCollegeEvent TeamPurpose = "COLLEGE_EVENT"
	TeamPurposePBL          TeamPurpose = "PBL"
	TeamPurposeOther        TeamPurpose = "OTHER"
)

// IsValid reports whether the purpose is one of the known values
func (p TeamPurpose) IsValid() bool {
	switch p {
	case TeamPurposeHackathon, TeamPurposeCollegeEvent, TeamPurposePBL, TeamPurposeOther:
		return true
	}
	return false
}

// Team represents a student team.
// MemberCount and IsFull are derived from the membership set and are only
// written back by the membership mutator, never patched directly.
type Team struct {
	ID          int64       `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	Description string      `json:"description" db:"description"`
	LeaderID    int64       `json:"leaderId" db:"leader_id"`
	Purpose     TeamPurpose `json:"purpose" db:"purpose"`
	Year        int         `json:"year" db:"year"`
	MaxSize     int         `json:"maxSize" db:"max_size"`
	MemberCount int         `json:"memberCount" db:"member_count"`
	IsFull      bool        `json:"isFull" db:"is_full"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt" db:"updated_at"`

	// Related entities
	Leader  *ProfileSnapshot  `json:"leader,omitempty"`
	Members []*TeamMember     `json:"members,omitempty"`
}

// HasCapacity reports whether the team has room for one more member.
// This is the fast-fail check; the authoritative recheck happens inside the
// conditional membership insert.
func (t *Team) HasCapacity() bool {
	return t.MemberCount < t.MaxSize
}

// TeamMember represents an active membership of a user in a team
type TeamMember struct {
	ID       int64     `json:"id" db:"id"`
	TeamID   int64     `json:"teamId" db:"team_id"`
	UserID   int64     `json:"userId" db:"user_id"`
	JoinedAt time.Time `json:"joinedAt" db:"joined_at"`

	// Related entities
	Profile *ProfileSnapshot `json:"profile,omitempty"`
}
