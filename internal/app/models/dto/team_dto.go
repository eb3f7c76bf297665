package dto

import (
	"time"

	"github.com/ozgur/teamup/internal/app/models"
)

// CreateTeamRequest is the payload for creating a team
type CreateTeamRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"max=2000"`
	Purpose     string `json:"purpose" binding:"required"`
	Year        int    `json:"year" binding:"required,min=1,max=6"`
	MaxSize     int    `json:"maxSize" binding:"required,min=1,max=10"`
}

// TransferLeadershipRequest names the member taking over the team
type TransferLeadershipRequest struct {
	NewLeaderID int64 `json:"newLeaderId" binding:"required"`
}

// TeamFilterRequest carries list filters
type TeamFilterRequest struct {
	Purpose  *string
	LeaderID *int64
	Search   *string
	Page     int
	PageSize int
}

// MemberResponse describes one roster entry
type MemberResponse struct {
	UserID   int64     `json:"userId"`
	Name     string    `json:"name"`
	Section  string    `json:"section,omitempty"`
	Year     int       `json:"year"`
	JoinedAt time.Time `json:"joinedAt"`
	IsLeader bool      `json:"isLeader"`
}

// TeamResponse describes a team
type TeamResponse struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	LeaderID    int64            `json:"leaderId"`
	Purpose     string           `json:"purpose"`
	Year        int              `json:"year"`
	MaxSize     int              `json:"maxSize"`
	MemberCount int              `json:"memberCount"`
	IsFull      bool             `json:"isFull"`
	Members     []MemberResponse `json:"members,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// TeamListResponse is the paginated team collection
type TeamListResponse struct {
	Teams          []TeamResponse `json:"teams"`
	PaginationInfo PaginationInfo `json:"pagination"`
}

// ToTeamResponse maps a team model to its response shape
func ToTeamResponse(team *models.Team) TeamResponse {
	resp := TeamResponse{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description,
		LeaderID:    team.LeaderID,
		Purpose:     string(team.Purpose),
		Year:        team.Year,
		MaxSize:     team.MaxSize,
		MemberCount: team.MemberCount,
		IsFull:      team.IsFull,
		CreatedAt:   team.CreatedAt,
	}

	for _, m := range team.Members {
		member := MemberResponse{
			UserID:   m.UserID,
			JoinedAt: m.JoinedAt,
			IsLeader: m.UserID == team.LeaderID,
		}
		if m.Profile != nil {
			member.Name = m.Profile.FullName()
			member.Section = m.Profile.Section
			member.Year = m.Profile.Year
		}
		resp.Members = append(resp.Members, member)
	}

	return resp
}
