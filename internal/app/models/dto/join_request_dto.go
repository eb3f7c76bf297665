package dto

import (
	"time"

	"github.com/ozgur/teamup/internal/app/models"
)

// CreateJoinRequestRequest is the requester's payload
type CreateJoinRequestRequest struct {
	Message string `json:"message" binding:"max=2000"`
}

// JoinRequestResponse describes a join request
type JoinRequestResponse struct {
	ID          int64      `json:"id"`
	TeamID      int64      `json:"teamId"`
	RequesterID int64      `json:"requesterId"`
	Requester   string     `json:"requester,omitempty"`
	Status      string     `json:"status"`
	Message     string     `json:"message,omitempty"`
	RequestedAt time.Time  `json:"requestedAt"`
	ReviewedAt  *time.Time `json:"reviewedAt,omitempty"`
}

// ToJoinRequestResponse maps a join request model to its response shape
func ToJoinRequestResponse(req *models.JoinRequest) JoinRequestResponse {
	resp := JoinRequestResponse{
		ID:          req.ID,
		TeamID:      req.TeamID,
		RequesterID: req.RequesterID,
		Status:      string(req.Status),
		Message:     req.Message,
		RequestedAt: req.RequestedAt,
		ReviewedAt:  req.ReviewedAt,
	}
	if req.Requester != nil {
		resp.Requester = req.Requester.FullName()
	}
	return resp
}
