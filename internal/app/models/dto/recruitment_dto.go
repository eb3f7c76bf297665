package dto

import (
	"time"

	"github.com/ozgur/teamup/internal/app/models"
)

// CreateRecruitmentPostRequest is the payload for opening positions
type CreateRecruitmentPostRequest struct {
	Title              string     `json:"title" binding:"required,min=2,max=150"`
	Description        string     `json:"description" binding:"max=4000"`
	PositionsAvailable int        `json:"positionsAvailable" binding:"required,min=1"`
	ExpiresAt          *time.Time `json:"expiresAt,omitempty"`
}

// ApplyRequest is the applicant's payload
type ApplyRequest struct {
	Message string `json:"message" binding:"max=2000"`
}

// RecruitmentPostResponse describes a recruitment post
type RecruitmentPostResponse struct {
	ID                 int64      `json:"id"`
	TeamID             int64      `json:"teamId"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	PositionsAvailable int        `json:"positionsAvailable"`
	Status             string     `json:"status"`
	ExpiresAt          *time.Time `json:"expiresAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

// RecruitmentPostListResponse is the paginated post collection
type RecruitmentPostListResponse struct {
	Posts          []RecruitmentPostResponse `json:"posts"`
	PaginationInfo PaginationInfo            `json:"pagination"`
}

// ApplicationResponse describes an application
type ApplicationResponse struct {
	ID          int64      `json:"id"`
	PostID      int64      `json:"postId"`
	ApplicantID int64      `json:"applicantId"`
	Applicant   string     `json:"applicant,omitempty"`
	Status      string     `json:"status"`
	Message     string     `json:"message,omitempty"`
	AppliedAt   time.Time  `json:"appliedAt"`
	ReviewedAt  *time.Time `json:"reviewedAt,omitempty"`
}

// ToRecruitmentPostResponse maps a post model to its response shape
func ToRecruitmentPostResponse(post *models.RecruitmentPost) RecruitmentPostResponse {
	return RecruitmentPostResponse{
		ID:                 post.ID,
		TeamID:             post.TeamID,
		Title:              post.Title,
		Description:        post.Description,
		PositionsAvailable: post.PositionsAvailable,
		Status:             string(post.Status),
		ExpiresAt:          post.ExpiresAt,
		CreatedAt:          post.CreatedAt,
	}
}

// ToApplicationResponse maps an application model to its response shape
func ToApplicationResponse(app *models.Application) ApplicationResponse {
	resp := ApplicationResponse{
		ID:          app.ID,
		PostID:      app.PostID,
		ApplicantID: app.ApplicantID,
		Status:      string(app.Status),
		Message:     app.Message,
		AppliedAt:   app.AppliedAt,
		ReviewedAt:  app.ReviewedAt,
	}
	if app.Applicant != nil {
		resp.Applicant = app.Applicant.FullName()
	}
	return resp
}
