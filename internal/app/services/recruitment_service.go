package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ozgur/teamup/internal/app/models"
	"github.com/ozgur/teamup/internal/app/models/dto"
	"github.com/ozgur/teamup/internal/config"
	"github.com/ozgur/teamup/internal/pkg/apperrors"
	"github.com/ozgur/teamup/internal/pkg/logger"
)

// RecruitmentService handles recruitment posts and applications against them
type RecruitmentService struct {
	postStore        RecruitmentPostStore
	teamStore        TeamStore
	membershipStore  MembershipStore
	applicationStore ApplicationStore
	requestStore     JoinRequestStore
	cfg              *config.Config
}

// NewRecruitmentService creates a new RecruitmentService
func NewRecruitmentService(
	postStore RecruitmentPostStore,
	teamStore TeamStore,
	membershipStore MembershipStore,
	applicationStore ApplicationStore,
	requestStore JoinRequestStore,
	cfg *config.Config,
) *RecruitmentService {
	return &RecruitmentService{
		postStore:        postStore,
		teamStore:        teamStore,
		membershipStore:  membershipStore,
		applicationStore: applicationStore,
		requestStore:     requestStore,
		cfg:              cfg,
	}
}

// CreatePost opens positions for a team. Only the leader may post, and the
// advertised positions cannot exceed the seats actually left.
func (s *RecruitmentService) CreatePost(ctx context.Context, teamID, leaderID int64, req *dto.CreateRecruitmentPostRequest) (*dto.RecruitmentPostResponse, error) {
	team, err := s.teamStore.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if team.LeaderID != leaderID {
		return nil, apperrors.NewForbiddenError("Only the team leader can open recruitment posts")
	}

	remaining := team.MaxSize - team.MemberCount
	if remaining < 1 {
		return nil, apperrors.ErrCapacityExceeded
	}
	if req.PositionsAvailable > remaining {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("Cannot advertise %d positions, team has %d seats left", req.PositionsAvailable, remaining))
	}

	if req.ExpiresAt != nil && req.ExpiresAt.Before(time.Now()) {
		return nil, apperrors.NewBadRequestError("Expiry must be in the future")
	}

	post := &models.RecruitmentPost{
		TeamID:             teamID,
		Title:              req.Title,
		Description:        req.Description,
		PositionsAvailable: req.PositionsAvailable,
		ExpiresAt:          req.ExpiresAt,
	}

	id, err := s.postStore.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	created, err := s.postStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("postId", id).
		Int64("teamId", teamID).
		Int("positions", req.PositionsAvailable).
		Msg("Recruitment post created")

	resp := dto.ToRecruitmentPostResponse(created)
	return &resp, nil
}

// GetPost retrieves one recruitment post
func (s *RecruitmentService) GetPost(ctx context.Context, postID int64) (*dto.RecruitmentPostResponse, error) {
	post, err := s.postStore.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	resp := dto.ToRecruitmentPostResponse(post)
	return &resp, nil
}

// ListOpenPosts lists open posts, optionally for one team
func (s *RecruitmentService) ListOpenPosts(ctx context.Context, teamID *int64, page, pageSize int) (*dto.RecruitmentPostListResponse, error) {
	page, pageSize = clampPagination(s.cfg, page, pageSize)

	posts, total, err := s.postStore.ListOpen(ctx, teamID, page, pageSize)
	if err != nil {
		return nil, err
	}

	resp := &dto.RecruitmentPostListResponse{
		Posts:          make([]dto.RecruitmentPostResponse, 0, len(posts)),
		PaginationInfo: paginationInfo(page, pageSize, total),
	}
	for i := range posts {
		resp.Posts = append(resp.Posts, dto.ToRecruitmentPostResponse(&posts[i]))
	}

	return resp, nil
}

// ClosePost closes a post to new applications
func (s *RecruitmentService) ClosePost(ctx context.Context, postID, leaderID int64) error {
	return s.setPostStatus(ctx, postID, leaderID, models.PostStatusClosed)
}

// ArchivePost archives a post, removing it from listings for good
func (s *RecruitmentService) ArchivePost(ctx context.Context, postID, leaderID int64) error {
	return s.setPostStatus(ctx, postID, leaderID, models.PostStatusArchived)
}

func (s *RecruitmentService) setPostStatus(ctx context.Context, postID, leaderID int64, status models.RecruitmentPostStatus) error {
	post, err := s.postStore.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	team, err := s.teamStore.GetByID(ctx, post.TeamID)
	if err != nil {
		return err
	}

	if team.LeaderID != leaderID {
		return apperrors.NewForbiddenError("Only the team leader can manage recruitment posts")
	}

	if err := s.postStore.SetStatus(ctx, postID, status); err != nil {
		return err
	}

	logger.Info().
		Int64("postId", postID).
		Str("status", string(status)).
		Msg("Recruitment post status changed")

	return nil
}

// Apply files an application against an open post. A user can hold only one
// application per post, current members cannot apply, and PBL teams enforce
// the pending candidacy limit.
func (s *RecruitmentService) Apply(ctx context.Context, postID, applicantID int64, req *dto.ApplyRequest) (*dto.ApplicationResponse, error) {
	post, err := s.postStore.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.Status != models.PostStatusOpen {
		return nil, apperrors.ErrPostNotOpen
	}
	if post.IsExpired(time.Now()) {
		return nil, apperrors.ErrPostExpired
	}

	team, err := s.teamStore.GetByID(ctx, post.TeamID)
	if err != nil {
		return nil, err
	}

	isMember, err := s.membershipStore.IsMember(ctx, team.ID, applicantID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, apperrors.ErrAlreadyMember
	}

	if team.Purpose == models.TeamPurposePBL {
		if err := s.checkPendingPBLLimit(ctx, applicantID); err != nil {
			return nil, err
		}
	}

	id, err := s.applicationStore.Create(ctx, &models.Application{
		PostID:      postID,
		ApplicantID: applicantID,
		Message:     req.Message,
	})
	if err != nil {
		return nil, err
	}

	created, err := s.applicationStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("applicationId", id).
		Int64("postId", postID).
		Int64("userId", applicantID).
		Msg("Application created")

	resp := dto.ToApplicationResponse(created)
	return &resp, nil
}

// ListApplications lists a post's applications for the team leader
func (s *RecruitmentService) ListApplications(ctx context.Context, postID, leaderID int64) ([]dto.ApplicationResponse, error) {
	post, err := s.postStore.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	team, err := s.teamStore.GetByID(ctx, post.TeamID)
	if err != nil {
		return nil, err
	}

	if team.LeaderID != leaderID {
		return nil, apperrors.NewForbiddenError("Only the team leader can view applications")
	}

	apps, err := s.applicationStore.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		responses = append(responses, dto.ToApplicationResponse(a))
	}

	return responses, nil
}

func (s *RecruitmentService) checkPendingPBLLimit(ctx context.Context, userID int64) error {
	fromApplications, err := s.applicationStore.CountPendingPBLByUser(ctx, userID)
	if err != nil {
		return err
	}

	fromRequests, err := s.requestStore.CountPendingPBLByUser(ctx, userID)
	if err != nil {
		return err
	}

	if fromApplications+fromRequests >= s.cfg.Team.PendingPBLLimit {
		return apperrors.ErrPendingPBLLimit
	}

	return nil
}
