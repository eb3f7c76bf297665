package services

import (
	"context"
	"fmt"

	"github.com/ozgur/teamup/internal/app/models"
	"github.com/ozgur/teamup/internal/app/models/dto"
	"github.com/ozgur/teamup/internal/config"
	"github.com/ozgur/teamup/internal/pkg/apperrors"
	"github.com/ozgur/teamup/internal/pkg/logger"
)

// TeamService handles team lifecycle: creation, listing, leadership and the
// member-initiated flows (leave, request to join).
type TeamService struct {
	teamStore        TeamStore
	membershipStore  MembershipStore
	requestStore     JoinRequestStore
	applicationStore ApplicationStore
	profileStore     ProfileStore
	mutator          MembershipMutator
	chat             ChatProvisioner
	cfg              *config.Config
}

// NewTeamService creates a new TeamService
func NewTeamService(
	teamStore TeamStore,
	membershipStore MembershipStore,
	requestStore JoinRequestStore,
	applicationStore ApplicationStore,
	profileStore ProfileStore,
	mutator MembershipMutator,
	chat ChatProvisioner,
	cfg *config.Config,
) *TeamService {
	return &TeamService{
		teamStore:        teamStore,
		membershipStore:  membershipStore,
		requestStore:     requestStore,
		applicationStore: applicationStore,
		profileStore:     profileStore,
		mutator:          mutator,
		chat:             chat,
		cfg:              cfg,
	}
}

// CreateTeam creates a team with the caller as leader and first member
func (s *TeamService) CreateTeam(ctx context.Context, leaderID int64, req *dto.CreateTeamRequest) (*dto.TeamResponse, error) {
	purpose := models.TeamPurpose(req.Purpose)
	if !purpose.IsValid() {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("Unknown team purpose: %s", req.Purpose))
	}

	if req.MaxSize > s.cfg.Team.MaxSize {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("Team size cannot exceed %d", s.cfg.Team.MaxSize))
	}

	// The creator must exist in the profile projection; a team without a
	// resolvable leader snapshot would break conflict evaluation later.
	if _, err := s.profileStore.GetSectionYear(ctx, leaderID); err != nil {
		return nil, err
	}

	team := &models.Team{
		Name:        req.Name,
		Description: req.Description,
		LeaderID:    leaderID,
		Purpose:     purpose,
		Year:        req.Year,
		MaxSize:     req.MaxSize,
	}

	id, err := s.teamStore.Create(ctx, team)
	if err != nil {
		return nil, err
	}

	// Provision the channel eagerly so the leader lands in a ready chat.
	// Failure is tolerated; the acceptance dispatcher retries on every add.
	if err := s.chat.EnsureTeamChannel(ctx, id, leaderID, []int64{leaderID}); err != nil {
		logger.Warn().Err(err).Int64("teamId", id).Msg("Chat provisioning failed on team creation")
	}

	logger.Info().
		Int64("teamId", id).
		Int64("leaderId", leaderID).
		Str("purpose", string(purpose)).
		Msg("Team created")

	return s.GetTeam(ctx, id)
}

// GetTeam retrieves a team with its roster
func (s *TeamService) GetTeam(ctx context.Context, teamID int64) (*dto.TeamResponse, error) {
	team, err := s.teamStore.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	members, err := s.membershipStore.GetActiveMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}
	team.Members = members

	resp := dto.ToTeamResponse(team)
	return &resp, nil
}

// GetTeams lists teams with filters and pagination
func (s *TeamService) GetTeams(ctx context.Context, filter *dto.TeamFilterRequest) (*dto.TeamListResponse, error) {
	page, pageSize := clampPagination(s.cfg, filter.Page, filter.PageSize)

	teams, total, err := s.teamStore.GetAll(ctx, filter.Purpose, filter.LeaderID, filter.Search, page, pageSize)
	if err != nil {
		return nil, err
	}

	resp := &dto.TeamListResponse{
		Teams:          make([]dto.TeamResponse, 0, len(teams)),
		PaginationInfo: paginationInfo(page, pageSize, total),
	}
	for i := range teams {
		resp.Teams = append(resp.Teams, dto.ToTeamResponse(&teams[i]))
	}

	return resp, nil
}

// LeaveTeam removes the caller from a team. The leader cannot leave without
// transferring leadership first.
func (s *TeamService) LeaveTeam(ctx context.Context, teamID, userID int64) error {
	if _, err := s.mutator.RemoveMember(ctx, teamID, userID); err != nil {
		return err
	}

	if err := s.chat.RemoveFromTeamChannel(ctx, teamID, userID); err != nil {
		logger.Warn().Err(err).Int64("teamId", teamID).Int64("userId", userID).
			Msg("Chat channel cleanup failed after member left")
	}

	return nil
}

// RemoveMember lets the leader remove a member from the roster
func (s *TeamService) RemoveMember(ctx context.Context, teamID, leaderID, userID int64) error {
	team, err := s.teamStore.GetByID(ctx, teamID)
	if err != nil {
		return err
	}

	if team.LeaderID != leaderID {
		return apperrors.NewForbiddenError("Only the team leader can remove members")
	}

	if _, err := s.mutator.RemoveMember(ctx, teamID, userID); err != nil {
		return err
	}

	if err := s.chat.RemoveFromTeamChannel(ctx, teamID, userID); err != nil {
		logger.Warn().Err(err).Int64("teamId", teamID).Int64("userId", userID).
			Msg("Chat channel cleanup failed after member removal")
	}

	return nil
}

// TransferLeadership reassigns the team to another active member
func (s *TeamService) TransferLeadership(ctx context.Context, teamID, leaderID, newLeaderID int64) error {
	team, err := s.teamStore.GetByID(ctx, teamID)
	if err != nil {
		return err
	}

	if team.LeaderID != leaderID {
		return apperrors.NewForbiddenError("Only the team leader can transfer leadership")
	}

	if err := s.teamStore.SetLeader(ctx, teamID, newLeaderID); err != nil {
		return err
	}

	logger.Info().
		Int64("teamId", teamID).
		Int64("from", leaderID).
		Int64("to", newLeaderID).
		Msg("Leadership transferred")

	return nil
}

// RequestToJoin files a join request against a team. Members cannot request,
// full teams are rejected up front, and PBL teams enforce the pending limit.
func (s *TeamService) RequestToJoin(ctx context.Context, teamID, userID int64, req *dto.CreateJoinRequestRequest) (*dto.JoinRequestResponse, error) {
	team, err := s.teamStore.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	isMember, err := s.membershipStore.IsMember(ctx, teamID, userID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, apperrors.ErrAlreadyMember
	}

	if !team.HasCapacity() {
		return nil, apperrors.ErrCapacityExceeded
	}

	if team.Purpose == models.TeamPurposePBL {
		if err := s.checkPendingPBLLimit(ctx, userID); err != nil {
			return nil, err
		}
	}

	id, err := s.requestStore.Create(ctx, &models.JoinRequest{
		TeamID:      teamID,
		RequesterID: userID,
		Message:     req.Message,
	})
	if err != nil {
		return nil, err
	}

	created, err := s.requestStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("requestId", id).
		Int64("teamId", teamID).
		Int64("userId", userID).
		Msg("Join request created")

	resp := dto.ToJoinRequestResponse(created)
	return &resp, nil
}

// ListJoinRequests lists a team's pending join requests for its leader
func (s *TeamService) ListJoinRequests(ctx context.Context, teamID, leaderID int64) ([]dto.JoinRequestResponse, error) {
	team, err := s.teamStore.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if team.LeaderID != leaderID {
		return nil, apperrors.NewForbiddenError("Only the team leader can view join requests")
	}

	requests, err := s.requestStore.ListPendingByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.JoinRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, dto.ToJoinRequestResponse(r))
	}

	return responses, nil
}

// checkPendingPBLLimit enforces the cap on simultaneous pending PBL
// candidacies. Applications and join requests count against the same limit.
func (s *TeamService) checkPendingPBLLimit(ctx context.Context, userID int64) error {
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

func clampPagination(cfg *config.Config, page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = cfg.Team.DefaultPageSize
	}
	if pageSize > cfg.Team.MaxPageSize {
		pageSize = cfg.Team.MaxPageSize
	}
	return page, pageSize
}

func paginationInfo(page, pageSize int, total int64) dto.PaginationInfo {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return dto.PaginationInfo{
		CurrentPage: page,
		PageSize:    pageSize,
		TotalItems:  total,
		TotalPages:  totalPages,
	}
}
