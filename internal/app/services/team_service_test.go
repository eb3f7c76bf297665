package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ozgur/teamup/internal/app/models"
	"github.com/ozgur/teamup/internal/app/models/dto"
	"github.com/ozgur/teamup/internal/config"
	"github.com/ozgur/teamup/internal/pkg/apperrors"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Team.MaxSize = 10
	cfg.Team.PendingPBLLimit = 2
	cfg.Team.DefaultPageSize = 10
	cfg.Team.MaxPageSize = 100
	return cfg
}

type teamFixture struct {
	teams    *MockTeamStore
	members  *MockMembershipStore
	requests *MockJoinRequestStore
	apps     *MockApplicationStore
	profiles *MockProfileStore
	mutator  *MockMembershipMutator
	chat     *MockChatProvisioner
	service  *TeamService
}

func newTeamFixture() *teamFixture {
	f := &teamFixture{
		teams:    new(MockTeamStore),
		members:  new(MockMembershipStore),
		requests: new(MockJoinRequestStore),
		apps:     new(MockApplicationStore),
		profiles: new(MockProfileStore),
		mutator:  new(MockMembershipMutator),
		chat:     new(MockChatProvisioner),
	}
	f.service = NewTeamService(f.teams, f.members, f.requests, f.apps, f.profiles, f.mutator, f.chat, testConfig())
	return f
}

func TestTeamService_CreateTeam(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a team with the caller as leader", func(t *testing.T) {
		f := newTeamFixture()
		req := &dto.CreateTeamRequest{Name: "Compilers", Purpose: "HACKATHON", Year: 2, MaxSize: 4}

		f.profiles.On("GetSectionYear", mock.Anything, int64(3)).
			Return(&models.ProfileSnapshot{UserID: 3, Section: "B", Year: 2}, nil)
		f.teams.On("Create", mock.Anything, mock.MatchedBy(func(team *models.Team) bool {
			return team.LeaderID == 3 && team.Purpose == models.TeamPurposeHackathon
		})).Return(int64(5), nil)
		f.chat.On("EnsureTeamChannel", mock.Anything, int64(5), int64(3), []int64{3}).Return(nil)
		f.teams.On("GetByID", mock.Anything, int64(5)).Return(teamWithRoom(), nil)
		f.members.On("GetActiveMembers", mock.Anything, int64(5)).
			Return([]*models.TeamMember{member(3, "B", 2)}, nil)

		result, err := f.service.CreateTeam(ctx, 3, req)

		require.NoError(t, err)
		assert.Equal(t, int64(5), result.ID)
		assert.Len(t, result.Members, 1)
		assert.True(t, result.Members[0].IsLeader)
		f.teams.AssertExpectations(t)
	})

	t.Run("unknown purpose is rejected", func(t *testing.T) {
		f := newTeamFixture()
		req := &dto.CreateTeamRequest{Name: "x", Purpose: "SPORTS", Year: 2, MaxSize: 4}

		_, err := f.service.CreateTeam(ctx, 3, req)

		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
		f.teams.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("size above the configured cap is rejected", func(t *testing.T) {
		f := newTeamFixture()
		req := &dto.CreateTeamRequest{Name: "x", Purpose: "PBL", Year: 2, MaxSize: 11}

		_, err := f.service.CreateTeam(ctx, 3, req)

		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("creator without a profile snapshot is rejected", func(t *testing.T) {
		f := newTeamFixture()
		req := &dto.CreateTeamRequest{Name: "Compilers", Purpose: "HACKATHON", Year: 2, MaxSize: 4}

		f.profiles.On("GetSectionYear", mock.Anything, int64(3)).
			Return(nil, apperrors.NewResourceNotFoundError("User not found"))

		_, err := f.service.CreateTeam(ctx, 3, req)

		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
		f.teams.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("chat provisioning failure does not fail creation", func(t *testing.T) {
		f := newTeamFixture()
		req := &dto.CreateTeamRequest{Name: "Compilers", Purpose: "HACKATHON", Year: 2, MaxSize: 4}

		f.profiles.On("GetSectionYear", mock.Anything, int64(3)).
			Return(&models.ProfileSnapshot{UserID: 3, Section: "B", Year: 2}, nil)
		f.teams.On("Create", mock.Anything, mock.Anything).Return(int64(5), nil)
		f.chat.On("EnsureTeamChannel", mock.Anything, int64(5), int64(3), []int64{3}).
			Return(assert.AnError)
		f.teams.On("GetByID", mock.Anything, int64(5)).Return(teamWithRoom(), nil)
		f.members.On("GetActiveMembers", mock.Anything, int64(5)).
			Return([]*models.TeamMember{}, nil)

		_, err := f.service.CreateTeam(ctx, 3, req)

		require.NoError(t, err)
	})
}

func TestTeamService_RequestToJoin(t *testing.T) {
	ctx := context.Background()
	payload := &dto.CreateJoinRequestRequest{Message: "hi"}

	t.Run("creates a pending join request", func(t *testing.T) {
		f := newTeamFixture()

		f.teams.On("GetByID", mock.Anything, int64(5)).Return(teamWithRoom(), nil)
		f.members.On("IsMember", mock.Anything, int64(5), int64(8)).Return(false, nil)
		f.requests.On("Create", mock.Anything, mock.MatchedBy(func(r *models.JoinRequest) bool {
			return r.TeamID == 5 && r.RequesterID == 8
		})).Return(int64(20), nil)
		f.requests.On("GetByID", mock.Anything, int64(20)).Return(pendingJoinRequest(), nil)

		result, err := f.service.RequestToJoin(ctx, 5, 8, payload)

		require.NoError(t, err)
		assert.Equal(t, string(models.DecisionPending), result.Status)
		f.requests.AssertExpectations(t)
	})

	t.Run("members cannot request to join", func(t *testing.T) {
		f := newTeamFixture()

		f.teams.On("GetByID", mock.Anything, int64(5)).Return(teamWithRoom(), nil)
		f.members.On("IsMember", mock.Anything, int64(5), int64(8)).Return(true, nil)

		_, err := f.service.RequestToJoin(ctx, 5, 8, payload)

		assert.ErrorIs(t, err, apperrors.ErrAlreadyMember)
	})

	t.Run("full team refuses new requests", func(t *testing.T) {
		f := newTeamFixture()
		team := teamWithRoom()
		team.MemberCount = team.MaxSize

		f.teams.On("GetByID", mock.Anything, int64(5)).Return(team, nil)
		f.members.On("IsMember", mock.Anything, int64(5), int64(8)).Return(false, nil)

		_, err := f.service.RequestToJoin(ctx, 5, 8, payload)

		assert.ErrorIs(t, err, apperrors.ErrCapacityExceeded)
	})

	t.Run("pending PBL candidacies are capped across both flows", func(t *testing.T) {
		f := newTeamFixture()
		team := teamWithRoom()
		team.Purpose = models.TeamPurposePBL

		f.teams.On("GetByID", mock.Anything, int64(5)).Return(team, nil)
		f.members.On("IsMember", mock.Anything, int64(5), int64(8)).Return(false, nil)
		f.apps.On("CountPendingPBLByUser", mock.Anything, int64(8)).Return(1, nil)
		f.requests.On("CountPendingPBLByUser", mock.Anything, int64(8)).Return(1, nil)

		_, err := f.service.RequestToJoin(ctx, 5, 8, payload)

		assert.ErrorIs(t, err, apperrors.ErrPendingPBLLimit)
		f.requests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate request is refused by the store", func(t *testing.T) {
		f := newTeamFixture()

		f.teams.On("GetByID", mock.Anything, int64(5)).Return(teamWithRoom(), nil)
		f.members.On("IsMember", mock.Anything, int64(5), int64(8)).Return(false, nil)
		f.requests.On("Create", mock.Anything, mock.Anything).
			Return(int64(0), apperrors.ErrAlreadyRequested)

		_, err := f.service.RequestToJoin(ctx, 5, 8, payload)

		assert.ErrorIs(t, err, apperrors.ErrAlreadyRequested)
	})
}

func TestTeamService_TransferLeadership(t *testing.T) {
	ctx := context.Background()

	t.Run("leader hands over to an active member", func(t *testing.T) {
		f := newTeamFixture()

		f.teams.On("GetByID", mock.Anything, int64(5)).Return(teamWithRoom(), nil)
		f.teams.On("SetLeader", mock.Anything, int64(5), int64(4)).Return(nil)

		err := f.service.TransferLeadership(ctx, 5, 3, 4)

		require.NoError(t, err)
	})

	t.Run("non-leader cannot transfer", func(t *testing.T) {
		f := newTeamFixture()

		f.teams.On("GetByID", mock.Anything, int64(5)).Return(teamWithRoom(), nil)

		err := f.service.TransferLeadership(ctx, 5, 99, 4)

		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		f.teams.AssertNotCalled(t, "SetLeader", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("target outside the roster is refused", func(t *testing.T) {
		f := newTeamFixture()

		f.teams.On("GetByID", mock.Anything, int64(5)).Return(teamWithRoom(), nil)
		f.teams.On("SetLeader", mock.Anything, int64(5), int64(4)).
			Return(apperrors.ErrNotTeamMember)

		err := f.service.TransferLeadership(ctx, 5, 3, 4)

		assert.ErrorIs(t, err, apperrors.ErrNotTeamMember)
	})
}

func TestTeamService_LeaveTeam(t *testing.T) {
	ctx := context.Background()

	t.Run("member leaves and is dropped from chat", func(t *testing.T) {
		f := newTeamFixture()

		f.mutator.On("RemoveMember", mock.Anything, int64(5), int64(7)).
			Return(&RemoveMemberOutcome{MemberCount: 1}, nil)
		f.chat.On("RemoveFromTeamChannel", mock.Anything, int64(5), int64(7)).Return(nil)

		err := f.service.LeaveTeam(ctx, 5, 7)

		require.NoError(t, err)
		f.chat.AssertExpectations(t)
	})

	t.Run("leader cannot leave without a transfer", func(t *testing.T) {
		f := newTeamFixture()

		f.mutator.On("RemoveMember", mock.Anything, int64(5), int64(3)).
			Return(nil, apperrors.ErrCannotRemoveLeader)

		err := f.service.LeaveTeam(ctx, 5, 3)

		assert.ErrorIs(t, err, apperrors.ErrCannotRemoveLeader)
		f.chat.AssertNotCalled(t, "RemoveFromTeamChannel", mock.Anything, mock.Anything, mock.Anything)
	})
}
