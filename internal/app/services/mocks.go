package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ozgur/teamup/internal/app/models"
	"github.com/ozgur/teamup/internal/app/models/dto"
)

type MockTeamStore struct {
	mock.Mock
}

func (m *MockTeamStore) Create(ctx context.Context, team *models.Team) (int64, error) {
	args := m.Called(ctx, team)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTeamStore) GetByID(ctx context.Context, id int64) (*models.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamStore) GetAll(ctx context.Context, purpose *string, leaderID *int64, search *string, page, pageSize int) ([]models.Team, int64, error) {
	args := m.Called(ctx, purpose, leaderID, search, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Team), args.Get(1).(int64), args.Error(2)
}

func (m *MockTeamStore) SetLeader(ctx context.Context, teamID, newLeaderID int64) error {
	args := m.Called(ctx, teamID, newLeaderID)
	return args.Error(0)
}

type MockMembershipStore struct {
	mock.Mock
}

func (m *MockMembershipStore) InsertMembership(ctx context.Context, teamID, userID int64) (bool, error) {
	args := m.Called(ctx, teamID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMembershipStore) DeleteMembership(ctx context.Context, teamID, userID int64) error {
	args := m.Called(ctx, teamID, userID)
	return args.Error(0)
}

func (m *MockMembershipStore) GetActiveMembers(ctx context.Context, teamID int64) ([]*models.TeamMember, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TeamMember), args.Error(1)
}

func (m *MockMembershipStore) IsMember(ctx context.Context, teamID, userID int64) (bool, error) {
	args := m.Called(ctx, teamID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMembershipStore) RefreshDerivedFields(ctx context.Context, teamID int64) (int, bool, error) {
	args := m.Called(ctx, teamID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

type MockApplicationStore struct {
	mock.Mock
}

func (m *MockApplicationStore) Create(ctx context.Context, app *models.Application) (int64, error) {
	args := m.Called(ctx, app)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockApplicationStore) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationStore) SetStatus(ctx context.Context, id int64, expected, next models.DecisionStatus) error {
	args := m.Called(ctx, id, expected, next)
	return args.Error(0)
}

func (m *MockApplicationStore) ListByPost(ctx context.Context, postID int64) ([]*models.Application, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Application), args.Error(1)
}

func (m *MockApplicationStore) ListPendingApplicantProfiles(ctx context.Context, teamID int64) ([]*models.ProfileSnapshot, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ProfileSnapshot), args.Error(1)
}

func (m *MockApplicationStore) CountPendingPBLByUser(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type MockJoinRequestStore struct {
	mock.Mock
}

func (m *MockJoinRequestStore) Create(ctx context.Context, req *models.JoinRequest) (int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJoinRequestStore) GetByID(ctx context.Context, id int64) (*models.JoinRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JoinRequest), args.Error(1)
}

func (m *MockJoinRequestStore) SetStatus(ctx context.Context, id int64, expected, next models.DecisionStatus) error {
	args := m.Called(ctx, id, expected, next)
	return args.Error(0)
}

func (m *MockJoinRequestStore) ListPendingByTeam(ctx context.Context, teamID int64) ([]*models.JoinRequest, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.JoinRequest), args.Error(1)
}

func (m *MockJoinRequestStore) ListPendingRequesterProfiles(ctx context.Context, teamID int64) ([]*models.ProfileSnapshot, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ProfileSnapshot), args.Error(1)
}

func (m *MockJoinRequestStore) CountPendingPBLByUser(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type MockRecruitmentPostStore struct {
	mock.Mock
}

func (m *MockRecruitmentPostStore) Create(ctx context.Context, post *models.RecruitmentPost) (int64, error) {
	args := m.Called(ctx, post)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecruitmentPostStore) GetByID(ctx context.Context, id int64) (*models.RecruitmentPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RecruitmentPost), args.Error(1)
}

func (m *MockRecruitmentPostStore) ListOpen(ctx context.Context, teamID *int64, page, pageSize int) ([]models.RecruitmentPost, int64, error) {
	args := m.Called(ctx, teamID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.RecruitmentPost), args.Get(1).(int64), args.Error(2)
}

func (m *MockRecruitmentPostStore) DecrementPositions(ctx context.Context, postID int64) (int, models.RecruitmentPostStatus, error) {
	args := m.Called(ctx, postID)
	return args.Int(0), args.Get(1).(models.RecruitmentPostStatus), args.Error(2)
}

func (m *MockRecruitmentPostStore) SetStatus(ctx context.Context, postID int64, status models.RecruitmentPostStatus) error {
	args := m.Called(ctx, postID, status)
	return args.Error(0)
}

type MockChatStore struct {
	mock.Mock
}

func (m *MockChatStore) GetChannelByTeamID(ctx context.Context, teamID int64) (*models.ChatChannel, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatChannel), args.Error(1)
}

func (m *MockChatStore) EnsureChannel(ctx context.Context, teamID int64) (int64, error) {
	args := m.Called(ctx, teamID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChatStore) AddChannelMember(ctx context.Context, channelID, userID int64) error {
	args := m.Called(ctx, channelID, userID)
	return args.Error(0)
}

func (m *MockChatStore) RemoveChannelMember(ctx context.Context, channelID, userID int64) error {
	args := m.Called(ctx, channelID, userID)
	return args.Error(0)
}

func (m *MockChatStore) ListChannelMemberIDs(ctx context.Context, channelID int64) ([]int64, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

type MockNotificationStore struct {
	mock.Mock
}

func (m *MockNotificationStore) Create(ctx context.Context, n *models.Notification) (int64, error) {
	args := m.Called(ctx, n)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationStore) ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]models.Notification, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationStore) MarkRead(ctx context.Context, notificationID, userID int64) error {
	args := m.Called(ctx, notificationID, userID)
	return args.Error(0)
}

type MockMembershipMutator struct {
	mock.Mock
}

func (m *MockMembershipMutator) AddMember(ctx context.Context, teamID, userID int64) (*AddMemberOutcome, error) {
	args := m.Called(ctx, teamID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AddMemberOutcome), args.Error(1)
}

func (m *MockMembershipMutator) RemoveMember(ctx context.Context, teamID, userID int64) (*RemoveMemberOutcome, error) {
	args := m.Called(ctx, teamID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*RemoveMemberOutcome), args.Error(1)
}

type MockChatProvisioner struct {
	mock.Mock
}

func (m *MockChatProvisioner) EnsureTeamChannel(ctx context.Context, teamID, leaderID int64, memberIDs []int64) error {
	args := m.Called(ctx, teamID, leaderID, memberIDs)
	return args.Error(0)
}

func (m *MockChatProvisioner) RemoveFromTeamChannel(ctx context.Context, teamID, userID int64) error {
	args := m.Called(ctx, teamID, userID)
	return args.Error(0)
}

type MockProfileStore struct {
	mock.Mock
}

func (m *MockProfileStore) GetSectionYear(ctx context.Context, userID int64) (*models.ProfileSnapshot, error) {
	args := m.Called(ctx, userID)
	if profile, ok := args.Get(0).(*models.ProfileSnapshot); ok {
		return profile, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, userID int64, kind models.NotificationKind, title, message, link, ref string) error {
	args := m.Called(ctx, userID, kind, title, message, link, ref)
	return args.Error(0)
}

type MockAcceptanceDispatcher struct {
	mock.Mock
}

func (m *MockAcceptanceDispatcher) DispatchAcceptance(ctx context.Context, effects AcceptanceEffects) []dto.Warning {
	args := m.Called(ctx, effects)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]dto.Warning)
}
