package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ozgur/teamup/internal/app/models"
	"github.com/ozgur/teamup/internal/app/models/dto"
	"github.com/ozgur/teamup/internal/pkg/apperrors"
)

type sideEffectFixture struct {
	posts    *MockRecruitmentPostStore
	members  *MockMembershipStore
	chat     *MockChatProvisioner
	notifier *MockNotifier
	service  *SideEffectService
}

func newSideEffectFixture() *sideEffectFixture {
	f := &sideEffectFixture{
		posts:    new(MockRecruitmentPostStore),
		members:  new(MockMembershipStore),
		chat:     new(MockChatProvisioner),
		notifier: new(MockNotifier),
	}
	f.service = NewSideEffectService(f.posts, f.members, f.chat, f.notifier)
	return f
}

func acceptanceEffects(postID *int64) AcceptanceEffects {
	return AcceptanceEffects{
		Team:      teamWithRoom(),
		NewMember: &models.ProfileSnapshot{UserID: 7, FirstName: "Ada"},
		PostID:    postID,
		Origin:    "application:1",
	}
}

func TestSideEffectService_DispatchAcceptance(t *testing.T) {
	ctx := context.Background()
	postID := int64(10)

	t.Run("all side effects succeed with no warnings", func(t *testing.T) {
		f := newSideEffectFixture()

		f.posts.On("DecrementPositions", mock.Anything, postID).
			Return(1, models.PostStatusOpen, nil)
		f.members.On("GetActiveMembers", mock.Anything, int64(5)).
			Return([]*models.TeamMember{member(3, "B", 2), member(7, "A", 2)}, nil)
		f.chat.On("EnsureTeamChannel", mock.Anything, int64(5), int64(3), []int64{3, 7}).
			Return(nil)
		f.notifier.On("Notify", mock.Anything, int64(7), models.NotificationAddedToTeam,
			mock.Anything, mock.Anything, mock.Anything, "application:1").Return(nil)

		warnings := f.service.DispatchAcceptance(ctx, acceptanceEffects(&postID))

		assert.Empty(t, warnings)
		f.posts.AssertExpectations(t)
		f.chat.AssertExpectations(t)
		f.notifier.AssertExpectations(t)
	})

	t.Run("last position closes the post", func(t *testing.T) {
		f := newSideEffectFixture()

		f.posts.On("DecrementPositions", mock.Anything, postID).
			Return(0, models.PostStatusClosed, nil)
		f.members.On("GetActiveMembers", mock.Anything, int64(5)).
			Return([]*models.TeamMember{}, nil)
		f.chat.On("EnsureTeamChannel", mock.Anything, int64(5), int64(3), []int64{}).
			Return(nil)
		f.notifier.On("Notify", mock.Anything, int64(7), models.NotificationAddedToTeam,
			mock.Anything, mock.Anything, mock.Anything, "application:1").Return(nil)

		warnings := f.service.DispatchAcceptance(ctx, acceptanceEffects(&postID))

		assert.Empty(t, warnings)
	})

	t.Run("join request acceptance skips post bookkeeping", func(t *testing.T) {
		f := newSideEffectFixture()

		f.members.On("GetActiveMembers", mock.Anything, int64(5)).
			Return([]*models.TeamMember{}, nil)
		f.chat.On("EnsureTeamChannel", mock.Anything, int64(5), int64(3), []int64{}).
			Return(nil)
		f.notifier.On("Notify", mock.Anything, int64(7), models.NotificationAddedToTeam,
			mock.Anything, mock.Anything, mock.Anything, "application:1").Return(nil)

		warnings := f.service.DispatchAcceptance(ctx, acceptanceEffects(nil))

		assert.Empty(t, warnings)
		f.posts.AssertNotCalled(t, "DecrementPositions", mock.Anything, mock.Anything)
	})

	t.Run("every failed side effect becomes a warning", func(t *testing.T) {
		f := newSideEffectFixture()

		f.posts.On("DecrementPositions", mock.Anything, postID).
			Return(0, models.RecruitmentPostStatus(""), apperrors.ErrPostNotOpen)
		f.members.On("GetActiveMembers", mock.Anything, int64(5)).
			Return(nil, assert.AnError)
		f.notifier.On("Notify", mock.Anything, int64(7), models.NotificationAddedToTeam,
			mock.Anything, mock.Anything, mock.Anything, "application:1").Return(assert.AnError)

		warnings := f.service.DispatchAcceptance(ctx, acceptanceEffects(&postID))

		assert.Len(t, warnings, 3)
		for _, w := range warnings {
			assert.Equal(t, dto.WarningSideEffectFailure, w.Code)
		}
	})

	t.Run("post bookkeeping failure does not stop the rest", func(t *testing.T) {
		f := newSideEffectFixture()

		f.posts.On("DecrementPositions", mock.Anything, postID).
			Return(0, models.RecruitmentPostStatus(""), apperrors.ErrPostNotOpen)
		f.members.On("GetActiveMembers", mock.Anything, int64(5)).
			Return([]*models.TeamMember{}, nil)
		f.chat.On("EnsureTeamChannel", mock.Anything, int64(5), int64(3), []int64{}).
			Return(nil)
		f.notifier.On("Notify", mock.Anything, int64(7), models.NotificationAddedToTeam,
			mock.Anything, mock.Anything, mock.Anything, "application:1").Return(nil)

		warnings := f.service.DispatchAcceptance(ctx, acceptanceEffects(&postID))

		assert.Len(t, warnings, 1)
		f.chat.AssertExpectations(t)
		f.notifier.AssertExpectations(t)
	})
}
