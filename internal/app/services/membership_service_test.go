package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ozgur/teamup/internal/pkg/apperrors"
)

func TestMembershipService_AddMember(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts and re-derives the counters", func(t *testing.T) {
		teams := new(MockTeamStore)
		members := new(MockMembershipStore)
		service := NewMembershipService(teams, members)

		members.On("InsertMembership", mock.Anything, int64(5), int64(7)).Return(true, nil)
		members.On("RefreshDerivedFields", mock.Anything, int64(5)).Return(3, false, nil)

		outcome, err := service.AddMember(ctx, 5, 7)

		require.NoError(t, err)
		assert.True(t, outcome.Added)
		assert.Equal(t, 3, outcome.MemberCount)
		assert.False(t, outcome.IsFull)
		members.AssertExpectations(t)
	})

	t.Run("adding the last seat marks the team full", func(t *testing.T) {
		teams := new(MockTeamStore)
		members := new(MockMembershipStore)
		service := NewMembershipService(teams, members)

		members.On("InsertMembership", mock.Anything, int64(5), int64(7)).Return(true, nil)
		members.On("RefreshDerivedFields", mock.Anything, int64(5)).Return(4, true, nil)

		outcome, err := service.AddMember(ctx, 5, 7)

		require.NoError(t, err)
		assert.True(t, outcome.IsFull)
	})

	t.Run("existing member is an idempotent success", func(t *testing.T) {
		teams := new(MockTeamStore)
		members := new(MockMembershipStore)
		service := NewMembershipService(teams, members)

		members.On("InsertMembership", mock.Anything, int64(5), int64(7)).Return(false, nil)
		members.On("RefreshDerivedFields", mock.Anything, int64(5)).Return(3, false, nil)

		outcome, err := service.AddMember(ctx, 5, 7)

		require.NoError(t, err)
		assert.False(t, outcome.Added)
		assert.Equal(t, 3, outcome.MemberCount)
	})

	t.Run("full team surfaces capacity error without refresh", func(t *testing.T) {
		teams := new(MockTeamStore)
		members := new(MockMembershipStore)
		service := NewMembershipService(teams, members)

		members.On("InsertMembership", mock.Anything, int64(5), int64(7)).
			Return(false, apperrors.ErrCapacityExceeded)

		_, err := service.AddMember(ctx, 5, 7)

		assert.ErrorIs(t, err, apperrors.ErrCapacityExceeded)
		members.AssertNotCalled(t, "RefreshDerivedFields", mock.Anything, mock.Anything)
	})
}

func TestMembershipService_RemoveMember(t *testing.T) {
	ctx := context.Background()

	t.Run("removes a member and re-derives the counters", func(t *testing.T) {
		teams := new(MockTeamStore)
		members := new(MockMembershipStore)
		service := NewMembershipService(teams, members)

		teams.On("GetByID", mock.Anything, int64(5)).Return(teamWithRoom(), nil)
		members.On("DeleteMembership", mock.Anything, int64(5), int64(7)).Return(nil)
		members.On("RefreshDerivedFields", mock.Anything, int64(5)).Return(1, false, nil)

		outcome, err := service.RemoveMember(ctx, 5, 7)

		require.NoError(t, err)
		assert.Equal(t, 1, outcome.MemberCount)
		assert.False(t, outcome.IsFull)
	})

	t.Run("the leader cannot be removed", func(t *testing.T) {
		teams := new(MockTeamStore)
		members := new(MockMembershipStore)
		service := NewMembershipService(teams, members)

		team := teamWithRoom()
		teams.On("GetByID", mock.Anything, int64(5)).Return(team, nil)

		_, err := service.RemoveMember(ctx, 5, team.LeaderID)

		assert.ErrorIs(t, err, apperrors.ErrCannotRemoveLeader)
		members.AssertNotCalled(t, "DeleteMembership", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("removing a non-member fails", func(t *testing.T) {
		teams := new(MockTeamStore)
		members := new(MockMembershipStore)
		service := NewMembershipService(teams, members)

		teams.On("GetByID", mock.Anything, int64(5)).Return(teamWithRoom(), nil)
		members.On("DeleteMembership", mock.Anything, int64(5), int64(7)).
			Return(apperrors.ErrNotTeamMember)

		_, err := service.RemoveMember(ctx, 5, 7)

		assert.ErrorIs(t, err, apperrors.ErrNotTeamMember)
	})
}
