package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ozgur/teamup/internal/app/models"
)

func TestChatService_EnsureTeamChannel(t *testing.T) {
	ctx := context.Background()

	t.Run("provisions the channel and enrolls everyone once", func(t *testing.T) {
		store := new(MockChatStore)
		service := NewChatService(store)

		store.On("EnsureChannel", mock.Anything, int64(5)).Return(int64(40), nil)
		store.On("ListChannelMemberIDs", mock.Anything, int64(40)).Return([]int64{}, nil)
		store.On("AddChannelMember", mock.Anything, int64(40), int64(3)).Return(nil).Once()
		store.On("AddChannelMember", mock.Anything, int64(40), int64(7)).Return(nil).Once()

		// the leader appears in the member list too; it must not be added twice
		err := service.EnsureTeamChannel(ctx, 5, 3, []int64{3, 7})

		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("already-enrolled members are skipped", func(t *testing.T) {
		store := new(MockChatStore)
		service := NewChatService(store)

		store.On("EnsureChannel", mock.Anything, int64(5)).Return(int64(40), nil)
		store.On("ListChannelMemberIDs", mock.Anything, int64(40)).Return([]int64{3, 7}, nil)
		store.On("AddChannelMember", mock.Anything, int64(40), int64(9)).Return(nil).Once()

		err := service.EnsureTeamChannel(ctx, 5, 3, []int64{3, 7, 9})

		require.NoError(t, err)
		store.AssertExpectations(t)
		store.AssertNumberOfCalls(t, "AddChannelMember", 1)
	})

	t.Run("channel creation failure propagates", func(t *testing.T) {
		store := new(MockChatStore)
		service := NewChatService(store)

		store.On("EnsureChannel", mock.Anything, int64(5)).Return(int64(0), assert.AnError)

		err := service.EnsureTeamChannel(ctx, 5, 3, nil)

		assert.Error(t, err)
		store.AssertNotCalled(t, "AddChannelMember", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestChatService_RemoveFromTeamChannel(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the user from an existing channel", func(t *testing.T) {
		store := new(MockChatStore)
		service := NewChatService(store)

		store.On("GetChannelByTeamID", mock.Anything, int64(5)).
			Return(&models.ChatChannel{ID: 40, TeamID: 5}, nil)
		store.On("RemoveChannelMember", mock.Anything, int64(40), int64(7)).Return(nil)

		err := service.RemoveFromTeamChannel(ctx, 5, 7)

		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("team without a channel is a no-op", func(t *testing.T) {
		store := new(MockChatStore)
		service := NewChatService(store)

		store.On("GetChannelByTeamID", mock.Anything, int64(5)).Return(nil, nil)

		err := service.RemoveFromTeamChannel(ctx, 5, 7)

		require.NoError(t, err)
		store.AssertNotCalled(t, "RemoveChannelMember", mock.Anything, mock.Anything, mock.Anything)
	})
}
