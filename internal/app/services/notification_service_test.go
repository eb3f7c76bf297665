package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ozgur/teamup/internal/app/models"
)

func TestNotificationService_Notify(t *testing.T) {
	ctx := context.Background()

	t.Run("keys dedup on the triggering event instance", func(t *testing.T) {
		store := new(MockNotificationStore)
		service := NewNotificationService(store, nil, testConfig())

		store.On("Create", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
			return n.UserID == 7 &&
				n.Kind == models.NotificationAddedToTeam &&
				n.DedupKey == "7:ADDED_TO_TEAM:application:12"
		})).Return(int64(1), nil)

		err := service.Notify(ctx, 7, models.NotificationAddedToTeam, "Added to team", "welcome", "/teams/5", "application:12")

		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("distinct review cycles of one entity get distinct keys", func(t *testing.T) {
		store := new(MockNotificationStore)
		service := NewNotificationService(store, nil, testConfig())

		seen := make(map[string]int)
		store.On("Create", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
			seen[n.DedupKey]++
			return true
		})).Return(int64(1), nil)

		// A join request rejected, resubmitted and rejected again must produce
		// two notifications, not one swallowed by dedup.
		require.NoError(t, service.Notify(ctx, 7, models.NotificationRequestSeen, "Decision on your request", "m", "/teams/5", "join-request:3:rejected:100"))
		require.NoError(t, service.Notify(ctx, 7, models.NotificationRequestSeen, "Decision on your request", "m", "/teams/5", "join-request:3:rejected:200"))

		assert.Len(t, seen, 2)
		for _, count := range seen {
			assert.Equal(t, 1, count)
		}
	})

	t.Run("store failure propagates", func(t *testing.T) {
		store := new(MockNotificationStore)
		service := NewNotificationService(store, nil, testConfig())

		store.On("Create", mock.Anything, mock.Anything).Return(int64(0), assert.AnError)

		err := service.Notify(ctx, 7, models.NotificationAddedToTeam, "t", "m", "/l", "application:1")

		assert.Error(t, err)
	})
}

func TestNotificationService_ListNotifications(t *testing.T) {
	ctx := context.Background()

	t.Run("maps rows to responses with pagination", func(t *testing.T) {
		store := new(MockNotificationStore)
		service := NewNotificationService(store, nil, testConfig())

		now := time.Now()
		store.On("ListByUser", mock.Anything, int64(7), 1, 10).Return([]models.Notification{
			{ID: 1, UserID: 7, Kind: models.NotificationAddedToTeam, Title: "Added to team", CreatedAt: now},
		}, int64(1), nil)

		responses, pagination, err := service.ListNotifications(ctx, 7, 0, 0)

		require.NoError(t, err)
		require.Len(t, responses, 1)
		assert.Equal(t, "ADDED_TO_TEAM", responses[0].Kind)
		assert.Equal(t, int64(1), pagination.TotalItems)
		assert.Equal(t, 1, pagination.TotalPages)
	})
}
