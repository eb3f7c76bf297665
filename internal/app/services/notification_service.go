package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ozgur/teamup/internal/app/models"
	"github.com/ozgur/teamup/internal/app/models/dto"
	"github.com/ozgur/teamup/internal/config"
	"github.com/ozgur/teamup/internal/pkg/logger"
)

// redisPublisher is the slice of the redis client the service needs.
// *redis.Client satisfies it.
type redisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// NotificationService persists notifications and fans them out over redis
// pub/sub. The row is the source of truth; the publish is best-effort and a
// failed publish never fails the notification.
type NotificationService struct {
	store     NotificationStore
	publisher redisPublisher
	channelNS string
}

// NewNotificationService creates a new NotificationService. A nil publisher
// disables fan-out entirely.
func NewNotificationService(store NotificationStore, publisher redisPublisher, cfg *config.Config) *NotificationService {
	return &NotificationService{
		store:     store,
		publisher: publisher,
		channelNS: cfg.Team.NotificationChannelNS,
	}
}

// Notify persists one notification for the user and publishes it. The dedup
// key is derived from the triggering event instance (ref), so a retried
// dispatch lands on the same row while a later decision on the same entity,
// e.g. a rejection after a resubmit, still gets its own notification.
func (s *NotificationService) Notify(ctx context.Context, userID int64, kind models.NotificationKind, title, message, link, ref string) error {
	notification := &models.Notification{
		UserID:   userID,
		Kind:     kind,
		Title:    title,
		Message:  message,
		Link:     link,
		DedupKey: fmt.Sprintf("%d:%s:%s", userID, kind, ref),
	}

	id, err := s.store.Create(ctx, notification)
	if err != nil {
		return err
	}
	notification.ID = id
	notification.CreatedAt = time.Now()

	s.publish(ctx, notification)
	return nil
}

// ListNotifications returns the user's notifications, newest first
func (s *NotificationService) ListNotifications(ctx context.Context, userID int64, page, pageSize int) ([]dto.NotificationResponse, *dto.PaginationInfo, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	notifications, total, err := s.store.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, dto.NotificationResponse{
			ID:        n.ID,
			Kind:      string(n.Kind),
			Title:     n.Title,
			Message:   n.Message,
			Link:      n.Link,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		})
	}

	pagination := paginationInfo(page, pageSize, total)
	return responses, &pagination, nil
}

// MarkRead marks one of the user's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID int64) error {
	return s.store.MarkRead(ctx, notificationID, userID)
}

func (s *NotificationService) publish(ctx context.Context, n *models.Notification) {
	if s.publisher == nil {
		return
	}

	payload, err := json.Marshal(n)
	if err != nil {
		logger.Warn().Err(err).Int64("notificationId", n.ID).Msg("Could not encode notification for fan-out")
		return
	}

	channel := fmt.Sprintf("%s:%d", s.channelNS, n.UserID)
	if err := s.publisher.Publish(ctx, channel, payload).Err(); err != nil {
		logger.Warn().Err(err).Str("channel", channel).Msg("Notification fan-out failed")
	}
}

var _ Notifier = (*NotificationService)(nil)
