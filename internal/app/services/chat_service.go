package services

import (
	"context"

	"github.com/ozgur/teamup/internal/pkg/logger"
)

// ChatService provisions team chat channels and keeps their member lists in
// sync with the roster. Every operation is idempotent so the acceptance
// dispatcher can retry it on each membership change.
type ChatService struct {
	chatStore ChatStore
}

// NewChatService creates a new ChatService
func NewChatService(chatStore ChatStore) *ChatService {
	return &ChatService{chatStore: chatStore}
}

// EnsureTeamChannel creates the channel if missing and enrolls the leader
// plus the given members
func (s *ChatService) EnsureTeamChannel(ctx context.Context, teamID, leaderID int64, memberIDs []int64) error {
	channelID, err := s.chatStore.EnsureChannel(ctx, teamID)
	if err != nil {
		return err
	}

	existing, err := s.chatStore.ListChannelMemberIDs(ctx, channelID)
	if err != nil {
		return err
	}
	enrolled := make(map[int64]bool, len(existing))
	for _, id := range existing {
		enrolled[id] = true
	}

	added := 0
	for _, userID := range append([]int64{leaderID}, memberIDs...) {
		if enrolled[userID] {
			continue
		}
		if err := s.chatStore.AddChannelMember(ctx, channelID, userID); err != nil {
			return err
		}
		enrolled[userID] = true
		added++
	}

	logger.Debug().
		Int64("teamId", teamID).
		Int64("channelId", channelID).
		Int("added", added).
		Msg("Team channel synced")

	return nil
}

// RemoveFromTeamChannel drops a user from the team channel. A team without
// a channel is a no-op.
func (s *ChatService) RemoveFromTeamChannel(ctx context.Context, teamID, userID int64) error {
	channel, err := s.chatStore.GetChannelByTeamID(ctx, teamID)
	if err != nil {
		return err
	}
	if channel == nil {
		return nil
	}

	return s.chatStore.RemoveChannelMember(ctx, channel.ID, userID)
}

var _ ChatProvisioner = (*ChatService)(nil)
