package services

import (
	"context"
	"fmt"

	"github.com/ozgur/teamup/internal/app/models"
	"github.com/ozgur/teamup/internal/app/models/dto"
	"github.com/ozgur/teamup/internal/pkg/logger"
)

// SideEffectService runs everything that has to catch up after a membership
// change became durable: recruitment post bookkeeping, chat provisioning and
// the welcome notification. None of these can undo the membership; a failure
// is logged and surfaced to the caller as a warning.
type SideEffectService struct {
	postStore       RecruitmentPostStore
	membershipStore MembershipStore
	chat            ChatProvisioner
	notifier        Notifier
}

// NewSideEffectService creates a new SideEffectService
func NewSideEffectService(
	postStore RecruitmentPostStore,
	membershipStore MembershipStore,
	chat ChatProvisioner,
	notifier Notifier,
) *SideEffectService {
	return &SideEffectService{
		postStore:       postStore,
		membershipStore: membershipStore,
		chat:            chat,
		notifier:        notifier,
	}
}

// DispatchAcceptance runs the acceptance side effects in order. Post
// bookkeeping goes first so a crash mid-dispatch leaves at worst a stale
// open post, never a lost seat.
func (s *SideEffectService) DispatchAcceptance(ctx context.Context, effects AcceptanceEffects) []dto.Warning {
	var warnings []dto.Warning

	if effects.PostID != nil {
		remaining, status, err := s.postStore.DecrementPositions(ctx, *effects.PostID)
		if err != nil {
			logger.Warn().
				Err(err).
				Int64("postId", *effects.PostID).
				Int64("teamId", effects.Team.ID).
				Msg("Recruitment post bookkeeping failed after acceptance")
			warnings = append(warnings, dto.Warning{
				Code:    dto.WarningSideEffectFailure,
				Message: "Member added, recruitment post positions could not be updated",
			})
		} else {
			logger.Info().
				Int64("postId", *effects.PostID).
				Int("positionsRemaining", remaining).
				Str("postStatus", string(status)).
				Msg("Recruitment post positions updated")
		}
	}

	if err := s.provisionChat(ctx, effects.Team); err != nil {
		logger.Warn().
			Err(err).
			Int64("teamId", effects.Team.ID).
			Int64("userId", effects.NewMember.UserID).
			Msg("Chat provisioning failed after acceptance")
		warnings = append(warnings, dto.Warning{
			Code:    dto.WarningSideEffectFailure,
			Message: "Member added, chat channel update pending",
		})
	}

	link := fmt.Sprintf("/teams/%d", effects.Team.ID)
	message := fmt.Sprintf("You are now a member of %s", effects.Team.Name)
	err := s.notifier.Notify(ctx, effects.NewMember.UserID, models.NotificationAddedToTeam,
		"Added to team", message, link, effects.Origin)
	if err != nil {
		logger.Warn().
			Err(err).
			Int64("userId", effects.NewMember.UserID).
			Int64("teamId", effects.Team.ID).
			Msg("Notification delivery failed after acceptance")
		warnings = append(warnings, dto.Warning{
			Code:    dto.WarningSideEffectFailure,
			Message: "Member added, notification delivery pending",
		})
	}

	return warnings
}

// provisionChat syncs the full roster into the team channel. The roster is
// re-read so a concurrently accepted member is picked up too.
func (s *SideEffectService) provisionChat(ctx context.Context, team *models.Team) error {
	members, err := s.membershipStore.GetActiveMembers(ctx, team.ID)
	if err != nil {
		return err
	}

	memberIDs := make([]int64, 0, len(members))
	for _, m := range members {
		memberIDs = append(memberIDs, m.UserID)
	}

	return s.chat.EnsureTeamChannel(ctx, team.ID, team.LeaderID, memberIDs)
}

var _ AcceptanceDispatcher = (*SideEffectService)(nil)
