package services

import (
	"context"

	"github.com/ozgur/teamup/internal/pkg/apperrors"
	"github.com/ozgur/teamup/internal/pkg/logger"
)

// MembershipService is the only writer of the team roster. Every change goes
// through the conditional insert/delete and then re-derives member_count and
// is_full from the membership set, so the counters can drift at most between
// those two statements and are corrected on the next pass.
type MembershipService struct {
	teamStore       TeamStore
	membershipStore MembershipStore
}

// NewMembershipService creates a new MembershipService
func NewMembershipService(teamStore TeamStore, membershipStore MembershipStore) *MembershipService {
	return &MembershipService{
		teamStore:       teamStore,
		membershipStore: membershipStore,
	}
}

// AddMember inserts the user into the roster. The capacity recheck lives in
// the insert itself; a full team surfaces as ErrCapacityExceeded. Adding an
// existing member is an idempotent success with Added=false.
func (s *MembershipService) AddMember(ctx context.Context, teamID, userID int64) (*AddMemberOutcome, error) {
	added, err := s.membershipStore.InsertMembership(ctx, teamID, userID)
	if err != nil {
		return nil, err
	}

	memberCount, isFull, err := s.membershipStore.RefreshDerivedFields(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if added {
		logger.Info().
			Int64("teamId", teamID).
			Int64("userId", userID).
			Int("memberCount", memberCount).
			Msg("Member added to team")
	} else {
		logger.Debug().
			Int64("teamId", teamID).
			Int64("userId", userID).
			Msg("Membership insert skipped, user already on roster")
	}

	return &AddMemberOutcome{
		Added:       added,
		MemberCount: memberCount,
		IsFull:      isFull,
	}, nil
}

// RemoveMember deletes the user from the roster. The leader can never be
// removed; leadership has to be transferred first.
func (s *MembershipService) RemoveMember(ctx context.Context, teamID, userID int64) (*RemoveMemberOutcome, error) {
	team, err := s.teamStore.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if team.LeaderID == userID {
		return nil, apperrors.ErrCannotRemoveLeader
	}

	if err := s.membershipStore.DeleteMembership(ctx, teamID, userID); err != nil {
		return nil, err
	}

	memberCount, isFull, err := s.membershipStore.RefreshDerivedFields(ctx, teamID)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("teamId", teamID).
		Int64("userId", userID).
		Int("memberCount", memberCount).
		Msg("Member removed from team")

	return &RemoveMemberOutcome{
		MemberCount: memberCount,
		IsFull:      isFull,
	}, nil
}

var _ MembershipMutator = (*MembershipService)(nil)
