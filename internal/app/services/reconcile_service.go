package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ozgur/teamup/internal/app/models"
	"github.com/ozgur/teamup/internal/app/models/dto"
	"github.com/ozgur/teamup/internal/pkg/apperrors"
	"github.com/ozgur/teamup/internal/pkg/logger"
)

// ReconciliationService drives leader decisions on applications and join
// requests. A decision is claimed through a conditional status update before
// the roster is touched, so two reviewers resolving the same row can never
// both win: the loser's predicate fails and surfaces as ErrAlreadyReviewed.
//
// The acceptance order is fixed: validate, claim the decision, insert the
// membership, then dispatch side effects. If the membership insert loses the
// last seat to a concurrent acceptance, the claim is reverted and the caller
// sees ErrCapacityExceeded with nothing durable changed.
type ReconciliationService struct {
	teamStore        TeamStore
	membershipStore  MembershipStore
	applicationStore ApplicationStore
	requestStore     JoinRequestStore
	postStore        RecruitmentPostStore
	mutator          MembershipMutator
	dispatcher       AcceptanceDispatcher
	notifier         Notifier
	detector         *ConflictDetector
}

// NewReconciliationService creates a new ReconciliationService
func NewReconciliationService(
	teamStore TeamStore,
	membershipStore MembershipStore,
	applicationStore ApplicationStore,
	requestStore JoinRequestStore,
	postStore RecruitmentPostStore,
	mutator MembershipMutator,
	dispatcher AcceptanceDispatcher,
	notifier Notifier,
) *ReconciliationService {
	return &ReconciliationService{
		teamStore:        teamStore,
		membershipStore:  membershipStore,
		applicationStore: applicationStore,
		requestStore:     requestStore,
		postStore:        postStore,
		mutator:          mutator,
		dispatcher:       dispatcher,
		notifier:         notifier,
		detector:         NewConflictDetector(),
	}
}

// AcceptApplication accepts a pending application and adds the applicant to
// the roster.
func (s *ReconciliationService) AcceptApplication(ctx context.Context, applicationID, reviewerID int64) (*dto.DecisionResponse, error) {
	app, err := s.applicationStore.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	post, err := s.postStore.GetByID(ctx, app.PostID)
	if err != nil {
		return nil, err
	}

	team, err := s.teamStore.GetByID(ctx, post.TeamID)
	if err != nil {
		return nil, err
	}

	if team.LeaderID != reviewerID {
		return nil, apperrors.NewForbiddenError("Only the team leader can review applications")
	}

	if app.Status != models.DecisionPending {
		return nil, apperrors.ErrAlreadyReviewed
	}

	// A closed or archived post can no longer hand out seats; its pending
	// applications are only rejectable.
	if post.Status != models.PostStatusOpen {
		return nil, apperrors.ErrPostNotOpen
	}

	if post.IsExpired(time.Now()) {
		return nil, apperrors.ErrPostExpired
	}

	advisory, err := s.admit(ctx, team, app.Applicant)
	if err != nil {
		return nil, err
	}

	// Claim the decision before touching the roster. A concurrent reviewer
	// fails here and the row stays consistent.
	if err := s.applicationStore.SetStatus(ctx, app.ID, models.DecisionPending, models.DecisionAccepted); err != nil {
		return nil, err
	}

	outcome, err := s.mutator.AddMember(ctx, team.ID, app.ApplicantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCapacityExceeded) {
			s.revertClaim(ctx, "application", app.ID, func() error {
				return s.applicationStore.SetStatus(ctx, app.ID, models.DecisionAccepted, models.DecisionPending)
			})
		}
		return nil, err
	}

	warnings := s.dispatcher.DispatchAcceptance(ctx, AcceptanceEffects{
		Team:      team,
		NewMember: app.Applicant,
		PostID:    &app.PostID,
		Origin:    fmt.Sprintf("application:%d", app.ID),
	})

	logger.Info().
		Int64("applicationId", app.ID).
		Int64("teamId", team.ID).
		Int64("userId", app.ApplicantID).
		Int64("reviewerId", reviewerID).
		Msg("Application accepted")

	return s.decisionResponse(models.DecisionAccepted, team.ID, app.ApplicantID,
		outcome.MemberCount, outcome.IsFull, advisory, warnings), nil
}

// RejectApplication rejects a pending application. Rejection never touches
// the roster and is always admissible while the row is still pending.
func (s *ReconciliationService) RejectApplication(ctx context.Context, applicationID, reviewerID int64) (*dto.DecisionResponse, error) {
	app, err := s.applicationStore.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	post, err := s.postStore.GetByID(ctx, app.PostID)
	if err != nil {
		return nil, err
	}

	team, err := s.teamStore.GetByID(ctx, post.TeamID)
	if err != nil {
		return nil, err
	}

	if team.LeaderID != reviewerID {
		return nil, apperrors.NewForbiddenError("Only the team leader can review applications")
	}

	if err := s.applicationStore.SetStatus(ctx, app.ID, models.DecisionPending, models.DecisionRejected); err != nil {
		return nil, err
	}

	s.notifyReviewed(ctx, app.ApplicantID, models.NotificationApplicationSeen,
		fmt.Sprintf("Your application to %s was not accepted", team.Name),
		fmt.Sprintf("/posts/%d", post.ID),
		rejectionRef("application", app.ID))

	logger.Info().
		Int64("applicationId", app.ID).
		Int64("teamId", team.ID).
		Int64("reviewerId", reviewerID).
		Msg("Application rejected")

	return s.decisionResponse(models.DecisionRejected, team.ID, app.ApplicantID,
		team.MemberCount, team.IsFull, false, nil), nil
}

// ApproveJoinRequest accepts a pending join request and adds the requester
// to the roster.
func (s *ReconciliationService) ApproveJoinRequest(ctx context.Context, requestID, reviewerID int64) (*dto.DecisionResponse, error) {
	req, err := s.requestStore.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	team, err := s.teamStore.GetByID(ctx, req.TeamID)
	if err != nil {
		return nil, err
	}

	if team.LeaderID != reviewerID {
		return nil, apperrors.NewForbiddenError("Only the team leader can review join requests")
	}

	if req.Status != models.DecisionPending {
		return nil, apperrors.ErrAlreadyReviewed
	}

	advisory, err := s.admit(ctx, team, req.Requester)
	if err != nil {
		return nil, err
	}

	if err := s.requestStore.SetStatus(ctx, req.ID, models.DecisionPending, models.DecisionAccepted); err != nil {
		return nil, err
	}

	outcome, err := s.mutator.AddMember(ctx, team.ID, req.RequesterID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCapacityExceeded) {
			s.revertClaim(ctx, "join request", req.ID, func() error {
				return s.requestStore.SetStatus(ctx, req.ID, models.DecisionAccepted, models.DecisionPending)
			})
		}
		return nil, err
	}

	warnings := s.dispatcher.DispatchAcceptance(ctx, AcceptanceEffects{
		Team:      team,
		NewMember: req.Requester,
		Origin:    fmt.Sprintf("request:%d", req.ID),
	})

	logger.Info().
		Int64("requestId", req.ID).
		Int64("teamId", team.ID).
		Int64("userId", req.RequesterID).
		Int64("reviewerId", reviewerID).
		Msg("Join request approved")

	return s.decisionResponse(models.DecisionAccepted, team.ID, req.RequesterID,
		outcome.MemberCount, outcome.IsFull, advisory, warnings), nil
}

// RejectJoinRequest rejects a pending join request
func (s *ReconciliationService) RejectJoinRequest(ctx context.Context, requestID, reviewerID int64) (*dto.DecisionResponse, error) {
	req, err := s.requestStore.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	team, err := s.teamStore.GetByID(ctx, req.TeamID)
	if err != nil {
		return nil, err
	}

	if team.LeaderID != reviewerID {
		return nil, apperrors.NewForbiddenError("Only the team leader can review join requests")
	}

	if err := s.requestStore.SetStatus(ctx, req.ID, models.DecisionPending, models.DecisionRejected); err != nil {
		return nil, err
	}

	s.notifyReviewed(ctx, req.RequesterID, models.NotificationRequestSeen,
		fmt.Sprintf("Your request to join %s was not accepted", team.Name),
		fmt.Sprintf("/teams/%d", team.ID),
		rejectionRef("join-request", req.ID))

	logger.Info().
		Int64("requestId", req.ID).
		Int64("teamId", team.ID).
		Int64("reviewerId", reviewerID).
		Msg("Join request rejected")

	return s.decisionResponse(models.DecisionRejected, team.ID, req.RequesterID,
		team.MemberCount, team.IsFull, false, nil), nil
}

// ResubmitJoinRequest moves a rejected join request back to pending. Only
// the requester may resubmit, and only while the team still has room.
func (s *ReconciliationService) ResubmitJoinRequest(ctx context.Context, requestID, requesterID int64) (*dto.JoinRequestResponse, error) {
	req, err := s.requestStore.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if req.RequesterID != requesterID {
		return nil, apperrors.NewForbiddenError("Only the requester can resubmit a join request")
	}

	if req.Status != models.DecisionRejected {
		return nil, apperrors.NewConflictError("Only a rejected join request can be resubmitted")
	}

	team, err := s.teamStore.GetByID(ctx, req.TeamID)
	if err != nil {
		return nil, err
	}

	if !team.HasCapacity() {
		return nil, apperrors.ErrCapacityExceeded
	}

	if err := s.requestStore.SetStatus(ctx, req.ID, models.DecisionRejected, models.DecisionPending); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("requestId", req.ID).
		Int64("teamId", team.ID).
		Int64("userId", requesterID).
		Msg("Join request resubmitted")

	req.Status = models.DecisionPending
	req.ReviewedAt = nil
	resp := dto.ToJoinRequestResponse(req)
	return &resp, nil
}

// admit runs the blocking pre-checks shared by both acceptance paths and
// returns the advisory pending-same-section flag. Nothing is written here;
// the authoritative capacity check still happens inside the membership
// insert.
func (s *ReconciliationService) admit(ctx context.Context, team *models.Team, candidate *models.ProfileSnapshot) (bool, error) {
	if !team.HasCapacity() {
		return false, apperrors.ErrCapacityExceeded
	}

	roster, err := s.membershipStore.GetActiveMembers(ctx, team.ID)
	if err != nil {
		return false, err
	}

	if blocker := s.detector.FindConflict(roster, candidate); blocker != nil {
		return false, apperrors.NewSectionYearConflictError(blocker.FullName(), blocker.Section, blocker.Year)
	}

	return s.pendingSameSection(ctx, team.ID, candidate), nil
}

// pendingSameSection computes the advisory warning input. Failures here must
// not block the decision, so errors degrade to "no advisory".
func (s *ReconciliationService) pendingSameSection(ctx context.Context, teamID int64, candidate *models.ProfileSnapshot) bool {
	applicants, err := s.applicationStore.ListPendingApplicantProfiles(ctx, teamID)
	if err != nil {
		logger.Warn().Err(err).Int64("teamId", teamID).Msg("Could not load pending applicant profiles for advisory check")
		applicants = nil
	}

	requesters, err := s.requestStore.ListPendingRequesterProfiles(ctx, teamID)
	if err != nil {
		logger.Warn().Err(err).Int64("teamId", teamID).Msg("Could not load pending requester profiles for advisory check")
		requesters = nil
	}

	return s.detector.HasPendingSameSection(append(applicants, requesters...), candidate)
}

// revertClaim puts a claimed decision back to pending after the membership
// insert lost the seat race. A failed revert leaves an accepted row without
// a membership, which the log line below is there to catch.
func (s *ReconciliationService) revertClaim(ctx context.Context, entity string, id int64, revert func() error) {
	if err := revert(); err != nil {
		logger.Error().
			Err(err).
			Str("entity", entity).
			Int64("id", id).
			Msg("Failed to revert claimed decision after capacity race, row needs manual reconciliation")
	}
}

func (s *ReconciliationService) notifyReviewed(ctx context.Context, userID int64, kind models.NotificationKind, message, link, ref string) {
	if err := s.notifier.Notify(ctx, userID, kind, "Decision on your request", message, link, ref); err != nil {
		logger.Warn().Err(err).Int64("userId", userID).Msg("Notification delivery failed after rejection")
	}
}

// rejectionRef keys the rejection notification per review cycle. The
// conditional pending→rejected update fires at most once per cycle, so the
// stamp only separates cycles of a resubmitted row, it cannot let a retry
// duplicate within one.
func rejectionRef(entity string, id int64) string {
	return fmt.Sprintf("%s:%d:rejected:%d", entity, id, time.Now().UnixNano())
}

func (s *ReconciliationService) decisionResponse(status models.DecisionStatus, teamID, userID int64,
	memberCount int, isFull, advisory bool, warnings []dto.Warning) *dto.DecisionResponse {
	if advisory {
		warnings = append(warnings, dto.Warning{
			Code:    dto.WarningPendingSameSection,
			Message: "Another pending candidate shares this member's section and year",
		})
	}
	return &dto.DecisionResponse{
		Status:                string(status),
		TeamID:                teamID,
		UserID:                userID,
		MemberCount:           memberCount,
		IsFull:                isFull,
		HasPendingSameSection: advisory,
		Warnings:              warnings,
	}
}
