package services

import (
	"context"

	"github.com/ozgur/teamup/internal/app/models"
	"github.com/ozgur/teamup/internal/app/models/dto"
)

// The stores below are the persistence collaborators the services depend on.
// They are satisfied by the repositories package and mocked in tests.

// ProfileStore reads user profile snapshots projected from the identity service
type ProfileStore interface {
	GetSectionYear(ctx context.Context, userID int64) (*models.ProfileSnapshot, error)
}

// TeamStore persists teams
type TeamStore interface {
	Create(ctx context.Context, team *models.Team) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Team, error)
	GetAll(ctx context.Context, purpose *string, leaderID *int64, search *string, page, pageSize int) ([]models.Team, int64, error)
	SetLeader(ctx context.Context, teamID, newLeaderID int64) error
}

// MembershipStore persists the team roster
type MembershipStore interface {
	InsertMembership(ctx context.Context, teamID, userID int64) (bool, error)
	DeleteMembership(ctx context.Context, teamID, userID int64) error
	GetActiveMembers(ctx context.Context, teamID int64) ([]*models.TeamMember, error)
	IsMember(ctx context.Context, teamID, userID int64) (bool, error)
	RefreshDerivedFields(ctx context.Context, teamID int64) (int, bool, error)
}

// ApplicationStore persists applications to recruitment posts
type ApplicationStore interface {
	Create(ctx context.Context, app *models.Application) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	SetStatus(ctx context.Context, id int64, expected, next models.DecisionStatus) error
	ListByPost(ctx context.Context, postID int64) ([]*models.Application, error)
	ListPendingApplicantProfiles(ctx context.Context, teamID int64) ([]*models.ProfileSnapshot, error)
	CountPendingPBLByUser(ctx context.Context, userID int64) (int, error)
}

// JoinRequestStore persists direct join requests
type JoinRequestStore interface {
	Create(ctx context.Context, req *models.JoinRequest) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.JoinRequest, error)
	SetStatus(ctx context.Context, id int64, expected, next models.DecisionStatus) error
	ListPendingByTeam(ctx context.Context, teamID int64) ([]*models.JoinRequest, error)
	ListPendingRequesterProfiles(ctx context.Context, teamID int64) ([]*models.ProfileSnapshot, error)
	CountPendingPBLByUser(ctx context.Context, userID int64) (int, error)
}

// RecruitmentPostStore persists recruitment posts
type RecruitmentPostStore interface {
	Create(ctx context.Context, post *models.RecruitmentPost) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.RecruitmentPost, error)
	ListOpen(ctx context.Context, teamID *int64, page, pageSize int) ([]models.RecruitmentPost, int64, error)
	DecrementPositions(ctx context.Context, postID int64) (int, models.RecruitmentPostStatus, error)
	SetStatus(ctx context.Context, postID int64, status models.RecruitmentPostStatus) error
}

// ChatStore persists chat channel provisioning state
type ChatStore interface {
	GetChannelByTeamID(ctx context.Context, teamID int64) (*models.ChatChannel, error)
	EnsureChannel(ctx context.Context, teamID int64) (int64, error)
	AddChannelMember(ctx context.Context, channelID, userID int64) error
	RemoveChannelMember(ctx context.Context, channelID, userID int64) error
	ListChannelMemberIDs(ctx context.Context, channelID int64) ([]int64, error)
}

// NotificationStore persists notifications
type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) (int64, error)
	ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]models.Notification, int64, error)
	MarkRead(ctx context.Context, notificationID, userID int64) error
}

// The collaborators below sit between services. Reconciliation never talks
// to chat or notification storage directly; it goes through these.

// MembershipMutator applies roster changes and re-derives team counters
type MembershipMutator interface {
	AddMember(ctx context.Context, teamID, userID int64) (*AddMemberOutcome, error)
	RemoveMember(ctx context.Context, teamID, userID int64) (*RemoveMemberOutcome, error)
}

// ChatProvisioner keeps the team chat channel in sync with the roster
type ChatProvisioner interface {
	EnsureTeamChannel(ctx context.Context, teamID, leaderID int64, memberIDs []int64) error
	RemoveFromTeamChannel(ctx context.Context, teamID, userID int64) error
}

// Notifier delivers a notification to one user. ref identifies the event
// instance that triggered it (e.g. "application:7"); retried deliveries of
// the same instance deduplicate on it, distinct instances never collide.
type Notifier interface {
	Notify(ctx context.Context, userID int64, kind models.NotificationKind, title, message, link, ref string) error
}

// AcceptanceDispatcher runs the best-effort side effects after a durable
// acceptance. It never fails the acceptance; problems come back as warnings.
type AcceptanceDispatcher interface {
	DispatchAcceptance(ctx context.Context, effects AcceptanceEffects) []dto.Warning
}

// AddMemberOutcome reports the roster state after an add
type AddMemberOutcome struct {
	// Added is false when the user was already on the roster
	Added       bool
	MemberCount int
	IsFull      bool
}

// RemoveMemberOutcome reports the roster state after a removal
type RemoveMemberOutcome struct {
	MemberCount int
	IsFull      bool
}

// AcceptanceEffects describes what the dispatcher has to catch up on after
// a membership became durable
type AcceptanceEffects struct {
	Team      *models.Team
	NewMember *models.ProfileSnapshot
	// PostID is set when the acceptance came through a recruitment post and
	// its positions bookkeeping has to move
	PostID *int64
	// Origin names the decision row that produced this acceptance, e.g.
	// "application:7". It keys notification dedup per decision instance.
	Origin string
}
