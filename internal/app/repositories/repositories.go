package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	TeamRepository            *TeamRepository
	MembershipRepository      *MembershipRepository
	ApplicationRepository     *ApplicationRepository
	JoinRequestRepository     *JoinRequestRepository
	RecruitmentPostRepository *RecruitmentPostRepository
	ProfileRepository         *ProfileRepository
	ChatRepository            *ChatRepository
	NotificationRepository    *NotificationRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		TeamRepository:            NewTeamRepository(db),
		MembershipRepository:      NewMembershipRepository(db),
		ApplicationRepository:     NewApplicationRepository(db),
		JoinRequestRepository:     NewJoinRequestRepository(db),
		RecruitmentPostRepository: NewRecruitmentPostRepository(db),
		ProfileRepository:         NewProfileRepository(db),
		ChatRepository:            NewChatRepository(db),
		NotificationRepository:    NewNotificationRepository(db),
	}
}
