package services

import (
	"github.com/redis/go-redis/v9"

	"github.com/ozgur/teamup/internal/app/repositories"
	"github.com/ozgur/teamup/internal/config"
)

// Services holds all the service instances
type Services struct {
	TeamService           *TeamService
	RecruitmentService    *RecruitmentService
	ReconciliationService *ReconciliationService
	MembershipService     *MembershipService
	SideEffectService     *SideEffectService
	ChatService           *ChatService
	NotificationService   *NotificationService
}

// NewServices wires the service graph on top of the repositories
func NewServices(repos *repositories.Repositories, redisClient *redis.Client, cfg *config.Config) *Services {
	chatService := NewChatService(repos.ChatRepository)
	notificationService := NewNotificationService(repos.NotificationRepository, redisClient, cfg)

	membershipService := NewMembershipService(repos.TeamRepository, repos.MembershipRepository)

	sideEffectService := NewSideEffectService(
		repos.RecruitmentPostRepository,
		repos.MembershipRepository,
		chatService,
		notificationService,
	)

	reconciliationService := NewReconciliationService(
		repos.TeamRepository,
		repos.MembershipRepository,
		repos.ApplicationRepository,
		repos.JoinRequestRepository,
		repos.RecruitmentPostRepository,
		membershipService,
		sideEffectService,
		notificationService,
	)

	teamService := NewTeamService(
		repos.TeamRepository,
		repos.MembershipRepository,
		repos.JoinRequestRepository,
		repos.ApplicationRepository,
		repos.ProfileRepository,
		membershipService,
		chatService,
		cfg,
	)

	recruitmentService := NewRecruitmentService(
		repos.RecruitmentPostRepository,
		repos.TeamRepository,
		repos.MembershipRepository,
		repos.ApplicationRepository,
		repos.JoinRequestRepository,
		cfg,
	)

	return &Services{
		TeamService:           teamService,
		RecruitmentService:    recruitmentService,
		ReconciliationService: reconciliationService,
		MembershipService:     membershipService,
		SideEffectService:     sideEffectService,
		ChatService:           chatService,
		NotificationService:   notificationService,
	}
}
