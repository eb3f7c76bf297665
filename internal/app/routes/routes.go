package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ozgur/teamup/internal/app/controllers"
	"github.com/ozgur/teamup/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	teamController *controllers.TeamController,
	recruitmentController *controllers.RecruitmentController,
	joinRequestController *controllers.JoinRequestController,
	notificationController *controllers.NotificationController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Authenticated Routes Group ---
	// Every roster endpoint acts on behalf of the caller, so the whole
	// surface sits behind JWT auth.
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	// Team routes
	teams := authenticated.Group("/teams")
	{
		teams.POST("", teamController.CreateTeam)
		teams.GET("", teamController.GetTeams)
		teams.GET("/:id", teamController.GetTeam)
		teams.POST("/:id/leave", teamController.LeaveTeam)
		teams.DELETE("/:id/members/:userId", teamController.RemoveMember)
		teams.PUT("/:id/leader", teamController.TransferLeadership)

		// Join requests filed against a team
		teams.POST("/:id/join-requests", joinRequestController.CreateJoinRequest)
		teams.GET("/:id/join-requests", joinRequestController.ListJoinRequests)

		// Recruitment posts opened by a team
		teams.POST("/:id/posts", recruitmentController.CreatePost)
	}

	// Recruitment post routes
	posts := authenticated.Group("/posts")
	{
		posts.GET("", recruitmentController.ListOpenPosts)
		posts.GET("/:id", recruitmentController.GetPost)
		posts.POST("/:id/close", recruitmentController.ClosePost)
		posts.POST("/:id/archive", recruitmentController.ArchivePost)
		posts.POST("/:id/applications", recruitmentController.Apply)
		posts.GET("/:id/applications", recruitmentController.ListApplications)
	}

	// Application decision routes
	applications := authenticated.Group("/applications")
	{
		applications.POST("/:id/accept", recruitmentController.AcceptApplication)
		applications.POST("/:id/reject", recruitmentController.RejectApplication)
	}

	// Join request decision routes
	joinRequests := authenticated.Group("/join-requests")
	{
		joinRequests.POST("/:id/approve", joinRequestController.ApproveJoinRequest)
		joinRequests.POST("/:id/reject", joinRequestController.RejectJoinRequest)
		joinRequests.POST("/:id/resubmit", joinRequestController.ResubmitJoinRequest)
	}

	// Notification routes
	notifications := authenticated.Group("/notifications")
	{
		notifications.GET("", notificationController.ListNotifications)
		notifications.POST("/:id/read", notificationController.MarkRead)
	}
}
