package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ozgur/teamup/internal/app/models/dto"
	"github.com/ozgur/teamup/internal/app/services"
	"github.com/ozgur/teamup/internal/middleware"
)

// JoinRequestController handles join request operations
type JoinRequestController struct {
	teamService           *services.TeamService
	reconciliationService *services.ReconciliationService
}

// NewJoinRequestController creates a new JoinRequestController
func NewJoinRequestController(teamService *services.TeamService, reconciliationService *services.ReconciliationService) *JoinRequestController {
	return &JoinRequestController{
		teamService:           teamService,
		reconciliationService: reconciliationService,
	}
}

// CreateJoinRequest handles filing a join request against a team
// @Summary Request to join a team
// @Tags join-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Param request body dto.CreateJoinRequestRequest true "Optional message"
// @Success 201 {object} dto.APIResponse{data=dto.JoinRequestResponse} "Request created"
// @Failure 409 {object} dto.ErrorResponse "Already a member, duplicate request, full team or PBL limit"
// @Router /teams/{id}/join-requests [post]
func (c *JoinRequestController) CreateJoinRequest(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateJoinRequestRequest
	if !bindJSON(ctx, &req) {
		return
	}

	request, err := c.teamService.RequestToJoin(ctx, teamID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(request))
}

// ListJoinRequests handles listing a team's pending join requests
// @Summary List pending join requests
// @Description Retrieves pending join requests for the team. Leader only.
// @Tags join-requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.JoinRequestResponse} "Requests retrieved"
// @Failure 403 {object} dto.ErrorResponse "Not the team leader"
// @Router /teams/{id}/join-requests [get]
func (c *JoinRequestController) ListJoinRequests(ctx *gin.Context) {
	leaderID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	requests, err := c.teamService.ListJoinRequests(ctx, teamID, leaderID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(requests))
}

// ApproveJoinRequest handles the leader approving a join request
// @Summary Approve a join request
// @Description Accepts the request and adds the requester to the roster
// @Tags join-requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Join request ID"
// @Success 200 {object} dto.APIResponse{data=dto.DecisionResponse} "Request approved"
// @Failure 403 {object} dto.ErrorResponse "Not the team leader"
// @Failure 409 {object} dto.ErrorResponse "Capacity, conflict or already reviewed"
// @Router /join-requests/{id}/approve [post]
func (c *JoinRequestController) ApproveJoinRequest(ctx *gin.Context) {
	reviewerID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	requestID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	decision, err := c.reconciliationService.ApproveJoinRequest(ctx, requestID, reviewerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponseWithWarnings(decision, decision.Warnings))
}

// RejectJoinRequest handles the leader rejecting a join request
// @Summary Reject a join request
// @Tags join-requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Join request ID"
// @Success 200 {object} dto.APIResponse{data=dto.DecisionResponse} "Request rejected"
// @Failure 403 {object} dto.ErrorResponse "Not the team leader"
// @Failure 409 {object} dto.ErrorResponse "Already reviewed"
// @Router /join-requests/{id}/reject [post]
func (c *JoinRequestController) RejectJoinRequest(ctx *gin.Context) {
	reviewerID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	requestID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	decision, err := c.reconciliationService.RejectJoinRequest(ctx, requestID, reviewerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(decision))
}

// ResubmitJoinRequest handles the requester resubmitting a rejected request
// @Summary Resubmit a rejected join request
// @Description Moves a rejected request back to pending while the team has room
// @Tags join-requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Join request ID"
// @Success 200 {object} dto.APIResponse{data=dto.JoinRequestResponse} "Request pending again"
// @Failure 403 {object} dto.ErrorResponse "Not the requester"
// @Failure 409 {object} dto.ErrorResponse "Not rejected or team is full"
// @Router /join-requests/{id}/resubmit [post]
func (c *JoinRequestController) ResubmitJoinRequest(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	requestID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	request, err := c.reconciliationService.ResubmitJoinRequest(ctx, requestID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(request))
}
