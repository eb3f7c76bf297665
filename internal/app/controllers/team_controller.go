package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ozgur/teamup/internal/app/models/dto"
	"github.com/ozgur/teamup/internal/app/services"
	"github.com/ozgur/teamup/internal/middleware"
	"github.com/ozgur/teamup/internal/pkg/helpers"
)

// TeamController handles team related operations
type TeamController struct {
	teamService *services.TeamService
}

// NewTeamController creates a new TeamController
func NewTeamController(teamService *services.TeamService) *TeamController {
	return &TeamController{teamService: teamService}
}

// CreateTeam handles team creation
// @Summary Create a team
// @Description Creates a team with the caller as leader and first member
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTeamRequest true "Team details"
// @Success 201 {object} dto.APIResponse{data=dto.TeamResponse} "Team created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /teams [post]
func (c *TeamController) CreateTeam(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateTeamRequest
	if !bindJSON(ctx, &req) {
		return
	}

	team, err := c.teamService.CreateTeam(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(team))
}

// GetTeams handles listing teams with filters
// @Summary List teams
// @Description Retrieves teams with optional filtering and pagination
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param purpose query string false "Filter by purpose"
// @Param leaderId query int false "Filter by leader ID"
// @Param search query string false "Search by name"
// @Param page query int false "Page number (1-based)" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.TeamListResponse} "Teams retrieved"
// @Router /teams [get]
func (c *TeamController) GetTeams(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)

	filter := &dto.TeamFilterRequest{Page: page, PageSize: pageSize}
	if purpose := ctx.Query("purpose"); purpose != "" {
		filter.Purpose = &purpose
	}
	if leaderIDStr := ctx.Query("leaderId"); leaderIDStr != "" {
		if leaderID, err := strconv.ParseInt(leaderIDStr, 10, 64); err == nil {
			filter.LeaderID = &leaderID
		}
	}
	if search := ctx.Query("search"); search != "" {
		filter.Search = &search
	}

	teams, err := c.teamService.GetTeams(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(teams))
}

// GetTeam handles retrieving one team with its roster
// @Summary Get a team
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Success 200 {object} dto.APIResponse{data=dto.TeamResponse} "Team retrieved"
// @Failure 404 {object} dto.ErrorResponse "Team not found"
// @Router /teams/{id} [get]
func (c *TeamController) GetTeam(ctx *gin.Context) {
	teamID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	team, err := c.teamService.GetTeam(ctx, teamID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(team))
}

// LeaveTeam handles a member leaving a team
// @Summary Leave a team
// @Description Removes the caller from the roster. The leader must transfer leadership first.
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Success 200 {object} dto.APIResponse "Left the team"
// @Failure 409 {object} dto.ErrorResponse "Leader cannot leave"
// @Router /teams/{id}/leave [post]
func (c *TeamController) LeaveTeam(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.teamService.LeaveTeam(ctx, teamID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}

// RemoveMember handles the leader removing a member
// @Summary Remove a member
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Param userId path int true "User ID to remove"
// @Success 200 {object} dto.APIResponse "Member removed"
// @Failure 403 {object} dto.ErrorResponse "Not the team leader"
// @Failure 409 {object} dto.ErrorResponse "Leader cannot be removed"
// @Router /teams/{id}/members/{userId} [delete]
func (c *TeamController) RemoveMember(ctx *gin.Context) {
	leaderID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	if err := c.teamService.RemoveMember(ctx, teamID, leaderID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}

// TransferLeadership handles leadership reassignment
// @Summary Transfer leadership
// @Description Hands the team over to another active member
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Param request body dto.TransferLeadershipRequest true "New leader"
// @Success 200 {object} dto.APIResponse "Leadership transferred"
// @Failure 403 {object} dto.ErrorResponse "Not the team leader"
// @Failure 404 {object} dto.ErrorResponse "Target is not a member"
// @Router /teams/{id}/leader [put]
func (c *TeamController) TransferLeadership(ctx *gin.Context) {
	leaderID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.TransferLeadershipRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.teamService.TransferLeadership(ctx, teamID, leaderID, req.NewLeaderID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}
