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

// RecruitmentController handles recruitment posts, applications and the
// leader's decisions on them
type RecruitmentController struct {
	recruitmentService    *services.RecruitmentService
	reconciliationService *services.ReconciliationService
}

// NewRecruitmentController creates a new RecruitmentController
func NewRecruitmentController(recruitmentService *services.RecruitmentService, reconciliationService *services.ReconciliationService) *RecruitmentController {
	return &RecruitmentController{
		recruitmentService:    recruitmentService,
		reconciliationService: reconciliationService,
	}
}

// CreatePost handles opening positions for a team
// @Summary Create a recruitment post
// @Description Opens positions for a team. Leader only.
// @Tags recruitment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Param request body dto.CreateRecruitmentPostRequest true "Post details"
// @Success 201 {object} dto.APIResponse{data=dto.RecruitmentPostResponse} "Post created"
// @Failure 400 {object} dto.ErrorResponse "Positions exceed the remaining seats"
// @Failure 403 {object} dto.ErrorResponse "Not the team leader"
// @Router /teams/{id}/posts [post]
func (c *RecruitmentController) CreatePost(ctx *gin.Context) {
	leaderID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateRecruitmentPostRequest
	if !bindJSON(ctx, &req) {
		return
	}

	post, err := c.recruitmentService.CreatePost(ctx, teamID, leaderID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(post))
}

// ListOpenPosts handles listing open recruitment posts
// @Summary List open recruitment posts
// @Tags recruitment
// @Produce json
// @Security BearerAuth
// @Param teamId query int false "Filter by team"
// @Param page query int false "Page number (1-based)" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.RecruitmentPostListResponse} "Posts retrieved"
// @Router /posts [get]
func (c *RecruitmentController) ListOpenPosts(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)

	var teamID *int64
	if teamIDStr := ctx.Query("teamId"); teamIDStr != "" {
		if id, err := strconv.ParseInt(teamIDStr, 10, 64); err == nil {
			teamID = &id
		}
	}

	posts, err := c.recruitmentService.ListOpenPosts(ctx, teamID, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(posts))
}

// GetPost handles retrieving one recruitment post
// @Summary Get a recruitment post
// @Tags recruitment
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.RecruitmentPostResponse} "Post retrieved"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id} [get]
func (c *RecruitmentController) GetPost(ctx *gin.Context) {
	postID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	post, err := c.recruitmentService.GetPost(ctx, postID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// ClosePost handles closing a post to new applications
// @Summary Close a recruitment post
// @Tags recruitment
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse "Post closed"
// @Failure 403 {object} dto.ErrorResponse "Not the team leader"
// @Router /posts/{id}/close [post]
func (c *RecruitmentController) ClosePost(ctx *gin.Context) {
	leaderID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	postID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.recruitmentService.ClosePost(ctx, postID, leaderID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}

// ArchivePost handles archiving a post
// @Summary Archive a recruitment post
// @Tags recruitment
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse "Post archived"
// @Failure 403 {object} dto.ErrorResponse "Not the team leader"
// @Router /posts/{id}/archive [post]
func (c *RecruitmentController) ArchivePost(ctx *gin.Context) {
	leaderID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	postID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.recruitmentService.ArchivePost(ctx, postID, leaderID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}

// Apply handles filing an application against a post
// @Summary Apply to a recruitment post
// @Tags recruitment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body dto.ApplyRequest true "Optional message"
// @Success 201 {object} dto.APIResponse{data=dto.ApplicationResponse} "Application created"
// @Failure 409 {object} dto.ErrorResponse "Duplicate, member, closed post or PBL limit"
// @Failure 410 {object} dto.ErrorResponse "Post expired"
// @Router /posts/{id}/applications [post]
func (c *RecruitmentController) Apply(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	postID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if !bindJSON(ctx, &req) {
		return
	}

	application, err := c.recruitmentService.Apply(ctx, postID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(application))
}

// ListApplications handles listing a post's applications
// @Summary List applications for a post
// @Description Retrieves the applications filed against a post. Leader only.
// @Tags recruitment
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ApplicationResponse} "Applications retrieved"
// @Failure 403 {object} dto.ErrorResponse "Not the team leader"
// @Router /posts/{id}/applications [get]
func (c *RecruitmentController) ListApplications(ctx *gin.Context) {
	leaderID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	postID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	applications, err := c.recruitmentService.ListApplications(ctx, postID, leaderID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(applications))
}

// AcceptApplication handles the leader accepting an application
// @Summary Accept an application
// @Description Accepts the application and adds the applicant to the roster.
// @Description Side effects that fail after the membership is durable come back as warnings.
// @Tags recruitment
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=dto.DecisionResponse} "Application accepted"
// @Failure 403 {object} dto.ErrorResponse "Not the team leader"
// @Failure 409 {object} dto.ErrorResponse "Capacity, conflict or already reviewed"
// @Router /applications/{id}/accept [post]
func (c *RecruitmentController) AcceptApplication(ctx *gin.Context) {
	reviewerID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	applicationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	decision, err := c.reconciliationService.AcceptApplication(ctx, applicationID, reviewerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponseWithWarnings(decision, decision.Warnings))
}

// RejectApplication handles the leader rejecting an application
// @Summary Reject an application
// @Tags recruitment
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=dto.DecisionResponse} "Application rejected"
// @Failure 403 {object} dto.ErrorResponse "Not the team leader"
// @Failure 409 {object} dto.ErrorResponse "Already reviewed"
// @Router /applications/{id}/reject [post]
func (c *RecruitmentController) RejectApplication(ctx *gin.Context) {
	reviewerID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	applicationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	decision, err := c.reconciliationService.RejectApplication(ctx, applicationID, reviewerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(decision))
}
