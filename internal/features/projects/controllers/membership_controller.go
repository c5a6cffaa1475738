package projects_controllers

import (
	"net/http"

	projects_dto "clubhub/internal/features/projects/dto"
	projects_services "clubhub/internal/features/projects/services"
	users_middleware "clubhub/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MembershipController struct {
	membershipService *projects_services.MembershipService
}

func (c *MembershipController) RegisterVerifiedRoutes(router *gin.RouterGroup) {
	router.GET("/projects/:id/memberships", c.ListForProject)
	router.GET("/users/me/memberships", c.ListForCurrentUser)
}

func (c *MembershipController) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.POST("/projects/:id/memberships", c.RequestJoin)
	router.PUT("/memberships/:id/approve", c.Approve)
	router.PUT("/memberships/:id/role", c.ChangeRole)
	router.DELETE("/memberships/:id", c.Remove)
}

// RequestJoin
// @Summary Create a membership request
// @Description Creates a PENDING membership joining the user to the project
// @Tags memberships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body projects_dto.RequestJoinRequestDTO true "Join request data"
// @Success 201 {object} projects_dto.MembershipResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "Membership already exists"
// @Router /projects/{id}/memberships [post]
func (c *MembershipController) RequestJoin(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	var request projects_dto.RequestJoinRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if !request.Role.IsValid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid membership role"})
		return
	}

	response, err := c.membershipService.RequestJoin(
		projectID,
		&request,
		user,
		users_middleware.IsAllowlistedAdminRequest(ctx),
	)
	if err != nil {
		respondProjectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, response)
}

// Approve
// @Summary Approve a membership request
// @Description Transitions the membership from PENDING to ACTIVE
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param id path string true "Membership ID"
// @Success 200 {object} projects_dto.MembershipResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "Membership already active"
// @Router /memberships/{id}/approve [put]
func (c *MembershipController) Approve(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	membershipID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid membership ID"})
		return
	}

	response, err := c.membershipService.Approve(
		membershipID,
		user,
		users_middleware.IsAllowlistedAdminRequest(ctx),
	)
	if err != nil {
		respondProjectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// ChangeRole
// @Summary Change a membership role
// @Description Updates the role only; the status is untouched
// @Tags memberships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Membership ID"
// @Param request body projects_dto.ChangeMemberRoleRequestDTO true "New role"
// @Success 200 {object} projects_dto.MembershipResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "Lead succession conflict"
// @Router /memberships/{id}/role [put]
func (c *MembershipController) ChangeRole(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	membershipID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid membership ID"})
		return
	}

	var request projects_dto.ChangeMemberRoleRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if !request.Role.IsValid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid membership role"})
		return
	}

	response, err := c.membershipService.ChangeRole(
		membershipID,
		&request,
		user,
		users_middleware.IsAllowlistedAdminRequest(ctx),
	)
	if err != nil {
		respondProjectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// Remove
// @Summary Remove a membership
// @Description Deletes the membership from either status
// @Tags memberships
// @Security BearerAuth
// @Param id path string true "Membership ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "Lead succession conflict"
// @Router /memberships/{id} [delete]
func (c *MembershipController) Remove(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	membershipID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid membership ID"})
		return
	}

	err = c.membershipService.Remove(membershipID, user, users_middleware.IsAllowlistedAdminRequest(ctx))
	if err != nil {
		respondProjectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Membership removed successfully"})
}

// ListForProject
// @Summary List a project's memberships
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param limit query int false "Limit number of results" default(50)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} projects_dto.ListMembershipsResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/memberships [get]
func (c *MembershipController) ListForProject(ctx *gin.Context) {
	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	limit, offset := parsePagination(ctx)

	response, err := c.membershipService.ListForProject(projectID, limit, offset)
	if err != nil {
		respondProjectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// ListForCurrentUser
// @Summary List the caller's memberships
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Limit number of results" default(50)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} projects_dto.ListMembershipsResponseDTO
// @Failure 401 {object} map[string]string
// @Router /users/me/memberships [get]
func (c *MembershipController) ListForCurrentUser(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	limit, offset := parsePagination(ctx)

	response, err := c.membershipService.ListForUser(user.ID, limit, offset)
	if err != nil {
		respondProjectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}
