package projects_controllers

import (
	"errors"
	"net/http"
	"strconv"

	projects_dto "clubhub/internal/features/projects/dto"
	projects_services "clubhub/internal/features/projects/services"
	users_middleware "clubhub/internal/features/users/middleware"
	validation_utils "clubhub/internal/util/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectController struct {
	projectService *projects_services.ProjectService
}

func (c *ProjectController) RegisterVerifiedRoutes(router *gin.RouterGroup) {
	router.GET("/projects", c.ListProjects)
	router.GET("/projects/:id", c.GetProject)
}

func (c *ProjectController) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.POST("/projects", c.CreateProject)
	router.PUT("/projects/:id", c.UpdateProject)
	router.PATCH("/projects/:id", c.PatchProject)
	router.DELETE("/projects/:id", c.DeleteProject)
}

// CreateProject
// @Summary Create a new project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body projects_dto.CreateProjectRequestDTO true "Project creation data"
// @Success 201 {object} projects_dto.ProjectResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 422 {object} map[string]map[string]string "Field validation errors"
// @Router /projects [post]
func (c *ProjectController) CreateProject(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request projects_dto.CreateProjectRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.projectService.CreateProject(
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

// ListProjects
// @Summary List projects
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Limit number of results" default(50)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} projects_dto.ListProjectsResponseDTO
// @Failure 401 {object} map[string]string
// @Router /projects [get]
func (c *ProjectController) ListProjects(ctx *gin.Context) {
	limit, offset := parsePagination(ctx)

	response, err := c.projectService.ListProjects(limit, offset)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetProject
// @Summary Get project details
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} projects_dto.ProjectResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id} [get]
func (c *ProjectController) GetProject(ctx *gin.Context) {
	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	response, err := c.projectService.GetProject(projectID)
	if err != nil {
		respondProjectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// UpdateProject
// @Summary Replace a project
// @Description Full update, every field is required
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body projects_dto.CreateProjectRequestDTO true "Project update data"
// @Success 200 {object} projects_dto.ProjectResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]map[string]string "Field validation errors"
// @Router /projects/{id} [put]
func (c *ProjectController) UpdateProject(ctx *gin.Context) {
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

	var request projects_dto.UpdateProjectRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.projectService.UpdateProject(
		projectID,
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

// PatchProject
// @Summary Patch a project
// @Description Partial update, only the provided fields change
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body projects_dto.PatchProjectRequestDTO true "Project patch data"
// @Success 200 {object} projects_dto.ProjectResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]map[string]string "Field validation errors"
// @Router /projects/{id} [patch]
func (c *ProjectController) PatchProject(ctx *gin.Context) {
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

	var request projects_dto.PatchProjectRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.projectService.PatchProject(
		projectID,
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

// DeleteProject
// @Summary Delete a project
// @Description Deletes the project; its membership rows lose the project reference but stay as history
// @Tags projects
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id} [delete]
func (c *ProjectController) DeleteProject(ctx *gin.Context) {
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

	err = c.projectService.DeleteProject(projectID, user, users_middleware.IsAllowlistedAdminRequest(ctx))
	if err != nil {
		respondProjectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

// respondProjectError maps feature errors to HTTP statuses. Policy and
// admin-gate denials share the same fixed body.
func respondProjectError(ctx *gin.Context, err error) {
	if validation_utils.RespondFieldErrors(ctx, err) {
		return
	}

	switch {
	case errors.Is(err, projects_services.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, projects_services.ErrForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
	case errors.Is(err, projects_services.ErrDuplicateMembership),
		errors.Is(err, projects_services.ErrInvalidTransition),
		errors.Is(err, projects_services.ErrLeadSuccession):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

func parsePagination(ctx *gin.Context) (int, int) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	return limit, offset
}
