package projects_services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	projects_dto "clubhub/internal/features/projects/dto"
	projects_models "clubhub/internal/features/projects/models"
	projects_policy "clubhub/internal/features/projects/policy"
	projects_repositories "clubhub/internal/features/projects/repositories"
	users_models "clubhub/internal/features/users/models"
	cache_utils "clubhub/internal/util/cache"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	minTeamSize = 1
	maxTeamSize = 25

	defaultListLimit = 50
	maxListLimit     = 200
)

type ProjectService struct {
	projectRepository    *projects_repositories.ProjectRepository
	membershipRepository *projects_repositories.MembershipRepository
	logger               *slog.Logger

	projectCacheUtil *cache_utils.CacheUtil[projects_models.Project]
	singleflight     singleflight.Group // Prevents thundering herd on DB calls
}

func (s *ProjectService) CreateProject(
	request *projects_dto.CreateProjectRequestDTO,
	actor *users_models.User,
	isAllowlistedAdmin bool,
) (*projects_dto.ProjectResponseDTO, error) {
	if err := authorize(actor, projects_policy.ResourceProject, projects_policy.ActionCreate, nil, isAllowlistedAdmin); err != nil {
		return nil, err
	}

	if fieldErrors := validateProjectFields(request); len(fieldErrors) > 0 {
		return nil, fieldErrors
	}

	now := time.Now().UTC()
	project := &projects_models.Project{
		ID:          uuid.New(),
		Title:       request.Title,
		Description: request.Description,
		Status:      request.Status,
		Category:    request.Category,
		TeamLead:    request.TeamLead,
		TeamSize:    request.TeamSize,
		IsPublic:    *request.IsPublic,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.projectRepository.CreateProject(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	// Pre-warm cache with new project for immediate availability
	s.projectCacheUtil.Set(project.ID.String(), project)

	s.logger.Info("Project created",
		slog.String("projectId", project.ID.String()),
		slog.String("title", project.Title),
		slog.String("createdBy", actor.ID.String()))

	return toProjectResponse(project), nil
}

func (s *ProjectService) GetProject(projectID uuid.UUID) (*projects_dto.ProjectResponseDTO, error) {
	project, err := s.GetProjectWithCache(projectID)
	if err != nil {
		return nil, err
	}

	return toProjectResponse(project), nil
}

func (s *ProjectService) ListProjects(limit, offset int) (*projects_dto.ListProjectsResponseDTO, error) {
	limit, offset = normalizePagination(limit, offset)

	projects, err := s.projectRepository.GetProjects(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	responses := make([]projects_dto.ProjectResponseDTO, len(projects))
	for i, project := range projects {
		responses[i] = *toProjectResponse(project)
	}

	return &projects_dto.ListProjectsResponseDTO{Projects: responses}, nil
}

// UpdateProject carries PUT semantics: every field of the request replaces
// the stored value.
func (s *ProjectService) UpdateProject(
	projectID uuid.UUID,
	request *projects_dto.UpdateProjectRequestDTO,
	actor *users_models.User,
	isAllowlistedAdmin bool,
) (*projects_dto.ProjectResponseDTO, error) {
	existing, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	if err := authorize(actor, projects_policy.ResourceProject, projects_policy.ActionUpdate, existing, isAllowlistedAdmin); err != nil {
		return nil, err
	}

	if fieldErrors := validateProjectFields(request); len(fieldErrors) > 0 {
		return nil, fieldErrors
	}

	existing.Title = request.Title
	existing.Description = request.Description
	existing.Status = request.Status
	existing.Category = request.Category
	existing.TeamLead = request.TeamLead
	existing.TeamSize = request.TeamSize
	existing.IsPublic = *request.IsPublic

	if err := s.projectRepository.UpdateProject(existing); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.projectCacheUtil.Invalidate(projectID.String())

	s.logger.Info("Project updated",
		slog.String("projectId", projectID.String()),
		slog.String("updatedBy", actor.ID.String()))

	return toProjectResponse(existing), nil
}

// PatchProject applies only the fields present in the patch, each validated
// on its own.
func (s *ProjectService) PatchProject(
	projectID uuid.UUID,
	request *projects_dto.PatchProjectRequestDTO,
	actor *users_models.User,
	isAllowlistedAdmin bool,
) (*projects_dto.ProjectResponseDTO, error) {
	existing, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	if err := authorize(actor, projects_policy.ResourceProject, projects_policy.ActionUpdate, existing, isAllowlistedAdmin); err != nil {
		return nil, err
	}

	fieldErrors := validation.Errors{}
	updates := map[string]any{}

	if request.Title != nil {
		if err := validation.Validate(*request.Title, validation.Required, validation.Length(1, 255)); err != nil {
			fieldErrors["title"] = err
		} else {
			updates["title"] = *request.Title
		}
	}

	if request.Description != nil {
		if err := validation.Validate(*request.Description, validation.Required); err != nil {
			fieldErrors["description"] = err
		} else {
			updates["description"] = *request.Description
		}
	}

	if request.Status != nil {
		if !request.Status.IsValid() {
			fieldErrors["status"] = errors.New("must be one of ONGOING, DEPLOYED, HIRING")
		} else {
			updates["status"] = *request.Status
		}
	}

	if request.Category != nil {
		if !request.Category.IsValid() {
			fieldErrors["category"] = errors.New("must be one of AI_ML, WEB, RESEARCH, IOT")
		} else {
			updates["category"] = *request.Category
		}
	}

	if request.TeamLead != nil {
		if err := validation.Validate(*request.TeamLead, validation.Required, validation.Length(1, 255)); err != nil {
			fieldErrors["teamLead"] = err
		} else {
			updates["team_lead"] = *request.TeamLead
		}
	}

	if request.TeamSize != nil {
		if *request.TeamSize < minTeamSize || *request.TeamSize > maxTeamSize {
			fieldErrors["teamSize"] = fmt.Errorf("must be between %d and %d", minTeamSize, maxTeamSize)
		} else {
			updates["team_size"] = *request.TeamSize
		}
	}

	if request.IsPublic != nil {
		updates["is_public"] = *request.IsPublic
	}

	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}

	if len(updates) > 0 {
		if err := s.projectRepository.PatchProjectFields(projectID, updates); err != nil {
			return nil, fmt.Errorf("failed to patch project: %w", err)
		}

		s.projectCacheUtil.Invalidate(projectID.String())
	}

	updated, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload project: %w", err)
	}

	return toProjectResponse(updated), nil
}

func (s *ProjectService) DeleteProject(
	projectID uuid.UUID,
	actor *users_models.User,
	isAllowlistedAdmin bool,
) error {
	existing, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil {
		return fmt.Errorf("failed to get project: %w", err)
	}
	if existing == nil {
		return ErrNotFound
	}

	if err := authorize(actor, projects_policy.ResourceProject, projects_policy.ActionDelete, existing, isAllowlistedAdmin); err != nil {
		return err
	}

	if err := s.projectRepository.DeleteProject(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.projectCacheUtil.Invalidate(projectID.String())

	s.logger.Info("Project deleted",
		slog.String("projectId", projectID.String()),
		slog.String("title", existing.Title),
		slog.String("deletedBy", actor.ID.String()))

	return nil
}

func (s *ProjectService) GetProjectWithCache(projectID uuid.UUID) (*projects_models.Project, error) {
	projectIDStr := projectID.String()

	// Tier 1: Check cache
	if cachedProject := s.projectCacheUtil.Get(projectIDStr); cachedProject != nil {
		if cachedProject.IsNotExists {
			return nil, ErrNotFound
		}

		return cachedProject, nil
	}

	// Tier 2: Database lookup with singleflight protection (prevents thundering herd)
	result, err, _ := s.singleflight.Do(projectIDStr, func() (any, error) {
		return s.projectRepository.GetProjectByID(projectID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	project, ok := result.(*projects_models.Project)
	if !ok {
		return nil, fmt.Errorf("failed to cast result to Project")
	}

	if project == nil {
		// Cache the missing project to prevent future DB hits
		s.projectCacheUtil.Set(projectIDStr, &projects_models.Project{
			ID:          projectID,
			IsNotExists: true,
		})
		return nil, ErrNotFound
	}

	s.projectCacheUtil.Set(projectIDStr, project)

	return project, nil
}

// authorize lets admin-gated requests through and runs everyone else
// against the policy table, which denies every pair.
func authorize(
	actor *users_models.User,
	resource projects_policy.ResourceType,
	action projects_policy.Action,
	target any,
	isAllowlistedAdmin bool,
) error {
	if isAllowlistedAdmin {
		return nil
	}

	if !projects_policy.Decide(actor, resource, action, target) {
		return ErrForbidden
	}

	return nil
}

func validateProjectFields(request *projects_dto.CreateProjectRequestDTO) validation.Errors {
	fieldErrors := validation.Errors{}

	if !request.Status.IsValid() {
		fieldErrors["status"] = errors.New("must be one of ONGOING, DEPLOYED, HIRING")
	}

	if !request.Category.IsValid() {
		fieldErrors["category"] = errors.New("must be one of AI_ML, WEB, RESEARCH, IOT")
	}

	if request.TeamSize < minTeamSize || request.TeamSize > maxTeamSize {
		fieldErrors["teamSize"] = fmt.Errorf("must be between %d and %d", minTeamSize, maxTeamSize)
	}

	return fieldErrors
}

func toProjectResponse(project *projects_models.Project) *projects_dto.ProjectResponseDTO {
	return &projects_dto.ProjectResponseDTO{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		Status:      project.Status,
		Category:    project.Category,
		TeamLead:    project.TeamLead,
		TeamSize:    project.TeamSize,
		IsPublic:    project.IsPublic,
		Summary:     project.Summary(),
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

func normalizePagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
