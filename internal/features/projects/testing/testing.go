package projects_testing

import (
	"fmt"
	"time"

	projects_enums "clubhub/internal/features/projects/enums"
	projects_models "clubhub/internal/features/projects/models"
	projects_repositories "clubhub/internal/features/projects/repositories"
	users_enums "clubhub/internal/features/users/enums"

	"github.com/google/uuid"
)

// CreateTestProject inserts a project directly through the repository.
func CreateTestProject(title string) *projects_models.Project {
	project := &projects_models.Project{
		ID:          uuid.New(),
		Title:       title,
		Description: "test project " + title,
		Status:      projects_enums.ProjectStatusOngoing,
		Category:    projects_enums.ProjectCategoryWeb,
		TeamLead:    "Test Lead",
		TeamSize:    5,
		IsPublic:    true,
	}

	projectRepository := &projects_repositories.ProjectRepository{}
	if err := projectRepository.CreateProject(project); err != nil {
		panic(fmt.Sprintf("failed to create test project: %v", err))
	}

	return project
}

// CreateTestMembership inserts a membership row with the given role and
// status directly through the repository.
func CreateTestMembership(
	userID, projectID uuid.UUID,
	role users_enums.MembershipRole,
	status projects_enums.MembershipStatus,
) *projects_models.Membership {
	now := time.Now().UTC()
	membership := &projects_models.Membership{
		ID:           uuid.New(),
		UserID:       &userID,
		ProjectID:    &projectID,
		Role:         role,
		Status:       status,
		ContactEmail: fmt.Sprintf("contact-%s@test.com", uuid.New().String()[:8]),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	membershipRepository := &projects_repositories.MembershipRepository{}
	if err := membershipRepository.CreateMembership(membership); err != nil {
		panic(fmt.Sprintf("failed to create test membership: %v", err))
	}

	return membership
}
