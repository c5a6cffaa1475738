package projects_services

import (
	"clubhub/internal/cache"
	projects_models "clubhub/internal/features/projects/models"
	projects_repositories "clubhub/internal/features/projects/repositories"
	users_services "clubhub/internal/features/users/services"
	cache_utils "clubhub/internal/util/cache"
	"clubhub/internal/util/logger"

	"golang.org/x/sync/singleflight"
)

var projectRepository = &projects_repositories.ProjectRepository{}
var membershipRepository = &projects_repositories.MembershipRepository{}

var projectService = &ProjectService{
	projectRepository,
	membershipRepository,
	logger.GetLogger(),
	cache_utils.NewCacheUtil[projects_models.Project](cache.GetCache(), "ch_project:"),
	singleflight.Group{},
}

var membershipService = &MembershipService{
	membershipRepository,
	projectService,
	users_services.GetUserService(),
	logger.GetLogger(),
}

func GetProjectService() *ProjectService {
	return projectService
}

func GetMembershipService() *MembershipService {
	return membershipService
}
