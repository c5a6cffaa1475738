package users_services

import (
	users_repositories "clubhub/internal/features/users/repositories"
	"clubhub/internal/util/logger"
	"clubhub/internal/util/login_limit"
)

var userRepository = &users_repositories.UserRepository{}
var secretKeyRepository = &users_repositories.SecretKeyRepository{}

var mailer = &Mailer{logger.GetLogger()}

var userService = &UserService{
	userRepository:      userRepository,
	secretKeyRepository: secretKeyRepository,
	loginLimiter:        login_limit.NewLoginLimiter(),
	mailer:              mailer,
	logger:              logger.GetLogger(),
}

var profileService = &ProfileService{
	userRepository: userRepository,
	logger:         logger.GetLogger(),
}

var cleanupService = &CleanupService{
	userRepository: userRepository,
	logger:         logger.GetLogger(),
}

func GetUserService() *UserService {
	return userService
}

func GetProfileService() *ProfileService {
	return profileService
}

func GetCleanupService() *CleanupService {
	return cleanupService
}
