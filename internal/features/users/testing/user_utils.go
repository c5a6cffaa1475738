package users_testing

import (
	"fmt"
	"strings"
	"time"

	"clubhub/internal/config"
	users_dto "clubhub/internal/features/users/dto"
	users_enums "clubhub/internal/features/users/enums"
	users_models "clubhub/internal/features/users/models"
	users_repositories "clubhub/internal/features/users/repositories"
	users_services "clubhub/internal/features/users/services"

	"github.com/google/uuid"
)

// CreateTestUser inserts a verified user with the given role and returns
// sign-in credentials for it.
func CreateTestUser(role users_enums.UserRole) *users_dto.SignInResponseDTO {
	return createUser(role, true)
}

// CreateUnverifiedTestUser inserts a user that never confirmed its email.
func CreateUnverifiedTestUser(role users_enums.UserRole) *users_dto.SignInResponseDTO {
	return createUser(role, false)
}

func createUser(role users_enums.UserRole, verified bool) *users_dto.SignInResponseDTO {
	userID := uuid.New()
	email := fmt.Sprintf("%s-%s@test.com", strings.ToLower(string(role)), userID.String()[:8])

	hashedPassword := "$2a$10$test"
	now := time.Now().UTC()
	user := &users_models.User{
		ID:                   userID,
		Name:                 "Test " + string(role),
		Email:                email,
		HashedPassword:       &hashedPassword,
		PasswordCreationTime: now,
		CreatedAt:            now,
		UpdatedAt:            now,
		Role:                 role,
	}

	if verified {
		user.EmailVerifiedAt = &now
	} else {
		token := uuid.New().String()
		user.VerificationToken = &token
		user.VerificationSentAt = &now
	}

	userRepository := &users_repositories.UserRepository{}
	err := userRepository.CreateUser(user)
	if err != nil {
		panic(err)
	}

	response, err := users_services.GetUserService().GenerateAccessToken(user)
	if err != nil {
		panic(err)
	}

	response.Email = user.Email

	return response
}

// CreateAllowlistedAdmin returns credentials for a verified user whose email
// sits on the ADMIN_EMAILS allowlist. Any earlier test user holding that
// email is renamed out of the way first.
func CreateAllowlistedAdmin() *users_dto.SignInResponseDTO {
	adminEmail := config.GetEnv().AdminEmails[0]

	userRepository := &users_repositories.UserRepository{}
	err := userRepository.RenameUserEmailForTests(adminEmail, "retired-"+uuid.New().String()+"@test.com")
	if err != nil {
		panic(err)
	}

	hashedPassword := "$2a$10$test"
	now := time.Now().UTC()
	user := &users_models.User{
		ID:                   uuid.New(),
		Name:                 "Allowlisted Admin",
		Email:                adminEmail,
		HashedPassword:       &hashedPassword,
		PasswordCreationTime: now,
		EmailVerifiedAt:      &now,
		CreatedAt:            now,
		UpdatedAt:            now,
		Role:                 users_enums.UserRoleProfessor,
	}

	if err := userRepository.CreateUser(user); err != nil {
		panic(err)
	}

	response, err := users_services.GetUserService().GenerateAccessToken(user)
	if err != nil {
		panic(err)
	}

	response.Email = user.Email

	return response
}

// CreateTestUserWithPassword registers a user through the service so the
// stored hash matches the given password.
func CreateTestUserWithPassword(role users_enums.UserRole, password string) (*users_models.User, string) {
	email := fmt.Sprintf("%s-%s@test.com", strings.ToLower(string(role)), uuid.New().String()[:8])

	user, err := users_services.GetUserService().SignUp(&users_dto.SignUpRequestDTO{
		Name:     "Test " + string(role),
		Email:    email,
		Password: password,
		Role:     role,
	})
	if err != nil {
		panic(err)
	}

	userRepository := &users_repositories.UserRepository{}
	if err := userRepository.MarkEmailVerified(user.ID); err != nil {
		panic(err)
	}

	user, err = userRepository.GetUserByID(user.ID)
	if err != nil {
		panic(err)
	}

	return user, password
}
