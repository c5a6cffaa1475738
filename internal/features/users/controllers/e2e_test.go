package users_controllers

import (
	"net/http"
	"testing"

	users_dto "clubhub/internal/features/users/dto"
	users_enums "clubhub/internal/features/users/enums"
	users_middleware "clubhub/internal/features/users/middleware"
	users_repositories "clubhub/internal/features/users/repositories"
	users_services "clubhub/internal/features/users/services"
	test_utils "clubhub/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func Test_UserLifecycleE2E_CompletesSuccessfully(t *testing.T) {
	router := createUserTestRouter()

	// 1. User registers
	userEmail := "testuser" + uuid.New().String() + "@example.com"
	signupRequest := users_dto.SignUpRequestDTO{
		Name:     "Lifecycle User",
		Email:    userEmail,
		Password: "userpassword123",
		Role:     users_enums.UserRoleStudent,
	}

	test_utils.MakePostRequest(t, router, "/api/v1/users/signup", "", signupRequest, http.StatusCreated)

	// 2. User signs in before verifying; the token is issued but flagged
	signinRequest := users_dto.SignInRequestDTO{
		Email:    userEmail,
		Password: "userpassword123",
	}

	var signinResponse users_dto.SignInResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/signin",
		"",
		signinRequest,
		http.StatusOK,
		&signinResponse,
	)
	assert.NotEmpty(t, signinResponse.Token)
	assert.False(t, signinResponse.IsVerified)

	// 3. Unverified user cannot change password
	test_utils.MakePutRequest(
		t,
		router,
		"/api/v1/users/change-password",
		"Bearer "+signinResponse.Token,
		users_dto.ChangePasswordRequestDTO{NewPassword: "anotherpassword123"},
		http.StatusForbidden,
	)

	// 4. User verifies email through the link
	userRepository := &users_repositories.UserRepository{}
	user, err := userRepository.GetUserByEmail(userEmail)
	assert.NoError(t, err)
	assert.NotNil(t, user.VerificationToken)

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/users/verify-email?token="+*user.VerificationToken,
		"",
		http.StatusOK,
	)

	// 5. Fresh token now reports the account as verified
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/signin",
		"",
		signinRequest,
		http.StatusOK,
		&signinResponse,
	)
	assert.True(t, signinResponse.IsVerified)

	// 6. User fetches own profile
	var profileResponse users_dto.UserProfileResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/me",
		"Bearer "+signinResponse.Token,
		http.StatusOK,
		&profileResponse,
	)
	assert.Equal(t, signinResponse.UserID, profileResponse.ID)
	assert.Equal(t, userEmail, profileResponse.Email)
	assert.Equal(t, users_enums.UserRoleStudent, profileResponse.Role)
	assert.True(t, profileResponse.IsVerified)
}

// Test router creation helpers
func createUserTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")

	// Register public routes
	GetUserController().RegisterRoutes(v1)

	// Register protected routes with auth middleware
	protected := v1.Group("").Use(users_middleware.AuthMiddleware(users_services.GetUserService()))
	GetUserController().RegisterProtectedRoutes(protected.(*gin.RouterGroup))

	// Verified-only routes additionally require a confirmed email
	verified := v1.Group("").Use(
		users_middleware.AuthMiddleware(users_services.GetUserService()),
		users_middleware.RequireVerified(),
	)
	GetUserController().RegisterVerifiedRoutes(verified.(*gin.RouterGroup))
	GetProfileController().RegisterVerifiedRoutes(verified.(*gin.RouterGroup))

	GetUserController().SetSignInLimiter(rate.NewLimiter(rate.Limit(100), 100))

	return router
}
