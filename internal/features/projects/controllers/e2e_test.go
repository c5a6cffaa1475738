package projects_controllers

import (
	"net/http"
	"testing"

	projects_dto "clubhub/internal/features/projects/dto"
	projects_enums "clubhub/internal/features/projects/enums"
	users_controllers "clubhub/internal/features/users/controllers"
	users_dto "clubhub/internal/features/users/dto"
	users_enums "clubhub/internal/features/users/enums"
	users_middleware "clubhub/internal/features/users/middleware"
	users_repositories "clubhub/internal/features/users/repositories"
	users_services "clubhub/internal/features/users/services"
	users_testing "clubhub/internal/features/users/testing"
	test_utils "clubhub/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func Test_MembershipLifecycleE2E_CompletesSuccessfully(t *testing.T) {
	router := createProjectTestRouter()
	admin := users_testing.CreateAllowlistedAdmin()

	// 1. A student registers and verifies their email
	studentEmail := "student" + uuid.New().String() + "@example.com"
	signupRequest := users_dto.SignUpRequestDTO{
		Name:     "Scenario Student",
		Email:    studentEmail,
		Password: "studentpassword123",
		Role:     users_enums.UserRoleStudent,
	}
	test_utils.MakePostRequest(t, router, "/api/v1/users/signup", "", signupRequest, http.StatusCreated)

	userRepository := &users_repositories.UserRepository{}
	student, err := userRepository.GetUserByEmail(studentEmail)
	assert.NoError(t, err)

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/users/verify-email?token="+*student.VerificationToken,
		"",
		http.StatusOK,
	)

	// 2. The admin creates a project
	isPublic := true
	createRequest := projects_dto.CreateProjectRequestDTO{
		Title:       "Scenario Project " + uuid.New().String()[:8],
		Description: "End to end membership lifecycle",
		Status:      projects_enums.ProjectStatusHiring,
		Category:    projects_enums.ProjectCategoryResearch,
		TeamLead:    "Dr. Scenario",
		TeamSize:    10,
		IsPublic:    &isPublic,
	}

	var project projects_dto.ProjectResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects",
		"Bearer "+admin.Token,
		createRequest,
		http.StatusCreated,
		&project,
	)
	assert.Equal(t, createRequest.Title+" is lead by Dr. Scenario", project.Summary)

	// 3. A join request lands in PENDING
	joinRequest := projects_dto.RequestJoinRequestDTO{
		UserID:       student.ID,
		Role:         users_enums.MembershipRoleMember,
		ContactEmail: studentEmail,
	}

	var membership projects_dto.MembershipResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.ID.String()+"/memberships",
		"Bearer "+admin.Token,
		joinRequest,
		http.StatusCreated,
		&membership,
	)
	assert.Equal(t, projects_enums.MembershipStatusPending, membership.Status)

	// 4. A second join request for the same pair is rejected
	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/projects/"+project.ID.String()+"/memberships",
		"Bearer "+admin.Token,
		joinRequest,
		http.StatusConflict,
	)
	assert.Contains(t, string(resp.Body), "already exists")

	// 5. Approval flips it to ACTIVE
	var approved projects_dto.MembershipResponseDTO
	test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "PUT",
		URL:            "/api/v1/memberships/" + membership.ID.String() + "/approve",
		Token:          "Bearer " + admin.Token,
		ExpectedStatus: http.StatusOK,
	})

	// 6. The project listing contains exactly one ACTIVE MEMBER row for the student
	var list projects_dto.ListMembershipsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.ID.String()+"/memberships",
		"Bearer "+admin.Token,
		http.StatusOK,
		&list,
	)

	assert.Len(t, list.Memberships, 1)
	approved = list.Memberships[0]
	assert.Equal(t, projects_enums.MembershipStatusActive, approved.Status)
	assert.Equal(t, users_enums.MembershipRoleMember, approved.Role)
	assert.Equal(t, student.ID, *approved.UserID)
	assert.Equal(t, "Scenario Student", *approved.MemberName)
	assert.Equal(t, createRequest.Title, *approved.ProjectTitle)
}

// Test router creation helper
func createProjectTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")

	// Public user routes so scenarios can register and verify accounts
	userController := users_controllers.GetUserController()
	userController.RegisterRoutes(v1)
	userController.SetSignInLimiter(rate.NewLimiter(rate.Limit(100), 100))

	verified := v1.Group("").Use(
		users_middleware.AuthMiddleware(users_services.GetUserService()),
		users_middleware.RequireVerified(),
	)
	GetProjectController().RegisterVerifiedRoutes(verified.(*gin.RouterGroup))
	GetMembershipController().RegisterVerifiedRoutes(verified.(*gin.RouterGroup))

	admin := v1.Group("").Use(
		users_middleware.AuthMiddleware(users_services.GetUserService()),
		users_middleware.RequireVerified(),
		users_middleware.RequireAllowlistedAdmin(),
	)
	GetProjectController().RegisterAdminRoutes(admin.(*gin.RouterGroup))
	GetMembershipController().RegisterAdminRoutes(admin.(*gin.RouterGroup))

	return router
}
