package projects_controllers

import (
	"net/http"
	"testing"

	projects_dto "clubhub/internal/features/projects/dto"
	projects_enums "clubhub/internal/features/projects/enums"
	projects_repositories "clubhub/internal/features/projects/repositories"
	projects_testing "clubhub/internal/features/projects/testing"
	users_enums "clubhub/internal/features/users/enums"
	users_testing "clubhub/internal/features/users/testing"
	test_utils "clubhub/internal/util/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validCreateProjectRequest(title string) projects_dto.CreateProjectRequestDTO {
	isPublic := true
	return projects_dto.CreateProjectRequestDTO{
		Title:       title,
		Description: "a test project",
		Status:      projects_enums.ProjectStatusOngoing,
		Category:    projects_enums.ProjectCategoryAIML,
		TeamLead:    "Ada Lovelace",
		TeamSize:    8,
		IsPublic:    &isPublic,
	}
}

func Test_CreateProject_AsAllowlistedAdmin_ProjectCreated(t *testing.T) {
	router := createProjectTestRouter()
	admin := users_testing.CreateAllowlistedAdmin()

	request := validCreateProjectRequest("Created " + uuid.New().String()[:8])

	var response projects_dto.ProjectResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects",
		"Bearer "+admin.Token,
		request,
		http.StatusCreated,
		&response,
	)

	assert.Equal(t, request.Title, response.Title)
	assert.Equal(t, request.Title+" is lead by Ada Lovelace", response.Summary)
	assert.NotEqual(t, uuid.Nil, response.ID)
}

func Test_CreateProject_AsRegularUser_ReturnsAccessDenied(t *testing.T) {
	router := createProjectTestRouter()
	professor := users_testing.CreateTestUser(users_enums.UserRoleProfessor)

	request := validCreateProjectRequest("Denied " + uuid.New().String()[:8])

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/projects",
		"Bearer "+professor.Token,
		request,
		http.StatusForbidden,
	)
	assert.Contains(t, string(resp.Body), "access denied")
}

func Test_CreateProject_WithInvalidFields_ReturnsFieldErrors(t *testing.T) {
	router := createProjectTestRouter()
	admin := users_testing.CreateAllowlistedAdmin()

	request := validCreateProjectRequest("Invalid " + uuid.New().String()[:8])
	request.Status = "PAUSED"
	request.TeamSize = 30

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/projects",
		"Bearer "+admin.Token,
		request,
		http.StatusUnprocessableEntity,
	)
	assert.Contains(t, string(resp.Body), "status")
	assert.Contains(t, string(resp.Body), "teamSize")
}

func Test_GetProject_WithValidID_ReturnsProject(t *testing.T) {
	router := createProjectTestRouter()
	user := users_testing.CreateTestUser(users_enums.UserRoleStudent)
	project := projects_testing.CreateTestProject("Fetched " + uuid.New().String()[:8])

	var response projects_dto.ProjectResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.ID.String(),
		"Bearer "+user.Token,
		http.StatusOK,
		&response,
	)

	assert.Equal(t, project.ID, response.ID)
	assert.Equal(t, project.Title+" is lead by Test Lead", response.Summary)
}

func Test_GetProject_WithUnknownID_ReturnsNotFound(t *testing.T) {
	router := createProjectTestRouter()
	user := users_testing.CreateTestUser(users_enums.UserRoleStudent)

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/projects/"+uuid.New().String(),
		"Bearer "+user.Token,
		http.StatusNotFound,
	)
}

func Test_ListProjects_ReturnsCreatedProject(t *testing.T) {
	router := createProjectTestRouter()
	user := users_testing.CreateTestUser(users_enums.UserRoleStudent)
	project := projects_testing.CreateTestProject("Listed " + uuid.New().String()[:8])

	var response projects_dto.ListProjectsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects?limit=200",
		"Bearer "+user.Token,
		http.StatusOK,
		&response,
	)

	found := false
	for _, p := range response.Projects {
		if p.ID == project.ID {
			found = true
			break
		}
	}
	assert.True(t, found, "expected listed projects to include the created one")
}

func Test_UpdateProject_WithAllFields_ProjectReplaced(t *testing.T) {
	router := createProjectTestRouter()
	admin := users_testing.CreateAllowlistedAdmin()
	project := projects_testing.CreateTestProject("Replace " + uuid.New().String()[:8])

	request := validCreateProjectRequest("Replaced " + uuid.New().String()[:8])
	request.Status = projects_enums.ProjectStatusDeployed

	var response projects_dto.ProjectResponseDTO
	test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "PUT",
		URL:            "/api/v1/projects/" + project.ID.String(),
		Token:          "Bearer " + admin.Token,
		Body:           request,
		ExpectedStatus: http.StatusOK,
	})

	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.ID.String(),
		"Bearer "+admin.Token,
		http.StatusOK,
		&response,
	)

	assert.Equal(t, request.Title, response.Title)
	assert.Equal(t, projects_enums.ProjectStatusDeployed, response.Status)
}

func Test_UpdateProject_WithMissingFields_ReturnsBadRequest(t *testing.T) {
	router := createProjectTestRouter()
	admin := users_testing.CreateAllowlistedAdmin()
	project := projects_testing.CreateTestProject("PutPartial " + uuid.New().String()[:8])

	// PUT requires every field; a title-only body fails binding
	test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "PUT",
		URL:            "/api/v1/projects/" + project.ID.String(),
		Token:          "Bearer " + admin.Token,
		Body:           map[string]any{"title": "only a title"},
		ExpectedStatus: http.StatusBadRequest,
	})
}

func Test_PatchProject_WithSubsetOfFields_OnlyThoseChange(t *testing.T) {
	router := createProjectTestRouter()
	admin := users_testing.CreateAllowlistedAdmin()
	project := projects_testing.CreateTestProject("Patch " + uuid.New().String()[:8])

	newStatus := projects_enums.ProjectStatusHiring
	request := projects_dto.PatchProjectRequestDTO{
		Status: &newStatus,
	}

	var response projects_dto.ProjectResponseDTO
	test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "PATCH",
		URL:            "/api/v1/projects/" + project.ID.String(),
		Token:          "Bearer " + admin.Token,
		Body:           request,
		ExpectedStatus: http.StatusOK,
	})

	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.ID.String(),
		"Bearer "+admin.Token,
		http.StatusOK,
		&response,
	)

	assert.Equal(t, newStatus, response.Status)
	assert.Equal(t, project.Title, response.Title)
	assert.Equal(t, project.TeamSize, response.TeamSize)
}

func Test_PatchProject_WithInvalidCategory_ReturnsFieldError(t *testing.T) {
	router := createProjectTestRouter()
	admin := users_testing.CreateAllowlistedAdmin()
	project := projects_testing.CreateTestProject("PatchBad " + uuid.New().String()[:8])

	badCategory := projects_enums.ProjectCategory("KNITTING")
	request := projects_dto.PatchProjectRequestDTO{
		Category: &badCategory,
	}

	resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "PATCH",
		URL:            "/api/v1/projects/" + project.ID.String(),
		Token:          "Bearer " + admin.Token,
		Body:           request,
		ExpectedStatus: http.StatusUnprocessableEntity,
	})
	assert.Contains(t, string(resp.Body), "category")
}

func Test_DeleteProject_OrphansMembershipRows(t *testing.T) {
	router := createProjectTestRouter()
	admin := users_testing.CreateAllowlistedAdmin()
	member := users_testing.CreateTestUser(users_enums.UserRoleStudent)

	project := projects_testing.CreateTestProject("Doomed " + uuid.New().String()[:8])
	membership := projects_testing.CreateTestMembership(
		member.UserID,
		project.ID,
		users_enums.MembershipRoleMember,
		projects_enums.MembershipStatusActive,
	)

	test_utils.MakeDeleteRequest(
		t,
		router,
		"/api/v1/projects/"+project.ID.String(),
		"Bearer "+admin.Token,
		http.StatusOK,
	)

	// the membership row survives with its project reference cleared
	membershipRepository := &projects_repositories.MembershipRepository{}
	orphaned, err := membershipRepository.GetMembershipByID(membership.ID)
	assert.NoError(t, err)
	assert.NotNil(t, orphaned)
	assert.Nil(t, orphaned.ProjectID)
	assert.Equal(t, member.UserID, *orphaned.UserID)
}

func Test_DeleteProject_WithUnknownID_ReturnsNotFound(t *testing.T) {
	router := createProjectTestRouter()
	admin := users_testing.CreateAllowlistedAdmin()

	test_utils.MakeDeleteRequest(
		t,
		router,
		"/api/v1/projects/"+uuid.New().String(),
		"Bearer "+admin.Token,
		http.StatusNotFound,
	)
}

func Test_DeleteProject_AsRegularUser_ReturnsAccessDenied(t *testing.T) {
	router := createProjectTestRouter()
	student := users_testing.CreateTestUser(users_enums.UserRoleStudent)
	project := projects_testing.CreateTestProject("Protected " + uuid.New().String()[:8])

	resp := test_utils.MakeDeleteRequest(
		t,
		router,
		"/api/v1/projects/"+project.ID.String(),
		"Bearer "+student.Token,
		http.StatusForbidden,
	)
	assert.Contains(t, string(resp.Body), "access denied")
}
