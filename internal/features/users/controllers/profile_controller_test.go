package users_controllers

import (
	"net/http"
	"testing"

	users_dto "clubhub/internal/features/users/dto"
	users_enums "clubhub/internal/features/users/enums"
	users_repositories "clubhub/internal/features/users/repositories"
	users_testing "clubhub/internal/features/users/testing"
	test_utils "clubhub/internal/util/testing"

	"github.com/stretchr/testify/assert"
)

func Test_UpdateProfile_WithValidPatch_FieldsUpdated(t *testing.T) {
	router := createUserTestRouter()
	testUser := users_testing.CreateTestUser(users_enums.UserRoleStudent)

	newName := "Renamed Student"
	newPhone := "+14155552671"
	request := users_dto.UpdateProfileRequestDTO{
		Name:  &newName,
		Phone: &newPhone,
	}

	resp := test_utils.MakePatchRequest(
		t,
		router,
		"/api/v1/users/profile",
		"Bearer "+testUser.Token,
		request,
		http.StatusOK,
	)

	assert.Contains(t, string(resp.Body), newName)

	userRepository := &users_repositories.UserRepository{}
	updated, err := userRepository.GetUserByEmail(testUser.Email)
	assert.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, newPhone, *updated.Phone)
}

func Test_UpdateProfile_WithRoleChange_ReturnsFieldError(t *testing.T) {
	router := createUserTestRouter()
	testUser := users_testing.CreateTestUser(users_enums.UserRoleStudent)

	newRole := "PROFESSOR"
	request := users_dto.UpdateProfileRequestDTO{
		Role: &newRole,
	}

	resp := test_utils.MakePatchRequest(
		t,
		router,
		"/api/v1/users/profile",
		"Bearer "+testUser.Token,
		request,
		http.StatusUnprocessableEntity,
	)
	assert.Contains(t, string(resp.Body), "role")

	// the stored role is untouched
	userRepository := &users_repositories.UserRepository{}
	unchanged, err := userRepository.GetUserByEmail(testUser.Email)
	assert.NoError(t, err)
	assert.Equal(t, users_enums.UserRoleStudent, unchanged.Role)
}

func Test_UpdateProfile_RoleChangeAlongsideValidFields_NothingApplied(t *testing.T) {
	router := createUserTestRouter()
	testUser := users_testing.CreateTestUser(users_enums.UserRoleStudent)

	newName := "Should Not Apply"
	sameRole := "STUDENT"
	request := users_dto.UpdateProfileRequestDTO{
		Name: &newName,
		Role: &sameRole,
	}

	test_utils.MakePatchRequest(
		t,
		router,
		"/api/v1/users/profile",
		"Bearer "+testUser.Token,
		request,
		http.StatusUnprocessableEntity,
	)

	// the whole patch is rejected, including otherwise valid fields
	userRepository := &users_repositories.UserRepository{}
	unchanged, err := userRepository.GetUserByEmail(testUser.Email)
	assert.NoError(t, err)
	assert.NotEqual(t, newName, unchanged.Name)
}

func Test_UpdateProfile_WithInvalidEmail_ReturnsFieldError(t *testing.T) {
	router := createUserTestRouter()
	testUser := users_testing.CreateTestUser(users_enums.UserRoleStudent)

	badEmail := "not-an-email"
	request := users_dto.UpdateProfileRequestDTO{
		Email: &badEmail,
	}

	resp := test_utils.MakePatchRequest(
		t,
		router,
		"/api/v1/users/profile",
		"Bearer "+testUser.Token,
		request,
		http.StatusUnprocessableEntity,
	)
	assert.Contains(t, string(resp.Body), "email")
}

func Test_UpdateProfile_WithTakenEmail_ReturnsFieldError(t *testing.T) {
	router := createUserTestRouter()
	firstUser := users_testing.CreateTestUser(users_enums.UserRoleStudent)
	secondUser := users_testing.CreateTestUser(users_enums.UserRoleStudent)

	request := users_dto.UpdateProfileRequestDTO{
		Email: &firstUser.Email,
	}

	resp := test_utils.MakePatchRequest(
		t,
		router,
		"/api/v1/users/profile",
		"Bearer "+secondUser.Token,
		request,
		http.StatusUnprocessableEntity,
	)
	assert.Contains(t, string(resp.Body), "already in use")
}

func Test_UpdateProfile_WithInvalidPhone_ReturnsFieldError(t *testing.T) {
	router := createUserTestRouter()
	testUser := users_testing.CreateTestUser(users_enums.UserRoleStudent)

	badPhone := "12345"
	request := users_dto.UpdateProfileRequestDTO{
		Phone: &badPhone,
	}

	resp := test_utils.MakePatchRequest(
		t,
		router,
		"/api/v1/users/profile",
		"Bearer "+testUser.Token,
		request,
		http.StatusUnprocessableEntity,
	)
	assert.Contains(t, string(resp.Body), "phone")
}

func Test_UpdateProfile_WhenUnverified_ReturnsForbidden(t *testing.T) {
	router := createUserTestRouter()
	testUser := users_testing.CreateUnverifiedTestUser(users_enums.UserRoleStudent)

	newName := "Unverified Rename"
	request := users_dto.UpdateProfileRequestDTO{
		Name: &newName,
	}

	test_utils.MakePatchRequest(
		t,
		router,
		"/api/v1/users/profile",
		"Bearer "+testUser.Token,
		request,
		http.StatusForbidden,
	)
}

func Test_UpdateProfile_WithoutAuth_ReturnsUnauthorized(t *testing.T) {
	router := createUserTestRouter()

	newName := "Anonymous"
	request := users_dto.UpdateProfileRequestDTO{
		Name: &newName,
	}

	test_utils.MakePatchRequest(t, router, "/api/v1/users/profile", "", request, http.StatusUnauthorized)
}
