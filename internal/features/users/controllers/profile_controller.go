package users_controllers

import (
	"errors"
	"net/http"

	users_dto "clubhub/internal/features/users/dto"
	users_middleware "clubhub/internal/features/users/middleware"
	users_services "clubhub/internal/features/users/services"
	validation_utils "clubhub/internal/util/validation"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	profileService *users_services.ProfileService
}

func (c *ProfileController) RegisterVerifiedRoutes(router *gin.RouterGroup) {
	router.PATCH("/users/profile", c.UpdateProfile)
}

// UpdateProfile
// @Summary Update the caller's profile
// @Description Apply a partial update to the authenticated user's profile. The role cannot be changed.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body users_dto.UpdateProfileRequestDTO true "Profile patch"
// @Success 200 {object} users_dto.UserProfileResponseDTO
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]map[string]string "Field validation errors"
// @Router /users/profile [patch]
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request users_dto.UpdateProfileRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	profile, err := c.profileService.UpdateProfile(user, &request)
	if err != nil {
		if errors.Is(err, users_services.ErrImmutableField) {
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{
				"errors": gin.H{"role": err.Error()},
			})
			return
		}
		if validation_utils.RespondFieldErrors(ctx, err) {
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, profile)
}
