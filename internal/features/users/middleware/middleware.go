package users_middleware

import (
	"net/http"

	"clubhub/internal/config"
	users_models "clubhub/internal/features/users/models"
	users_services "clubhub/internal/features/users/services"

	"github.com/gin-gonic/gin"
)

// isAllowlistedAdminKey marks requests that passed the admin gate so
// services can skip the policy check for them.
const isAllowlistedAdminKey = "isAllowlistedAdmin"

// AuthMiddleware validates JWT token and adds user to context
func AuthMiddleware(userService *users_services.UserService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := ctx.GetHeader("Authorization")
		if token == "" {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token required"})
			ctx.Abort()
			return
		}

		// Remove "Bearer " prefix if present
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}

		user, err := userService.GetUserFromToken(token)
		if err != nil {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			ctx.Abort()
			return
		}

		ctx.Set("user", user)
		ctx.Next()
	}
}

// RequireVerified blocks accounts that have not confirmed their email.
// Verification routes themselves are registered outside this middleware.
func RequireVerified() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := GetUserFromContext(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			ctx.Abort()
			return
		}

		if !user.IsVerified() {
			ctx.JSON(http.StatusForbidden, gin.H{"error": users_services.ErrUnverifiedAccount.Error()})
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}

// RequireAllowlistedAdmin gates mutating routes on the ADMIN_EMAILS
// allowlist. Everyone else gets the same fixed refusal regardless of
// role or membership.
func RequireAllowlistedAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := GetUserFromContext(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			ctx.Abort()
			return
		}

		if !config.GetEnv().IsAllowlistedAdmin(user.Email) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			ctx.Abort()
			return
		}

		ctx.Set(isAllowlistedAdminKey, true)
		ctx.Next()
	}
}

// GetUserFromContext helper function to extract user from gin context
func GetUserFromContext(ctx *gin.Context) (*users_models.User, bool) {
	userInterface, exists := ctx.Get("user")
	if !exists {
		return nil, false
	}

	user, ok := userInterface.(*users_models.User)

	return user, ok
}

// IsAllowlistedAdminRequest reports whether the request came through
// the admin gate.
func IsAllowlistedAdminRequest(ctx *gin.Context) bool {
	return ctx.GetBool(isAllowlistedAdminKey)
}
