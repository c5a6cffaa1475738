package users_dto

import (
	"time"

	users_enums "clubhub/internal/features/users/enums"

	"github.com/google/uuid"
)

type SignUpRequestDTO struct {
	Name        string               `json:"name"     binding:"required,min=1,max=255"`
	Email       string               `json:"email"    binding:"required,email"`
	Password    string               `json:"password" binding:"required,min=8"`
	Role        users_enums.UserRole `json:"role"     binding:"required"`
	Phone       *string              `json:"phone"`
	ProfileLink *string              `json:"profileLink"`
}

type SignInRequestDTO struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignInResponseDTO struct {
	UserID     uuid.UUID `json:"userId"`
	Email      string    `json:"email"`
	Token      string    `json:"token"`
	IsVerified bool      `json:"isVerified"`
}

type VerifyEmailRequestDTO struct {
	Token string `json:"token" binding:"required"`
}

type ChangePasswordRequestDTO struct {
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// UpdateProfileRequestDTO is an explicit patch: only non-nil fields are
// applied. Role is accepted here solely so the attempt can be rejected.
type UpdateProfileRequestDTO struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	ProfileLink *string `json:"profileLink"`
	Role        *string `json:"role"`
}

type UserProfileResponseDTO struct {
	ID          uuid.UUID            `json:"id"`
	Name        string               `json:"name"`
	Email       string               `json:"email"`
	Phone       *string              `json:"phone,omitempty"`
	ProfileLink *string              `json:"profileLink,omitempty"`
	Role        users_enums.UserRole `json:"role"`
	IsVerified  bool                 `json:"isVerified"`
	CreatedAt   time.Time            `json:"createdAt"`
}
