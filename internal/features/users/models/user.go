package users_models

import (
	users_enums "clubhub/internal/features/users/enums"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                   uuid.UUID            `json:"id"`
	Name                 string               `json:"name"`
	Email                string               `json:"email"`
	HashedPassword       *string              `json:"-"           gorm:"column:hashed_password"`
	PasswordCreationTime time.Time            `json:"-"           gorm:"column:password_creation_time"`
	Phone                *string              `json:"phone,omitempty"`
	ProfileLink          *string              `json:"profileLink,omitempty" gorm:"column:profile_link"`
	Role                 users_enums.UserRole `json:"role"`
	EmailVerifiedAt      *time.Time           `json:"emailVerifiedAt" gorm:"column:email_verified_at"`
	VerificationToken    *string              `json:"-"           gorm:"column:verification_token"`
	VerificationSentAt   *time.Time           `json:"-"           gorm:"column:verification_sent_at"`
	CreatedAt            time.Time            `json:"createdAt"`
	UpdatedAt            time.Time            `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsVerified() bool {
	return u.EmailVerifiedAt != nil
}

func (u *User) HasPassword() bool {
	return u.HashedPassword != nil && *u.HashedPassword != ""
}
