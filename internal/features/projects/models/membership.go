package projects_models

import (
	"time"

	projects_enums "clubhub/internal/features/projects/enums"
	users_enums "clubhub/internal/features/users/enums"

	"github.com/google/uuid"
)

// Membership joins a user to a project and carries the pivot payload. The
// foreign keys are nullable so rows survive user or project deletion as
// orphaned history.
type Membership struct {
	ID           uuid.UUID                       `json:"id"           gorm:"column:id"`
	UserID       *uuid.UUID                      `json:"userId"       gorm:"column:user_id"`
	ProjectID    *uuid.UUID                      `json:"projectId"    gorm:"column:project_id"`
	Role         users_enums.MembershipRole      `json:"role"         gorm:"column:role"`
	Status       projects_enums.MembershipStatus `json:"status"       gorm:"column:status"`
	ContactEmail string                          `json:"contactEmail" gorm:"column:contact_email"`
	CreatedAt    time.Time                       `json:"createdAt"    gorm:"column:created_at"`
	UpdatedAt    time.Time                       `json:"updatedAt"    gorm:"column:updated_at"`
}

func (Membership) TableName() string {
	return "memberships"
}
