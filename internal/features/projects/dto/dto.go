package projects_dto

import (
	"time"

	projects_enums "clubhub/internal/features/projects/enums"
	users_enums "clubhub/internal/features/users/enums"

	"github.com/google/uuid"
)

// Project DTOs
type CreateProjectRequestDTO struct {
	Title       string                         `json:"title"       binding:"required,min=1,max=255"`
	Description string                         `json:"description" binding:"required"`
	Status      projects_enums.ProjectStatus   `json:"status"      binding:"required"`
	Category    projects_enums.ProjectCategory `json:"category"    binding:"required"`
	TeamLead    string                         `json:"teamLead"    binding:"required,min=1,max=255"`
	TeamSize    int                            `json:"teamSize"    binding:"required"`
	IsPublic    *bool                          `json:"isPublic"    binding:"required"`
}

// UpdateProjectRequestDTO carries PUT semantics: every field is required.
type UpdateProjectRequestDTO = CreateProjectRequestDTO

// PatchProjectRequestDTO is an explicit patch: only non-nil fields are
// applied, each validated on its own.
type PatchProjectRequestDTO struct {
	Title       *string                         `json:"title"`
	Description *string                         `json:"description"`
	Status      *projects_enums.ProjectStatus   `json:"status"`
	Category    *projects_enums.ProjectCategory `json:"category"`
	TeamLead    *string                         `json:"teamLead"`
	TeamSize    *int                            `json:"teamSize"`
	IsPublic    *bool                           `json:"isPublic"`
}

type ProjectResponseDTO struct {
	ID          uuid.UUID                      `json:"id"`
	Title       string                         `json:"title"`
	Description string                         `json:"description"`
	Status      projects_enums.ProjectStatus   `json:"status"`
	Category    projects_enums.ProjectCategory `json:"category"`
	TeamLead    string                         `json:"teamLead"`
	TeamSize    int                            `json:"teamSize"`
	IsPublic    bool                           `json:"isPublic"`
	Summary     string                         `json:"summary"`
	CreatedAt   time.Time                      `json:"createdAt"`
	UpdatedAt   time.Time                      `json:"updatedAt"`
}

type ListProjectsResponseDTO struct {
	Projects []ProjectResponseDTO `json:"projects"`
}

// Membership DTOs
type RequestJoinRequestDTO struct {
	UserID       uuid.UUID                  `json:"userId"       binding:"required"`
	Role         users_enums.MembershipRole `json:"role"         binding:"required"`
	ContactEmail string                     `json:"contactEmail" binding:"required,email"`
}

type ChangeMemberRoleRequestDTO struct {
	Role users_enums.MembershipRole `json:"role" binding:"required"`
}

// MembershipResponseDTO denormalizes the member's display name and the
// project title next to the raw foreign keys.
type MembershipResponseDTO struct {
	ID           uuid.UUID                       `json:"id"`
	UserID       *uuid.UUID                      `json:"userId"`
	ProjectID    *uuid.UUID                      `json:"projectId"`
	MemberName   *string                         `json:"memberName"`
	ProjectTitle *string                         `json:"projectTitle"`
	Role         users_enums.MembershipRole      `json:"role"`
	Status       projects_enums.MembershipStatus `json:"status"`
	ContactEmail string                          `json:"contactEmail"`
	CreatedAt    time.Time                       `json:"createdAt"`
	UpdatedAt    time.Time                       `json:"updatedAt"`
}

type ListMembershipsResponseDTO struct {
	Memberships []MembershipResponseDTO `json:"memberships"`
	Limit       int                     `json:"limit"`
	Offset      int                     `json:"offset"`
}
