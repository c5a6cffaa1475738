package projects_models

import (
	"fmt"
	"time"

	projects_enums "clubhub/internal/features/projects/enums"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID                      `json:"id"          gorm:"column:id"`
	Title       string                         `json:"title"       gorm:"column:title"`
	Description string                         `json:"description" gorm:"column:description"`
	Status      projects_enums.ProjectStatus   `json:"status"      gorm:"column:status"`
	Category    projects_enums.ProjectCategory `json:"category"    gorm:"column:category"`
	TeamLead    string                         `json:"teamLead"    gorm:"column:team_lead"`
	TeamSize    int                            `json:"teamSize"    gorm:"column:team_size"`
	IsPublic    bool                           `json:"isPublic"    gorm:"column:is_public"`
	CreatedAt   time.Time                      `json:"createdAt"   gorm:"column:created_at"`
	UpdatedAt   time.Time                      `json:"updatedAt"   gorm:"column:updated_at"`

	// Used for caching non-existent projects
	IsNotExists bool `json:"isNotExists,omitempty" gorm:"-"`
}

func (Project) TableName() string {
	return "projects"
}

// Summary is the derived presentation string included in responses.
func (p *Project) Summary() string {
	return fmt.Sprintf("%s is lead by %s", p.Title, p.TeamLead)
}
