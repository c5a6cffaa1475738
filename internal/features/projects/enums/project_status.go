package projects_enums

// ProjectStatus describes where the project currently stands.
type ProjectStatus string

const (
	ProjectStatusOngoing  ProjectStatus = "ONGOING"
	ProjectStatusDeployed ProjectStatus = "DEPLOYED"
	ProjectStatusHiring   ProjectStatus = "HIRING"
)

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusOngoing, ProjectStatusDeployed, ProjectStatusHiring:
		return true
	default:
		return false
	}
}
