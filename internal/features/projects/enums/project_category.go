package projects_enums

type ProjectCategory string

const (
	ProjectCategoryAIML     ProjectCategory = "AI_ML"
	ProjectCategoryWeb      ProjectCategory = "WEB"
	ProjectCategoryResearch ProjectCategory = "RESEARCH"
	ProjectCategoryIoT      ProjectCategory = "IOT"
)

func (c ProjectCategory) IsValid() bool {
	switch c {
	case ProjectCategoryAIML, ProjectCategoryWeb, ProjectCategoryResearch, ProjectCategoryIoT:
		return true
	default:
		return false
	}
}
