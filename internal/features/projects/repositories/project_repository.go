package projects_repositories

import (
	"errors"
	"time"

	projects_models "clubhub/internal/features/projects/models"
	"clubhub/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct{}

func (r *ProjectRepository) CreateProject(project *projects_models.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}
	if project.UpdatedAt.IsZero() {
		project.UpdatedAt = project.CreatedAt
	}

	return storage.GetDb().Create(project).Error
}

func (r *ProjectRepository) GetProjectByID(projectID uuid.UUID) (*projects_models.Project, error) {
	var project projects_models.Project

	if err := storage.GetDb().Where("id = ?", projectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &project, nil
}

func (r *ProjectRepository) UpdateProject(project *projects_models.Project) error {
	project.UpdatedAt = time.Now().UTC()

	return storage.GetDb().Save(project).Error
}

func (r *ProjectRepository) PatchProjectFields(projectID uuid.UUID, updates map[string]any) error {
	updates["updated_at"] = time.Now().UTC()

	return storage.GetDb().
		Model(&projects_models.Project{}).
		Where("id = ?", projectID).
		Updates(updates).Error
}

// DeleteProject removes the project and nulls the project reference on its
// membership rows in the same transaction. The rows stay behind as history.
func (r *ProjectRepository) DeleteProject(projectID uuid.UUID) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&projects_models.Membership{}).
			Where("project_id = ?", projectID).
			Update("project_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&projects_models.Project{}, projectID).Error
	})
}

func (r *ProjectRepository) GetProjects(limit, offset int) ([]*projects_models.Project, error) {
	var projects []*projects_models.Project

	err := storage.GetDb().
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&projects).Error

	return projects, err
}
