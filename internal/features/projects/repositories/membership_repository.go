package projects_repositories

import (
	"errors"
	"time"

	projects_enums "clubhub/internal/features/projects/enums"
	projects_models "clubhub/internal/features/projects/models"
	users_enums "clubhub/internal/features/users/enums"
	"clubhub/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrMembershipNotFound is returned by locked transitions when the row
// vanished between lookup and lock.
var ErrMembershipNotFound = errors.New("membership not found")

type MembershipRepository struct{}

// MembershipRow is the joined read model behind list queries.
type MembershipRow struct {
	projects_models.Membership
	MemberName   *string
	ProjectTitle *string
}

func (r *MembershipRepository) CreateMembership(membership *projects_models.Membership) error {
	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}

	now := time.Now().UTC()
	if membership.CreatedAt.IsZero() {
		membership.CreatedAt = now
	}
	if membership.UpdatedAt.IsZero() {
		membership.UpdatedAt = now
	}

	return storage.GetDb().Create(membership).Error
}

func (r *MembershipRepository) GetMembershipByID(membershipID uuid.UUID) (*projects_models.Membership, error) {
	var membership projects_models.Membership

	if err := storage.GetDb().Where("id = ?", membershipID).First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &membership, nil
}

func (r *MembershipRepository) GetMembershipByUserAndProject(
	userID, projectID uuid.UUID,
) (*projects_models.Membership, error) {
	var membership projects_models.Membership

	err := storage.GetDb().
		Where("user_id = ? AND project_id = ?", userID, projectID).
		First(&membership).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &membership, nil
}

// ApproveMembership flips PENDING to ACTIVE under a row lock so two
// concurrent approvals cannot both observe PENDING. The update callback
// receives the locked row's status and decides whether to proceed.
func (r *MembershipRepository) ApproveMembership(
	membershipID uuid.UUID,
	check func(current projects_enums.MembershipStatus) error,
) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		var membership projects_models.Membership

		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", membershipID).
			First(&membership).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMembershipNotFound
			}

			return err
		}

		if err := check(membership.Status); err != nil {
			return err
		}

		return tx.
			Model(&projects_models.Membership{}).
			Where("id = ?", membershipID).
			Updates(map[string]any{
				"status":     projects_enums.MembershipStatusActive,
				"updated_at": time.Now().UTC(),
			}).Error
	})
}

// UpdateMembershipRole changes the role only; status is untouched. The row
// lock keeps the role change isolated from a concurrent approval.
func (r *MembershipRepository) UpdateMembershipRole(
	membershipID uuid.UUID,
	role users_enums.MembershipRole,
	check func(current *projects_models.Membership) error,
) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		var membership projects_models.Membership

		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", membershipID).
			First(&membership).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMembershipNotFound
			}

			return err
		}

		if err := check(&membership); err != nil {
			return err
		}

		return tx.
			Model(&projects_models.Membership{}).
			Where("id = ?", membershipID).
			Updates(map[string]any{
				"role":       role,
				"updated_at": time.Now().UTC(),
			}).Error
	})
}

func (r *MembershipRepository) DeleteMembership(membershipID uuid.UUID) error {
	return storage.GetDb().
		Where("id = ?", membershipID).
		Delete(&projects_models.Membership{}).Error
}

// CountOtherActiveLeads counts ACTIVE LEAD rows on the project excluding the
// given membership. Used by the lead-succession rule on removal.
func (r *MembershipRepository) CountOtherActiveLeads(projectID, excludeMembershipID uuid.UUID) (int64, error) {
	var count int64

	err := storage.GetDb().
		Model(&projects_models.Membership{}).
		Where("project_id = ? AND id != ? AND role = ? AND status = ?",
			projectID,
			excludeMembershipID,
			users_enums.MembershipRoleLead,
			projects_enums.MembershipStatusActive,
		).
		Count(&count).Error

	return count, err
}

func (r *MembershipRepository) GetMembershipsByProject(
	projectID uuid.UUID,
	limit, offset int,
) ([]*MembershipRow, error) {
	var rows []*MembershipRow

	err := storage.GetDb().
		Table("memberships m").
		Select("m.*, u.name as member_name, p.title as project_title").
		Joins("LEFT JOIN users u ON m.user_id = u.id").
		Joins("LEFT JOIN projects p ON m.project_id = p.id").
		Where("m.project_id = ?", projectID).
		Order("m.created_at ASC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error

	return rows, err
}

func (r *MembershipRepository) GetMembershipsByUser(
	userID uuid.UUID,
	limit, offset int,
) ([]*MembershipRow, error) {
	var rows []*MembershipRow

	err := storage.GetDb().
		Table("memberships m").
		Select("m.*, u.name as member_name, p.title as project_title").
		Joins("LEFT JOIN users u ON m.user_id = u.id").
		Joins("LEFT JOIN projects p ON m.project_id = p.id").
		Where("m.user_id = ?", userID).
		Order("m.created_at ASC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error

	return rows, err
}
