package users_repositories

import (
	users_models "clubhub/internal/features/users/models"
	"clubhub/internal/storage"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct{}

func (r *UserRepository) CreateUser(user *users_models.User) error {
	return storage.GetDb().Create(user).Error
}

func (r *UserRepository) GetUserByEmail(email string) (*users_models.User, error) {
	var user users_models.User

	if err := storage.GetDb().Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	var user users_models.User

	if err := storage.GetDb().Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetUserByVerificationToken(token string) (*users_models.User, error) {
	var user users_models.User

	if err := storage.GetDb().Where("verification_token = ?", token).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) UpdateUserPassword(userID uuid.UUID, hashedPassword string) error {
	return storage.GetDb().Model(&users_models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"hashed_password":        hashedPassword,
			"password_creation_time": time.Now().UTC(),
		}).Error
}

// MarkEmailVerified sets the verification timestamp once. Rows already
// verified are left untouched, which keeps repeated verification calls
// idempotent under concurrency.
func (r *UserRepository) MarkEmailVerified(userID uuid.UUID) error {
	return storage.GetDb().Model(&users_models.User{}).
		Where("id = ? AND email_verified_at IS NULL", userID).
		Updates(map[string]any{
			"email_verified_at": time.Now().UTC(),
			"updated_at":        time.Now().UTC(),
		}).Error
}

func (r *UserRepository) UpdateVerificationToken(userID uuid.UUID, token string) error {
	return storage.GetDb().Model(&users_models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"verification_token":   token,
			"verification_sent_at": time.Now().UTC(),
		}).Error
}

// UpdateProfileFields applies an already-validated set of column updates.
// The role column is never part of the map; it is written once at creation
// and no repository method touches it afterwards.
func (r *UserRepository) UpdateProfileFields(userID uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}

	updates["updated_at"] = time.Now().UTC()

	return storage.GetDb().Model(&users_models.User{}).
		Where("id = ?", userID).
		Updates(updates).Error
}

func (r *UserRepository) DeleteUser(userID uuid.UUID) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("UPDATE memberships SET user_id = NULL WHERE user_id = ?", userID).Error; err != nil {
			return err
		}

		return tx.Delete(&users_models.User{}, userID).Error
	})
}

// DeleteUnverifiedBefore removes every account that never completed email
// verification and was created before the cutoff. Two bounded statements in
// one transaction; verified users are never matched, for any cutoff.
func (r *UserRepository) DeleteUnverifiedBefore(cutoff time.Time) (int64, error) {
	var deleted int64

	err := storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"UPDATE memberships SET user_id = NULL WHERE user_id IN "+
				"(SELECT id FROM users WHERE email_verified_at IS NULL AND created_at < ?)",
			cutoff,
		).Error; err != nil {
			return err
		}

		result := tx.
			Where("email_verified_at IS NULL AND created_at < ?", cutoff).
			Delete(&users_models.User{})
		if result.Error != nil {
			return result.Error
		}

		deleted = result.RowsAffected
		return nil
	})

	return deleted, err
}

func (r *UserRepository) RenameUserEmailForTests(oldEmail, newEmail string) error {
	return storage.GetDb().Model(&users_models.User{}).
		Where("email = ?", oldEmail).
		Update("email", newEmail).Error
}
