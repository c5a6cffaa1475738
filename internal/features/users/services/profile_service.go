package users_services

import (
	"errors"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/nyaruka/phonenumbers"

	users_dto "clubhub/internal/features/users/dto"
	users_models "clubhub/internal/features/users/models"
	users_repositories "clubhub/internal/features/users/repositories"
)

type ProfileService struct {
	userRepository *users_repositories.UserRepository
	logger         *slog.Logger
}

// UpdateProfile applies an explicit patch to the caller's account. Each
// present field is validated on its own; a role change is refused outright.
func (s *ProfileService) UpdateProfile(
	user *users_models.User,
	request *users_dto.UpdateProfileRequestDTO,
) (*users_dto.UserProfileResponseDTO, error) {
	if request.Role != nil {
		return nil, ErrImmutableField
	}

	fieldErrors := validation.Errors{}

	if request.Name != nil {
		if err := validation.Validate(*request.Name, validation.Required, validation.Length(1, 255)); err != nil {
			fieldErrors["name"] = err
		}
	}

	if request.Email != nil {
		if err := validation.Validate(*request.Email, validation.Required, is.EmailFormat); err != nil {
			fieldErrors["email"] = err
		} else if *request.Email != user.Email {
			existing, err := s.userRepository.GetUserByEmail(*request.Email)
			if err != nil {
				return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
			}
			if existing != nil {
				fieldErrors["email"] = errors.New("is already in use")
			}
		}
	}

	if phoneErr := validatePhone(request.Phone); phoneErr != nil {
		fieldErrors["phone"] = phoneErr
	}

	if request.ProfileLink != nil && *request.ProfileLink != "" {
		if err := validation.Validate(*request.ProfileLink, is.URL); err != nil {
			fieldErrors["profileLink"] = err
		}
	}

	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}

	updates := map[string]any{}
	if request.Name != nil {
		updates["name"] = *request.Name
	}
	if request.Email != nil {
		updates["email"] = *request.Email
	}
	if request.Phone != nil {
		updates["phone"] = *request.Phone
	}
	if request.ProfileLink != nil {
		updates["profile_link"] = *request.ProfileLink
	}

	if err := s.userRepository.UpdateProfileFields(user.ID, updates); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	updated, err := s.userRepository.GetUserByID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}

	s.logger.Info("Profile updated", slog.String("userId", user.ID.String()))

	return &users_dto.UserProfileResponseDTO{
		ID:          updated.ID,
		Name:        updated.Name,
		Email:       updated.Email,
		Phone:       updated.Phone,
		ProfileLink: updated.ProfileLink,
		Role:        updated.Role,
		IsVerified:  updated.IsVerified(),
		CreatedAt:   updated.CreatedAt,
	}, nil
}

// validateOptionalContactFields checks the optional sign-up fields the same
// way profile patches are checked.
func validateOptionalContactFields(phone *string, profileLink *string) validation.Errors {
	fieldErrors := validation.Errors{}

	if phoneErr := validatePhone(phone); phoneErr != nil {
		fieldErrors["phone"] = phoneErr
	}

	if profileLink != nil && *profileLink != "" {
		if err := validation.Validate(*profileLink, is.URL); err != nil {
			fieldErrors["profileLink"] = err
		}
	}

	return fieldErrors
}

func validatePhone(phone *string) error {
	if phone == nil || *phone == "" {
		return nil
	}

	parsed, err := phonenumbers.Parse(*phone, "")
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return errors.New("must be a valid phone number in international format")
	}

	return nil
}
