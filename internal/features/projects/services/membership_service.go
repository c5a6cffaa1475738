package projects_services

import (
	"errors"
	"fmt"
	"log/slog"

	projects_dto "clubhub/internal/features/projects/dto"
	projects_enums "clubhub/internal/features/projects/enums"
	projects_models "clubhub/internal/features/projects/models"
	projects_policy "clubhub/internal/features/projects/policy"
	projects_repositories "clubhub/internal/features/projects/repositories"
	users_enums "clubhub/internal/features/users/enums"
	users_models "clubhub/internal/features/users/models"
	users_services "clubhub/internal/features/users/services"

	"github.com/google/uuid"
)

type MembershipService struct {
	membershipRepository *projects_repositories.MembershipRepository
	projectService       *ProjectService
	userService          *users_services.UserService
	logger               *slog.Logger
}

// RequestJoin creates a PENDING membership for the given user on the
// project. At most one row may exist per (user, project) pair, whatever its
// status.
func (s *MembershipService) RequestJoin(
	projectID uuid.UUID,
	request *projects_dto.RequestJoinRequestDTO,
	actor *users_models.User,
	isAllowlistedAdmin bool,
) (*projects_dto.MembershipResponseDTO, error) {
	if err := authorize(actor, projects_policy.ResourceMembership, projects_policy.ActionCreate, nil, isAllowlistedAdmin); err != nil {
		return nil, err
	}

	project, err := s.projectService.GetProjectWithCache(projectID)
	if err != nil {
		return nil, err
	}

	targetUser, err := s.userService.GetUserByID(request.UserID)
	if err != nil {
		return nil, ErrNotFound
	}

	existing, err := s.membershipRepository.GetMembershipByUserAndProject(targetUser.ID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing membership: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateMembership
	}

	membership := &projects_models.Membership{
		ID:           uuid.New(),
		UserID:       &targetUser.ID,
		ProjectID:    &projectID,
		Role:         request.Role,
		Status:       projects_enums.MembershipStatusPending,
		ContactEmail: request.ContactEmail,
	}

	if err := s.membershipRepository.CreateMembership(membership); err != nil {
		return nil, fmt.Errorf("failed to create membership: %w", err)
	}

	s.logger.Info("Membership requested",
		slog.String("membershipId", membership.ID.String()),
		slog.String("userId", targetUser.ID.String()),
		slog.String("projectId", projectID.String()),
		slog.String("role", string(request.Role)))

	return s.toMembershipResponse(membership, &targetUser.Name, &project.Title), nil
}

// Approve transitions PENDING to ACTIVE. A membership that is already
// ACTIVE fails the transition explicitly rather than succeeding silently.
func (s *MembershipService) Approve(
	membershipID uuid.UUID,
	actor *users_models.User,
	isAllowlistedAdmin bool,
) (*projects_dto.MembershipResponseDTO, error) {
	membership, err := s.membershipRepository.GetMembershipByID(membershipID)
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	if membership == nil {
		return nil, ErrNotFound
	}

	if err := authorize(actor, projects_policy.ResourceMembership, projects_policy.ActionApprove, membership, isAllowlistedAdmin); err != nil {
		return nil, err
	}

	err = s.membershipRepository.ApproveMembership(membershipID, func(current projects_enums.MembershipStatus) error {
		if current == projects_enums.MembershipStatusActive {
			return ErrInvalidTransition
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, projects_repositories.ErrMembershipNotFound) {
			return nil, ErrNotFound
		}
		if errors.Is(err, ErrInvalidTransition) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to approve membership: %w", err)
	}

	s.logger.Info("Membership approved",
		slog.String("membershipId", membershipID.String()),
		slog.String("approvedBy", actor.ID.String()))

	updated, err := s.membershipRepository.GetMembershipByID(membershipID)
	if err != nil || updated == nil {
		return nil, fmt.Errorf("failed to reload membership: %w", err)
	}

	memberName, projectTitle := s.resolveNames(updated)

	return s.toMembershipResponse(updated, memberName, projectTitle), nil
}

// ChangeRole updates the role only; the status is never touched here.
func (s *MembershipService) ChangeRole(
	membershipID uuid.UUID,
	request *projects_dto.ChangeMemberRoleRequestDTO,
	actor *users_models.User,
	isAllowlistedAdmin bool,
) (*projects_dto.MembershipResponseDTO, error) {
	membership, err := s.membershipRepository.GetMembershipByID(membershipID)
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	if membership == nil {
		return nil, ErrNotFound
	}

	if err := authorize(actor, projects_policy.ResourceMembership, projects_policy.ActionChangeRole, membership, isAllowlistedAdmin); err != nil {
		return nil, err
	}

	err = s.membershipRepository.UpdateMembershipRole(
		membershipID,
		request.Role,
		func(current *projects_models.Membership) error {
			// demoting the only active lead would leave the project leaderless
			if current.Role == users_enums.MembershipRoleLead &&
				request.Role != users_enums.MembershipRoleLead &&
				current.Status == projects_enums.MembershipStatusActive &&
				current.ProjectID != nil {
				others, err := s.membershipRepository.CountOtherActiveLeads(*current.ProjectID, current.ID)
				if err != nil {
					return err
				}
				if others == 0 {
					return ErrLeadSuccession
				}
			}

			return nil
		},
	)
	if err != nil {
		if errors.Is(err, projects_repositories.ErrMembershipNotFound) {
			return nil, ErrNotFound
		}
		if errors.Is(err, ErrLeadSuccession) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to change membership role: %w", err)
	}

	s.logger.Info("Membership role changed",
		slog.String("membershipId", membershipID.String()),
		slog.String("newRole", string(request.Role)),
		slog.String("changedBy", actor.ID.String()))

	updated, err := s.membershipRepository.GetMembershipByID(membershipID)
	if err != nil || updated == nil {
		return nil, fmt.Errorf("failed to reload membership: %w", err)
	}

	memberName, projectTitle := s.resolveNames(updated)

	return s.toMembershipResponse(updated, memberName, projectTitle), nil
}

// Remove deletes the membership from either status. Removing the only
// ACTIVE lead of a project fails until another lead exists.
func (s *MembershipService) Remove(
	membershipID uuid.UUID,
	actor *users_models.User,
	isAllowlistedAdmin bool,
) error {
	membership, err := s.membershipRepository.GetMembershipByID(membershipID)
	if err != nil {
		return fmt.Errorf("failed to get membership: %w", err)
	}
	if membership == nil {
		return ErrNotFound
	}

	if err := authorize(actor, projects_policy.ResourceMembership, projects_policy.ActionRemove, membership, isAllowlistedAdmin); err != nil {
		return err
	}

	if membership.Role == users_enums.MembershipRoleLead &&
		membership.Status == projects_enums.MembershipStatusActive &&
		membership.ProjectID != nil {
		others, err := s.membershipRepository.CountOtherActiveLeads(*membership.ProjectID, membership.ID)
		if err != nil {
			return fmt.Errorf("failed to count project leads: %w", err)
		}
		if others == 0 {
			return ErrLeadSuccession
		}
	}

	if err := s.membershipRepository.DeleteMembership(membershipID); err != nil {
		return fmt.Errorf("failed to remove membership: %w", err)
	}

	s.logger.Info("Membership removed",
		slog.String("membershipId", membershipID.String()),
		slog.String("removedBy", actor.ID.String()))

	return nil
}

func (s *MembershipService) ListForProject(
	projectID uuid.UUID,
	limit, offset int,
) (*projects_dto.ListMembershipsResponseDTO, error) {
	if _, err := s.projectService.GetProjectWithCache(projectID); err != nil {
		return nil, err
	}

	limit, offset = normalizePagination(limit, offset)

	rows, err := s.membershipRepository.GetMembershipsByProject(projectID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list project memberships: %w", err)
	}

	return s.toListResponse(rows, limit, offset), nil
}

func (s *MembershipService) ListForUser(
	userID uuid.UUID,
	limit, offset int,
) (*projects_dto.ListMembershipsResponseDTO, error) {
	limit, offset = normalizePagination(limit, offset)

	rows, err := s.membershipRepository.GetMembershipsByUser(userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list user memberships: %w", err)
	}

	return s.toListResponse(rows, limit, offset), nil
}

func (s *MembershipService) toListResponse(
	rows []*projects_repositories.MembershipRow,
	limit, offset int,
) *projects_dto.ListMembershipsResponseDTO {
	memberships := make([]projects_dto.MembershipResponseDTO, len(rows))
	for i, row := range rows {
		memberships[i] = *s.toMembershipResponse(&row.Membership, row.MemberName, row.ProjectTitle)
	}

	return &projects_dto.ListMembershipsResponseDTO{
		Memberships: memberships,
		Limit:       limit,
		Offset:      offset,
	}
}

// resolveNames denormalizes the member name and project title for a single
// membership response.
func (s *MembershipService) resolveNames(membership *projects_models.Membership) (*string, *string) {
	var memberName, projectTitle *string

	if membership.UserID != nil {
		if user, err := s.userService.GetUserByID(*membership.UserID); err == nil {
			memberName = &user.Name
		}
	}

	if membership.ProjectID != nil {
		if project, err := s.projectService.GetProjectWithCache(*membership.ProjectID); err == nil {
			projectTitle = &project.Title
		}
	}

	return memberName, projectTitle
}

func (s *MembershipService) toMembershipResponse(
	membership *projects_models.Membership,
	memberName, projectTitle *string,
) *projects_dto.MembershipResponseDTO {
	return &projects_dto.MembershipResponseDTO{
		ID:           membership.ID,
		UserID:       membership.UserID,
		ProjectID:    membership.ProjectID,
		MemberName:   memberName,
		ProjectTitle: projectTitle,
		Role:         membership.Role,
		Status:       membership.Status,
		ContactEmail: membership.ContactEmail,
		CreatedAt:    membership.CreatedAt,
		UpdatedAt:    membership.UpdatedAt,
	}
}
