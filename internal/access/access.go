// Package access implements the role hierarchy and its enforcement across
// the organization → project → service chain. Every protected operation goes
// through the single rank comparison in RoleAtLeast; no handler compares role
// identity directly.
//
// The failure ordering is fixed: resource existence (404) before membership
// existence (403) before role sufficiency (403).
package access

import (
	"errors"

	"github.com/labs-polaris/Polaris-Back-Web/internal/apperr"
	"github.com/labs-polaris/Polaris-Back-Web/internal/models"
	"gorm.io/gorm"
)

var rolePriority = map[models.OrgRole]int{
	models.RoleMember: 1,
	models.RoleAdmin:  2,
	models.RoleOwner:  3,
}

// RoleAtLeast reports whether role satisfies the required minimum. Roles are
// totally ordered: member < admin < owner.
func RoleAtLeast(role, required models.OrgRole) bool {
	return rolePriority[role] >= rolePriority[required]
}

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role models.OrgRole) bool {
	_, ok := rolePriority[role]
	return ok
}

// ResolveMember returns the unique membership for the (org, user) pair, or
// nil when the user does not belong to the organization. Non-membership is an
// expected outcome, not an error.
func ResolveMember(gdb *gorm.DB, orgID, userID string) (*models.Membership, error) {
	var member models.Membership

	err := gdb.Where("org_id = ? AND user_id = ?", orgID, userID).First(&member).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &member, nil
}

// RequireMembership is the post-fetch enforcement shape: the caller already
// confirmed the target resource exists and derived its owning organization.
func RequireMembership(gdb *gorm.DB, orgID, userID string, required models.OrgRole) (*models.Membership, *apperr.Error) {
	member, err := ResolveMember(gdb, orgID, userID)

	if err != nil {
		return nil, apperr.Internal("Failed to resolve membership")
	}

	if member == nil {
		return nil, apperr.Forbidden("Not a member of this organization")
	}

	if !RoleAtLeast(member.Role, required) {
		return nil, apperr.Forbidden("Insufficient role")
	}

	return member, nil
}

// RequireOrgRole is the pre-resolved enforcement shape for routes scoped
// directly by organization id: organization existence is checked first.
func RequireOrgRole(gdb *gorm.DB, orgID, userID string, required models.OrgRole) (*models.Membership, *apperr.Error) {
	var org models.Organization

	if err := gdb.First(&org, "id = ?", orgID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Organization not found")
		}
		return nil, apperr.Internal("Failed to retrieve organization")
	}

	return RequireMembership(gdb, orgID, userID, required)
}

// RequireProjectRole derives the owning organization from the project and
// gates on it. The project is returned so handlers do not fetch it twice.
func RequireProjectRole(gdb *gorm.DB, projectID, userID string, required models.OrgRole) (*models.Project, *models.Membership, *apperr.Error) {
	var project models.Project

	if err := gdb.First(&project, "id = ?", projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.NotFound("Project not found")
		}
		return nil, nil, apperr.Internal("Failed to retrieve project")
	}

	member, appErr := RequireMembership(gdb, project.OrgID, userID, required)

	if appErr != nil {
		return nil, nil, appErr
	}

	return &project, member, nil
}
