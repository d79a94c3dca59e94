package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/labs-polaris/Polaris-Back-Web/internal/access"
	"github.com/labs-polaris/Polaris-Back-Web/internal/apperr"
	"github.com/labs-polaris/Polaris-Back-Web/internal/middleware"
	"github.com/labs-polaris/Polaris-Back-Web/internal/models"
	"github.com/labs-polaris/Polaris-Back-Web/internal/response"
	"gorm.io/gorm"
)

type CreateOrganizationRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateOrganizationRequest struct {
	Name *string `json:"name"`
}

type OrganizationResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	OwnerUserID string `json:"owner_user_id"`
}

func newOrganizationResponse(org models.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:          org.ID,
		Name:        org.Name,
		OwnerUserID: org.OwnerUserID,
	}
}

// ListOrganizations returns only the organizations the caller belongs to.
func (h *Handler) ListOrganizations(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)

	var orgs []models.Organization

	err := h.DB.
		Joins("JOIN memberships ON memberships.org_id = organizations.id").
		Where("memberships.user_id = ?", user.ID).
		Order("organizations.created_at DESC").
		Find(&orgs).Error

	if err != nil {
		response.Fail(ctx, apperr.Internal("Failed to retrieve organizations"))
		return
	}

	items := make([]OrganizationResponse, 0, len(orgs))

	for _, org := range orgs {
		items = append(items, newOrganizationResponse(org))
	}

	response.OK(ctx, items)
}

// CreateOrganization creates the organization and the creator's owner
// membership in one transaction.
func (h *Handler) CreateOrganization(ctx *gin.Context) {
	var req CreateOrganizationRequest

	if appErr := bindJSON(ctx, &req); appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	user, _ := middleware.CurrentUser(ctx)

	org := models.Organization{
		Name:        req.Name,
		OwnerUserID: user.ID,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&org).Error; err != nil {
			return err
		}

		member := models.Membership{
			OrgID:  org.ID,
			UserID: user.ID,
			Role:   models.RoleOwner,
		}

		return tx.Create(&member).Error
	})

	if err != nil {
		response.Fail(ctx, storeError(err, "Organization already exists"))
		return
	}

	response.OK(ctx, newOrganizationResponse(org))
}

func (h *Handler) GetOrganization(ctx *gin.Context) {
	orgID := ctx.Param("org_id")
	user, _ := middleware.CurrentUser(ctx)

	if _, appErr := access.RequireOrgRole(h.DB, orgID, user.ID, models.RoleMember); appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	var org models.Organization

	if err := h.DB.First(&org, "id = ?", orgID).Error; err != nil {
		response.Fail(ctx, apperr.Internal("Failed to retrieve organization"))
		return
	}

	response.OK(ctx, newOrganizationResponse(org))
}

// UpdateOrganization backs both PATCH and PUT; absent fields are left as-is.
func (h *Handler) UpdateOrganization(ctx *gin.Context) {
	orgID := ctx.Param("org_id")
	user, _ := middleware.CurrentUser(ctx)

	if _, appErr := access.RequireOrgRole(h.DB, orgID, user.ID, models.RoleAdmin); appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	var req UpdateOrganizationRequest

	if appErr := bindJSON(ctx, &req); appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	var org models.Organization

	if err := h.DB.First(&org, "id = ?", orgID).Error; err != nil {
		response.Fail(ctx, apperr.Internal("Failed to retrieve organization"))
		return
	}

	if req.Name != nil {
		org.Name = *req.Name
	}

	if err := h.DB.Save(&org).Error; err != nil {
		response.Fail(ctx, apperr.Internal("Failed to update organization"))
		return
	}

	response.OK(ctx, newOrganizationResponse(org))
}

// DeleteOrganization cascades to memberships, projects, services, policies
// and integrations inside one transaction.
func (h *Handler) DeleteOrganization(ctx *gin.Context) {
	orgID := ctx.Param("org_id")
	user, _ := middleware.CurrentUser(ctx)

	if _, appErr := access.RequireOrgRole(h.DB, orgID, user.ID, models.RoleAdmin); appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var projectIDs []string

		if err := tx.Model(&models.Project{}).Where("org_id = ?", orgID).Pluck("id", &projectIDs).Error; err != nil {
			return err
		}

		if len(projectIDs) > 0 {
			if err := tx.Where("project_id IN ?", projectIDs).Delete(&models.Service{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("org_id = ?", orgID).Delete(&models.Project{}).Error; err != nil {
			return err
		}

		if err := tx.Where("org_id = ?", orgID).Delete(&models.Policy{}).Error; err != nil {
			return err
		}

		if err := tx.Where("org_id = ?", orgID).Delete(&models.Integration{}).Error; err != nil {
			return err
		}

		if err := tx.Where("org_id = ?", orgID).Delete(&models.Membership{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Organization{}, "id = ?", orgID).Error
	})

	if err != nil {
		response.Fail(ctx, apperr.Internal("Failed to delete organization"))
		return
	}

	response.OK(ctx, gin.H{"deleted": true})
}
