package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/labs-polaris/Polaris-Back-Web/internal/access"
	"github.com/labs-polaris/Polaris-Back-Web/internal/apperr"
	"github.com/labs-polaris/Polaris-Back-Web/internal/middleware"
	"github.com/labs-polaris/Polaris-Back-Web/internal/models"
	"github.com/labs-polaris/Polaris-Back-Web/internal/response"
	"gorm.io/gorm"
)

type CreateIntegrationRequest struct {
	Provider   string                 `json:"provider" binding:"required,oneof=GITHUB GITLAB JIRA SLACK"`
	ConfigJSON map[string]interface{} `json:"config_json" binding:"required"`
	IsEnabled  *bool                  `json:"is_enabled"`
}

type UpdateIntegrationRequest struct {
	Provider   *string                `json:"provider" binding:"omitempty,oneof=GITHUB GITLAB JIRA SLACK"`
	ConfigJSON map[string]interface{} `json:"config_json"`
	IsEnabled  *bool                  `json:"is_enabled"`
}

type IntegrationResponse struct {
	ID         string                     `json:"id"`
	OrgID      string                     `json:"org_id"`
	Provider   models.IntegrationProvider `json:"provider"`
	ConfigJSON map[string]interface{}     `json:"config_json"`
	IsEnabled  bool                       `json:"is_enabled"`
}

func newIntegrationResponse(integration models.Integration) IntegrationResponse {
	return IntegrationResponse{
		ID:         integration.ID,
		OrgID:      integration.OrgID,
		Provider:   integration.Provider,
		ConfigJSON: decodeConfig(integration.ConfigJSON),
		IsEnabled:  integration.IsEnabled,
	}
}

func (h *Handler) ListIntegrations(ctx *gin.Context) {
	orgID := ctx.Param("org_id")
	user, _ := middleware.CurrentUser(ctx)

	if _, appErr := access.RequireOrgRole(h.DB, orgID, user.ID, models.RoleMember); appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	var integrations []models.Integration

	if err := h.DB.Where("org_id = ?", orgID).Order("created_at DESC").Find(&integrations).Error; err != nil {
		response.Fail(ctx, apperr.Internal("Failed to retrieve integrations"))
		return
	}

	items := make([]IntegrationResponse, 0, len(integrations))

	for _, integration := range integrations {
		items = append(items, newIntegrationResponse(integration))
	}

	response.OK(ctx, items)
}

func (h *Handler) CreateIntegration(ctx *gin.Context) {
	orgID := ctx.Param("org_id")
	user, _ := middleware.CurrentUser(ctx)

	if _, appErr := access.RequireOrgRole(h.DB, orgID, user.ID, models.RoleAdmin); appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	var req CreateIntegrationRequest

	if appErr := bindJSON(ctx, &req); appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	config, appErr := encodeConfig(req.ConfigJSON)

	if appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	integration := models.Integration{
		OrgID:      orgID,
		Provider:   models.IntegrationProvider(req.Provider),
		ConfigJSON: config,
		IsEnabled:  true,
	}

	if req.IsEnabled != nil {
		integration.IsEnabled = *req.IsEnabled
	}

	if err := h.DB.Create(&integration).Error; err != nil {
		response.Fail(ctx, apperr.Internal("Failed to create integration"))
		return
	}

	response.OK(ctx, newIntegrationResponse(integration))
}

func (h *Handler) GetIntegration(ctx *gin.Context) {
	integration, appErr := h.findIntegrationForUser(ctx, models.RoleMember)

	if appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	response.OK(ctx, newIntegrationResponse(*integration))
}

// UpdateIntegration backs both PATCH and PUT; absent fields are left as-is.
func (h *Handler) UpdateIntegration(ctx *gin.Context) {
	integration, appErr := h.findIntegrationForUser(ctx, models.RoleAdmin)

	if appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	var req UpdateIntegrationRequest

	if appErr := bindJSON(ctx, &req); appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	if req.Provider != nil {
		integration.Provider = models.IntegrationProvider(*req.Provider)
	}

	if req.ConfigJSON != nil {
		config, appErr := encodeConfig(req.ConfigJSON)

		if appErr != nil {
			response.Fail(ctx, appErr)
			return
		}

		integration.ConfigJSON = config
	}

	if req.IsEnabled != nil {
		integration.IsEnabled = *req.IsEnabled
	}

	if err := h.DB.Save(integration).Error; err != nil {
		response.Fail(ctx, apperr.Internal("Failed to update integration"))
		return
	}

	response.OK(ctx, newIntegrationResponse(*integration))
}

func (h *Handler) DeleteIntegration(ctx *gin.Context) {
	integration, appErr := h.findIntegrationForUser(ctx, models.RoleAdmin)

	if appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	if err := h.DB.Delete(integration).Error; err != nil {
		response.Fail(ctx, apperr.Internal("Failed to delete integration"))
		return
	}

	response.OK(ctx, gin.H{"deleted": true})
}

func (h *Handler) findIntegrationForUser(ctx *gin.Context, required models.OrgRole) (*models.Integration, *apperr.Error) {
	integrationID := ctx.Param("integration_id")
	user, _ := middleware.CurrentUser(ctx)

	var integration models.Integration

	if err := h.DB.First(&integration, "id = ?", integrationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Integration not found")
		}
		return nil, apperr.Internal("Failed to retrieve integration")
	}

	if _, appErr := access.RequireMembership(h.DB, integration.OrgID, user.ID, required); appErr != nil {
		return nil, appErr
	}

	return &integration, nil
}
