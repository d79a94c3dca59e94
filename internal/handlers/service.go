package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/labs-polaris/Polaris-Back-Web/internal/access"
	"github.com/labs-polaris/Polaris-Back-Web/internal/apperr"
	"github.com/labs-polaris/Polaris-Back-Web/internal/middleware"
	"github.com/labs-polaris/Polaris-Back-Web/internal/models"
	"github.com/labs-polaris/Polaris-Back-Web/internal/query"
	"github.com/labs-polaris/Polaris-Back-Web/internal/response"
	"gorm.io/gorm"
)

type CreateServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=WEB API BATCH OTHER"`
	Environment string `json:"environment" binding:"required,oneof=PROD STAGE DEV"`
}

type UpdateServiceRequest struct {
	Name        *string `json:"name"`
	Type        *string `json:"type" binding:"omitempty,oneof=WEB API BATCH OTHER"`
	Environment *string `json:"environment" binding:"omitempty,oneof=PROD STAGE DEV"`
}

type ServiceResponse struct {
	ID          string                 `json:"id"`
	ProjectID   string                 `json:"project_id"`
	Name        string                 `json:"name"`
	Type        models.ServiceType     `json:"type"`
	Environment models.EnvironmentType `json:"environment"`
}

var serviceSortFields = map[string]string{
	"created_at":  "created_at",
	"name":        "name",
	"type":        "type",
	"environment": "environment",
}

func newServiceResponse(service models.Service) ServiceResponse {
	return ServiceResponse{
		ID:          service.ID,
		ProjectID:   service.ProjectID,
		Name:        service.Name,
		Type:        service.Type,
		Environment: service.Environment,
	}
}

func (h *Handler) ListServices(ctx *gin.Context) {
	projectID := ctx.Param("project_id")
	user, _ := middleware.CurrentUser(ctx)

	project, _, appErr := access.RequireProjectRole(h.DB, projectID, user.ID, models.RoleMember)

	if appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	params := query.ParseParams(ctx)

	tx := h.DB.Model(&models.Service{}).Where("project_id = ?", project.ID)
	tx = query.Search(tx, params.Q, "name")

	var services []models.Service

	total, err := query.Paginate(tx, query.OrderClause(params.Sort, serviceSortFields), params, &services)

	if err != nil {
		response.Fail(ctx, apperr.Internal("Failed to retrieve services"))
		return
	}

	items := make([]ServiceResponse, 0, len(services))

	for _, service := range services {
		items = append(items, newServiceResponse(service))
	}

	response.Paged(ctx, items, response.NewPaging(total, params.Page, params.PageSize))
}

func (h *Handler) CreateService(ctx *gin.Context) {
	projectID := ctx.Param("project_id")
	user, _ := middleware.CurrentUser(ctx)

	project, _, appErr := access.RequireProjectRole(h.DB, projectID, user.ID, models.RoleAdmin)

	if appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	var req CreateServiceRequest

	if appErr := bindJSON(ctx, &req); appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	service := models.Service{
		ProjectID:   project.ID,
		Name:        req.Name,
		Type:        models.ServiceType(req.Type),
		Environment: models.EnvironmentType(req.Environment),
	}

	if err := h.DB.Create(&service).Error; err != nil {
		response.Fail(ctx, apperr.Internal("Failed to create service"))
		return
	}

	response.OK(ctx, newServiceResponse(service))
}

// GetService resolves the owning organization through the project chain
// after the fetch: 404 for a missing service, then membership.
func (h *Handler) GetService(ctx *gin.Context) {
	service, _, appErr := h.findServiceForUser(ctx, models.RoleMember)

	if appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	response.OK(ctx, newServiceResponse(*service))
}

// UpdateService backs both PATCH and PUT; absent fields are left as-is.
func (h *Handler) UpdateService(ctx *gin.Context) {
	service, _, appErr := h.findServiceForUser(ctx, models.RoleAdmin)

	if appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	var req UpdateServiceRequest

	if appErr := bindJSON(ctx, &req); appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	if req.Name != nil {
		service.Name = *req.Name
	}

	if req.Type != nil {
		service.Type = models.ServiceType(*req.Type)
	}

	if req.Environment != nil {
		service.Environment = models.EnvironmentType(*req.Environment)
	}

	if err := h.DB.Save(service).Error; err != nil {
		response.Fail(ctx, apperr.Internal("Failed to update service"))
		return
	}

	response.OK(ctx, newServiceResponse(*service))
}

func (h *Handler) DeleteService(ctx *gin.Context) {
	service, _, appErr := h.findServiceForUser(ctx, models.RoleAdmin)

	if appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	if err := h.DB.Delete(service).Error; err != nil {
		response.Fail(ctx, apperr.Internal("Failed to delete service"))
		return
	}

	response.OK(ctx, gin.H{"deleted": true})
}

// findServiceForUser is the post-fetch enforcement shape for services: fetch
// by id alone, walk Service → Project → Organization, then gate.
func (h *Handler) findServiceForUser(ctx *gin.Context, required models.OrgRole) (*models.Service, *models.Membership, *apperr.Error) {
	serviceID := ctx.Param("service_id")
	user, _ := middleware.CurrentUser(ctx)

	var service models.Service

	if err := h.DB.First(&service, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.NotFound("Service not found")
		}
		return nil, nil, apperr.Internal("Failed to retrieve service")
	}

	var project models.Project

	if err := h.DB.First(&project, "id = ?", service.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.NotFound("Project not found")
		}
		return nil, nil, apperr.Internal("Failed to retrieve project")
	}

	member, appErr := access.RequireMembership(h.DB, project.OrgID, user.ID, required)

	if appErr != nil {
		return nil, nil, appErr
	}

	return &service, member, nil
}
