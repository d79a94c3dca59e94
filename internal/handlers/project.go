package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/labs-polaris/Polaris-Back-Web/internal/access"
	"github.com/labs-polaris/Polaris-Back-Web/internal/apperr"
	"github.com/labs-polaris/Polaris-Back-Web/internal/middleware"
	"github.com/labs-polaris/Polaris-Back-Web/internal/models"
	"github.com/labs-polaris/Polaris-Back-Web/internal/query"
	"github.com/labs-polaris/Polaris-Back-Web/internal/response"
	"gorm.io/gorm"
)

type CreateProjectRequest struct {
	Name string `json:"name" binding:"required"`
	Key  string `json:"key" binding:"required"`
}

type UpdateProjectRequest struct {
	Name *string `json:"name"`
	Key  *string `json:"key"`
}

type ProjectResponse struct {
	ID    string `json:"id"`
	OrgID string `json:"org_id"`
	Name  string `json:"name"`
	Key   string `json:"key"`
}

// projectSortFields whitelists sortable columns for project listings.
var projectSortFields = map[string]string{
	"created_at": "created_at",
	"name":       "name",
	"key":        "key",
}

func newProjectResponse(project models.Project) ProjectResponse {
	return ProjectResponse{
		ID:    project.ID,
		OrgID: project.OrgID,
		Name:  project.Name,
		Key:   project.Key,
	}
}

func (h *Handler) ListProjects(ctx *gin.Context) {
	orgID := ctx.Param("org_id")
	user, _ := middleware.CurrentUser(ctx)

	if _, appErr := access.RequireOrgRole(h.DB, orgID, user.ID, models.RoleMember); appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	params := query.ParseParams(ctx)

	tx := h.DB.Model(&models.Project{}).Where("org_id = ?", orgID)
	tx = query.Search(tx, params.Q, "name", "key")

	var projects []models.Project

	total, err := query.Paginate(tx, query.OrderClause(params.Sort, projectSortFields), params, &projects)

	if err != nil {
		response.Fail(ctx, apperr.Internal("Failed to retrieve projects"))
		return
	}

	items := make([]ProjectResponse, 0, len(projects))

	for _, project := range projects {
		items = append(items, newProjectResponse(project))
	}

	response.Paged(ctx, items, response.NewPaging(total, params.Page, params.PageSize))
}

func (h *Handler) CreateProject(ctx *gin.Context) {
	orgID := ctx.Param("org_id")
	user, _ := middleware.CurrentUser(ctx)

	if _, appErr := access.RequireOrgRole(h.DB, orgID, user.ID, models.RoleAdmin); appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	var req CreateProjectRequest

	if appErr := bindJSON(ctx, &req); appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	project := models.Project{
		OrgID: orgID,
		Name:  req.Name,
		Key:   req.Key,
	}

	if err := h.DB.Create(&project).Error; err != nil {
		response.Fail(ctx, storeError(err, "Project key already exists in org"))
		return
	}

	response.OK(ctx, newProjectResponse(project))
}

func (h *Handler) GetProject(ctx *gin.Context) {
	projectID := ctx.Param("project_id")
	user, _ := middleware.CurrentUser(ctx)

	project, _, appErr := access.RequireProjectRole(h.DB, projectID, user.ID, models.RoleMember)

	if appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	response.OK(ctx, newProjectResponse(*project))
}

// UpdateProject backs both PATCH and PUT; absent fields are left as-is.
func (h *Handler) UpdateProject(ctx *gin.Context) {
	projectID := ctx.Param("project_id")
	user, _ := middleware.CurrentUser(ctx)

	project, _, appErr := access.RequireProjectRole(h.DB, projectID, user.ID, models.RoleAdmin)

	if appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	var req UpdateProjectRequest

	if appErr := bindJSON(ctx, &req); appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	if req.Name != nil {
		project.Name = *req.Name
	}

	if req.Key != nil {
		project.Key = *req.Key
	}

	if err := h.DB.Save(project).Error; err != nil {
		response.Fail(ctx, storeError(err, "Project key already exists in org"))
		return
	}

	response.OK(ctx, newProjectResponse(*project))
}

// DeleteProject cascades to the project's services in one transaction.
func (h *Handler) DeleteProject(ctx *gin.Context) {
	projectID := ctx.Param("project_id")
	user, _ := middleware.CurrentUser(ctx)

	project, _, appErr := access.RequireProjectRole(h.DB, projectID, user.ID, models.RoleAdmin)

	if appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Service{}).Error; err != nil {
			return err
		}

		return tx.Delete(project).Error
	})

	if err != nil {
		response.Fail(ctx, apperr.Internal("Failed to delete project"))
		return
	}

	response.OK(ctx, gin.H{"deleted": true})
}
