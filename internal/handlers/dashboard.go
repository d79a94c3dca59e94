package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/labs-polaris/Polaris-Back-Web/internal/apperr"
	"github.com/labs-polaris/Polaris-Back-Web/internal/middleware"
	"github.com/labs-polaris/Polaris-Back-Web/internal/models"
	"github.com/labs-polaris/Polaris-Back-Web/internal/response"
)

type SetupProgress struct {
	HasOrg         bool `json:"has_org"`
	HasProject     bool `json:"has_project"`
	HasService     bool `json:"has_service"`
	HasPolicy      bool `json:"has_policy"`
	HasIntegration bool `json:"has_integration"`
}

type DashboardSummary struct {
	OrgCount         int64             `json:"org_count"`
	ProjectCount     int64             `json:"project_count"`
	ServiceCount     int64             `json:"service_count"`
	PolicyCount      int64             `json:"policy_count"`
	IntegrationCount int64             `json:"integration_count"`
	LatestProjects   []ProjectResponse `json:"latest_projects"`
	LatestServices   []ServiceResponse `json:"latest_services"`
	SetupProgress    SetupProgress     `json:"setup_progress"`
}

// GetDashboardSummary aggregates counts, latest items and setup progress over
// every organization the caller belongs to.
func (h *Handler) GetDashboardSummary(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)

	var orgIDs []string

	if err := h.DB.Model(&models.Membership{}).Where("user_id = ?", user.ID).Pluck("org_id", &orgIDs).Error; err != nil {
		response.Fail(ctx, apperr.Internal("Failed to retrieve memberships"))
		return
	}

	summary := DashboardSummary{
		LatestProjects: []ProjectResponse{},
		LatestServices: []ServiceResponse{},
	}

	if len(orgIDs) == 0 {
		response.OK(ctx, summary)
		return
	}

	counts := []struct {
		model interface{}
		where string
		dest  *int64
	}{
		{&models.Organization{}, "id IN ?", &summary.OrgCount},
		{&models.Project{}, "org_id IN ?", &summary.ProjectCount},
		{&models.Policy{}, "org_id IN ?", &summary.PolicyCount},
		{&models.Integration{}, "org_id IN ?", &summary.IntegrationCount},
	}

	for _, c := range counts {
		if err := h.DB.Model(c.model).Where(c.where, orgIDs).Count(c.dest).Error; err != nil {
			response.Fail(ctx, apperr.Internal("Failed to compute summary"))
			return
		}
	}

	var projectIDs []string

	if err := h.DB.Model(&models.Project{}).Where("org_id IN ?", orgIDs).Pluck("id", &projectIDs).Error; err != nil {
		response.Fail(ctx, apperr.Internal("Failed to compute summary"))
		return
	}

	if len(projectIDs) > 0 {
		if err := h.DB.Model(&models.Service{}).Where("project_id IN ?", projectIDs).Count(&summary.ServiceCount).Error; err != nil {
			response.Fail(ctx, apperr.Internal("Failed to compute summary"))
			return
		}
	}

	var latestProjects []models.Project

	if err := h.DB.Where("org_id IN ?", orgIDs).Order("created_at DESC").Limit(5).Find(&latestProjects).Error; err != nil {
		response.Fail(ctx, apperr.Internal("Failed to compute summary"))
		return
	}

	for _, project := range latestProjects {
		summary.LatestProjects = append(summary.LatestProjects, newProjectResponse(project))
	}

	if len(projectIDs) > 0 {
		var latestServices []models.Service

		if err := h.DB.Where("project_id IN ?", projectIDs).Order("created_at DESC").Limit(5).Find(&latestServices).Error; err != nil {
			response.Fail(ctx, apperr.Internal("Failed to compute summary"))
			return
		}

		for _, service := range latestServices {
			summary.LatestServices = append(summary.LatestServices, newServiceResponse(service))
		}
	}

	summary.SetupProgress = SetupProgress{
		HasOrg:         summary.OrgCount > 0,
		HasProject:     summary.ProjectCount > 0,
		HasService:     summary.ServiceCount > 0,
		HasPolicy:      summary.PolicyCount > 0,
		HasIntegration: summary.IntegrationCount > 0,
	}

	response.OK(ctx, summary)
}
