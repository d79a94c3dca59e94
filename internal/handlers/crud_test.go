package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/labs-polaris/Polaris-Back-Web/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrganizationCreatesOwnerMembership(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "owner@example.com", "Owner")

	orgID := env.createOrg(t, token, "Acme")

	var members []models.Membership
	require.NoError(t, env.DB.Where("org_id = ?", orgID).Find(&members).Error)
	require.Len(t, members, 1)
	assert.Equal(t, models.RoleOwner, members[0].Role)
}

func TestAddMemberUnknownEmailAndDuplicate(t *testing.T) {
	env := newTestEnv(t)
	owner := env.registerUser(t, "owner@example.com", "Owner")
	env.registerUser(t, "guest@example.com", "Guest")
	orgID := env.createOrg(t, owner, "Acme")

	rec, body := env.request(t, http.MethodPost, "/api/orgs/"+orgID+"/members", owner, gin.H{
		"email": "nobody@example.com",
		"role":  "member",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)

	rec, body = env.request(t, http.MethodPost, "/api/orgs/"+orgID+"/members", owner, gin.H{
		"email": "guest@example.com",
		"role":  "admin",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var member struct {
		Role string `json:"role"`
	}
	decodeData(t, body, &member)
	assert.Equal(t, "admin", member.Role)

	rec, body = env.request(t, http.MethodPost, "/api/orgs/"+orgID+"/members", owner, gin.H{
		"email": "guest@example.com",
		"role":  "member",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", body.Error.Code)
}

func TestDuplicateProjectKeyConflict(t *testing.T) {
	env := newTestEnv(t)
	owner := env.registerUser(t, "owner@example.com", "Owner")
	orgID := env.createOrg(t, owner, "Acme")
	env.createProject(t, owner, orgID, "Console", "CON")

	rec, body := env.request(t, http.MethodPost, "/api/orgs/"+orgID+"/projects", owner, gin.H{
		"name": "Console Two",
		"key":  "CON",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", body.Error.Code)

	// Same key in a different org is fine.
	otherOrg := env.createOrg(t, owner, "Beta")
	env.createProject(t, owner, otherOrg, "Console", "CON")
}

func TestDeleteOrganizationCascades(t *testing.T) {
	env := newTestEnv(t)
	owner := env.registerUser(t, "owner@example.com", "Owner")
	orgID := env.createOrg(t, owner, "Acme")
	projectID := env.createProject(t, owner, orgID, "Console", "CON")

	rec, _ := env.request(t, http.MethodPost, "/api/projects/"+projectID+"/services", owner, gin.H{
		"name":        "console-api",
		"type":        "API",
		"environment": "PROD",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = env.request(t, http.MethodPost, "/api/orgs/"+orgID+"/policies", owner, gin.H{
		"type":        "SLA",
		"config_json": gin.H{"p1_days": 7},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = env.request(t, http.MethodPost, "/api/orgs/"+orgID+"/integrations", owner, gin.H{
		"provider":    "SLACK",
		"config_json": gin.H{"webhook_url": "https://hooks.slack.example"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = env.request(t, http.MethodDelete, "/api/orgs/"+orgID, owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	for name, model := range map[string]interface{}{
		"memberships":  &models.Membership{},
		"projects":     &models.Project{},
		"policies":     &models.Policy{},
		"integrations": &models.Integration{},
	} {
		var count int64
		require.NoError(t, env.DB.Model(model).Where("org_id = ?", orgID).Count(&count).Error)
		assert.Zero(t, count, "%s should be removed with the org", name)
	}

	var serviceCount int64
	require.NoError(t, env.DB.Model(&models.Service{}).Where("project_id = ?", projectID).Count(&serviceCount).Error)
	assert.Zero(t, serviceCount, "services should be removed transitively")
}

func TestProjectPagination(t *testing.T) {
	env := newTestEnv(t)
	owner := env.registerUser(t, "owner@example.com", "Owner")
	orgID := env.createOrg(t, owner, "Acme")

	for i := 0; i < 25; i++ {
		env.createProject(t, owner, orgID, fmt.Sprintf("Project %02d", i), fmt.Sprintf("P%02d", i))
	}

	rec, body := env.request(t, http.MethodGet, "/api/orgs/"+orgID+"/projects?page=1&page_size=20", owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []struct {
		ID string `json:"id"`
	}
	decodeData(t, body, &items)
	assert.Len(t, items, 20)
	require.NotNil(t, body.Meta.Paging)
	assert.Equal(t, int64(25), body.Meta.Paging.Total)
	assert.True(t, body.Meta.Paging.HasNext)

	rec, body = env.request(t, http.MethodGet, "/api/orgs/"+orgID+"/projects?page=2&page_size=20", owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, body, &items)
	assert.Len(t, items, 5)
	require.NotNil(t, body.Meta.Paging)
	assert.False(t, body.Meta.Paging.HasNext)

	// page_size is clamped to 100.
	rec, body = env.request(t, http.MethodGet, "/api/orgs/"+orgID+"/projects?page=1&page_size=500", owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, body.Meta.Paging)
	assert.Equal(t, 100, body.Meta.Paging.PageSize)
}

func TestProjectSearchAndSort(t *testing.T) {
	env := newTestEnv(t)
	owner := env.registerUser(t, "owner@example.com", "Owner")
	orgID := env.createOrg(t, owner, "Acme")

	env.createProject(t, owner, orgID, "Console", "CON")
	env.createProject(t, owner, orgID, "Scanner", "SCAN")
	env.createProject(t, owner, orgID, "Billing", "BILL")

	// Case-insensitive substring search over name and key.
	rec, body := env.request(t, http.MethodGet, "/api/orgs/"+orgID+"/projects?q=CONSO", owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []struct {
		Name string `json:"name"`
	}
	decodeData(t, body, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "Console", items[0].Name)

	rec, body = env.request(t, http.MethodGet, "/api/orgs/"+orgID+"/projects?sort=name:asc", owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, body, &items)
	require.Len(t, items, 3)
	assert.Equal(t, "Billing", items[0].Name)
	assert.Equal(t, "Scanner", items[2].Name)

	// Unknown sort field falls back silently to default ordering.
	rec, body = env.request(t, http.MethodGet, "/api/orgs/"+orgID+"/projects?sort=nonsense:asc", owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, body, &items)
	assert.Len(t, items, 3)
}

func TestUpdateProjectPartialFields(t *testing.T) {
	env := newTestEnv(t)
	owner := env.registerUser(t, "owner@example.com", "Owner")
	orgID := env.createOrg(t, owner, "Acme")
	projectID := env.createProject(t, owner, orgID, "Console", "CON")

	// PATCH with only a name leaves the key alone; PUT behaves identically.
	for _, method := range []string{http.MethodPatch, http.MethodPut} {
		rec, body := env.request(t, method, "/api/projects/"+projectID, owner, gin.H{
			"name": "Renamed via " + method,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var project struct {
			Name string `json:"name"`
			Key  string `json:"key"`
		}
		decodeData(t, body, &project)
		assert.Equal(t, "Renamed via "+method, project.Name)
		assert.Equal(t, "CON", project.Key)
	}
}

func TestPolicyConfigStoredVerbatim(t *testing.T) {
	env := newTestEnv(t)
	owner := env.registerUser(t, "owner@example.com", "Owner")
	orgID := env.createOrg(t, owner, "Acme")

	config := gin.H{
		"p1_days": float64(7),
		"nested":  gin.H{"threshold": "HIGH", "levels": []interface{}{"P1", "P2"}},
	}

	rec, body := env.request(t, http.MethodPost, "/api/orgs/"+orgID+"/policies", owner, gin.H{
		"type":        "SEVERITY_MAPPING",
		"config_json": config,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var policy struct {
		ID         string                 `json:"id"`
		Type       string                 `json:"type"`
		ConfigJSON map[string]interface{} `json:"config_json"`
		IsEnabled  bool                   `json:"is_enabled"`
	}
	decodeData(t, body, &policy)
	assert.True(t, policy.IsEnabled)

	rec, body = env.request(t, http.MethodGet, "/api/policies/"+policy.ID, owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, body, &policy)
	assert.Equal(t, "SEVERITY_MAPPING", policy.Type)
	assert.Equal(t, float64(7), policy.ConfigJSON["p1_days"])

	nested, ok := policy.ConfigJSON["nested"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "HIGH", nested["threshold"])
}

func TestServiceEnumValidation(t *testing.T) {
	env := newTestEnv(t)
	owner := env.registerUser(t, "owner@example.com", "Owner")
	orgID := env.createOrg(t, owner, "Acme")
	projectID := env.createProject(t, owner, orgID, "Console", "CON")

	rec, body := env.request(t, http.MethodPost, "/api/projects/"+projectID+"/services", owner, gin.H{
		"name":        "console-api",
		"type":        "LAMBDA",
		"environment": "PROD",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
}

func TestDashboardSummary(t *testing.T) {
	env := newTestEnv(t)
	owner := env.registerUser(t, "owner@example.com", "Owner")

	// Empty state first.
	rec, body := env.request(t, http.MethodGet, "/api/dashboard/summary", owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary struct {
		OrgCount       int64 `json:"org_count"`
		ProjectCount   int64 `json:"project_count"`
		ServiceCount   int64 `json:"service_count"`
		LatestProjects []struct {
			Name string `json:"name"`
		} `json:"latest_projects"`
		SetupProgress struct {
			HasOrg     bool `json:"has_org"`
			HasProject bool `json:"has_project"`
			HasService bool `json:"has_service"`
		} `json:"setup_progress"`
	}
	decodeData(t, body, &summary)
	assert.Zero(t, summary.OrgCount)
	assert.False(t, summary.SetupProgress.HasOrg)

	orgID := env.createOrg(t, owner, "Acme")
	projectID := env.createProject(t, owner, orgID, "Console", "CON")

	rec, _ = env.request(t, http.MethodPost, "/api/projects/"+projectID+"/services", owner, gin.H{
		"name":        "console-api",
		"type":        "API",
		"environment": "PROD",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body = env.request(t, http.MethodGet, "/api/dashboard/summary", owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, body, &summary)
	assert.Equal(t, int64(1), summary.OrgCount)
	assert.Equal(t, int64(1), summary.ProjectCount)
	assert.Equal(t, int64(1), summary.ServiceCount)
	assert.True(t, summary.SetupProgress.HasOrg)
	assert.True(t, summary.SetupProgress.HasProject)
	assert.True(t, summary.SetupProgress.HasService)
	require.Len(t, summary.LatestProjects, 1)
	assert.Equal(t, "Console", summary.LatestProjects[0].Name)
}
