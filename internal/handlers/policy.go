package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/labs-polaris/Polaris-Back-Web/internal/access"
	"github.com/labs-polaris/Polaris-Back-Web/internal/apperr"
	"github.com/labs-polaris/Polaris-Back-Web/internal/middleware"
	"github.com/labs-polaris/Polaris-Back-Web/internal/models"
	"github.com/labs-polaris/Polaris-Back-Web/internal/response"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreatePolicyRequest struct {
	Type       string                 `json:"type" binding:"required,oneof=SLA SEVERITY_MAPPING PR_GATE"`
	ConfigJSON map[string]interface{} `json:"config_json" binding:"required"`
	IsEnabled  *bool                  `json:"is_enabled"`
}

type UpdatePolicyRequest struct {
	Type       *string                `json:"type" binding:"omitempty,oneof=SLA SEVERITY_MAPPING PR_GATE"`
	ConfigJSON map[string]interface{} `json:"config_json"`
	IsEnabled  *bool                  `json:"is_enabled"`
}

type PolicyResponse struct {
	ID         string                 `json:"id"`
	OrgID      string                 `json:"org_id"`
	Type       models.PolicyType      `json:"type"`
	ConfigJSON map[string]interface{} `json:"config_json"`
	IsEnabled  bool                   `json:"is_enabled"`
}

func newPolicyResponse(policy models.Policy) PolicyResponse {
	return PolicyResponse{
		ID:         policy.ID,
		OrgID:      policy.OrgID,
		Type:       policy.Type,
		ConfigJSON: decodeConfig(policy.ConfigJSON),
		IsEnabled:  policy.IsEnabled,
	}
}

// decodeConfig returns the stored opaque blob verbatim as a document. The
// core never interprets it.
func decodeConfig(raw datatypes.JSON) map[string]interface{} {
	var config map[string]interface{}

	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &config)
	}

	return config
}

func encodeConfig(config map[string]interface{}) (datatypes.JSON, *apperr.Error) {
	raw, err := json.Marshal(config)

	if err != nil {
		return nil, apperr.BadRequest("Invalid config format")
	}

	return raw, nil
}

func (h *Handler) ListPolicies(ctx *gin.Context) {
	orgID := ctx.Param("org_id")
	user, _ := middleware.CurrentUser(ctx)

	if _, appErr := access.RequireOrgRole(h.DB, orgID, user.ID, models.RoleMember); appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	var policies []models.Policy

	if err := h.DB.Where("org_id = ?", orgID).Order("created_at DESC").Find(&policies).Error; err != nil {
		response.Fail(ctx, apperr.Internal("Failed to retrieve policies"))
		return
	}

	items := make([]PolicyResponse, 0, len(policies))

	for _, policy := range policies {
		items = append(items, newPolicyResponse(policy))
	}

	response.OK(ctx, items)
}

func (h *Handler) CreatePolicy(ctx *gin.Context) {
	orgID := ctx.Param("org_id")
	user, _ := middleware.CurrentUser(ctx)

	if _, appErr := access.RequireOrgRole(h.DB, orgID, user.ID, models.RoleAdmin); appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	var req CreatePolicyRequest

	if appErr := bindJSON(ctx, &req); appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	config, appErr := encodeConfig(req.ConfigJSON)

	if appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	policy := models.Policy{
		OrgID:      orgID,
		Type:       models.PolicyType(req.Type),
		ConfigJSON: config,
		IsEnabled:  true,
	}

	if req.IsEnabled != nil {
		policy.IsEnabled = *req.IsEnabled
	}

	if err := h.DB.Create(&policy).Error; err != nil {
		response.Fail(ctx, apperr.Internal("Failed to create policy"))
		return
	}

	response.OK(ctx, newPolicyResponse(policy))
}

func (h *Handler) GetPolicy(ctx *gin.Context) {
	policy, appErr := h.findPolicyForUser(ctx, models.RoleMember)

	if appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	response.OK(ctx, newPolicyResponse(*policy))
}

// UpdatePolicy backs both PATCH and PUT; absent fields are left as-is.
func (h *Handler) UpdatePolicy(ctx *gin.Context) {
	policy, appErr := h.findPolicyForUser(ctx, models.RoleAdmin)

	if appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	var req UpdatePolicyRequest

	if appErr := bindJSON(ctx, &req); appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	if req.Type != nil {
		policy.Type = models.PolicyType(*req.Type)
	}

	if req.ConfigJSON != nil {
		config, appErr := encodeConfig(req.ConfigJSON)

		if appErr != nil {
			response.Fail(ctx, appErr)
			return
		}

		policy.ConfigJSON = config
	}

	if req.IsEnabled != nil {
		policy.IsEnabled = *req.IsEnabled
	}

	if err := h.DB.Save(policy).Error; err != nil {
		response.Fail(ctx, apperr.Internal("Failed to update policy"))
		return
	}

	response.OK(ctx, newPolicyResponse(*policy))
}

func (h *Handler) DeletePolicy(ctx *gin.Context) {
	policy, appErr := h.findPolicyForUser(ctx, models.RoleAdmin)

	if appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	if err := h.DB.Delete(policy).Error; err != nil {
		response.Fail(ctx, apperr.Internal("Failed to delete policy"))
		return
	}

	response.OK(ctx, gin.H{"deleted": true})
}

// findPolicyForUser is the post-fetch enforcement shape: the policy id alone
// does not reveal the organization without a lookup.
func (h *Handler) findPolicyForUser(ctx *gin.Context, required models.OrgRole) (*models.Policy, *apperr.Error) {
	policyID := ctx.Param("policy_id")
	user, _ := middleware.CurrentUser(ctx)

	var policy models.Policy

	if err := h.DB.First(&policy, "id = ?", policyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Policy not found")
		}
		return nil, apperr.Internal("Failed to retrieve policy")
	}

	if _, appErr := access.RequireMembership(h.DB, policy.OrgID, user.ID, required); appErr != nil {
		return nil, appErr
	}

	return &policy, nil
}
