package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/labs-polaris/Polaris-Back-Web/internal/access"
	"github.com/labs-polaris/Polaris-Back-Web/internal/apperr"
	"github.com/labs-polaris/Polaris-Back-Web/internal/middleware"
	"github.com/labs-polaris/Polaris-Back-Web/internal/models"
	"github.com/labs-polaris/Polaris-Back-Web/internal/response"
	"gorm.io/gorm"
)

type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=owner admin member"`
}

type UpdateMemberRequest struct {
	Role string `json:"role" binding:"required,oneof=owner admin member"`
}

type MemberResponse struct {
	ID     string         `json:"id"`
	OrgID  string         `json:"org_id"`
	UserID string         `json:"user_id"`
	Role   models.OrgRole `json:"role"`
}

func newMemberResponse(member models.Membership) MemberResponse {
	return MemberResponse{
		ID:     member.ID,
		OrgID:  member.OrgID,
		UserID: member.UserID,
		Role:   member.Role,
	}
}

func (h *Handler) ListMembers(ctx *gin.Context) {
	orgID := ctx.Param("org_id")
	user, _ := middleware.CurrentUser(ctx)

	if _, appErr := access.RequireOrgRole(h.DB, orgID, user.ID, models.RoleMember); appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	var members []models.Membership

	if err := h.DB.Where("org_id = ?", orgID).Order("created_at DESC").Find(&members).Error; err != nil {
		response.Fail(ctx, apperr.Internal("Failed to retrieve members"))
		return
	}

	items := make([]MemberResponse, 0, len(members))

	for _, member := range members {
		items = append(items, newMemberResponse(member))
	}

	response.OK(ctx, items)
}

// AddMember adds an existing user to the organization by email. Unknown
// email is NOT_FOUND; an existing (org, user) pair is CONFLICT.
func (h *Handler) AddMember(ctx *gin.Context) {
	orgID := ctx.Param("org_id")
	user, _ := middleware.CurrentUser(ctx)

	if _, appErr := access.RequireOrgRole(h.DB, orgID, user.ID, models.RoleOwner); appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	var req AddMemberRequest

	if appErr := bindJSON(ctx, &req); appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	var target models.User

	err := h.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&target).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(ctx, apperr.NotFound("User not found"))
			return
		}
		response.Fail(ctx, apperr.Internal("Failed to retrieve user"))
		return
	}

	member := models.Membership{
		OrgID:  orgID,
		UserID: target.ID,
		Role:   models.OrgRole(req.Role),
	}

	if err := h.DB.Create(&member).Error; err != nil {
		response.Fail(ctx, storeError(err, "User already in organization"))
		return
	}

	response.OK(ctx, newMemberResponse(member))
}

func (h *Handler) UpdateMember(ctx *gin.Context) {
	orgID := ctx.Param("org_id")
	memberID := ctx.Param("member_id")
	user, _ := middleware.CurrentUser(ctx)

	if _, appErr := access.RequireOrgRole(h.DB, orgID, user.ID, models.RoleOwner); appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	var req UpdateMemberRequest

	if appErr := bindJSON(ctx, &req); appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	member, appErr := h.findOrgMember(orgID, memberID)

	if appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	member.Role = models.OrgRole(req.Role)

	if err := h.DB.Save(member).Error; err != nil {
		response.Fail(ctx, apperr.Internal("Failed to update member"))
		return
	}

	response.OK(ctx, newMemberResponse(*member))
}

func (h *Handler) DeleteMember(ctx *gin.Context) {
	orgID := ctx.Param("org_id")
	memberID := ctx.Param("member_id")
	user, _ := middleware.CurrentUser(ctx)

	if _, appErr := access.RequireOrgRole(h.DB, orgID, user.ID, models.RoleOwner); appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	member, appErr := h.findOrgMember(orgID, memberID)

	if appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	if err := h.DB.Delete(member).Error; err != nil {
		response.Fail(ctx, apperr.Internal("Failed to remove member"))
		return
	}

	response.OK(ctx, gin.H{"deleted": true})
}

func (h *Handler) findOrgMember(orgID, memberID string) (*models.Membership, *apperr.Error) {
	var member models.Membership

	err := h.DB.First(&member, "id = ?", memberID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Member not found")
	}

	if err != nil {
		return nil, apperr.Internal("Failed to retrieve member")
	}

	if member.OrgID != orgID {
		return nil, apperr.NotFound("Member not found")
	}

	return &member, nil
}
