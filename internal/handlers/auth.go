package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/labs-polaris/Polaris-Back-Web/internal/apperr"
	"github.com/labs-polaris/Polaris-Back-Web/internal/auth"
	"github.com/labs-polaris/Polaris-Back-Web/internal/middleware"
	"github.com/labs-polaris/Polaris-Back-Web/internal/models"
	"github.com/labs-polaris/Polaris-Back-Web/internal/response"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,max=72"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

func newUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		IsActive: user.IsActive,
	}
}

func (h *Handler) Register(ctx *gin.Context) {
	var req RegisterRequest

	if appErr := bindJSON(ctx, &req); appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user := models.User{
		Email:    req.Email,
		Name:     req.Name,
		IsActive: true,
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		response.Fail(ctx, apperr.Internal("Internal server error"))
		return
	}

	user.PasswordHash = string(passwordHash)

	if err := h.DB.Create(&user).Error; err != nil {
		response.Fail(ctx, storeError(err, "Email already exists"))
		return
	}

	response.OK(ctx, newUserResponse(user))
}

func (h *Handler) Login(ctx *gin.Context) {
	var req LoginRequest

	if appErr := bindJSON(ctx, &req); appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User

	err := h.DB.Where("email = ?", req.Email).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(ctx, apperr.AuthInvalid("Invalid credentials"))
			return
		}
		response.Fail(ctx, apperr.Internal("Internal server error"))
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		response.Fail(ctx, apperr.AuthInvalid("Invalid credentials"))
		return
	}

	tokens, appErr := h.issueTokenPair(user.ID)

	if appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	response.OK(ctx, tokens)
}

// Refresh issues a new access token against a refresh-type token and echoes
// the presented refresh token back unchanged.
func (h *Handler) Refresh(ctx *gin.Context) {
	var req RefreshRequest

	if appErr := bindJSON(ctx, &req); appErr != nil {
		response.Fail(ctx, appErr)
		return
	}

	userID, tokenType, err := h.Tokens.Verify(req.RefreshToken)

	if err != nil {
		response.Fail(ctx, apperr.AuthInvalid("Invalid token"))
		return
	}

	if tokenType != auth.TokenTypeRefresh {
		response.Fail(ctx, apperr.AuthInvalid("Invalid refresh token"))
		return
	}

	accessToken, err := h.Tokens.GenerateAccessToken(userID)

	if err != nil {
		response.Fail(ctx, apperr.Internal("Internal server error"))
		return
	}

	response.OK(ctx, TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: req.RefreshToken,
		TokenType:    "bearer",
	})
}

func (h *Handler) Me(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)

	if !ok {
		response.Fail(ctx, apperr.AuthRequired("Authentication required"))
		return
	}

	response.OK(ctx, newUserResponse(user))
}

func (h *Handler) issueTokenPair(userID string) (TokenPairResponse, *apperr.Error) {
	accessToken, err := h.Tokens.GenerateAccessToken(userID)

	if err != nil {
		return TokenPairResponse{}, apperr.Internal("Internal server error")
	}

	refreshToken, err := h.Tokens.GenerateRefreshToken(userID)

	if err != nil {
		return TokenPairResponse{}, apperr.Internal("Internal server error")
	}

	return TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}
