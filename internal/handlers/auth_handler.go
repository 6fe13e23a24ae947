package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/workforce-scheduler/internal/httperr"
	"github.com/BruksfildServices01/workforce-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/workforce-scheduler/internal/middleware"
	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
	"github.com/BruksfildServices01/workforce-scheduler/internal/usecase/account"
)

type AuthHandler struct {
	accounts *account.Service
}

func NewAuthHandler(accounts *account.Service) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,strongpassword"`
	Phone    string `json:"phone" binding:"omitempty,max=30"`
	Role     string `json:"role" binding:"omitempty,oneof=owner staff"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ProfileRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=2,max=50"`
	Phone *string `json:"phone" binding:"omitempty,max=30"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,strongpassword"`
}

// --------- Responses ---------

type sessionResponse struct {
	User         *models.Account  `json:"user"`
	Business     *models.Business `json:"business,omitempty"`
	AccessToken  string           `json:"accessToken"`
	RefreshToken string           `json:"refreshToken"`
}

func newSessionResponse(s *account.Session) sessionResponse {
	return sessionResponse{
		User:         s.Account,
		Business:     s.Business,
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
	}
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.accounts.Register(c.Request.Context(), account.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Role:     req.Role,
	}, requestMeta(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	httpresp.Created(c, "User registered successfully", newSessionResponse(session))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password, requestMeta(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	httpresp.OKMessage(c, "Login successful", newSessionResponse(session))
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := h.accounts.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	httpresp.OKMessage(c, "Token refreshed successfully", gin.H{"accessToken": token})
}

func (h *AuthHandler) Me(c *gin.Context) {
	a, biz, err := h.accounts.Me(c.Request.Context(), middleware.CurrentAccountID(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	httpresp.OK(c, gin.H{"user": a, "business": biz})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req LogoutRequest
	// An empty body still logs the access token out client-side.
	_ = c.ShouldBindJSON(&req)

	if req.RefreshToken != "" {
		if err := h.accounts.Logout(c.Request.Context(), middleware.CurrentAccountID(c), req.RefreshToken); err != nil {
			httperr.Abort(c, err)
			return
		}
	}

	httpresp.OKMessage(c, "Logged out successfully", nil)
}

func (h *AuthHandler) LogoutAll(c *gin.Context) {
	if err := h.accounts.LogoutAll(c.Request.Context(), middleware.CurrentAccountID(c)); err != nil {
		httperr.Abort(c, err)
		return
	}

	httpresp.OKMessage(c, "Logged out from all devices successfully", nil)
}

func (h *AuthHandler) Sessions(c *gin.Context) {
	sessions, err := h.accounts.Sessions(c.Request.Context(), middleware.CurrentAccountID(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	httpresp.OK(c, sessions)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req ProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.accounts.UpdateProfile(c.Request.Context(), middleware.CurrentAccountID(c), account.ProfileUpdate{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	httpresp.OKMessage(c, "Profile updated successfully", a)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.accounts.ChangePassword(
		c.Request.Context(),
		middleware.CurrentAccountID(c),
		req.CurrentPassword,
		req.NewPassword,
		requestMeta(c),
	)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	httpresp.OKMessage(c, "Password changed successfully", newSessionResponse(session))
}
