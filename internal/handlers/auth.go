package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"campaignhub/api/internal/httpapi"
	"campaignhub/api/internal/middleware"
	"campaignhub/api/internal/models"
	"campaignhub/api/internal/repository"
	"campaignhub/api/internal/service"
)

type signUpRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=30"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Role      string `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type authResponse struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         models.User `json:"user"`
}

func (h HandlerSet) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, http.StatusBadRequest, err.Error(), "Validation failed")
		return
	}

	role := models.UserRole(req.Role)
	if req.Role != "" && !models.ValidRole(role) {
		httpapi.Error(c, http.StatusBadRequest, "invalid role", "Validation failed")
		return
	}

	result, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Role:      role,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			httpapi.Error(c, http.StatusBadRequest, err.Error(), "Registration failed")
			return
		}
		h.log.Error().Err(err).Msg("registration failed")
		httpapi.Error(c, http.StatusInternalServerError, "registration failed", "Internal error")
		return
	}

	httpapi.Success(c, http.StatusCreated, authResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		User:         result.User,
	}, "User registered successfully")
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, http.StatusBadRequest, err.Error(), "Validation failed")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			httpapi.Error(c, http.StatusUnauthorized, "Invalid credentials", "Login failed")
		case errors.Is(err, service.ErrUserInactive):
			httpapi.Error(c, http.StatusForbidden, "Account is inactive", "Login failed")
		default:
			h.log.Error().Err(err).Msg("login failed")
			httpapi.Error(c, http.StatusInternalServerError, "login failed", "Internal error")
		}
		return
	}

	httpapi.Success(c, http.StatusOK, authResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		User:         result.User,
	}, "Login successful")
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// Refresh exchanges a valid refresh token for a new token pair. Any failure
// maps to the same 401 so callers cannot distinguish expired from revoked.
func (h HandlerSet) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, http.StatusBadRequest, err.Error(), "Validation failed")
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		httpapi.Error(c, http.StatusUnauthorized, "Invalid refresh token", "Refresh failed")
		return
	}

	httpapi.Success(c, http.StatusOK, authResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		User:         result.User,
	}, "Token refreshed")
}

func (h HandlerSet) Profile(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		httpapi.Error(c, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			httpapi.Error(c, http.StatusNotFound, "User not found", "")
			return
		}
		h.log.Error().Err(err).Msg("profile lookup failed")
		httpapi.Error(c, http.StatusInternalServerError, "profile lookup failed", "Internal error")
		return
	}

	httpapi.Success(c, http.StatusOK, user, "")
}

type updateProfileRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (h HandlerSet) UpdateProfile(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		httpapi.Error(c, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, http.StatusBadRequest, err.Error(), "Validation failed")
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), identity.ID, req.Username, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			httpapi.Error(c, http.StatusNotFound, "User not found", "")
			return
		}
		if errors.Is(err, repository.ErrDuplicateUser) {
			httpapi.Error(c, http.StatusBadRequest, err.Error(), "Username already taken")
			return
		}
		h.log.Error().Err(err).Msg("profile update failed")
		httpapi.Error(c, http.StatusInternalServerError, "profile update failed", "Internal error")
		return
	}

	httpapi.Success(c, http.StatusOK, user, "Profile updated")
}
