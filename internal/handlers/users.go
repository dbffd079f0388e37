package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"campaignhub/api/internal/httpapi"
	"campaignhub/api/internal/middleware"
	"campaignhub/api/internal/models"
	"campaignhub/api/internal/repository"
	"campaignhub/api/internal/security"
)

func (h HandlerSet) ListUsers(c *gin.Context) {
	page, limit := httpapi.PageParams(c)
	offset, limit := httpapi.CalculatePagination(page, limit)

	filter := repository.UserFilter{
		Role:   models.UserRole(c.Query("role")),
		Status: models.UserStatus(c.Query("status")),
		Search: c.Query("search"),
	}

	users, err := h.users.List(c.Request.Context(), filter, limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("user list failed")
		httpapi.Error(c, http.StatusInternalServerError, "user list failed", "Internal error")
		return
	}
	total, err := h.users.Count(c.Request.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("user count failed")
		httpapi.Error(c, http.StatusInternalServerError, "user count failed", "Internal error")
		return
	}

	httpapi.Paginated(c, http.StatusOK, users, total, page, limit)
}

func (h HandlerSet) GetUser(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)
	targetID := c.Param("id")

	if identity.ID != targetID && !isStaff(identity) {
		httpapi.Error(c, http.StatusForbidden, "Access denied", "")
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), targetID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			httpapi.Error(c, http.StatusNotFound, "User not found", "")
			return
		}
		h.log.Error().Err(err).Msg("user lookup failed")
		httpapi.Error(c, http.StatusInternalServerError, "user lookup failed", "Internal error")
		return
	}
	httpapi.Success(c, http.StatusOK, user, "")
}

type updateUserRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UpdateUser edits another user's profile fields. Admins may edit anyone;
// everyone else only themselves.
func (h HandlerSet) UpdateUser(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)
	targetID := c.Param("id")

	if identity.ID != targetID && identity.Role != string(models.UserRoleAdmin) {
		httpapi.Error(c, http.StatusForbidden, "Access denied", "")
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, http.StatusBadRequest, err.Error(), "Validation failed")
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), targetID, req.Username, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			httpapi.Error(c, http.StatusNotFound, "User not found", "")
			return
		}
		if errors.Is(err, repository.ErrDuplicateUser) {
			httpapi.Error(c, http.StatusBadRequest, err.Error(), "Username already taken")
			return
		}
		h.log.Error().Err(err).Msg("user update failed")
		httpapi.Error(c, http.StatusInternalServerError, "user update failed", "Internal error")
		return
	}
	httpapi.Success(c, http.StatusOK, user, "User updated")
}

func isStaff(identity security.Identity) bool {
	return identity.Role == string(models.UserRoleAdmin) || identity.Role == string(models.UserRoleCampaignManager)
}

type updateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (h HandlerSet) UpdateUserRole(c *gin.Context) {
	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, http.StatusBadRequest, err.Error(), "Validation failed")
		return
	}

	role := models.UserRole(req.Role)
	if !models.ValidRole(role) {
		httpapi.Error(c, http.StatusBadRequest, "invalid role", "Validation failed")
		return
	}

	user, err := h.users.UpdateRole(c.Request.Context(), c.Param("id"), role)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			httpapi.Error(c, http.StatusNotFound, "User not found", "")
			return
		}
		h.log.Error().Err(err).Msg("role update failed")
		httpapi.Error(c, http.StatusInternalServerError, "role update failed", "Internal error")
		return
	}
	httpapi.Success(c, http.StatusOK, user, "Role updated")
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h HandlerSet) UpdateUserStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, http.StatusBadRequest, err.Error(), "Validation failed")
		return
	}

	status := models.UserStatus(req.Status)
	if status != models.UserStatusActive && status != models.UserStatusInactive {
		httpapi.Error(c, http.StatusBadRequest, "invalid status", "Validation failed")
		return
	}

	user, err := h.users.UpdateStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			httpapi.Error(c, http.StatusNotFound, "User not found", "")
			return
		}
		h.log.Error().Err(err).Msg("status update failed")
		httpapi.Error(c, http.StatusInternalServerError, "status update failed", "Internal error")
		return
	}
	httpapi.Success(c, http.StatusOK, user, "Status updated")
}

func (h HandlerSet) DeleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			httpapi.Error(c, http.StatusNotFound, "User not found", "")
			return
		}
		h.log.Error().Err(err).Msg("user delete failed")
		httpapi.Error(c, http.StatusInternalServerError, "user delete failed", "Internal error")
		return
	}
	httpapi.Success(c, http.StatusOK, nil, "User deleted")
}
