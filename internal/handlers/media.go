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

// UploadMedia accepts a multipart "file" plus an optional "campaignId" form
// field linking the upload to a campaign.
func (h HandlerSet) UploadMedia(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		httpapi.Error(c, http.StatusBadRequest, "file is required", "Validation failed")
		return
	}
	defer file.Close()

	user, err := h.users.GetByID(c.Request.Context(), identity.ID)
	if err != nil {
		httpapi.Error(c, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	item, err := h.uploadService.Upload(c.Request.Context(), service.UploadInput{
		User:       user,
		File:       file,
		Header:     header,
		CampaignID: c.PostForm("campaignId"),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFileTooLarge):
			httpapi.Error(c, http.StatusBadRequest, "File exceeds upload size limit", "")
		case errors.Is(err, service.ErrFileTypeBlocked):
			httpapi.Error(c, http.StatusBadRequest, "File type is not allowed", "")
		case errors.Is(err, service.ErrEmptyFile):
			httpapi.Error(c, http.StatusBadRequest, "Empty file", "")
		case errors.Is(err, repository.ErrCampaignNotFound):
			httpapi.Error(c, http.StatusNotFound, "Campaign not found", "")
		default:
			h.log.Error().Err(err).Msg("upload failed")
			httpapi.Error(c, http.StatusInternalServerError, "upload failed", "Internal error")
		}
		return
	}

	httpapi.Success(c, http.StatusCreated, item, "File uploaded")
}

func (h HandlerSet) GetMedia(c *gin.Context) {
	item, err := h.media.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			httpapi.Error(c, http.StatusNotFound, "Media not found", "")
			return
		}
		h.log.Error().Err(err).Msg("media lookup failed")
		httpapi.Error(c, http.StatusInternalServerError, "media lookup failed", "Internal error")
		return
	}
	httpapi.Success(c, http.StatusOK, item, "")
}

func (h HandlerSet) ListCampaignMedia(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	campaign, ok := h.loadCampaign(c, c.Param("id"))
	if !ok {
		return
	}
	if !canViewCampaign(identity, campaign) {
		httpapi.Error(c, http.StatusForbidden, "Access denied", "")
		return
	}

	items, err := h.media.ListByCampaign(c.Request.Context(), campaign.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("media list failed")
		httpapi.Error(c, http.StatusInternalServerError, "media list failed", "Internal error")
		return
	}
	httpapi.Success(c, http.StatusOK, items, "")
}

// DeleteMedia removes the object, the row and the campaign mediaUrls entry.
// Only the uploader or an admin may delete.
func (h HandlerSet) DeleteMedia(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	item, err := h.media.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			httpapi.Error(c, http.StatusNotFound, "Media not found", "")
			return
		}
		h.log.Error().Err(err).Msg("media lookup failed")
		httpapi.Error(c, http.StatusInternalServerError, "media lookup failed", "Internal error")
		return
	}

	if item.UploadedBy != identity.ID && identity.Role != string(models.UserRoleAdmin) {
		httpapi.Error(c, http.StatusForbidden, "Access denied", "")
		return
	}

	if err := h.uploadService.Delete(c.Request.Context(), item); err != nil {
		h.log.Error().Err(err).Msg("media delete failed")
		httpapi.Error(c, http.StatusInternalServerError, "media delete failed", "Internal error")
		return
	}
	httpapi.Success(c, http.StatusOK, nil, "Media deleted")
}
