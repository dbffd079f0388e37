package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"campaignhub/api/internal/httpapi"
	"campaignhub/api/internal/middleware"
	"campaignhub/api/internal/models"
	"campaignhub/api/internal/repository"
	"campaignhub/api/internal/service"
)

type recordAnalyticsRequest struct {
	Date              time.Time                `json:"date" binding:"required"`
	Impressions       int64                    `json:"impressions" binding:"gte=0"`
	Clicks            int64                    `json:"clicks" binding:"gte=0"`
	Conversions       int64                    `json:"conversions" binding:"gte=0"`
	Spend             float64                  `json:"spend" binding:"gte=0"`
	DeviceBreakdown   models.DeviceBreakdown   `json:"deviceBreakdown"`
	PlatformBreakdown models.PlatformBreakdown `json:"platformBreakdown"`
}

func (h HandlerSet) RecordAnalytics(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	campaign, ok := h.loadCampaign(c, c.Param("id"))
	if !ok {
		return
	}
	if !canManageCampaign(identity, campaign) {
		httpapi.Error(c, http.StatusForbidden, "Access denied", "")
		return
	}

	var req recordAnalyticsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, http.StatusBadRequest, err.Error(), "Validation failed")
		return
	}
	if req.Clicks > req.Impressions {
		httpapi.Error(c, http.StatusBadRequest, "clicks cannot exceed impressions", "Validation failed")
		return
	}

	record, err := h.analyticsService.Record(c.Request.Context(), service.RecordInput{
		CampaignID:        campaign.ID,
		Date:              req.Date,
		Impressions:       req.Impressions,
		Clicks:            req.Clicks,
		Conversions:       req.Conversions,
		Spend:             req.Spend,
		DeviceBreakdown:   req.DeviceBreakdown,
		PlatformBreakdown: req.PlatformBreakdown,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("analytics record failed")
		httpapi.Error(c, http.StatusInternalServerError, "analytics record failed", "Internal error")
		return
	}

	httpapi.Success(c, http.StatusCreated, record, "Analytics recorded")
}

func (h HandlerSet) analyticsFilter(c *gin.Context, campaignID string) repository.AnalyticsFilter {
	filter := repository.AnalyticsFilter{CampaignID: campaignID}
	if raw := c.Query("from"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.From = &t
		}
	}
	if raw := c.Query("to"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.To = &t
		}
	}
	return filter
}

func (h HandlerSet) ListAnalytics(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	campaign, ok := h.loadCampaign(c, c.Param("id"))
	if !ok {
		return
	}
	if !canViewCampaign(identity, campaign) {
		httpapi.Error(c, http.StatusForbidden, "Access denied", "")
		return
	}

	records, err := h.analyticsService.List(c.Request.Context(), h.analyticsFilter(c, campaign.ID))
	if err != nil {
		h.log.Error().Err(err).Msg("analytics list failed")
		httpapi.Error(c, http.StatusInternalServerError, "analytics list failed", "Internal error")
		return
	}

	httpapi.Success(c, http.StatusOK, records, "")
}

func (h HandlerSet) AggregateAnalytics(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	campaign, ok := h.loadCampaign(c, c.Param("id"))
	if !ok {
		return
	}
	if !canViewCampaign(identity, campaign) {
		httpapi.Error(c, http.StatusForbidden, "Access denied", "")
		return
	}

	stats, err := h.analyticsService.Aggregate(c.Request.Context(), campaign.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("analytics aggregate failed")
		httpapi.Error(c, http.StatusInternalServerError, "analytics aggregate failed", "Internal error")
		return
	}

	httpapi.Success(c, http.StatusOK, stats, "")
}

// ExportAnalytics streams the time series as CSV by default; format=json
// returns the enveloped records instead.
func (h HandlerSet) ExportAnalytics(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	campaign, ok := h.loadCampaign(c, c.Param("id"))
	if !ok {
		return
	}
	if !canViewCampaign(identity, campaign) {
		httpapi.Error(c, http.StatusForbidden, "Access denied", "")
		return
	}

	filter := h.analyticsFilter(c, campaign.ID)

	if c.Query("format") == "json" {
		records, err := h.analyticsService.List(c.Request.Context(), filter)
		if err != nil {
			h.log.Error().Err(err).Msg("analytics export failed")
			httpapi.Error(c, http.StatusInternalServerError, "analytics export failed", "Internal error")
			return
		}
		httpapi.Success(c, http.StatusOK, records, "")
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="analytics-`+campaign.ID+`.csv"`)
	if err := h.analyticsService.ExportCSV(c.Request.Context(), filter, c.Writer); err != nil {
		h.log.Error().Err(err).Msg("analytics export failed")
	}
}
