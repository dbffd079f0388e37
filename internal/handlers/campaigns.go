package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"campaignhub/api/internal/httpapi"
	"campaignhub/api/internal/ids"
	"campaignhub/api/internal/middleware"
	"campaignhub/api/internal/models"
	"campaignhub/api/internal/repository"
	"campaignhub/api/internal/security"
)

type campaignRequest struct {
	Name           string    `json:"name" binding:"required"`
	Description    string    `json:"description"`
	Type           string    `json:"type" binding:"required"`
	Budget         float64   `json:"budget"`
	StartDate      time.Time `json:"startDate" binding:"required"`
	EndDate        time.Time `json:"endDate" binding:"required"`
	TargetAudience string    `json:"targetAudience"`
}

func (req campaignRequest) validate() string {
	if !models.ValidCampaignType(models.CampaignType(req.Type)) {
		return "invalid campaign type"
	}
	if !req.EndDate.After(req.StartDate) {
		return "end date must be after start date"
	}
	return ""
}

func (h HandlerSet) CreateCampaign(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var req campaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, http.StatusBadRequest, err.Error(), "Validation failed")
		return
	}
	if msg := req.validate(); msg != "" {
		httpapi.Error(c, http.StatusBadRequest, msg, "Validation failed")
		return
	}

	campaign := models.Campaign{
		ID:              ids.New(),
		Name:            req.Name,
		Description:     req.Description,
		Type:            models.CampaignType(req.Type),
		Status:          models.CampaignStatusDraft,
		Budget:          req.Budget,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		TargetAudience:  req.TargetAudience,
		CreatedBy:       identity.ID,
		AssignedClients: []string{},
		MediaURLs:       []string{},
	}

	if err := h.campaigns.Create(c.Request.Context(), campaign); err != nil {
		h.log.Error().Err(err).Msg("campaign create failed")
		httpapi.Error(c, http.StatusInternalServerError, "campaign create failed", "Internal error")
		return
	}

	created, err := h.campaigns.GetByID(c.Request.Context(), campaign.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("campaign readback failed")
		httpapi.Error(c, http.StatusInternalServerError, "campaign create failed", "Internal error")
		return
	}

	httpapi.Success(c, http.StatusCreated, created, "Campaign created")
}

func (h HandlerSet) ListCampaigns(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)
	page, limit := httpapi.PageParams(c)
	offset, limit := httpapi.CalculatePagination(page, limit)

	filter := repository.CampaignFilter{
		Status: models.CampaignStatus(c.Query("status")),
		Type:   models.CampaignType(c.Query("type")),
		Search: c.Query("search"),
	}
	if raw := c.Query("startFrom"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.StartFrom = &t
		}
	}
	if raw := c.Query("startTo"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.StartTo = &t
		}
	}

	// Role scoping: managers see what they created, clients what they are
	// assigned to. Admins and viewers see everything.
	switch models.UserRole(identity.Role) {
	case models.UserRoleCampaignManager:
		filter.CreatedBy = identity.ID
	case models.UserRoleClient:
		filter.AssignedClient = identity.ID
	}

	campaigns, err := h.campaigns.List(c.Request.Context(), filter, limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("campaign list failed")
		httpapi.Error(c, http.StatusInternalServerError, "campaign list failed", "Internal error")
		return
	}
	total, err := h.campaigns.Count(c.Request.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("campaign count failed")
		httpapi.Error(c, http.StatusInternalServerError, "campaign count failed", "Internal error")
		return
	}

	httpapi.Paginated(c, http.StatusOK, campaigns, total, page, limit)
}

func (h HandlerSet) GetCampaign(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	campaign, ok := h.loadCampaign(c, c.Param("id"))
	if !ok {
		return
	}

	if models.UserRole(identity.Role) == models.UserRoleClient && !campaign.IsAssignedClient(identity.ID) {
		httpapi.Error(c, http.StatusForbidden, "Access denied", "")
		return
	}

	httpapi.Success(c, http.StatusOK, campaign, "")
}

func (h HandlerSet) UpdateCampaign(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	campaign, ok := h.loadCampaign(c, c.Param("id"))
	if !ok {
		return
	}
	if !canManageCampaign(identity, campaign) {
		httpapi.Error(c, http.StatusForbidden, "Access denied", "")
		return
	}

	var req campaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, http.StatusBadRequest, err.Error(), "Validation failed")
		return
	}
	if msg := req.validate(); msg != "" {
		httpapi.Error(c, http.StatusBadRequest, msg, "Validation failed")
		return
	}

	campaign.Name = req.Name
	campaign.Description = req.Description
	campaign.Type = models.CampaignType(req.Type)
	campaign.Budget = req.Budget
	campaign.StartDate = req.StartDate
	campaign.EndDate = req.EndDate
	campaign.TargetAudience = req.TargetAudience

	updated, err := h.campaigns.Update(c.Request.Context(), campaign)
	if err != nil {
		h.log.Error().Err(err).Msg("campaign update failed")
		httpapi.Error(c, http.StatusInternalServerError, "campaign update failed", "Internal error")
		return
	}

	httpapi.Success(c, http.StatusOK, updated, "Campaign updated")
}

func (h HandlerSet) DeleteCampaign(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	campaign, ok := h.loadCampaign(c, c.Param("id"))
	if !ok {
		return
	}
	if !canManageCampaign(identity, campaign) {
		httpapi.Error(c, http.StatusForbidden, "Access denied", "")
		return
	}

	if err := h.campaigns.Delete(c.Request.Context(), campaign.ID); err != nil {
		h.log.Error().Err(err).Msg("campaign delete failed")
		httpapi.Error(c, http.StatusInternalServerError, "campaign delete failed", "Internal error")
		return
	}
	httpapi.Success(c, http.StatusOK, nil, "Campaign deleted")
}

func (h HandlerSet) ActivateCampaign(c *gin.Context) {
	h.transitionCampaign(c, models.CampaignStatusActive)
}

func (h HandlerSet) PauseCampaign(c *gin.Context) {
	h.transitionCampaign(c, models.CampaignStatusPaused)
}

func (h HandlerSet) CompleteCampaign(c *gin.Context) {
	h.transitionCampaign(c, models.CampaignStatusCompleted)
}

// transitionCampaign moves a campaign through the status state machine.
// Disallowed transitions are 400s that name both states.
func (h HandlerSet) transitionCampaign(c *gin.Context, to models.CampaignStatus) {
	identity, _ := middleware.CurrentIdentity(c)

	campaign, ok := h.loadCampaign(c, c.Param("id"))
	if !ok {
		return
	}
	if !canManageCampaign(identity, campaign) {
		httpapi.Error(c, http.StatusForbidden, "Access denied", "")
		return
	}

	if !models.CanTransition(campaign.Status, to) {
		httpapi.Error(c, http.StatusBadRequest,
			"cannot transition campaign from "+string(campaign.Status)+" to "+string(to),
			"Invalid status transition")
		return
	}

	updated, err := h.campaigns.UpdateStatus(c.Request.Context(), campaign.ID, to)
	if err != nil {
		h.log.Error().Err(err).Msg("campaign status update failed")
		httpapi.Error(c, http.StatusInternalServerError, "status update failed", "Internal error")
		return
	}

	httpapi.Success(c, http.StatusOK, updated, "Campaign "+string(to))
}

type assignClientsRequest struct {
	ClientIDs []string `json:"clientIds" binding:"required"`
}

// AssignCampaignClients replaces the campaign's client assignment list.
// Every id must belong to an existing user with the client role.
func (h HandlerSet) AssignCampaignClients(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	campaign, ok := h.loadCampaign(c, c.Param("id"))
	if !ok {
		return
	}
	if !canManageCampaign(identity, campaign) {
		httpapi.Error(c, http.StatusForbidden, "Access denied", "")
		return
	}

	var req assignClientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, http.StatusBadRequest, err.Error(), "Validation failed")
		return
	}

	for _, clientID := range req.ClientIDs {
		user, err := h.users.GetByID(c.Request.Context(), clientID)
		if err != nil {
			httpapi.Error(c, http.StatusBadRequest, "unknown client: "+clientID, "Validation failed")
			return
		}
		if user.Role != models.UserRoleClient {
			httpapi.Error(c, http.StatusBadRequest, "user is not a client: "+clientID, "Validation failed")
			return
		}
	}

	updated, err := h.campaigns.AssignClients(c.Request.Context(), campaign.ID, req.ClientIDs)
	if err != nil {
		h.log.Error().Err(err).Msg("client assignment failed")
		httpapi.Error(c, http.StatusInternalServerError, "client assignment failed", "Internal error")
		return
	}

	httpapi.Success(c, http.StatusOK, updated, "Clients assigned")
}

func (h HandlerSet) loadCampaign(c *gin.Context, id string) (models.Campaign, bool) {
	campaign, err := h.campaigns.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			httpapi.Error(c, http.StatusNotFound, "Campaign not found", "")
			return models.Campaign{}, false
		}
		h.log.Error().Err(err).Msg("campaign lookup failed")
		httpapi.Error(c, http.StatusInternalServerError, "campaign lookup failed", "Internal error")
		return models.Campaign{}, false
	}
	return campaign, true
}

// canManageCampaign allows admins and the creating manager to mutate a
// campaign.
func canManageCampaign(identity security.Identity, campaign models.Campaign) bool {
	if identity.Role == string(models.UserRoleAdmin) {
		return true
	}
	return campaign.CreatedBy == identity.ID
}
