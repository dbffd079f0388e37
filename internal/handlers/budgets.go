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
	"campaignhub/api/internal/service"
)

type setBudgetRequest struct {
	TotalBudget float64 `json:"totalBudget" binding:"required,gt=0"`
	DailyBudget float64 `json:"dailyBudget" binding:"gte=0"`
}

func (h HandlerSet) SetBudget(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	campaign, ok := h.loadCampaign(c, c.Param("id"))
	if !ok {
		return
	}
	if !canManageCampaign(identity, campaign) {
		httpapi.Error(c, http.StatusForbidden, "Access denied", "")
		return
	}

	var req setBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, http.StatusBadRequest, err.Error(), "Validation failed")
		return
	}

	budget, err := h.budgetService.Set(c.Request.Context(), service.SetBudgetInput{
		CampaignID:  campaign.ID,
		TotalBudget: req.TotalBudget,
		DailyBudget: req.DailyBudget,
	})
	if err != nil {
		if errors.Is(err, repository.ErrBudgetExists) {
			httpapi.Error(c, http.StatusBadRequest, "Budget already exists for this campaign", "")
			return
		}
		h.log.Error().Err(err).Msg("budget create failed")
		httpapi.Error(c, http.StatusInternalServerError, "budget create failed", "Internal error")
		return
	}

	httpapi.Success(c, http.StatusCreated, budget, "Budget created")
}

type budgetResponse struct {
	models.Budget
	Transactions []models.BudgetTransaction `json:"transactions"`
}

func (h HandlerSet) GetBudget(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	campaign, ok := h.loadCampaign(c, c.Param("id"))
	if !ok {
		return
	}
	if !canViewCampaign(identity, campaign) {
		httpapi.Error(c, http.StatusForbidden, "Access denied", "")
		return
	}

	budget, txs, err := h.budgetService.Get(c.Request.Context(), campaign.ID)
	if err != nil {
		if errors.Is(err, repository.ErrBudgetNotFound) {
			httpapi.Error(c, http.StatusNotFound, "Budget not found", "")
			return
		}
		h.log.Error().Err(err).Msg("budget lookup failed")
		httpapi.Error(c, http.StatusInternalServerError, "budget lookup failed", "Internal error")
		return
	}

	httpapi.Success(c, http.StatusOK, budgetResponse{Budget: budget, Transactions: txs}, "")
}

func (h HandlerSet) BudgetHistory(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	campaign, ok := h.loadCampaign(c, c.Param("id"))
	if !ok {
		return
	}
	if !canViewCampaign(identity, campaign) {
		httpapi.Error(c, http.StatusForbidden, "Access denied", "")
		return
	}

	_, txs, err := h.budgetService.Get(c.Request.Context(), campaign.ID)
	if err != nil {
		if errors.Is(err, repository.ErrBudgetNotFound) {
			httpapi.Error(c, http.StatusNotFound, "Budget not found", "")
			return
		}
		h.log.Error().Err(err).Msg("budget history failed")
		httpapi.Error(c, http.StatusInternalServerError, "budget history failed", "Internal error")
		return
	}

	httpapi.Success(c, http.StatusOK, txs, "")
}

type updateBudgetRequest struct {
	TotalBudget *float64 `json:"totalBudget"`
	DailyBudget *float64 `json:"dailyBudget"`
}

func (h HandlerSet) UpdateBudget(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	campaign, ok := h.loadCampaign(c, c.Param("id"))
	if !ok {
		return
	}
	if !canManageCampaign(identity, campaign) {
		httpapi.Error(c, http.StatusForbidden, "Access denied", "")
		return
	}

	var req updateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, http.StatusBadRequest, err.Error(), "Validation failed")
		return
	}
	if req.TotalBudget == nil && req.DailyBudget == nil {
		httpapi.Error(c, http.StatusBadRequest, "nothing to update", "Validation failed")
		return
	}
	if req.TotalBudget != nil && *req.TotalBudget <= 0 {
		httpapi.Error(c, http.StatusBadRequest, "totalBudget must be positive", "Validation failed")
		return
	}

	budget, err := h.budgetService.UpdateCeilings(c.Request.Context(), campaign.ID, req.TotalBudget, req.DailyBudget)
	if err != nil {
		if errors.Is(err, repository.ErrBudgetNotFound) {
			httpapi.Error(c, http.StatusNotFound, "Budget not found", "")
			return
		}
		h.log.Error().Err(err).Msg("budget update failed")
		httpapi.Error(c, http.StatusInternalServerError, "budget update failed", "Internal error")
		return
	}

	httpapi.Success(c, http.StatusOK, budget, "Budget updated")
}

type trackSpendRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description"`
}

func (h HandlerSet) TrackSpend(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	campaign, ok := h.loadCampaign(c, c.Param("id"))
	if !ok {
		return
	}
	if !canManageCampaign(identity, campaign) {
		httpapi.Error(c, http.StatusForbidden, "Access denied", "")
		return
	}

	var req trackSpendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, http.StatusBadRequest, err.Error(), "Validation failed")
		return
	}

	budget, err := h.budgetService.TrackSpend(c.Request.Context(), service.SpendInput{
		CampaignID:  campaign.ID,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBudgetNotFound):
			httpapi.Error(c, http.StatusNotFound, "Budget not found", "")
		case errors.Is(err, repository.ErrBudgetExceeded):
			httpapi.Error(c, http.StatusBadRequest, "Spending exceeds total budget", "")
		default:
			h.log.Error().Err(err).Msg("spend tracking failed")
			httpapi.Error(c, http.StatusInternalServerError, "spend tracking failed", "Internal error")
		}
		return
	}

	httpapi.Success(c, http.StatusOK, budget, "Spending tracked")
}

// canViewCampaign gates campaign-scoped reads: clients must be assigned,
// everyone else authenticated passes.
func canViewCampaign(identity security.Identity, campaign models.Campaign) bool {
	if models.UserRole(identity.Role) == models.UserRoleClient {
		return campaign.IsAssignedClient(identity.ID)
	}
	return true
}
