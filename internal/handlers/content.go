package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"campaignhub/api/internal/httpapi"
	"campaignhub/api/internal/ids"
	"campaignhub/api/internal/models"
	"campaignhub/api/internal/repository"
)

// Handlers for the public site content: services, team members and
// portfolio items. Listings are ordered by display order and paginated.

type serviceRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Icon        string `json:"icon"`
	Order       int    `json:"order"`
}

func (h HandlerSet) CreateService(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, http.StatusBadRequest, err.Error(), "Validation failed")
		return
	}

	svc := models.Service{
		ID:          ids.New(),
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		Order:       req.Order,
	}
	if err := h.services.Create(c.Request.Context(), svc); err != nil {
		h.log.Error().Err(err).Msg("service create failed")
		httpapi.Error(c, http.StatusInternalServerError, "service create failed", "Internal error")
		return
	}

	created, err := h.services.GetByID(c.Request.Context(), svc.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("service readback failed")
		httpapi.Error(c, http.StatusInternalServerError, "service create failed", "Internal error")
		return
	}
	httpapi.Success(c, http.StatusCreated, created, "Service created")
}

func (h HandlerSet) ListServices(c *gin.Context) {
	page, limit := httpapi.PageParams(c)
	offset, limit := httpapi.CalculatePagination(page, limit)

	items, err := h.services.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("service list failed")
		httpapi.Error(c, http.StatusInternalServerError, "service list failed", "Internal error")
		return
	}
	total, err := h.services.Count(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("service count failed")
		httpapi.Error(c, http.StatusInternalServerError, "service count failed", "Internal error")
		return
	}
	httpapi.Paginated(c, http.StatusOK, items, total, page, limit)
}

func (h HandlerSet) GetService(c *gin.Context) {
	item, err := h.services.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrServiceNotFound) {
			httpapi.Error(c, http.StatusNotFound, "Service not found", "")
			return
		}
		h.log.Error().Err(err).Msg("service lookup failed")
		httpapi.Error(c, http.StatusInternalServerError, "service lookup failed", "Internal error")
		return
	}
	httpapi.Success(c, http.StatusOK, item, "")
}

func (h HandlerSet) UpdateService(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, http.StatusBadRequest, err.Error(), "Validation failed")
		return
	}

	item, err := h.services.Update(c.Request.Context(), models.Service{
		ID:          c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		Order:       req.Order,
	})
	if err != nil {
		if errors.Is(err, repository.ErrServiceNotFound) {
			httpapi.Error(c, http.StatusNotFound, "Service not found", "")
			return
		}
		h.log.Error().Err(err).Msg("service update failed")
		httpapi.Error(c, http.StatusInternalServerError, "service update failed", "Internal error")
		return
	}
	httpapi.Success(c, http.StatusOK, item, "Service updated")
}

func (h HandlerSet) DeleteService(c *gin.Context) {
	if err := h.services.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrServiceNotFound) {
			httpapi.Error(c, http.StatusNotFound, "Service not found", "")
			return
		}
		h.log.Error().Err(err).Msg("service delete failed")
		httpapi.Error(c, http.StatusInternalServerError, "service delete failed", "Internal error")
		return
	}
	httpapi.Success(c, http.StatusOK, nil, "Service deleted")
}

type teamMemberRequest struct {
	Name  string `json:"name" binding:"required"`
	Role  string `json:"role" binding:"required"`
	Image string `json:"image"`
	Bio   string `json:"bio"`
	Order int    `json:"order"`
}

func (h HandlerSet) CreateTeamMember(c *gin.Context) {
	var req teamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, http.StatusBadRequest, err.Error(), "Validation failed")
		return
	}

	member := models.TeamMember{
		ID:    ids.New(),
		Name:  req.Name,
		Role:  req.Role,
		Image: req.Image,
		Bio:   req.Bio,
		Order: req.Order,
	}
	if err := h.team.Create(c.Request.Context(), member); err != nil {
		h.log.Error().Err(err).Msg("team member create failed")
		httpapi.Error(c, http.StatusInternalServerError, "team member create failed", "Internal error")
		return
	}

	created, err := h.team.GetByID(c.Request.Context(), member.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("team member readback failed")
		httpapi.Error(c, http.StatusInternalServerError, "team member create failed", "Internal error")
		return
	}
	httpapi.Success(c, http.StatusCreated, created, "Team member created")
}

func (h HandlerSet) ListTeamMembers(c *gin.Context) {
	page, limit := httpapi.PageParams(c)
	offset, limit := httpapi.CalculatePagination(page, limit)

	items, err := h.team.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("team list failed")
		httpapi.Error(c, http.StatusInternalServerError, "team list failed", "Internal error")
		return
	}
	total, err := h.team.Count(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("team count failed")
		httpapi.Error(c, http.StatusInternalServerError, "team count failed", "Internal error")
		return
	}
	httpapi.Paginated(c, http.StatusOK, items, total, page, limit)
}

func (h HandlerSet) GetTeamMember(c *gin.Context) {
	item, err := h.team.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrTeamMemberNotFound) {
			httpapi.Error(c, http.StatusNotFound, "Team member not found", "")
			return
		}
		h.log.Error().Err(err).Msg("team member lookup failed")
		httpapi.Error(c, http.StatusInternalServerError, "team member lookup failed", "Internal error")
		return
	}
	httpapi.Success(c, http.StatusOK, item, "")
}

func (h HandlerSet) UpdateTeamMember(c *gin.Context) {
	var req teamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, http.StatusBadRequest, err.Error(), "Validation failed")
		return
	}

	item, err := h.team.Update(c.Request.Context(), models.TeamMember{
		ID:    c.Param("id"),
		Name:  req.Name,
		Role:  req.Role,
		Image: req.Image,
		Bio:   req.Bio,
		Order: req.Order,
	})
	if err != nil {
		if errors.Is(err, repository.ErrTeamMemberNotFound) {
			httpapi.Error(c, http.StatusNotFound, "Team member not found", "")
			return
		}
		h.log.Error().Err(err).Msg("team member update failed")
		httpapi.Error(c, http.StatusInternalServerError, "team member update failed", "Internal error")
		return
	}
	httpapi.Success(c, http.StatusOK, item, "Team member updated")
}

func (h HandlerSet) DeleteTeamMember(c *gin.Context) {
	if err := h.team.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrTeamMemberNotFound) {
			httpapi.Error(c, http.StatusNotFound, "Team member not found", "")
			return
		}
		h.log.Error().Err(err).Msg("team member delete failed")
		httpapi.Error(c, http.StatusInternalServerError, "team member delete failed", "Internal error")
		return
	}
	httpapi.Success(c, http.StatusOK, nil, "Team member deleted")
}

type portfolioRequest struct {
	Title       string `json:"title" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Image       string `json:"image"`
	Client      string `json:"client"`
	Description string `json:"description"`
	Result      string `json:"result"`
	Order       int    `json:"order"`
}

func (h HandlerSet) CreatePortfolioItem(c *gin.Context) {
	var req portfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, http.StatusBadRequest, err.Error(), "Validation failed")
		return
	}

	item := models.PortfolioItem{
		ID:          ids.New(),
		Title:       req.Title,
		Category:    req.Category,
		Image:       req.Image,
		Client:      req.Client,
		Description: req.Description,
		Result:      req.Result,
		Order:       req.Order,
	}
	if err := h.portfolio.Create(c.Request.Context(), item); err != nil {
		h.log.Error().Err(err).Msg("portfolio create failed")
		httpapi.Error(c, http.StatusInternalServerError, "portfolio create failed", "Internal error")
		return
	}

	created, err := h.portfolio.GetByID(c.Request.Context(), item.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("portfolio readback failed")
		httpapi.Error(c, http.StatusInternalServerError, "portfolio create failed", "Internal error")
		return
	}
	httpapi.Success(c, http.StatusCreated, created, "Portfolio item created")
}

func (h HandlerSet) ListPortfolio(c *gin.Context) {
	page, limit := httpapi.PageParams(c)
	offset, limit := httpapi.CalculatePagination(page, limit)
	category := c.Query("category")

	items, err := h.portfolio.List(c.Request.Context(), category, limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("portfolio list failed")
		httpapi.Error(c, http.StatusInternalServerError, "portfolio list failed", "Internal error")
		return
	}
	total, err := h.portfolio.Count(c.Request.Context(), category)
	if err != nil {
		h.log.Error().Err(err).Msg("portfolio count failed")
		httpapi.Error(c, http.StatusInternalServerError, "portfolio count failed", "Internal error")
		return
	}
	httpapi.Paginated(c, http.StatusOK, items, total, page, limit)
}

func (h HandlerSet) GetPortfolioItem(c *gin.Context) {
	item, err := h.portfolio.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrPortfolioItemNotFound) {
			httpapi.Error(c, http.StatusNotFound, "Portfolio item not found", "")
			return
		}
		h.log.Error().Err(err).Msg("portfolio lookup failed")
		httpapi.Error(c, http.StatusInternalServerError, "portfolio lookup failed", "Internal error")
		return
	}
	httpapi.Success(c, http.StatusOK, item, "")
}

func (h HandlerSet) UpdatePortfolioItem(c *gin.Context) {
	var req portfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, http.StatusBadRequest, err.Error(), "Validation failed")
		return
	}

	item, err := h.portfolio.Update(c.Request.Context(), models.PortfolioItem{
		ID:          c.Param("id"),
		Title:       req.Title,
		Category:    req.Category,
		Image:       req.Image,
		Client:      req.Client,
		Description: req.Description,
		Result:      req.Result,
		Order:       req.Order,
	})
	if err != nil {
		if errors.Is(err, repository.ErrPortfolioItemNotFound) {
			httpapi.Error(c, http.StatusNotFound, "Portfolio item not found", "")
			return
		}
		h.log.Error().Err(err).Msg("portfolio update failed")
		httpapi.Error(c, http.StatusInternalServerError, "portfolio update failed", "Internal error")
		return
	}
	httpapi.Success(c, http.StatusOK, item, "Portfolio item updated")
}

func (h HandlerSet) DeletePortfolioItem(c *gin.Context) {
	if err := h.portfolio.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrPortfolioItemNotFound) {
			httpapi.Error(c, http.StatusNotFound, "Portfolio item not found", "")
			return
		}
		h.log.Error().Err(err).Msg("portfolio delete failed")
		httpapi.Error(c, http.StatusInternalServerError, "portfolio delete failed", "Internal error")
		return
	}
	httpapi.Success(c, http.StatusOK, nil, "Portfolio item deleted")
}
