package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"campaignhub/api/internal/httpapi"
	"campaignhub/api/internal/ids"
	"campaignhub/api/internal/middleware"
	"campaignhub/api/internal/models"
	"campaignhub/api/internal/repository"
)

type testimonialRequest struct {
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role"`
	Company  string `json:"company"`
	Feedback string `json:"feedback" binding:"required"`
	Avatar   string `json:"avatar"`
	Visible  *bool  `json:"visible"`
	Order    int    `json:"order"`
}

func (h HandlerSet) CreateTestimonial(c *gin.Context) {
	var req testimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, http.StatusBadRequest, err.Error(), "Validation failed")
		return
	}

	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}

	t := models.Testimonial{
		ID:       ids.New(),
		Name:     req.Name,
		Role:     req.Role,
		Company:  req.Company,
		Feedback: req.Feedback,
		Avatar:   req.Avatar,
		Visible:  visible,
		Order:    req.Order,
	}
	if err := h.testimonials.Create(c.Request.Context(), t); err != nil {
		h.log.Error().Err(err).Msg("testimonial create failed")
		httpapi.Error(c, http.StatusInternalServerError, "testimonial create failed", "Internal error")
		return
	}

	created, err := h.testimonials.GetByID(c.Request.Context(), t.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("testimonial readback failed")
		httpapi.Error(c, http.StatusInternalServerError, "testimonial create failed", "Internal error")
		return
	}
	httpapi.Success(c, http.StatusCreated, created, "Testimonial created")
}

// ListTestimonials forces visible=true for everyone but admins, no
// matter what filter the query string asks for.
func (h HandlerSet) ListTestimonials(c *gin.Context) {
	page, limit := httpapi.PageParams(c)
	offset, limit := httpapi.CalculatePagination(page, limit)

	identity, authed := middleware.CurrentIdentity(c)
	filter := repository.TestimonialFilter{
		Visible: testimonialVisibility(identity, authed, c.Query("visible")),
	}

	items, err := h.testimonials.List(c.Request.Context(), filter, limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("testimonial list failed")
		httpapi.Error(c, http.StatusInternalServerError, "testimonial list failed", "Internal error")
		return
	}
	total, err := h.testimonials.Count(c.Request.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("testimonial count failed")
		httpapi.Error(c, http.StatusInternalServerError, "testimonial count failed", "Internal error")
		return
	}
	httpapi.Paginated(c, http.StatusOK, items, total, page, limit)
}

// GetTestimonial hides invisible entries from non-admin callers behind the
// same 404 a missing id produces.
func (h HandlerSet) GetTestimonial(c *gin.Context) {
	item, err := h.testimonials.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrTestimonialNotFound) {
			httpapi.Error(c, http.StatusNotFound, "Testimonial not found", "")
			return
		}
		h.log.Error().Err(err).Msg("testimonial lookup failed")
		httpapi.Error(c, http.StatusInternalServerError, "testimonial lookup failed", "Internal error")
		return
	}

	identity, authed := middleware.CurrentIdentity(c)
	if !item.Visible && !seesHiddenContent(identity, authed) {
		httpapi.Error(c, http.StatusNotFound, "Testimonial not found", "")
		return
	}

	httpapi.Success(c, http.StatusOK, item, "")
}

func (h HandlerSet) UpdateTestimonial(c *gin.Context) {
	var req testimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, http.StatusBadRequest, err.Error(), "Validation failed")
		return
	}

	current, err := h.testimonials.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrTestimonialNotFound) {
			httpapi.Error(c, http.StatusNotFound, "Testimonial not found", "")
			return
		}
		h.log.Error().Err(err).Msg("testimonial lookup failed")
		httpapi.Error(c, http.StatusInternalServerError, "testimonial lookup failed", "Internal error")
		return
	}

	visible := current.Visible
	if req.Visible != nil {
		visible = *req.Visible
	}

	item, err := h.testimonials.Update(c.Request.Context(), models.Testimonial{
		ID:       current.ID,
		Name:     req.Name,
		Role:     req.Role,
		Company:  req.Company,
		Feedback: req.Feedback,
		Avatar:   req.Avatar,
		Visible:  visible,
		Order:    req.Order,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("testimonial update failed")
		httpapi.Error(c, http.StatusInternalServerError, "testimonial update failed", "Internal error")
		return
	}
	httpapi.Success(c, http.StatusOK, item, "Testimonial updated")
}

func (h HandlerSet) ToggleTestimonialVisibility(c *gin.Context) {
	item, err := h.testimonials.ToggleVisibility(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrTestimonialNotFound) {
			httpapi.Error(c, http.StatusNotFound, "Testimonial not found", "")
			return
		}
		h.log.Error().Err(err).Msg("visibility toggle failed")
		httpapi.Error(c, http.StatusInternalServerError, "visibility toggle failed", "Internal error")
		return
	}
	httpapi.Success(c, http.StatusOK, item, "Visibility updated")
}

func (h HandlerSet) DeleteTestimonial(c *gin.Context) {
	if err := h.testimonials.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrTestimonialNotFound) {
			httpapi.Error(c, http.StatusNotFound, "Testimonial not found", "")
			return
		}
		h.log.Error().Err(err).Msg("testimonial delete failed")
		httpapi.Error(c, http.StatusInternalServerError, "testimonial delete failed", "Internal error")
		return
	}
	httpapi.Success(c, http.StatusOK, nil, "Testimonial deleted")
}
