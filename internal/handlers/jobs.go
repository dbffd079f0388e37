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

type jobRequest struct {
	Title            string   `json:"title" binding:"required"`
	Department       string   `json:"department" binding:"required"`
	Location         string   `json:"location"`
	Experience       string   `json:"experience"`
	Description      string   `json:"description"`
	Responsibilities []string `json:"responsibilities"`
	Requirements     []string `json:"requirements"`
	Status           string   `json:"status"`
}

func (req jobRequest) status() (models.JobStatus, bool) {
	switch models.JobStatus(req.Status) {
	case "":
		return models.JobStatusOpen, true
	case models.JobStatusOpen, models.JobStatusClosed:
		return models.JobStatus(req.Status), true
	}
	return "", false
}

func (h HandlerSet) CreateJob(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, http.StatusBadRequest, err.Error(), "Validation failed")
		return
	}
	status, ok := req.status()
	if !ok {
		httpapi.Error(c, http.StatusBadRequest, "invalid status", "Validation failed")
		return
	}

	job := models.Job{
		ID:               ids.New(),
		Title:            req.Title,
		Department:       req.Department,
		Location:         req.Location,
		Experience:       req.Experience,
		Description:      req.Description,
		Responsibilities: req.Responsibilities,
		Requirements:     req.Requirements,
		Status:           status,
	}
	if err := h.jobs.Create(c.Request.Context(), job); err != nil {
		h.log.Error().Err(err).Msg("job create failed")
		httpapi.Error(c, http.StatusInternalServerError, "job create failed", "Internal error")
		return
	}

	created, err := h.jobs.GetByID(c.Request.Context(), job.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("job readback failed")
		httpapi.Error(c, http.StatusInternalServerError, "job create failed", "Internal error")
		return
	}
	httpapi.Success(c, http.StatusCreated, created, "Job created")
}

// ListJobs always serves open positions to non-admin callers. An explicit
// status filter from a non-admin caller is ignored, not honored.
func (h HandlerSet) ListJobs(c *gin.Context) {
	page, limit := httpapi.PageParams(c)
	offset, limit := httpapi.CalculatePagination(page, limit)

	identity, authed := middleware.CurrentIdentity(c)
	filter := repository.JobFilter{
		Department: c.Query("department"),
		Status:     jobStatusScope(identity, authed, c.Query("status")),
	}

	jobs, err := h.jobs.List(c.Request.Context(), filter, limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("job list failed")
		httpapi.Error(c, http.StatusInternalServerError, "job list failed", "Internal error")
		return
	}
	total, err := h.jobs.Count(c.Request.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("job count failed")
		httpapi.Error(c, http.StatusInternalServerError, "job count failed", "Internal error")
		return
	}
	httpapi.Paginated(c, http.StatusOK, jobs, total, page, limit)
}

// GetJob hides closed positions from non-admin callers behind a 404.
func (h HandlerSet) GetJob(c *gin.Context) {
	job, err := h.jobs.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			httpapi.Error(c, http.StatusNotFound, "Job not found", "")
			return
		}
		h.log.Error().Err(err).Msg("job lookup failed")
		httpapi.Error(c, http.StatusInternalServerError, "job lookup failed", "Internal error")
		return
	}

	identity, authed := middleware.CurrentIdentity(c)
	if job.Status != models.JobStatusOpen && !seesHiddenContent(identity, authed) {
		httpapi.Error(c, http.StatusNotFound, "Job not found", "")
		return
	}

	httpapi.Success(c, http.StatusOK, job, "")
}

func (h HandlerSet) UpdateJob(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, http.StatusBadRequest, err.Error(), "Validation failed")
		return
	}
	status, ok := req.status()
	if !ok {
		httpapi.Error(c, http.StatusBadRequest, "invalid status", "Validation failed")
		return
	}

	job, err := h.jobs.Update(c.Request.Context(), models.Job{
		ID:               c.Param("id"),
		Title:            req.Title,
		Department:       req.Department,
		Location:         req.Location,
		Experience:       req.Experience,
		Description:      req.Description,
		Responsibilities: req.Responsibilities,
		Requirements:     req.Requirements,
		Status:           status,
	})
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			httpapi.Error(c, http.StatusNotFound, "Job not found", "")
			return
		}
		h.log.Error().Err(err).Msg("job update failed")
		httpapi.Error(c, http.StatusInternalServerError, "job update failed", "Internal error")
		return
	}
	httpapi.Success(c, http.StatusOK, job, "Job updated")
}

func (h HandlerSet) DeleteJob(c *gin.Context) {
	if err := h.jobs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			httpapi.Error(c, http.StatusNotFound, "Job not found", "")
			return
		}
		h.log.Error().Err(err).Msg("job delete failed")
		httpapi.Error(c, http.StatusInternalServerError, "job delete failed", "Internal error")
		return
	}
	httpapi.Success(c, http.StatusOK, nil, "Job deleted")
}
