package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hirenest/hirenest-be/internal/api/domain"
	"github.com/hirenest/hirenest-be/internal/api/dto"
	"github.com/hirenest/hirenest-be/internal/api/model"
	"github.com/hirenest/hirenest-be/internal/api/storage"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func jobToDTO(job *model.Job) dto.JobDTO {
	return dto.JobDTO{
		JobID:       job.JobID,
		Title:       job.Title,
		Category:    job.Category,
		Deadline:    job.Deadline.Format(time.RFC3339),
		Description: job.Description,
		MinPrice:    job.MinPrice,
		MaxPrice:    job.MaxPrice,
		Buyer: dto.BuyerDTO{
			Email: job.BuyerEmail,
			Name:  job.BuyerName,
			Photo: job.BuyerPhoto,
		},
		CreatedAt: job.CreatedAt.Format(time.RFC3339),
		UpdatedAt: job.UpdatedAt.Format(time.RFC3339),
	}
}

func jobsToDTOs(jobs []model.Job) []dto.JobDTO {
	out := make([]dto.JobDTO, len(jobs))
	for i := range jobs {
		out[i] = jobToDTO(&jobs[i])
	}
	return out
}

// ListJobs handles GET /jobs
// Unfiltered full-collection listing; no pagination.
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.jobs.ListJobs(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list jobs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list jobs",
		})
		return
	}

	c.JSON(http.StatusOK, jobsToDTOs(jobs))
}

// GetJob handles GET /job/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID := c.Param("id")

	if _, err := uuid.Parse(jobID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "id must be a valid UUID",
		})
		return
	}

	job, err := h.jobs.GetJobByID(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Job not found",
			})
			return
		}
		h.logger.Error("Failed to get job",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get job",
		})
		return
	}

	c.JSON(http.StatusOK, jobToDTO(job))
}

// CreateJob handles POST /job
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	deadline, ok := parseDeadline(req.Deadline)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "deadline must be an RFC3339 timestamp or YYYY-MM-DD date",
		})
		return
	}

	now := time.Now()
	job := model.Job{
		JobID:       uuid.New().String(),
		Title:       req.Title,
		Category:    req.Category,
		Deadline:    deadline,
		Description: req.Description,
		MinPrice:    req.MinPrice,
		MaxPrice:    req.MaxPrice,
		BuyerEmail:  req.Buyer.Email,
		BuyerName:   req.Buyer.Name,
		BuyerPhoto:  req.Buyer.Photo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.jobs.CreateJob(c.Request.Context(), &job); err != nil {
		h.logger.Error("Failed to create job", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create job",
		})
		return
	}

	h.logger.Info("Job created",
		slog.String("job_id", job.JobID),
		slog.String("buyer_email", job.BuyerEmail),
	)

	c.JSON(http.StatusCreated, jobToDTO(&job))
}

// UpdateJob handles PUT /job/:id
// Upserts: an id with no match creates a new document instead of
// failing, matching the source behavior.
func (h *JobHandler) UpdateJob(c *gin.Context) {
	jobID := c.Param("id")

	if _, err := uuid.Parse(jobID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "id must be a valid UUID",
		})
		return
	}

	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	deadline, ok := parseDeadline(req.Deadline)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "deadline must be an RFC3339 timestamp or YYYY-MM-DD date",
		})
		return
	}

	now := time.Now()
	job := model.Job{
		JobID:       jobID,
		Title:       req.Title,
		Category:    req.Category,
		Deadline:    deadline,
		Description: req.Description,
		MinPrice:    req.MinPrice,
		MaxPrice:    req.MaxPrice,
		BuyerEmail:  req.Buyer.Email,
		BuyerName:   req.Buyer.Name,
		BuyerPhoto:  req.Buyer.Photo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.jobs.UpsertJob(c.Request.Context(), &job); err != nil {
		h.logger.Error("Failed to update job",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update job",
		})
		return
	}

	c.JSON(http.StatusOK, jobToDTO(&job))
}

// DeleteJob handles DELETE /job/:id
func (h *JobHandler) DeleteJob(c *gin.Context) {
	jobID := c.Param("id")

	if _, err := uuid.Parse(jobID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "id must be a valid UUID",
		})
		return
	}

	if err := h.jobs.DeleteJob(c.Request.Context(), jobID); err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Job not found",
			})
			return
		}
		h.logger.Error("Failed to delete job",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete job",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ListJobsByOwner handles GET /jobs/:email (guarded)
// The guard has already verified the token; the handler still has to
// match the path email against the verified identity.
func (h *JobHandler) ListJobsByOwner(c *gin.Context) {
	email := c.Param("email")

	if c.GetString(IdentityKey) != email {
		c.JSON(http.StatusForbidden, gin.H{
			"message": "forbidden access",
		})
		return
	}

	jobs, err := h.jobs.ListJobsByOwner(c.Request.Context(), email)
	if err != nil {
		h.logger.Error("Failed to list jobs by owner",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list jobs",
		})
		return
	}

	c.JSON(http.StatusOK, jobsToDTOs(jobs))
}

// SearchJobs handles GET /all-jobs
// Paginated, filtered job search: case-insensitive substring match on
// title, optional exact category match, optional deadline sort.
func (h *JobHandler) SearchJobs(c *gin.Context) {
	var req dto.SearchJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	if req.Size <= 0 {
		req.Size = defaultPageSize
	}
	if req.Size > maxPageSize {
		req.Size = maxPageSize
	}

	filter := storage.JobSearchFilter{
		Search:   req.Search,
		Category: req.Filter,
		Sort:     req.Sort,
		Page:     req.Page,
		Size:     req.Size,
	}

	jobs, err := h.jobs.SearchJobs(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to search jobs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to search jobs",
		})
		return
	}

	c.JSON(http.StatusOK, jobsToDTOs(jobs))
}

// CountJobs handles GET /job-count
// Same predicate as SearchJobs, without pagination, so clients can
// compute total pages.
func (h *JobHandler) CountJobs(c *gin.Context) {
	var req dto.CountJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	count, err := h.jobs.CountJobs(c.Request.Context(), req.Search, req.Filter)
	if err != nil {
		h.logger.Error("Failed to count jobs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to count jobs",
		})
		return
	}

	c.JSON(http.StatusOK, dto.CountJobsResponse{Count: count})
}
