package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/career-compass/internal/analytics"
	"github.com/justsurfingit/career-compass/internal/apperr"
	"github.com/justsurfingit/career-compass/internal/dtos"
	"github.com/justsurfingit/career-compass/internal/services"
	"github.com/justsurfingit/career-compass/internal/tracker"
)

// JobHandler exposes the state controller's operations over HTTP.
// Dependency injection, same as the rest of the app.
type JobHandler struct {
	Controller *tracker.Controller
	Extract    *services.ExtractService
}

func NewJobHandler(controller *tracker.Controller, extract *services.ExtractService) *JobHandler {
	return &JobHandler{Controller: controller, Extract: extract}
}

// ListJobs is GET /jobs. An optional ?status= query sets the active filter
// before the collection is read.
func (h *JobHandler) ListJobs(c *gin.Context) {
	if status, ok := c.GetQuery("status"); ok {
		h.Controller.SetFilter(status)
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.Controller.FilteredJobs(),
	})
}

// CreateJob is POST /jobs.
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dtos.JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	job, err := h.Controller.CreateJob(c.Request.Context(), req.ToModel())
	if err != nil {
		respondError(c, err, "Failed to create job")
		return
	}
	c.JSON(http.StatusCreated, job)
}

// UpdateJob is PUT /jobs/:id.
func (h *JobHandler) UpdateJob(c *gin.Context) {
	var req dtos.JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	job, err := h.Controller.UpdateJob(c.Request.Context(), c.Param("id"), req.ToModel())
	if err != nil {
		respondError(c, err, "Failed to update job")
		return
	}
	c.JSON(http.StatusOK, job)
}

// DeleteJob is DELETE /jobs/:id.
func (h *JobHandler) DeleteJob(c *gin.Context) {
	if err := h.Controller.DeleteJob(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete job")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetJob is GET /jobs/:id; it also opens the detail view.
func (h *JobHandler) GetJob(c *gin.Context) {
	if err := h.Controller.SelectJob(c.Param("id")); err != nil {
		respondError(c, err, "Job not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.Controller.SelectedJob(),
	})
}

// AddInterview is POST /jobs/:id/interviews.
func (h *JobHandler) AddInterview(c *gin.Context) {
	var req dtos.InterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	id := c.Param("id")
	if err := h.Controller.SelectJob(id); err != nil {
		respondError(c, err, "Job not found")
		return
	}
	job, err := h.Controller.AddInterview(c.Request.Context(), id, req.ToModel())
	if err != nil {
		respondError(c, err, "Failed to add interview")
		return
	}
	c.JSON(http.StatusOK, job)
}

// Analysis is GET /jobs/:id/analysis.
func (h *JobHandler) Analysis(c *gin.Context) {
	if err := h.Controller.SelectJob(c.Param("id")); err != nil {
		respondError(c, err, "Job not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.Controller.GenerateAnalysis(),
	})
}

// Insights is GET /insights: the dashboard stats, progress bars and both
// distribution breakdowns in one payload.
func (h *JobHandler) Insights(c *gin.Context) {
	snapshot := h.Controller.Snapshot()
	stats := analytics.ComputeStats(snapshot.Jobs)
	c.JSON(http.StatusOK, gin.H{
		"success":               true,
		"stats":                 stats,
		"progress":              analytics.ComputeProgress(stats),
		"status_distribution":   analytics.StatusDistribution(snapshot.Jobs),
		"priority_distribution": analytics.PriorityDistribution(snapshot.Jobs),
	})
}

// ViewState is PUT /view: tab, filter, layout and theme selections.
func (h *JobHandler) ViewState(c *gin.Context) {
	var req struct {
		Tab    string `json:"tab"`
		Filter string `json:"filter"`
		View   string `json:"view"`
		Theme  string `json:"theme"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	if req.Tab != "" {
		h.Controller.SetTab(tracker.Tab(req.Tab))
	}
	if req.Filter != "" {
		h.Controller.SetFilter(req.Filter)
	}
	if req.View != "" {
		h.Controller.SetView(tracker.ViewMode(req.View))
	}
	if req.Theme != "" {
		h.Controller.SetTheme(tracker.Theme(req.Theme))
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ParseJob is POST /extract: raw posting HTML in, structured fields out.
func (h *JobHandler) ParseJob(c *gin.Context) {
	var req dtos.JobExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	extracted, err := h.Extract.ExtractJobDetails(c.Request.Context(), req.RawHTML)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI Extraction failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    extracted,
	})
}

func respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	msg := fallback + ": " + err.Error()
	if e, ok := err.(*apperr.Error); ok {
		status = e.HTTPStatus()
		if e.Kind == apperr.KindAuth {
			msg = apperr.UserMessage(e)
		} else {
			msg = e.Message
		}
	}
	c.JSON(status, gin.H{"error": msg})
}
