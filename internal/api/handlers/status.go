package handlers

import (
	"net/http"

	"github.com/meridian-research/newswatch/internal/scheduler"
	"github.com/meridian-research/newswatch/pkg/database"
	"github.com/meridian-research/newswatch/pkg/logger"
)

// JobStatusProvider reports the state of the scheduled jobs.
type JobStatusProvider interface {
	JobStatuses() []scheduler.JobStatus
}

// StatusHandler serves service health and job execution status. Both the
// database and the scheduler are optional: the api subcommand runs without
// a scheduler, and dry-run runs without a database.
type StatusHandler struct {
	db     *database.DB
	jobs   JobStatusProvider
	logger *logger.Logger
}

// NewStatusHandler creates a new status handler.
func NewStatusHandler(db *database.DB, jobs JobStatusProvider, log *logger.Logger) *StatusHandler {
	return &StatusHandler{db: db, jobs: jobs, logger: log}
}

// Health reports service liveness and, when a database is configured, its
// health and pool statistics. A failing database degrades the status but the
// endpoint still answers 200: the in-memory pipeline keeps working.
// GET /health
func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	body := map[string]interface{}{
		"status":  "ok",
		"service": "newswatch-api",
	}

	if h.db != nil {
		health, err := h.db.HealthCheck(r.Context())
		if err != nil {
			h.logger.WithError(err).Warn("Database health check failed")
			body["status"] = "degraded"
		}
		body["database"] = health
	}

	respondJSON(w, http.StatusOK, body)
}

// Jobs returns the registered jobs with their run history summaries.
// GET /api/v1/jobs
func (h *StatusHandler) Jobs(w http.ResponseWriter, r *http.Request) {
	statuses := []scheduler.JobStatus{}
	if h.jobs != nil {
		statuses = h.jobs.JobStatuses()
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(statuses),
		"jobs":  statuses,
	})
}
