package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-research/newswatch/internal/scheduler"
	"github.com/meridian-research/newswatch/pkg/logger"
)

type stubJobs struct {
	statuses []scheduler.JobStatus
}

func (s *stubJobs) JobStatuses() []scheduler.JobStatus {
	return s.statuses
}

func TestHealth_WithoutDatabase(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	NewStatusHandler(nil, nil, logger.NewNop()).Health(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))

	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "newswatch-api", body["service"])
	assert.NotContains(t, body, "database")
}

func TestJobs_ReportsRegisteredJobs(t *testing.T) {
	jobs := &stubJobs{statuses: []scheduler.JobStatus{
		{
			Name:        "poll",
			Schedule:    "@every 1m0s",
			Runs:        3,
			SuccessRate: 1.0,
			LastRun:     &scheduler.JobResult{JobName: "poll", Success: true, Duration: 2 * time.Second},
		},
	}}

	r := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	w := httptest.NewRecorder()
	NewStatusHandler(nil, jobs, logger.NewNop()).Jobs(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count int                   `json:"count"`
		Jobs  []scheduler.JobStatus `json:"jobs"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))

	require.Equal(t, 1, body.Count)
	assert.Equal(t, "poll", body.Jobs[0].Name)
	assert.Equal(t, 3, body.Jobs[0].Runs)
	assert.Equal(t, 1.0, body.Jobs[0].SuccessRate)
}

func TestJobs_WithoutScheduler(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	w := httptest.NewRecorder()
	NewStatusHandler(nil, nil, logger.NewNop()).Jobs(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count int                   `json:"count"`
		Jobs  []scheduler.JobStatus `json:"jobs"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))

	assert.Zero(t, body.Count)
	assert.NotNil(t, body.Jobs)
	assert.Empty(t, body.Jobs)
}
